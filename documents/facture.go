package documents

import (
	"io"

	"github.com/jung-kurt/gofpdf"
)

// Facture carries the pre-formatted strings placed on the CPS paper form.
// Dates are already rendered as DD/MM/YYYY, amounts stay numeric so the
// renderer can apply the integer display rule.
type Facture struct {
	Nom           string
	Prenom        string
	DateNaissance string
	DN            string

	NomMedecin  string
	NomClinique string
	CodeM       string

	ParcoursSoin bool
	RegimeLM     bool

	DateFacture     string
	CodeActeNormal  string
	CodeActeNormal2 string
	Modificateur    string
	Variable1       string
	Variable2       string

	TotalActe   float64
	TotalActe1  float64
	TotalActe2  float64
	TotalPaye   float64
	TiersPayant float64
}

// Coordinates are centimeter offsets from the top-left of the A4 sheet,
// matched to the pre-printed CPS form. Do not reflow.
func BuildFacture(w io.Writer, f Facture, special SpecialCodes) error {
	pdf := gofpdf.New("P", "cm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 11)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(x, y float64, s string) {
		pdf.Text(x, y, tr(s))
	}

	// Patient
	text(2.0, 4.3, f.Nom)
	text(12.5, 4.3, f.Prenom)
	text(16.0, 5.2, f.DateNaissance)
	text(2.0, 5.2, f.DN)

	// Médecin
	text(2.0, 13.0, f.NomMedecin)
	text(2.0, 13.5, f.NomClinique)
	text(10.0, 12.8, f.CodeM)

	if f.ParcoursSoin {
		text(2.8, 14.9, "X")
	}
	if f.RegimeLM {
		text(0.6, 16.7, "X")
	}

	// Acte line
	text(0.6, 20.3, f.DateFacture)
	text(4.0, 20.3, f.CodeActeNormal)
	text(7.5, 20.3, f.Modificateur)
	text(7.2, 20.3, f.Variable1)
	text(11.4, 20.3, f.Variable2)
	if special.Contains(f.CodeActeNormal) {
		text(12.5, 20.3, Montant(f.TotalActe1))
	} else {
		text(12.5, 20.3, Montant(f.TotalActe))
	}

	// Second acte line for the special codes, 0.4 cm below the first
	if special.Contains(f.CodeActeNormal) {
		text(0.6, 20.7, f.DateFacture)
		text(4.0, 20.7, f.CodeActeNormal2)
		text(7.2, 20.7, f.Variable1)
		text(12.5, 20.7, Montant(f.TotalActe2))
	}

	text(10.0, 23.9, Montant(f.TotalActe))
	if f.RegimeLM {
		text(7.5, 27.5, Montant(f.TotalPaye))
		text(11.5, 27.5, Montant(f.TiersPayant))
	}

	return pdf.Output(w)
}
