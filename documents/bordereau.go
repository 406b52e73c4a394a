package documents

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// BordereauRow is one third-party-payer invoice of a bordereau.
type BordereauRow struct {
	DateFacture   string
	Nom           string
	Prenom        string
	NumeroFacture string
	TiersPayant   float64
}

var bordereauCols = []float64{2, 5, 8.5, 11.5, 16}

// BuildBordereau renders the tiers-payant deposit slip for one batch
// number, same tabular shape as the cheque slip.
func BuildBordereau(w io.Writer, entete Entete, numero, dateBordereau string, rows []BordereauRow, total float64) error {
	pdf := gofpdf.New("P", "cm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(2, 2, tr(entete.Ligne1))
	pdf.Text(2, 3, tr(entete.Ligne2))
	pdf.Text(2, 4, tr("Bordereau "+numero))

	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(2, 5, tr("Date du bordereau : "+dateBordereau))

	y := 6.0
	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 12)
		for i, title := range []string{"Date", "Nom", "Prénom", "N° facture", "Tiers payant"} {
			pdf.Text(bordereauCols[i], y, tr(title))
		}
		y += rowStep
		pdf.SetFont("Helvetica", "", 11)
	}
	writeHeader()

	rightAlign := func(x, y float64, s string) {
		pdf.Text(x-pdf.GetStringWidth(s), y, s)
	}

	for _, row := range rows {
		if y > pageBottom {
			pdf.AddPage()
			y = pageTop
			writeHeader()
		}
		pdf.Text(bordereauCols[0], y, row.DateFacture)
		pdf.Text(bordereauCols[1], y, tr(row.Nom))
		pdf.Text(bordereauCols[2], y, tr(row.Prenom))
		pdf.Text(bordereauCols[3], y, row.NumeroFacture)
		rightAlign(bordereauCols[4]+2.5, y, Montant(row.TiersPayant))
		y += rowStep
	}

	y += 1.0
	if y > pageBottom {
		pdf.AddPage()
		y = pageTop
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(2, y, tr(fmt.Sprintf("Nombre de facture(s) : %d", len(rows))))
	rightAlign(bordereauCols[4]+2.5, y, Montant(total))

	return pdf.Output(w)
}
