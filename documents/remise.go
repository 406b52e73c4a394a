package documents

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// ChequeRow is one cheque of a remise snapshot, dates pre-formatted.
type ChequeRow struct {
	Date    string
	Banque  string
	Porteur string
	Montant float64
}

var chequeCols = []float64{2, 6, 10, 14}

const (
	pageTop    = 2.0
	pageBottom = 27.7 // A4 is 29.7 cm, keep a 2 cm margin
	rowStep    = 0.7
)

// BuildRemiseCheques renders the paginated deposit slip: practice header,
// Date/Banque/Porteur/Montant table, trailing count and total. Amounts
// print as rounded integers.
func BuildRemiseCheques(w io.Writer, entete Entete, dateRemise string, rows []ChequeRow, total float64) error {
	pdf := gofpdf.New("P", "cm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(2, 2, tr(entete.Ligne1))
	pdf.Text(2, 3, tr(entete.Ligne2))
	pdf.Text(2, 4, tr(fmt.Sprintf("Remise de %d chèque(s)", len(rows))))

	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(2, 5, tr("Date de remise : "+dateRemise))

	y := 6.0
	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 12)
		for i, title := range []string{"Date", "Banque", "Porteur", "Montant"} {
			pdf.Text(chequeCols[i], y, tr(title))
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
		pdf.Text(chequeCols[0], y, row.Date)
		pdf.Text(chequeCols[1], y, tr(row.Banque))
		pdf.Text(chequeCols[2], y, tr(row.Porteur))
		rightAlign(chequeCols[3]+3, y, Montant(row.Montant))
		y += rowStep
	}

	y += 1.0
	if y > pageBottom {
		pdf.AddPage()
		y = pageTop
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(2, y, tr(fmt.Sprintf("Nombre de chèque(s) : %d", len(rows))))
	rightAlign(chequeCols[3]+3, y, Montant(total))

	return pdf.Output(w)
}
