// Package documents renders the printable PDFs of the back office with
// gofpdf: the CPS facture sheet (fixed coordinates on the paper form) and
// the tabular deposit slips (remise de chèques, bordereau).
package documents

import (
	"os"
	"strings"

	"facturation-backend/utils"
)

// SpecialCodes is the configured set of procedure codes that print a second
// field row on the facture sheet (code_acte_normal_2 / total_acte_2).
type SpecialCodes map[string]struct{}

func NewSpecialCodes(codes ...string) SpecialCodes {
	s := make(SpecialCodes, len(codes))
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c != "" {
			s[c] = struct{}{}
		}
	}
	return s
}

func (s SpecialCodes) Contains(code string) bool {
	_, ok := s[code]
	return ok
}

// SpecialCodesFromEnv reads SPECIAL_CODES (comma separated) or falls back
// to the codes of the deployed paper form.
func SpecialCodesFromEnv() SpecialCodes {
	if v := os.Getenv("SPECIAL_CODES"); strings.TrimSpace(v) != "" {
		return NewSpecialCodes(strings.Split(v, ",")...)
	}
	return NewSpecialCodes("QZFA036", "QZFA004", "QZFA031")
}

// Entete is the practice identity block printed on deposit slips.
type Entete struct {
	Ligne1 string
	Ligne2 string
}

func EnteteFromEnv() Entete {
	e := Entete{
		Ligne1: os.Getenv("ENTETE_LIGNE_1"),
		Ligne2: os.Getenv("ENTETE_LIGNE_2"),
	}
	if e.Ligne1 == "" {
		e.Ligne1 = "Cabinet de Dermatologie"
	}
	if e.Ligne2 == "" {
		e.Ligne2 = "Papeete"
	}
	return e
}

// Montant renders an amount the way every printed document does: rounded
// to the nearest franc, no decimals.
func Montant(v float64) string {
	return utils.MontantEntier(v)
}
