package documents

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecialCodes(t *testing.T) {
	s := NewSpecialCodes("QZFA036", " QZFA004 ", "", "QZFA031")
	assert.True(t, s.Contains("QZFA036"))
	assert.True(t, s.Contains("QZFA004"))
	assert.True(t, s.Contains("QZFA031"))
	assert.False(t, s.Contains("QZFA008"))
	assert.False(t, s.Contains(""))
}

func TestSpecialCodesFromEnv(t *testing.T) {
	t.Setenv("SPECIAL_CODES", "")
	s := SpecialCodesFromEnv()
	assert.True(t, s.Contains("QZFA036"))
	assert.True(t, s.Contains("QZFA004"))
	assert.True(t, s.Contains("QZFA031"))

	t.Setenv("SPECIAL_CODES", "AAAA001,AAAA002")
	s = SpecialCodesFromEnv()
	assert.True(t, s.Contains("AAAA001"))
	assert.False(t, s.Contains("QZFA036"))
}

func TestEnteteFromEnv(t *testing.T) {
	t.Setenv("ENTETE_LIGNE_1", "")
	t.Setenv("ENTETE_LIGNE_2", "")
	e := EnteteFromEnv()
	assert.Equal(t, "Cabinet de Dermatologie", e.Ligne1)
	assert.Equal(t, "Papeete", e.Ligne2)

	t.Setenv("ENTETE_LIGNE_1", "Dr Exemple")
	t.Setenv("ENTETE_LIGNE_2", "Pirae")
	e = EnteteFromEnv()
	assert.Equal(t, "Dr Exemple", e.Ligne1)
	assert.Equal(t, "Pirae", e.Ligne2)
}

func TestMontant(t *testing.T) {
	assert.Equal(t, "3500", Montant(3499.6))
	assert.Equal(t, "0", Montant(0))
}

func assertPDF(t *testing.T, buf *bytes.Buffer) {
	t.Helper()
	require.Greater(t, buf.Len(), 500)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func sampleFacture() Facture {
	return Facture{
		Nom:            "TERIIPAIA",
		Prenom:         "Moana",
		DateNaissance:  "15/06/1980",
		DN:             "1234567",
		NomMedecin:     "Dr Exemple",
		NomClinique:    "Clinique Paofai",
		CodeM:          "123",
		DateFacture:    "24/04/2025",
		CodeActeNormal: "QZFA008",
		Modificateur:   "F",
		Variable1:      "1",
		TotalActe:      11500,
		TotalActe1:     8000,
		TotalActe2:     3500,
		TotalPaye:      3450,
		TiersPayant:    8050,
	}
}

func TestBuildFacture(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, BuildFacture(&buf, sampleFacture(), SpecialCodesFromEnv()))
	assertPDF(t, &buf)
}

func TestBuildFactureSpecialCode(t *testing.T) {
	f := sampleFacture()
	f.CodeActeNormal = "QZFA036"
	f.CodeActeNormal2 = "QZFA037"
	f.RegimeLM = true
	f.ParcoursSoin = true

	var buf bytes.Buffer
	require.NoError(t, BuildFacture(&buf, f, NewSpecialCodes("QZFA036")))
	assertPDF(t, &buf)

	// The second acte line makes the special variant strictly larger than
	// the same facture rendered as a regular code.
	var plain bytes.Buffer
	require.NoError(t, BuildFacture(&plain, f, NewSpecialCodes()))
	assert.NotEqual(t, plain.Len(), buf.Len())
}

func TestBuildRemiseCheques(t *testing.T) {
	entete := Entete{Ligne1: "Cabinet de Dermatologie", Ligne2: "Papeete"}
	rows := []ChequeRow{
		{Date: "22/04/2025", Banque: "Banque de Tahiti", Porteur: "TERIIPAIA Moana", Montant: 12000},
		{Date: "23/04/2025", Banque: "Banque Socredo", Porteur: "VANAA Heiarii", Montant: 8500.4},
	}

	var buf bytes.Buffer
	require.NoError(t, BuildRemiseCheques(&buf, entete, "24/04/2025", rows, 20500.4))
	assertPDF(t, &buf)
}

func TestBuildRemiseChequesPaginates(t *testing.T) {
	entete := Entete{Ligne1: "Cabinet", Ligne2: "Papeete"}

	short := []ChequeRow{{Date: "24/04/2025", Banque: "Socredo", Porteur: "A", Montant: 100}}
	long := make([]ChequeRow, 80)
	for i := range long {
		long[i] = ChequeRow{Date: "24/04/2025", Banque: "Socredo", Porteur: "Porteur", Montant: 100}
	}

	var one, many bytes.Buffer
	require.NoError(t, BuildRemiseCheques(&one, entete, "24/04/2025", short, 100))
	require.NoError(t, BuildRemiseCheques(&many, entete, "24/04/2025", long, 8000))
	assertPDF(t, &many)
	assert.Greater(t, many.Len(), one.Len())
}

func TestBuildBordereau(t *testing.T) {
	entete := Entete{Ligne1: "Cabinet de Dermatologie", Ligne2: "Papeete"}
	rows := []BordereauRow{
		{DateFacture: "20/04/2025", Nom: "TERIIPAIA", Prenom: "Moana", NumeroFacture: "FQ/2025/04/20/09:05", TiersPayant: 8050},
		{DateFacture: "21/04/2025", Nom: "VANAA", Prenom: "Heiarii", NumeroFacture: "", TiersPayant: 2449.7},
	}

	var buf bytes.Buffer
	require.NoError(t, BuildBordereau(&buf, entete, "M-2025-04-17-114", "24/04/2025", rows, 10499.7))
	assertPDF(t, &buf)
}
