package controllers

import (
	"testing"
	"time"

	"facturation-backend/middlewares"
	"facturation-backend/models"
	"facturation-backend/utils"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumeroFactureRule(t *testing.T) {
	now := time.Date(2025, 4, 24, 9, 5, 0, 0, time.Local)
	hors := &models.Code{CodeActe: "QZFA008"}
	parcours := &models.Code{CodeActe: "QZFA012", ParcoursSoin: true}

	// An explicit number always wins, even with a parcours-de-soins code.
	assert.Equal(t, "FQ/2024/01/02/10:30", numeroFacture("FQ/2024/01/02/10:30", parcours, now))

	// Generated only for a code outside the parcours de soins.
	assert.Equal(t, "FQ/2025/04/24/09:05", numeroFacture("", hors, now))
	assert.Equal(t, "", numeroFacture("", parcours, now))
	assert.Equal(t, "", numeroFacture("", nil, now))
}

func TestUpsertPaiementGetOrCreate(t *testing.T) {
	db := openTestDB(t)
	fact := models.Facturation{Nom: "Teriipaia"}
	require.NoError(t, db.Create(&fact).Error)

	in := &FacturationInput{
		ModalitePaiement: models.ModaliteCheque,
		Banque:           models.BanqueTahiti,
		Porteur:          "Teriipaia",
		Montant:          f64(12000),
		DatePaiement:     "2025-04-24",
	}
	require.NoError(t, upsertPaiement(db, &fact, in))

	var paiement models.Paiement
	require.NoError(t, db.Where("facturation_id = ?", fact.ID).First(&paiement).Error)
	assert.Equal(t, models.ModaliteCheque, paiement.ModalitePaiement)
	assert.Equal(t, models.BanqueTahiti, paiement.Banque)
	assert.Equal(t, "Teriipaia", paiement.Porteur)
	require.NotNil(t, paiement.Montant)
	assert.Equal(t, 12000.0, *paiement.Montant)
	assert.Equal(t, "2025-04-24", paiement.Date.Format("2006-01-02"))

	// Saving again with another modality updates the same row: cheque fields
	// blank out, the montant survives when absent from the form.
	require.NoError(t, upsertPaiement(db, &fact, &FacturationInput{ModalitePaiement: models.ModaliteEspeces}))

	var count int64
	db.Model(&models.Paiement{}).Where("facturation_id = ?", fact.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	require.NoError(t, db.Where("facturation_id = ?", fact.ID).First(&paiement).Error)
	assert.Equal(t, models.ModaliteEspeces, paiement.ModalitePaiement)
	assert.Empty(t, paiement.Banque)
	assert.Empty(t, paiement.Porteur)
	require.NotNil(t, paiement.Montant)
	assert.Equal(t, 12000.0, *paiement.Montant)
}

func TestUpsertPaiementNoModalityIsNoop(t *testing.T) {
	db := openTestDB(t)
	fact := models.Facturation{Nom: "Vanaa"}
	require.NoError(t, db.Create(&fact).Error)

	require.NoError(t, upsertPaiement(db, &fact, &FacturationInput{}))

	var count int64
	db.Model(&models.Paiement{}).Where("facturation_id = ?", fact.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestUpsertPaiementKeepsListeFlag(t *testing.T) {
	db := openTestDB(t)
	fact := models.Facturation{Nom: "Maono"}
	require.NoError(t, db.Create(&fact).Error)

	in := &FacturationInput{
		ModalitePaiement: models.ModaliteCheque,
		Banque:           models.BanqueSocredo,
		Porteur:          "Maono",
		Montant:          f64(5000),
	}
	require.NoError(t, upsertPaiement(db, &fact, in))

	require.NoError(t, db.Model(&models.Paiement{}).
		Where("facturation_id = ?", fact.ID).Update("liste", true).Error)

	// A later save of the invoice must not pull a listed cheque back into
	// the next remise.
	require.NoError(t, upsertPaiement(db, &fact, in))

	var paiement models.Paiement
	require.NoError(t, db.Where("facturation_id = ?", fact.ID).First(&paiement).Error)
	assert.True(t, paiement.Liste)
}

func TestFacturationInputValidation(t *testing.T) {
	base := FacturationInput{Nom: "Teiki", Regime: models.RegimeRNS}

	// Cheque without banque/porteur is rejected.
	in := base
	in.ModalitePaiement = models.ModaliteCheque
	err := middlewares.ValidateStruct(in)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	in.Banque = models.BanqueTahiti
	in.Porteur = "Teiki"
	assert.NoError(t, middlewares.ValidateStruct(in))

	// Other modalities need neither.
	in = base
	in.ModalitePaiement = models.ModaliteEspeces
	assert.NoError(t, middlewares.ValidateStruct(in))

	// Enumerated fields reject unknown values.
	in = base
	in.Regime = "Mutuelle"
	require.ErrorAs(t, middlewares.ValidateStruct(in), &verrs)
}

func TestFacturationFromInputRecomputesNumero(t *testing.T) {
	db := openTestDB(t)
	code := models.Code{CodeActe: "QZFA008"}
	require.NoError(t, db.Create(&code).Error)

	now := time.Date(2025, 4, 24, 9, 5, 0, 0, time.Local)
	var fact models.Facturation
	in := FacturationInput{Nom: "Tehani", CodeActe: code.CodeActe, DateActe: "2025-04-24"}
	facturationFromInput(&fact, &in, &code, now)
	assert.Equal(t, "FQ/2025/04/24/09:05", fact.NumeroFacture)
	require.NotNil(t, fact.DateActe)
	assert.Equal(t, "2025-04-24", fact.DateActe.Format("2006-01-02"))

	// The code turning parcours-de-soins blanks the number on the next save.
	code.ParcoursSoin = true
	facturationFromInput(&fact, &in, &code, now.Add(time.Hour))
	assert.Equal(t, "", fact.NumeroFacture)

	// Dropping the code clears the reference.
	in.CodeActe = ""
	facturationFromInput(&fact, &in, nil, now)
	assert.Nil(t, fact.CodeActeID)
}

func TestFacturationPatchUpdates(t *testing.T) {
	patch := FacturationPatch{
		Regime:   strPtr("  RNS "),
		RegimeTP: func() *bool { v := true; return &v }(),
	}
	utils.NormalizePtrDTO(&patch)
	updates := utils.UpdatesFromPtrDTO(&patch, nil)

	assert.Len(t, updates, 2)
	assert.Equal(t, "RNS", updates["regime"])
	assert.Equal(t, true, updates["regime_tp"])
	_, present := updates["statut_dossier"]
	assert.False(t, present)
}
