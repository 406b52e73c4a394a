package controllers

import (
	"fmt"
	"testing"
	"time"

	"facturation-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int

// openTestDB opens a fresh in-memory database per test. cache=shared keeps
// the database alive across the connections of gorm's pool.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDBSeq++
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Medecin{},
		&models.Code{},
		&models.Facturation{},
		&models.Paiement{},
		&models.BordereauRun{},
		&models.RemiseCheque{},
	))
	return db
}

// datePtr builds date values in UTC, matching what utils.ParseDate yields
// for request input, so sqlite's textual timestamp comparison lines up.
func datePtr(y int, m time.Month, d int) *time.Time {
	v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &v
}

func f64(v float64) *float64 { return &v }

func strPtr(s string) *string { return &s }

// seedCheque creates one invoice carrying one cheque payment.
func seedCheque(t *testing.T, db *gorm.DB, montant *float64, date time.Time, liste bool) models.Paiement {
	t.Helper()
	fact := models.Facturation{Nom: "Patient"}
	require.NoError(t, db.Create(&fact).Error)
	p := models.Paiement{
		FacturationID:    fact.ID,
		ModalitePaiement: models.ModaliteCheque,
		Banque:           models.BanqueSocredo,
		Porteur:          "Porteur",
		Montant:          montant,
		Date:             date,
		Liste:            liste,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}
