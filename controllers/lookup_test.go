package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"facturation-backend/database"
	"facturation-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lookupApp mounts the lookup handlers on a bare app, bypassing the auth
// and transaction middlewares; FromCtx falls back to the shared handle.
func lookupApp(t *testing.T) *fiber.App {
	t.Helper()
	database.DB = openTestDB(t)
	app := fiber.New()
	app.Get("/lookup/dn", CheckDN)
	app.Get("/lookup/acte", CheckActe)
	app.Post("/facturation/:id/numero", GenerateNumero)
	return app
}

func testJSON(t *testing.T, app *fiber.App, method, url string) map[string]any {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, url, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestCheckDN(t *testing.T) {
	app := lookupApp(t)

	require.NoError(t, database.DB.Create(&models.Facturation{
		Nom: "TERIIPAIA", Prenom: "Moana", DN: "1234567", DateNaissance: datePtr(1980, 6, 15),
	}).Error)
	require.NoError(t, database.DB.Create(&models.Facturation{
		Nom: "TERIIPAIA-SMITH", Prenom: "Moana", DN: "1234567",
	}).Error)

	out := testJSON(t, app, "GET", "/lookup/dn?dn=1234567")
	require.Equal(t, true, out["exists"])
	patient := out["patient"].(map[string]any)
	// The most recent invoice wins the prefill.
	assert.Equal(t, "TERIIPAIA-SMITH", patient["nom"])
	assert.Equal(t, "Moana", patient["prenom"])
	assert.Equal(t, "1234567", patient["dn"])

	out = testJSON(t, app, "GET", "/lookup/dn?dn=0000000")
	assert.Equal(t, false, out["exists"])

	out = testJSON(t, app, "GET", "/lookup/dn")
	assert.Equal(t, false, out["exists"])
}

func TestCheckActe(t *testing.T) {
	app := lookupApp(t)

	require.NoError(t, database.DB.Create(&models.Code{
		CodeActe:        "QZFA036",
		CodeActeNormal2: "QZFA037",
		TotalActe:       3499.6,
		TotalActe1:      2000.4,
		TotalActe2:      1499.2,
		TiersPayant:     2449.7,
		TotalPaye:       1050,
	}).Error)

	out := testJSON(t, app, "GET", "/lookup/acte?code=QZFA036")
	require.Equal(t, true, out["exists"])
	data := out["data"].(map[string]any)
	// Amounts come back as integer-rounded strings, form-ready.
	assert.Equal(t, "3500", data["total_acte"])
	assert.Equal(t, "2000", data["total_acte_1"])
	assert.Equal(t, "1499", data["total_acte_2"])
	assert.Equal(t, "2450", data["tiers_payant"])
	assert.Equal(t, "1050", data["total_paye"])
	assert.Equal(t, "QZFA037", data["code_acte_normal_2"])

	out = testJSON(t, app, "GET", "/lookup/acte?code=INCONNU")
	assert.Equal(t, false, out["exists"])
}

func TestGenerateNumero(t *testing.T) {
	app := lookupApp(t)
	db := database.DB

	require.NoError(t, db.Create(&models.Code{CodeActe: "QZFA008"}).Error)
	require.NoError(t, db.Create(&models.Code{CodeActe: "CS01", ParcoursSoin: true}).Error)

	sansNumero := models.Facturation{Nom: "A", CodeActeID: strPtr("QZFA008")}
	parcours := models.Facturation{Nom: "B", CodeActeID: strPtr("CS01")}
	dejaNumerote := models.Facturation{Nom: "C", NumeroFacture: "FQ/2024/01/02/10:30"}
	for _, f := range []*models.Facturation{&sansNumero, &parcours, &dejaNumerote} {
		require.NoError(t, db.Create(f).Error)
	}

	out := testJSON(t, app, "POST", fmt.Sprintf("/facturation/%d/numero", sansNumero.ID))
	assert.Regexp(t, `^FQ/\d{4}/\d{2}/\d{2}/\d{2}:\d{2}$`, out["numero_facture"])

	// Parcours de soins never gets a number on demand.
	out = testJSON(t, app, "POST", fmt.Sprintf("/facturation/%d/numero", parcours.ID))
	assert.Equal(t, "", out["numero_facture"])

	// An existing number is kept verbatim.
	out = testJSON(t, app, "POST", fmt.Sprintf("/facturation/%d/numero", dejaNumerote.ID))
	assert.Equal(t, "FQ/2024/01/02/10:30", out["numero_facture"])
}
