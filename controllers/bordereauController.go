package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"facturation-backend/database"
	"facturation-backend/documents"
	"facturation-backend/models"
	"facturation-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var entete = documents.EnteteFromEnv()

// forUpdate adds a row lock on dialects that support it. The sqlite test
// databases run without; on Postgres the lock keeps two concurrent batch
// runs from double-counting the same rows.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// createBordereau stamps every unbatched tiers-payant invoice with one new
// bordereau number and today's date, batch-wide. Returns nil when nothing
// is eligible; nothing is mutated in that case. Select, snapshot and update
// run inside the caller's transaction.
func createBordereau(tx *gorm.DB, now time.Time) (*models.BordereauRun, error) {
	var factures []models.Facturation
	if err := forUpdate(tx).
		Where("tiers_payant > 0 AND (numero_bordereau IS NULL OR numero_bordereau = '')").
		Order("id").
		Find(&factures).Error; err != nil {
		return nil, err
	}
	if len(factures) == 0 {
		return nil, nil
	}

	numero := utils.NumeroBordereau(now)
	jour := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	ids := make([]uint, 0, len(factures))
	snapshot := make([]models.BordereauSnapshot, 0, len(factures))
	var total float64
	for _, f := range factures {
		ids = append(ids, f.ID)
		snapshot = append(snapshot, models.BordereauSnapshot{
			FacturationID: f.ID,
			TiersPayant:   f.TiersPayant,
		})
		total += f.TiersPayant
	}

	if err := tx.Model(&models.Facturation{}).Where("id IN ?", ids).
		Updates(map[string]any{
			"numero_bordereau": numero,
			"date_bordereau":   jour,
		}).Error; err != nil {
		return nil, err
	}

	blob, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}
	run := &models.BordereauRun{
		NumeroBordereau:  numero,
		DateBordereau:    jour,
		Count:            len(factures),
		TotalTiersPayant: total,
		Snapshot:         blob,
	}
	if err := tx.Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

// CreateBordereau runs the batch and reports count and total. Zero eligible
// invoices is an empty result, not an error.
func CreateBordereau(c *fiber.Ctx) error {
	run, err := createBordereau(database.FromCtx(c), time.Now())
	if err != nil {
		return err
	}
	if run == nil {
		return c.JSON(fiber.Map{
			"count":   0,
			"message": "Aucune facture à traiter pour le bordereau.",
		})
	}
	return c.JSON(fiber.Map{
		"num_bordereau":      run.NumeroBordereau,
		"date_bordereau":     run.DateBordereau.Format("02/01/2006"),
		"count":              run.Count,
		"total_tiers_payant": run.TotalTiersPayant,
	})
}

func bordereauFactures(tx *gorm.DB, numero string) ([]models.Facturation, float64, error) {
	var factures []models.Facturation
	if err := tx.Where("numero_bordereau = ?", numero).Order("id").Find(&factures).Error; err != nil {
		return nil, 0, err
	}
	var total float64
	for _, f := range factures {
		total += f.TiersPayant
	}
	return factures, total, nil
}

// GetBordereau lists the invoices of one bordereau with its totals.
func GetBordereau(c *fiber.Ctx) error {
	numero := c.Params("numero")
	factures, total, err := bordereauFactures(database.FromCtx(c), numero)
	if err != nil {
		return err
	}
	if len(factures) == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Aucune facture trouvée pour ce bordereau.")
	}
	return c.JSON(fiber.Map{
		"num_bordereau":      numero,
		"count":              len(factures),
		"total_tiers_payant": total,
		"factures":           factures,
	})
}

// ListBordereaux returns the batch-run audit records, newest first.
func ListBordereaux(c *fiber.Ctx) error {
	var runs []models.BordereauRun
	if err := database.FromCtx(c).Order("id DESC").Find(&runs).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"bordereaux": runs})
}

// PrintBordereau renders the deposit slip PDF for one bordereau number.
func PrintBordereau(c *fiber.Ctx) error {
	numero := c.Params("numero")
	factures, total, err := bordereauFactures(database.FromCtx(c), numero)
	if err != nil {
		return err
	}
	if len(factures) == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Aucune facture trouvée pour ce bordereau.")
	}

	jour := utils.Today()
	if factures[0].DateBordereau != nil {
		jour = *factures[0].DateBordereau
	}

	rows := make([]documents.BordereauRow, 0, len(factures))
	for _, f := range factures {
		dateFacture := ""
		if f.DateFacture != nil {
			dateFacture = f.DateFacture.Format("02/01/2006")
		}
		rows = append(rows, documents.BordereauRow{
			DateFacture:   dateFacture,
			Nom:           f.Nom,
			Prenom:        f.Prenom,
			NumeroFacture: f.NumeroFacture,
			TiersPayant:   f.TiersPayant,
		})
	}

	var buf bytes.Buffer
	if err := documents.BuildBordereau(&buf, entete, numero, jour.Format("02/01/2006"), rows, total); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.pdf"`, numero))
	return c.Send(buf.Bytes())
}
