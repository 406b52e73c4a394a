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
)

// chequesEnAttente selects the unlisted cheques up to the cutoff date.
// A null montant counts as zero in the total.
func chequesEnAttente(tx *gorm.DB, cutoff time.Time) ([]models.Paiement, float64, error) {
	var cheques []models.Paiement
	if err := tx.
		Where("modalite_paiement = ? AND date <= ? AND liste = ?", models.ModaliteCheque, cutoff, false).
		Order("date").
		Find(&cheques).Error; err != nil {
		return nil, 0, err
	}
	var total float64
	for _, ch := range cheques {
		if ch.Montant != nil {
			total += *ch.Montant
		}
	}
	return cheques, total, nil
}

// listerCheques is the deposit-listing batch: it snapshots the selected
// cheques first, then flips their liste flag, inside the caller's
// transaction. The snapshot is taken before the update because the update
// removes the rows from the selection predicate. Returns nil when nothing
// matches; nothing is mutated in that case.
func listerCheques(tx *gorm.DB, cutoff time.Time, now time.Time) (*models.RemiseCheque, []models.Paiement, error) {
	var cheques []models.Paiement
	if err := forUpdate(tx).
		Where("modalite_paiement = ? AND date <= ? AND liste = ?", models.ModaliteCheque, cutoff, false).
		Order("date").
		Find(&cheques).Error; err != nil {
		return nil, nil, err
	}
	if len(cheques) == 0 {
		return nil, nil, nil
	}

	ids := make([]uint, 0, len(cheques))
	snapshot := make([]models.ChequeSnapshot, 0, len(cheques))
	var total float64
	for _, ch := range cheques {
		ids = append(ids, ch.ID)
		montant := 0.0
		if ch.Montant != nil {
			montant = *ch.Montant
		}
		snapshot = append(snapshot, models.ChequeSnapshot{
			PaiementID: ch.ID,
			Date:       ch.Date.Format("02/01/2006"),
			Banque:     ch.Banque,
			Porteur:    ch.Porteur,
			Montant:    montant,
		})
		total += montant
	}

	if err := tx.Model(&models.Paiement{}).Where("id IN ?", ids).
		Update("liste", true).Error; err != nil {
		return nil, nil, err
	}

	blob, err := json.Marshal(snapshot)
	if err != nil {
		return nil, nil, err
	}
	run := &models.RemiseCheque{
		DateRemise:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local),
		Count:        len(cheques),
		TotalMontant: total,
		Snapshot:     blob,
	}
	if err := tx.Create(run).Error; err != nil {
		return nil, nil, err
	}
	return run, cheques, nil
}

// GetCheques previews the cheques a remise would pick up for the cutoff
// date (query param `date`, default today, lenient parsing). Read-only.
func GetCheques(c *fiber.Ctx) error {
	cutoff := utils.ParseDateDefault(c.Query("date"), utils.Today())
	cheques, total, err := chequesEnAttente(database.FromCtx(c), cutoff)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"cheques":       cheques,
		"count":         len(cheques),
		"total_montant": total,
		"filter_date":   cutoff.Format("02/01/2006"),
	})
}

// PrintRemiseCheques runs the listing batch and responds with the deposit
// slip PDF. An empty selection reports the empty condition without mutating
// anything or producing a document.
func PrintRemiseCheques(c *fiber.Ctx) error {
	cutoff := utils.ParseDateDefault(c.Query("date"), utils.Today())

	run, _, err := listerCheques(database.FromCtx(c), cutoff, time.Now())
	if err != nil {
		return err
	}
	if run == nil {
		return c.JSON(fiber.Map{
			"count":   0,
			"message": "Aucun chèque à remettre.",
		})
	}

	var snapshot []models.ChequeSnapshot
	if err := json.Unmarshal(run.Snapshot, &snapshot); err != nil {
		return err
	}
	rows := make([]documents.ChequeRow, 0, len(snapshot))
	for _, s := range snapshot {
		rows = append(rows, documents.ChequeRow{
			Date:    s.Date,
			Banque:  s.Banque,
			Porteur: s.Porteur,
			Montant: s.Montant,
		})
	}

	var buf bytes.Buffer
	if err := documents.BuildRemiseCheques(&buf, entete, cutoff.Format("02/01/2006"), rows, run.TotalMontant); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="remise_cheque_%s.pdf"`, cutoff.Format("20060102")))
	return c.Send(buf.Bytes())
}

// ListRemises returns the listing-run audit records, newest first.
func ListRemises(c *fiber.Ctx) error {
	var runs []models.RemiseCheque
	if err := database.FromCtx(c).Order("id DESC").Find(&runs).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"remises": runs})
}
