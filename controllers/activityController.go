package controllers

import (
	"time"

	"facturation-backend/database"
	"facturation-backend/models"
	"facturation-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// activityFilter applies the activity-screen filters on date_facture:
// a single date, a start/end range, or a year. Unparseable input falls
// back to the unfiltered query, never to an error.
func activityFilter(tx *gorm.DB, dateStr, startStr, endStr, yearStr string) *gorm.DB {
	if dateStr != "" {
		if d, ok := utils.ParseDate(dateStr); ok {
			return tx.Where("date_facture = ?", d)
		}
		return tx
	}
	if startStr != "" && endStr != "" {
		start, okStart := utils.ParseDate(startStr)
		end, okEnd := utils.ParseDate(endStr)
		if okStart && okEnd {
			return tx.Where("date_facture >= ? AND date_facture <= ?", start, end)
		}
		return tx
	}
	if yearStr != "" {
		if year := utils.ParseIntDefault(yearStr, 0); year > 0 {
			from := time.Date(year, 1, 1, 0, 0, 0, 0, time.Local)
			return tx.Where("date_facture >= ? AND date_facture < ?", from, from.AddDate(1, 0, 0))
		}
	}
	return tx
}

// GetActivity returns the filtered invoice rows ordered by date_facture
// plus the three column sums the activity screen displays.
func GetActivity(c *fiber.Ctx) error {
	tx := database.FromCtx(c)

	filtered := activityFilter(
		tx.Model(&models.Facturation{}),
		c.Query("date"), c.Query("start_date"), c.Query("end_date"), c.Query("year"),
	)

	var factures []models.Facturation
	if err := filtered.Session(&gorm.Session{}).Preload("Paiement").
		Order("date_facture").Find(&factures).Error; err != nil {
		return err
	}

	var sums struct {
		SumTotalActe   float64
		SumTiersPayant float64
		SumTotalPaye   float64
	}
	if err := filtered.Session(&gorm.Session{}).
		Select("COALESCE(SUM(total_acte),0) AS sum_total_acte, COALESCE(SUM(tiers_payant),0) AS sum_tiers_payant, COALESCE(SUM(total_paye),0) AS sum_total_paye").
		Scan(&sums).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"factures":         factures,
		"sum_total_acte":   sums.SumTotalActe,
		"sum_tiers_payant": sums.SumTiersPayant,
		"sum_total_paye":   sums.SumTotalPaye,
	})
}
