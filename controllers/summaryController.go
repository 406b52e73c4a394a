package controllers

import (
	"time"

	"facturation-backend/database"
	"facturation-backend/models"
	"facturation-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SummaryRow is one pivot line: a group value with its count and sums.
type SummaryRow struct {
	Label     string  `json:"label"`
	Count     int     `json:"count"`
	TotalActe float64 `json:"total_acte"`
	TotalPaye float64 `json:"total_paye"`
}

// SummaryTotals is the grand-total line of one pivot. It is always the sum
// of the pivot's own rows, never recomputed from the ungrouped set, so the
// two can never disagree.
type SummaryTotals struct {
	Count     int     `json:"count"`
	TotalActe float64 `json:"total_acte"`
	TotalPaye float64 `json:"total_paye"`
}

func totalsOf(rows []SummaryRow) SummaryTotals {
	var t SummaryTotals
	for _, r := range rows {
		t.Count += r.Count
		t.TotalActe += r.TotalActe
		t.TotalPaye += r.TotalPaye
	}
	return t
}

// periodRange resolves a period keyword to a date_facture window.
// ok is false for the unfiltered ('', unknown) case.
func periodRange(period string, today time.Time) (start, end time.Time, ok bool) {
	switch period {
	case "today":
		return today, today, true
	case "week":
		start = utils.StartOfWeek(today)
		return start, start.AddDate(0, 0, 6), true
	case "month":
		start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.Local)
		return start, start.AddDate(0, 1, -1), true
	case "year":
		start = time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.Local)
		return start, time.Date(today.Year(), 12, 31, 0, 0, 0, 0, time.Local), true
	}
	return time.Time{}, time.Time{}, false
}

func summaryBase(tx *gorm.DB, period string, today time.Time) *gorm.DB {
	qs := tx.Model(&models.Facturation{})
	if start, end, ok := periodRange(period, today); ok {
		qs = qs.Where("facturations.date_facture >= ? AND facturations.date_facture <= ?", start, end)
	}
	return qs
}

const summarySums = "COUNT(*) AS count, COALESCE(SUM(facturations.total_acte),0) AS total_acte, COALESCE(SUM(facturations.total_paye),0) AS total_paye"

func pivotRegime(tx *gorm.DB, period string, today time.Time) ([]SummaryRow, error) {
	var rows []SummaryRow
	err := summaryBase(tx, period, today).
		Select("facturations.regime AS label, " + summarySums).
		Group("facturations.regime").
		Order("facturations.regime").
		Scan(&rows).Error
	return rows, err
}

func pivotModalite(tx *gorm.DB, period string, today time.Time) ([]SummaryRow, error) {
	var rows []SummaryRow
	err := summaryBase(tx, period, today).
		Joins("LEFT JOIN paiements ON paiements.facturation_id = facturations.id").
		Select("COALESCE(paiements.modalite_paiement, '') AS label, " + summarySums).
		Group("paiements.modalite_paiement").
		Order("paiements.modalite_paiement").
		Scan(&rows).Error
	return rows, err
}

func pivotCodeReel(tx *gorm.DB, period string, today time.Time) ([]SummaryRow, error) {
	var rows []SummaryRow
	err := summaryBase(tx, period, today).
		Joins("LEFT JOIN codes ON codes.code_acte = facturations.code_acte_id").
		Select("COALESCE(codes.code_reel, '') AS label, " + summarySums).
		Group("codes.code_reel").
		Order("codes.code_reel").
		Scan(&rows).Error
	return rows, err
}

// GetSummary computes the accounting pivots: one row set per enabled
// grouping (regime, modalité de paiement, code réel), each with its own
// grand total. Groupings combine side by side, never as a cross product.
func GetSummary(c *fiber.Ctx) error {
	tx := database.FromCtx(c)
	period := c.Query("period")
	today := utils.Today()

	out := fiber.Map{"period": period}

	if c.Query("group_regime") != "" {
		rows, err := pivotRegime(tx, period, today)
		if err != nil {
			return err
		}
		out["pivot_regime"] = rows
		out["totals_regime"] = totalsOf(rows)
	}
	if c.Query("group_modalite") != "" {
		rows, err := pivotModalite(tx, period, today)
		if err != nil {
			return err
		}
		out["pivot_modalite"] = rows
		out["totals_modalite"] = totalsOf(rows)
	}
	if c.Query("group_code_reel") != "" {
		rows, err := pivotCodeReel(tx, period, today)
		if err != nil {
			return err
		}
		out["pivot_code_reel"] = rows
		out["totals_code_reel"] = totalsOf(rows)
	}

	return c.JSON(out)
}
