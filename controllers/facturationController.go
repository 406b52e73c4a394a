package controllers

import (
	"time"

	"facturation-backend/database"
	"facturation-backend/middlewares"
	"facturation-backend/models"
	"facturation-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FacturationInput is the full entry form. The paiement fields ride along
// with the invoice exactly as on the paper-era form; a cheque without
// banque and porteur is rejected before anything is saved.
type FacturationInput struct {
	Nom           string `json:"nom" validate:"required"`
	Prenom        string `json:"prenom"`
	DN            string `json:"dn"`
	DateNaissance string `json:"date_naissance"`

	DateActe    string `json:"date_acte"`
	DateFacture string `json:"date_facture"`

	CodeActe string `json:"code_acte"`
	LieuActe string `json:"lieu_acte" validate:"omitempty,oneof=Cabinet Clinique"`

	TotalActe   float64 `json:"total_acte"`
	TiersPayant float64 `json:"tiers_payant"`
	TotalPaye   float64 `json:"total_paye"`

	NumeroFacture string `json:"numero_facture"`

	Regime        string `json:"regime" validate:"omitempty,oneof='Sécurité Sociale' RNS Salarié RST"`
	StatutDossier string `json:"statut_dossier" validate:"omitempty,oneof=RAS DNO DNOLM Impayé Rejet"`
	RegimeLM      bool   `json:"regime_lm"`
	RegimeTP      bool   `json:"regime_tp"`

	ModalitePaiement string   `json:"modalite_paiement" validate:"omitempty,oneof=Espèces Chèque Carte Virement"`
	Banque           string   `json:"banque" validate:"required_if=ModalitePaiement Chèque"`
	Porteur          string   `json:"porteur" validate:"required_if=ModalitePaiement Chèque"`
	Montant          *float64 `json:"montant"`
	DatePaiement     string   `json:"date_paiement"`
}

// numeroFacture applies the save-time numbering rule: an explicit number is
// kept verbatim; otherwise a number is generated only when the linked code
// exists and is outside the parcours de soins. Recomputed on every save, so
// a code that later becomes parcours-de-soins blanks the number.
func numeroFacture(explicit string, code *models.Code, now time.Time) string {
	if explicit != "" {
		return explicit
	}
	if code != nil && !code.ParcoursSoin {
		return utils.NumeroFacture(now)
	}
	return ""
}

// loadCode resolves the input's code reference; empty input means no code.
func loadCode(tx *gorm.DB, codeActe string) (*models.Code, error) {
	if codeActe == "" {
		return nil, nil
	}
	var code models.Code
	if err := tx.First(&code, "code_acte = ?", codeActe).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusBadRequest, "code acte inconnu")
		}
		return nil, err
	}
	return &code, nil
}

// upsertPaiement is the get-or-create on the dependent payment record: the
// facturation triggers its creation the first time a modality is chosen and
// overwrites it on every later save. Cheque fields are blanked for the
// other modalities.
func upsertPaiement(tx *gorm.DB, facturation *models.Facturation, in *FacturationInput) error {
	if in.ModalitePaiement == "" {
		return nil
	}

	var paiement models.Paiement
	err := tx.Where("facturation_id = ?", facturation.ID).First(&paiement).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	paiement.FacturationID = facturation.ID
	paiement.ModalitePaiement = in.ModalitePaiement
	if in.ModalitePaiement == models.ModaliteCheque {
		paiement.Banque = in.Banque
		paiement.Porteur = in.Porteur
	} else {
		paiement.Banque = ""
		paiement.Porteur = ""
	}
	if in.Montant != nil {
		paiement.Montant = in.Montant
	}
	if paiement.Date.IsZero() || in.DatePaiement != "" {
		paiement.Date = utils.ParseDateDefault(in.DatePaiement, utils.Today())
	}
	return tx.Save(&paiement).Error
}

func facturationFromInput(f *models.Facturation, in *FacturationInput, code *models.Code, now time.Time) {
	f.Nom = in.Nom
	f.Prenom = in.Prenom
	f.DN = in.DN
	if d, ok := utils.ParseDate(in.DateNaissance); ok {
		f.DateNaissance = &d
	}
	if d, ok := utils.ParseDate(in.DateActe); ok {
		f.DateActe = &d
	}
	if d, ok := utils.ParseDate(in.DateFacture); ok {
		f.DateFacture = &d
	}
	if code != nil {
		f.CodeActeID = &code.CodeActe
	} else {
		f.CodeActeID = nil
	}
	f.LieuActe = in.LieuActe
	f.TotalActe = in.TotalActe
	f.TiersPayant = in.TiersPayant
	f.TotalPaye = in.TotalPaye
	f.Regime = in.Regime
	f.StatutDossier = in.StatutDossier
	f.RegimeLM = in.RegimeLM
	f.RegimeTP = in.RegimeTP
	f.NumeroFacture = numeroFacture(in.NumeroFacture, code, now)
}

// FacturationPatch covers the administrative corrections done after the
// fact (dossier status, regime, lieu). It deliberately excludes the code,
// the amounts and the numero so a correction never re-runs the numbering
// rule or touches a stamped bordereau.
type FacturationPatch struct {
	Regime        *string `json:"regime" validate:"omitempty,oneof='Sécurité Sociale' RNS Salarié RST"`
	StatutDossier *string `json:"statut_dossier" validate:"omitempty,oneof=RAS DNO DNOLM Impayé Rejet"`
	LieuActe      *string `json:"lieu_acte" validate:"omitempty,oneof=Cabinet Clinique"`
	RegimeLM      *bool   `json:"regime_lm"`
	RegimeTP      *bool   `json:"regime_tp"`
}

func PatchFacturation(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid facturation id")
	}

	var patch FacturationPatch
	if err := middlewares.BindAndValidate(c, &patch); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&patch)

	updates := utils.UpdatesFromPtrDTO(&patch, nil)
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "empty patch")
	}

	tx := database.FromCtx(c)
	var facturation models.Facturation
	if err := tx.First(&facturation, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.ErrNotFound
		}
		return err
	}

	if err := tx.Model(&facturation).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not update facturation",
			"error":   err.Error(),
		})
	}
	tx.Preload("Paiement").Preload("CodeActe").First(&facturation, facturation.ID)
	return c.JSON(facturation)
}

func CreateFacturation(c *fiber.Ctx) error {
	var in FacturationInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	tx := database.FromCtx(c)
	code, err := loadCode(tx, in.CodeActe)
	if err != nil {
		return err
	}

	var facturation models.Facturation
	facturationFromInput(&facturation, &in, code, time.Now())

	if err := tx.Create(&facturation).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create facturation",
			"error":   err.Error(),
		})
	}
	if err := upsertPaiement(tx, &facturation, &in); err != nil {
		return err
	}

	tx.Preload("Paiement").Preload("CodeActe").First(&facturation, facturation.ID)
	return c.Status(fiber.StatusCreated).JSON(facturation)
}

func UpdateFacturation(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid facturation id")
	}

	var in FacturationInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	tx := database.FromCtx(c)

	var facturation models.Facturation
	if err := tx.First(&facturation, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.ErrNotFound
		}
		return err
	}

	code, err := loadCode(tx, in.CodeActe)
	if err != nil {
		return err
	}

	// The bordereau stamp is immutable: facturationFromInput never touches
	// numero_bordereau / date_bordereau.
	facturationFromInput(&facturation, &in, code, time.Now())

	if err := tx.Save(&facturation).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not update facturation",
			"error":   err.Error(),
		})
	}
	if err := upsertPaiement(tx, &facturation, &in); err != nil {
		return err
	}

	tx.Preload("Paiement").Preload("CodeActe").First(&facturation, facturation.ID)
	return c.JSON(facturation)
}

// GetFacturations lists invoices with the search filters of the entry
// screen: today / week (Monday–Sunday) / month, applied on date_acte.
// Unknown or absent filters fall back to the unfiltered list.
func GetFacturations(c *fiber.Ctx) error {
	tx := database.FromCtx(c).Model(&models.Facturation{})
	today := utils.Today()

	switch {
	case c.Query("today") != "":
		tx = tx.Where("date_acte = ?", today)
	case c.Query("week") != "":
		start := utils.StartOfWeek(today)
		tx = tx.Where("date_acte >= ? AND date_acte <= ?", start, start.AddDate(0, 0, 6))
	case c.Query("month") != "":
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.Local)
		tx = tx.Where("date_acte >= ? AND date_acte < ?", first, first.AddDate(0, 1, 0))
	}

	var facturations []models.Facturation
	if err := tx.Preload("Paiement").Preload("CodeActe").Order("id").Find(&facturations).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"facturations": facturations,
		"message":      "success",
	})
}

func GetFacturation(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid facturation id")
	}

	var facturation models.Facturation
	if err := database.FromCtx(c).Preload("Paiement").Preload("CodeActe.Medecin").
		First(&facturation, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.ErrNotFound
		}
		return err
	}
	return c.JSON(facturation)
}

func DeleteFacturation(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid facturation id")
	}

	tx := database.FromCtx(c)
	var facturation models.Facturation
	if err := tx.First(&facturation, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.ErrNotFound
		}
		return err
	}
	// The payment record follows its invoice.
	if err := tx.Where("facturation_id = ?", facturation.ID).Delete(&models.Paiement{}).Error; err != nil {
		return err
	}
	if err := tx.Delete(&facturation).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}
