package controllers

import (
	"time"

	"facturation-backend/database"
	"facturation-backend/models"
	"facturation-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CheckDN returns the identity of the most recently billed patient with the
// given DN so the entry form can prefill. A miss is {"exists": false},
// never an error.
func CheckDN(c *fiber.Ctx) error {
	dn := c.Query("dn")
	if dn == "" {
		return c.JSON(fiber.Map{"exists": false})
	}

	var facture models.Facturation
	err := database.FromCtx(c).Where("dn = ?", dn).Order("id DESC").First(&facture).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(fiber.Map{"exists": false})
		}
		return err
	}

	dateNaissance := ""
	if facture.DateNaissance != nil {
		dateNaissance = facture.DateNaissance.Format("2006-01-02")
	}
	return c.JSON(fiber.Map{
		"exists": true,
		"patient": fiber.Map{
			"dn":             facture.DN,
			"nom":            facture.Nom,
			"prenom":         facture.Prenom,
			"date_naissance": dateNaissance,
		},
	})
}

// CheckActe returns the amounts of one billing code as integer-rounded
// strings, ready for the entry form. A miss is {"exists": false}.
func CheckActe(c *fiber.Ctx) error {
	codeActe := c.Query("code")
	if codeActe == "" {
		return c.JSON(fiber.Map{"exists": false})
	}

	var code models.Code
	err := database.FromCtx(c).First(&code, "code_acte = ?", codeActe).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(fiber.Map{"exists": false})
		}
		return err
	}

	return c.JSON(fiber.Map{
		"exists": true,
		"data": fiber.Map{
			"total_acte":         utils.MontantEntier(code.TotalActe),
			"total_acte_1":       utils.MontantEntier(code.TotalActe1),
			"total_acte_2":       utils.MontantEntier(code.TotalActe2),
			"tiers_payant":       utils.MontantEntier(code.TiersPayant),
			"total_paye":         utils.MontantEntier(code.TotalPaye),
			"code_acte_normal_2": code.CodeActeNormal2,
		},
	})
}

// GenerateNumero assigns a numero_facture on demand: only when the invoice
// has none yet and its code (if any) is outside the parcours de soins.
// Always answers with the current number, generated or not.
func GenerateNumero(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid facturation id")
	}

	tx := database.FromCtx(c)
	var facture models.Facturation
	if err := tx.Preload("CodeActe").First(&facture, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.ErrNotFound
		}
		return err
	}

	if facture.NumeroFacture == "" && !(facture.CodeActe != nil && facture.CodeActe.ParcoursSoin) {
		facture.NumeroFacture = utils.NumeroFacture(time.Now())
		if err := tx.Model(&facture).Update("numero_facture", facture.NumeroFacture).Error; err != nil {
			return err
		}
	}

	return c.JSON(fiber.Map{"numero_facture": facture.NumeroFacture})
}
