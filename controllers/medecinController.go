package controllers

import (
	"facturation-backend/database"
	"facturation-backend/middlewares"
	"facturation-backend/models"
	"facturation-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type MedecinInput struct {
	NomMedecin  string `json:"nom_medecin" validate:"required"`
	NomClinique string `json:"nom_clinique"`
	CodeM       string `json:"code_m" validate:"required"`
}

func CreateMedecin(c *fiber.Ctx) error {
	var in MedecinInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	medecin := models.Medecin{
		NomMedecin:  in.NomMedecin,
		NomClinique: in.NomClinique,
		CodeM:       in.CodeM,
	}
	if err := database.FromCtx(c).Create(&medecin).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create medecin",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(medecin)
}

func GetMedecins(c *fiber.Ctx) error {
	var medecins []models.Medecin
	if err := database.FromCtx(c).Order("nom_medecin").Find(&medecins).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"medecins": medecins,
		"message":  "success",
	})
}

func UpdateMedecin(c *fiber.Ctx) error {
	var in MedecinInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	tx := database.FromCtx(c)
	var medecin models.Medecin
	if err := tx.First(&medecin, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.ErrNotFound
		}
		return err
	}

	medecin.NomMedecin = in.NomMedecin
	medecin.NomClinique = in.NomClinique
	medecin.CodeM = in.CodeM
	if err := tx.Save(&medecin).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not update medecin",
			"error":   err.Error(),
		})
	}
	return c.JSON(medecin)
}
