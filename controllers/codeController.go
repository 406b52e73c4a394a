package controllers

import (
	"facturation-backend/database"
	"facturation-backend/middlewares"
	"facturation-backend/models"
	"facturation-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CodeInput struct {
	CodeActe        string `json:"code_acte" validate:"required"`
	CodeActeNormal  string `json:"code_acte_normal"`
	CodeActeNormal2 string `json:"code_acte_normal_2"`
	CodeReel        string `json:"code_reel"`
	Variable1       string `json:"variable_1"`
	Variable2       string `json:"variable_2"`
	Modificateur    string `json:"modificateur"`

	TotalActe   float64 `json:"total_acte" validate:"gte=0"`
	TotalActe1  float64 `json:"total_acte_1" validate:"gte=0"`
	TotalActe2  float64 `json:"total_acte_2" validate:"gte=0"`
	TiersPayant float64 `json:"tiers_payant" validate:"gte=0"`
	TotalPaye   float64 `json:"total_paye" validate:"gte=0"`

	ParcoursSoin  bool `json:"parcours_soin"`
	LongueMaladie bool `json:"longue_maladie"`

	MedecinID string `json:"medecin_id"`
}

func codeFromInput(in *CodeInput) models.Code {
	code := models.Code{
		CodeActe:        in.CodeActe,
		CodeActeNormal:  in.CodeActeNormal,
		CodeActeNormal2: in.CodeActeNormal2,
		CodeReel:        in.CodeReel,
		Variable1:       in.Variable1,
		Variable2:       in.Variable2,
		Modificateur:    in.Modificateur,
		TotalActe:       in.TotalActe,
		TotalActe1:      in.TotalActe1,
		TotalActe2:      in.TotalActe2,
		TiersPayant:     in.TiersPayant,
		TotalPaye:       in.TotalPaye,
		ParcoursSoin:    in.ParcoursSoin,
		LongueMaladie:   in.LongueMaladie,
	}
	if in.MedecinID != "" {
		code.MedecinID = &in.MedecinID
	}
	return code
}

// CreateCodes batch-creates billing codes (the nomenclature is loaded a
// sheet at a time).
func CreateCodes(c *fiber.Ctx) error {
	var inputs []CodeInput
	if err := c.BodyParser(&inputs); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	tx := database.FromCtx(c)
	var created []models.Code

	for _, in := range inputs {
		if err := middlewares.ValidateStruct(&in); err != nil {
			return err
		}
		utils.NormalizeDTO(&in)
		code := codeFromInput(&in)
		if err := tx.Create(&code).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Could not create code " + in.CodeActe,
				"error":   err.Error(),
			})
		}
		created = append(created, code)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func GetCodes(c *fiber.Ctx) error {
	var codes []models.Code
	if err := database.FromCtx(c).Preload("Medecin").Order("code_acte").Find(&codes).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"codes":   codes,
		"message": "success",
	})
}

// GetCodesMetadata returns the entry-form prefill map: amounts as
// integer-rounded strings keyed by code_acte.
func GetCodesMetadata(c *fiber.Ctx) error {
	var codes []models.Code
	if err := database.FromCtx(c).Order("code_acte").Find(&codes).Error; err != nil {
		return err
	}
	metadata := make(map[string]fiber.Map, len(codes))
	for _, code := range codes {
		metadata[code.CodeActe] = fiber.Map{
			"total_acte":         utils.MontantEntier(code.TotalActe),
			"total_acte_1":       utils.MontantEntier(code.TotalActe1),
			"total_acte_2":       utils.MontantEntier(code.TotalActe2),
			"tiers_payant":       utils.MontantEntier(code.TiersPayant),
			"total_paye":         utils.MontantEntier(code.TotalPaye),
			"code_acte_normal_2": code.CodeActeNormal2,
		}
	}
	return c.JSON(metadata)
}

func GetCode(c *fiber.Ctx) error {
	var code models.Code
	err := database.FromCtx(c).Preload("Medecin").First(&code, "code_acte = ?", c.Params("code")).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.ErrNotFound
		}
		return err
	}
	return c.JSON(code)
}

func UpdateCode(c *fiber.Ctx) error {
	var body CodeInput
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	body.CodeActe = c.Params("code")
	if err := middlewares.ValidateStruct(&body); err != nil {
		return err
	}
	utils.NormalizeDTO(&body)

	tx := database.FromCtx(c)
	var existing models.Code
	if err := tx.First(&existing, "code_acte = ?", body.CodeActe).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.ErrNotFound
		}
		return err
	}

	code := codeFromInput(&body)
	if err := tx.Model(&existing).Select("*").Omit("code_acte").Updates(&code).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not update code",
			"error":   err.Error(),
		})
	}
	return c.JSON(code)
}
