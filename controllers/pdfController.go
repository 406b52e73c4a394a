package controllers

import (
	"bytes"
	"fmt"
	"time"

	"facturation-backend/database"
	"facturation-backend/documents"
	"facturation-backend/models"
	"facturation-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var specialCodes = documents.SpecialCodesFromEnv()

// PrintFacture renders the CPS facture sheet for one invoice. Printing
// assigns the numero on the fly when the numbering rule allows and none
// exists yet, mirroring the desk workflow where the sheet is printed right
// after entry.
func PrintFacture(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid facturation id")
	}

	tx := database.FromCtx(c)
	var facture models.Facturation
	if err := tx.Preload("CodeActe.Medecin").First(&facture, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.ErrNotFound
		}
		return err
	}

	code := facture.CodeActe
	if code != nil && !code.ParcoursSoin && facture.NumeroFacture == "" {
		facture.NumeroFacture = utils.NumeroFacture(time.Now())
		if err := tx.Model(&facture).Update("numero_facture", facture.NumeroFacture).Error; err != nil {
			return err
		}
	}

	doc := documents.Facture{
		Nom:         facture.Nom,
		Prenom:      facture.Prenom,
		DN:          facture.DN,
		TotalActe:   facture.TotalActe,
		TotalPaye:   facture.TotalPaye,
		TiersPayant: facture.TiersPayant,
		RegimeLM:    facture.RegimeLM,
	}
	if facture.DateNaissance != nil {
		doc.DateNaissance = facture.DateNaissance.Format("02/01/2006")
	}
	if facture.DateFacture != nil {
		doc.DateFacture = facture.DateFacture.Format("02/01/2006")
	}
	if code != nil {
		doc.CodeActeNormal = code.CodeActeNormal
		doc.CodeActeNormal2 = code.CodeActeNormal2
		doc.Variable1 = code.Variable1
		doc.Variable2 = code.Variable2
		doc.Modificateur = code.Modificateur
		doc.ParcoursSoin = code.ParcoursSoin
		doc.TotalActe1 = code.TotalActe1
		doc.TotalActe2 = code.TotalActe2
		if code.Medecin != nil {
			doc.NomMedecin = code.Medecin.NomMedecin
			doc.NomClinique = code.Medecin.NomClinique
			doc.CodeM = code.Medecin.CodeM
		}
	}

	var buf bytes.Buffer
	if err := documents.BuildFacture(&buf, doc, specialCodes); err != nil {
		return err
	}

	name := facture.NumeroFacture
	if name == "" {
		name = fmt.Sprintf("%d", facture.ID)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="facture_%s.pdf"`, name))
	return c.Send(buf.Bytes())
}
