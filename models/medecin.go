package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Medecin struct {
	Id          string `json:"id" gorm:"primaryKey"`
	NomMedecin  string `json:"nom_medecin" gorm:"not null"`
	NomClinique string `json:"nom_clinique"`
	CodeM       string `json:"code_m" gorm:"not null"`
}

func (medecin *Medecin) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	medecin.Id = uuid.NewString()
	return
}
