package models

import "time"

// Régime values
const (
	RegimeSecuriteSociale = "Sécurité Sociale"
	RegimeRNS             = "RNS"
	RegimeSalarie         = "Salarié"
	RegimeRST             = "RST"
)

// Lieu de l'acte
const (
	LieuCabinet  = "Cabinet"
	LieuClinique = "Clinique"
)

// Statut du dossier
const (
	StatutRAS    = "RAS"
	StatutDNO    = "DNO"
	StatutDNOLM  = "DNOLM"
	StatutImpaye = "Impayé"
	StatutRejet  = "Rejet"
)

// Facturation is one billing event for one patient act.
type Facturation struct {
	ID uint `json:"id" gorm:"primaryKey"`

	// Patient
	Nom           string     `json:"nom" gorm:"not null"`
	Prenom        string     `json:"prenom"`
	DN            string     `json:"dn" gorm:"column:dn;index"`
	DateNaissance *time.Time `json:"date_naissance" gorm:"type:date"`

	// Dates
	DateActe    *time.Time `json:"date_acte" gorm:"type:date;index"`
	DateFacture *time.Time `json:"date_facture" gorm:"type:date;index"`

	// Acte
	CodeActeID *string `json:"code_acte" gorm:"size:20"`
	CodeActe   *Code   `json:"code_acte_detail" gorm:"foreignKey:CodeActeID;references:CodeActe"`
	LieuActe   string  `json:"lieu_acte"`

	// Amounts (copied from the code at entry time, editable)
	TotalActe   float64 `json:"total_acte" gorm:"type:numeric(12,2)"`
	TiersPayant float64 `json:"tiers_payant" gorm:"type:numeric(12,2)"`
	TotalPaye   float64 `json:"total_paye" gorm:"type:numeric(12,2)"`

	// Empty or "FQ/YYYY/MM/DD/HH:MM", recomputed at save time.
	NumeroFacture string `json:"numero_facture"`

	// Set once by the bordereau batch, then immutable.
	NumeroBordereau string     `json:"numero_bordereau" gorm:"index"`
	DateBordereau   *time.Time `json:"date_bordereau" gorm:"type:date"`

	Regime        string `json:"regime"`
	StatutDossier string `json:"statut_dossier"`
	RegimeLM      bool   `json:"regime_lm"`
	RegimeTP      bool   `json:"regime_tp"`

	Paiement *Paiement `json:"paiement" gorm:"foreignKey:FacturationID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
