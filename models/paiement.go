package models

import "time"

// Modalités de paiement
const (
	ModaliteEspeces  = "Espèces"
	ModaliteCheque   = "Chèque"
	ModaliteCarte    = "Carte"
	ModaliteVirement = "Virement"
)

// Banques (remises de chèques)
const (
	BanqueTahiti    = "Banque de Tahiti"
	BanqueSocredo   = "Banque Socredo"
	BanquePolynesie = "Banque de Polynésie"
)

// Paiement is the 0..1 payment record attached to a facturation. It is
// created lazily the first time a modality is chosen on the invoice and
// updated on every save after that.
type Paiement struct {
	ID            uint `json:"id" gorm:"primaryKey"`
	FacturationID uint `json:"facturation_id" gorm:"uniqueIndex;not null"`

	ModalitePaiement string `json:"modalite_paiement"`

	// Cheque-only fields, blanked for other modalities
	Banque  string `json:"banque"`
	Porteur string `json:"porteur"`

	Montant *float64  `json:"montant" gorm:"type:numeric(12,2)"`
	Date    time.Time `json:"date" gorm:"type:date;index"`

	// false -> true only through the remise-de-chèques batch, never back.
	Liste bool `json:"liste"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
