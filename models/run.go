package models

import (
	"time"

	"gorm.io/datatypes"
)

// BordereauRun is the audit record of one bordereau batch: which invoices
// were stamped, with which number, and the totals reported to the caller.
type BordereauRun struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	NumeroBordereau  string         `json:"numero_bordereau" gorm:"index"`
	DateBordereau    time.Time      `json:"date_bordereau" gorm:"type:date"`
	Count            int            `json:"count"`
	TotalTiersPayant float64        `json:"total_tiers_payant" gorm:"type:numeric(12,2)"`
	Snapshot         datatypes.JSON `json:"snapshot" gorm:"type:jsonb"`
	CreatedAt        time.Time      `json:"created_at"`
}

// RemiseCheque is the audit record of one cheque-deposit listing run. The
// snapshot is taken before the liste flags are flipped and feeds re-prints
// of the deposit slip.
type RemiseCheque struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	DateRemise   time.Time      `json:"date_remise" gorm:"type:date"`
	Count        int            `json:"count"`
	TotalMontant float64        `json:"total_montant" gorm:"type:numeric(12,2)"`
	Snapshot     datatypes.JSON `json:"snapshot" gorm:"type:jsonb"`
	CreatedAt    time.Time      `json:"created_at"`
}

// ChequeSnapshot is one row of a RemiseCheque snapshot.
type ChequeSnapshot struct {
	PaiementID uint    `json:"paiement_id"`
	Date       string  `json:"date"`
	Banque     string  `json:"banque"`
	Porteur    string  `json:"porteur"`
	Montant    float64 `json:"montant"`
}

// BordereauSnapshot is one row of a BordereauRun snapshot.
type BordereauSnapshot struct {
	FacturationID uint    `json:"facturation_id"`
	TiersPayant   float64 `json:"tiers_payant"`
}
