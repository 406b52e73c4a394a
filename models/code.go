package models

// Code is a billing-code reference row (one per acte). Maintained through the
// back-office endpoints, read-only at facturation time.
type Code struct {
	CodeActe string `json:"code_acte" gorm:"primaryKey;size:20"`

	// Printable code strings for the paper form
	CodeActeNormal  string `json:"code_acte_normal"`
	CodeActeNormal2 string `json:"code_acte_normal_2"`
	CodeReel        string `json:"code_reel"`
	Variable1       string `json:"variable_1"`
	Variable2       string `json:"variable_2"`
	Modificateur    string `json:"modificateur"`

	// Amounts in F CFP
	TotalActe   float64 `json:"total_acte" gorm:"type:numeric(12,2)"`
	TotalActe1  float64 `json:"total_acte_1" gorm:"column:total_acte_1;type:numeric(12,2)"`
	TotalActe2  float64 `json:"total_acte_2" gorm:"column:total_acte_2;type:numeric(12,2)"`
	TiersPayant float64 `json:"tiers_payant" gorm:"type:numeric(12,2)"`
	TotalPaye   float64 `json:"total_paye" gorm:"type:numeric(12,2)"`

	ParcoursSoin  bool `json:"parcours_soin"`
	LongueMaladie bool `json:"longue_maladie"`

	MedecinID *string  `json:"-"`
	Medecin   *Medecin `json:"medecin" gorm:"foreignKey:MedecinID;references:Id"`
}
