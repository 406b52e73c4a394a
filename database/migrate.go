package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate applies the (idempotent) SQL hardening pass on top of AutoMigrate:
// - Money column types (NUMERIC(12,2))
// - Indexes used by the batch selections
// - Foreign key: facturations.code_acte_id → codes.code_acte
// - Basic CHECK constraints
// Postgres only; the sqlite test databases stop at AutoMigrate.
func Migrate() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		// --- Enforce money columns as NUMERIC(12,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE codes         ALTER COLUMN total_acte   TYPE numeric(12,2)`,
			`ALTER TABLE codes         ALTER COLUMN total_acte_1 TYPE numeric(12,2)`,
			`ALTER TABLE codes         ALTER COLUMN total_acte_2 TYPE numeric(12,2)`,
			`ALTER TABLE codes         ALTER COLUMN tiers_payant TYPE numeric(12,2)`,
			`ALTER TABLE codes         ALTER COLUMN total_paye   TYPE numeric(12,2)`,
			`ALTER TABLE facturations  ALTER COLUMN total_acte   TYPE numeric(12,2)`,
			`ALTER TABLE facturations  ALTER COLUMN tiers_payant TYPE numeric(12,2)`,
			`ALTER TABLE facturations  ALTER COLUMN total_paye   TYPE numeric(12,2)`,
			`ALTER TABLE paiements     ALTER COLUMN montant      TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Indexes backing the two batch selections (idempotent) ---
		indexes := []string{
			`CREATE INDEX IF NOT EXISTS idx_facturations_bordereau_eligible ON facturations (tiers_payant) WHERE numero_bordereau IS NULL OR numero_bordereau = ''`,
			`CREATE INDEX IF NOT EXISTS idx_paiements_cheques_non_listes ON paiements (date) WHERE modalite_paiement = 'Chèque' AND liste = false`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_paiements_facturation ON paiements (facturation_id)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Foreign key: facturations.code_acte_id -> codes.code_acte ---
		fk := `
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1
		FROM pg_constraint
		WHERE conrelid = 'facturations'::regclass
		  AND conname  = 'fk_facturations_code'
	) THEN
		ALTER TABLE facturations
		ADD CONSTRAINT fk_facturations_code
		FOREIGN KEY (code_acte_id)
		REFERENCES codes(code_acte)
		ON UPDATE RESTRICT
		ON DELETE SET NULL;
	END IF;
END $$;`
		if err := tx.Exec(fk).Error; err != nil {
			return fmt.Errorf("foreign key migration failed: %w", err)
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'facturations'::regclass
					  AND conname  = 'chk_facturations_tiers_payant_nonneg'
				) THEN
					ALTER TABLE facturations
					ADD CONSTRAINT chk_facturations_tiers_payant_nonneg
					CHECK (tiers_payant >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'paiements'::regclass
					  AND conname  = 'chk_paiements_montant_nonneg'
				) THEN
					ALTER TABLE paiements
					ADD CONSTRAINT chk_paiements_montant_nonneg
					CHECK (montant IS NULL OR montant >= 0);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
