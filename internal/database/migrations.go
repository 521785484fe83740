package database

import (
	"go.uber.org/zap"
)

// RunMigrations ejecuta las migraciones necesarias para actualizar el esquema de la base de datos
func RunMigrations() error {
	zap.S().Info("Ejecutando migraciones de la base de datos...")

	// Migración para añadir la columna updated_at a transacciones creadas con esquemas anteriores
	addUpdatedAtColumnSQL := `
	ALTER TABLE transactions ADD COLUMN IF NOT EXISTS updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW();`

	if _, err := DB.Exec(addUpdatedAtColumnSQL); err != nil {
		zap.S().Errorf("Error al añadir la columna updated_at: %v", err)
		return err
	}

	// Migración para añadir la columna settings a usuarios registrados antes de las preferencias
	addSettingsColumnSQL := `
	ALTER TABLE users ADD COLUMN IF NOT EXISTS settings JSONB NOT NULL DEFAULT '{}';`

	if _, err := DB.Exec(addSettingsColumnSQL); err != nil {
		zap.S().Errorf("Error al añadir la columna settings: %v", err)
		return err
	}

	return nil
}
