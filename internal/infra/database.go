package infra

import (
	"fmt"

	"lotepos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase abre la conexión GORM sobre pgx y corre AutoMigrate con todo el
// esquema. El log SQL de GORM va silenciado; el logging de la app es zerolog.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}
	return db, nil
}

// RunMigrations crea/actualiza las tablas. También la usan los tests de
// integración contra una base limpia.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Usuario{},
		&model.Cliente{},
		&model.TipoIVA{},
		&model.Producto{},
		&model.Lote{},
		&model.SesionArqueo{},
		&model.DenominacionConteo{},
		&model.MovimientoCaja{},
		&model.Factura{},
		&model.DetalleFactura{},
		&model.PagoFactura{},
	)
}
