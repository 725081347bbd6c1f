package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TipoIVA es una categoría de tarifa (ej: IVA19 → 19.00, EXENTO → 0.00).
// La tabla completa se precarga en memoria al iniciar; un código ausente en
// la caché resuelve a 0% (fail-open) para no bloquear una venta por
// configuración tributaria incompleta.
type TipoIVA struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo      string          `gorm:"uniqueIndex;not null;type:varchar(20)"`
	Descripcion string          `gorm:"not null"`
	Porcentaje  decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Activo      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (TipoIVA) TableName() string { return "tipos_iva" }
