package model

import (
	"time"

	"github.com/google/uuid"
)

// Producto es el catálogo base. El precio y el stock NO viven acá: viven en
// los lotes activos del producto (ver Lote).
type Producto struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CodigoBarras string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"index;not null"`
	Descripcion  *string
	// TipoIVA referencia el codigo de la tabla tipos_iva (ej: "IVA19", "EXENTO").
	TipoIVA      string `gorm:"type:varchar(20);not null;column:tipo_iva"`
	UnidadMedida string `gorm:"not null;default:'unidad'"`
	Activo       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Producto) TableName() string { return "productos" }
