package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente de la tienda, opcional en la factura (venta de mostrador no lo exige).
type Cliente struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Identificacion string    `gorm:"uniqueIndex;not null"`
	Nombre         string    `gorm:"index;not null"`
	Telefono       *string
	Email          *string
	Direccion      *string
	Activo         bool `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Cliente) TableName() string { return "clientes" }
