package model

import (
	"time"

	"github.com/google/uuid"
)

// Factura agrega las líneas de una venta con sus totales.
// Estado: "completada" | "anulada"
// Invariante: TotalFactura = Σ Detalles.Subtotal, TotalIVA = Σ Detalles.TotalIVA;
// Vuelto = ValorRecibido - TotalFactura y solo existe cuando recibido >= total.
type Factura struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NumeroFactura  int        `gorm:"uniqueIndex;not null"`
	UsuarioID      uuid.UUID  `gorm:"type:uuid;not null"`
	ClienteID      *uuid.UUID `gorm:"type:uuid;index"`
	SesionArqueoID uuid.UUID  `gorm:"type:uuid;index;not null"`
	TotalFactura   int64      `gorm:"not null"`
	TotalIVA       int64      `gorm:"not null;default:0;column:total_iva"`
	ValorRecibido  int64      `gorm:"not null"`
	Vuelto         int64      `gorm:"not null;default:0"`
	Estado         string     `gorm:"type:varchar(20);not null;default:'completada'"`
	CreatedAt      time.Time

	Detalles []DetalleFactura `gorm:"foreignKey:FacturaID"`
	Pagos    []PagoFactura    `gorm:"foreignKey:FacturaID"`
	Cliente  *Cliente         `gorm:"foreignKey:ClienteID"`
	Usuario  *Usuario         `gorm:"foreignKey:UsuarioID"`
}

func (Factura) TableName() string { return "facturas" }

// DetalleFactura es una línea de venta. Subtotal y TotalIVA se recalculan en
// el servidor cada vez que cambia cantidad o precio — nunca se confía en los
// montos que manda el cliente.
type DetalleFactura struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FacturaID  uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null"`
	// LoteID identifica el lote del que salió el stock (trazabilidad de precio).
	LoteID         uuid.UUID `gorm:"type:uuid;not null"`
	Cantidad       int       `gorm:"not null"` // > 0 siempre
	PrecioUnitario int64     `gorm:"not null"`
	Subtotal       int64     `gorm:"not null"`
	TotalIVA       int64     `gorm:"not null;default:0;column:total_iva"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
	Lote     *Lote     `gorm:"foreignKey:LoteID"`
}

func (DetalleFactura) TableName() string { return "detalle_facturas" }

// PagoFactura registra un medio de pago aplicado a la factura.
// Metodo: "efectivo" | "transferencia" | "tarjeta"
type PagoFactura struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FacturaID uuid.UUID `gorm:"type:uuid;index;not null"`
	Metodo    string    `gorm:"type:varchar(20);not null"`
	Monto     int64     `gorm:"not null"`
	CreatedAt time.Time
}

func (PagoFactura) TableName() string { return "pago_facturas" }
