package model

import (
	"time"

	"github.com/google/uuid"
)

// Estados persistibles de un lote. VENCIDO nunca se guarda: se deriva de las
// fechas al leer (ver lote.EstadoDerivado).
const (
	LoteActivo  = "ACTIVO"
	LoteAgotado = "AGOTADO"
	LoteVencido = "VENCIDO"
	LoteCerrado = "CERRADO"
)

// Lote es una fila del registro append-only de precios y stock: cada recepción
// de mercancía o cambio de precio inserta un lote nuevo con numero_lote
// consecutivo. El precio de una fila existente jamás se actualiza — la serie
// de lotes ES el historial de precios del producto. La única mutación
// permitida es el descuento/restauración de stock y el cambio de estado.
type Lote struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_producto_numero_lote"`
	// NumeroLote es el consecutivo por producto, desde 1.
	NumeroLote   int       `gorm:"not null;uniqueIndex:idx_producto_numero_lote"`
	FechaIngreso time.Time `gorm:"not null"`
	PrecioVenta  int64     `gorm:"not null"` // pesos enteros COP
	StockInicial int       `gorm:"not null"`
	StockActual  int       `gorm:"not null"`
	// DiasVigenciaPrecio son los días que el precio es válido desde el ingreso;
	// FechaVencimiento = medianoche(FechaIngreso) + DiasVigenciaPrecio.
	DiasVigenciaPrecio int       `gorm:"not null"`
	FechaVencimiento   time.Time `gorm:"index;not null"`
	Estado             string    `gorm:"type:varchar(20);not null;default:'ACTIVO'"`
	CreatedAt          time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (Lote) TableName() string { return "lotes" }
