package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de una sesión de arqueo. CERRADO y ANULADO son terminales: una vez
// ahí la sesión es inmutable y el servicio rechaza cualquier escritura.
const (
	ArqueoEnProgreso = "EN_PROGRESO"
	ArqueoCerrado    = "CERRADO"
	ArqueoAnulado    = "ANULADO"
)

// Clasificación del resultado de la conciliación según el signo de la diferencia.
const (
	ArqueoCuadrado = "Cuadrado"
	ArqueoSobrante = "Sobrante"
	ArqueoFaltante = "Faltante"
)

// SesionArqueo es el cierre de caja diario: conteo físico contra efectivo
// esperado por el sistema.
type SesionArqueo struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID     uuid.UUID `gorm:"type:uuid;not null"`
	SaldoApertura int64     `gorm:"not null"`
	// EfectivoEsperado, TotalContado, Diferencia y Clasificacion se calculan y
	// persisten en el cierre; antes del cierre son nil.
	EfectivoEsperado *int64
	TotalContado     *int64
	Diferencia       *int64
	Clasificacion    *string          `gorm:"type:varchar(20)"`
	DesvioPct        *decimal.Decimal `gorm:"type:decimal(5,2)"`
	Estado           string           `gorm:"type:varchar(20);not null;default:'EN_PROGRESO'"`
	Observaciones    *string
	OpenedAt         time.Time
	ClosedAt         *time.Time

	Denominaciones []DenominacionConteo `gorm:"foreignKey:SesionArqueoID"`
	Movimientos    []MovimientoCaja     `gorm:"foreignKey:SesionArqueoID"`
}

func (SesionArqueo) TableName() string { return "sesiones_arqueo" }

// DenominacionConteo es una fila del conteo físico: cuántos billetes/monedas
// de cada valor se contaron. Subtotal = Valor * Cantidad.
type DenominacionConteo struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SesionArqueoID uuid.UUID `gorm:"type:uuid;index;not null"`
	Valor          int64     `gorm:"not null"`
	Cantidad       int       `gorm:"not null"`
	Subtotal       int64     `gorm:"not null"`
}

func (DenominacionConteo) TableName() string { return "denominaciones_conteo" }

// MovimientoCaja es un evento inmutable del libro de caja.
// Tipo: "venta" | "ingreso_manual" | "egreso_manual" | "anulacion"
// Los movimientos NUNCA se modifican ni borran — una anulación crea el inverso.
type MovimientoCaja struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SesionArqueoID uuid.UUID `gorm:"type:uuid;index;not null"`
	Tipo           string    `gorm:"type:varchar(20);not null"`
	MetodoPago     *string   `gorm:"type:varchar(20)"`
	Monto          int64     `gorm:"not null"`
	Descripcion    string    `gorm:"not null"`
	// ReferenciaID enlaza la factura u operación manual que originó el movimiento.
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time
}

func (MovimientoCaja) TableName() string { return "movimientos_caja" }
