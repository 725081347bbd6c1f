package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type DenominacionRequest struct {
	Valor    int64 `json:"valor"    validate:"required,gt=0"`
	Cantidad int   `json:"cantidad" validate:"min=0"`
}

type AbrirArqueoRequest struct {
	SaldoApertura int64 `json:"saldo_apertura" validate:"min=0"`
}

// ActualizarArqueoRequest reemplaza el conteo de una sesión EN_PROGRESO.
// Sobre una sesión CERRADA o ANULADA la escritura se rechaza.
type ActualizarArqueoRequest struct {
	Denominaciones []DenominacionRequest `json:"denominaciones" validate:"required,dive"`
}

type CerrarArqueoRequest struct {
	Denominaciones []DenominacionRequest `json:"denominaciones" validate:"required,dive"`
	Observaciones  *string               `json:"observaciones"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DenominacionResponse struct {
	Valor    int64 `json:"valor"`
	Cantidad int   `json:"cantidad"`
	Subtotal int64 `json:"subtotal"`
}

type ResumenDiarioResponse struct {
	SesionArqueoID   string `json:"sesion_arqueo_id"`
	SaldoApertura    int64  `json:"saldo_apertura"`
	EfectivoEsperado int64  `json:"efectivo_esperado"`
	TotalVentas      int64  `json:"total_ventas"`
	VentasEfectivo   int64  `json:"ventas_efectivo"`
	VentasOtros      int64  `json:"ventas_otros"`
	Estado           string `json:"estado"`
}

type ArqueoResponse struct {
	SesionArqueoID   string                 `json:"sesion_arqueo_id"`
	SaldoApertura    int64                  `json:"saldo_apertura"`
	EfectivoEsperado int64                  `json:"efectivo_esperado"`
	TotalContado     int64                  `json:"total_contado"`
	Diferencia       int64                  `json:"diferencia"`
	Clasificacion    string                 `json:"clasificacion"` // Cuadrado | Sobrante | Faltante
	Denominaciones   []DenominacionResponse `json:"denominaciones"`
	Estado           string                 `json:"estado"`
	Observaciones    *string                `json:"observaciones"`
	OpenedAt         string                 `json:"opened_at"`
	ClosedAt         *string                `json:"closed_at"`
}
