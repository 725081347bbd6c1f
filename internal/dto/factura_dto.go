package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type DetalleFacturaRequest struct {
	CodigoBarras string `json:"codigo_barras" validate:"required"`
	Cantidad     int    `json:"cantidad"      validate:"required,min=1"`
}

type PagoRequest struct {
	Metodo string `json:"metodo" validate:"required,oneof=efectivo transferencia tarjeta"`
	Monto  int64  `json:"monto"  validate:"required,gt=0"`
}

type RegistrarFacturaRequest struct {
	SesionArqueoID string                  `json:"sesion_arqueo_id" validate:"required,uuid"`
	ClienteID      *string                 `json:"cliente_id"       validate:"omitempty,uuid"`
	Detalles       []DetalleFacturaRequest `json:"detalles"         validate:"required,min=1,dive"`
	Pagos          []PagoRequest           `json:"pagos"            validate:"required,min=1,dive"`
	// ValorRecibido debe cubrir el total; si no, la factura se rechaza y el
	// vuelto queda en 0.
	ValorRecibido int64 `json:"valor_recibido" validate:"required,gt=0"`
}

type AnularFacturaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

// FacturaFilter filtra el reporte de ventas.
type FacturaFilter struct {
	Fecha  string `form:"fecha"`                     // YYYY-MM-DD; vacío = hoy
	Estado string `form:"estado,default=completada"` // completada | anulada | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DetalleFacturaResponse struct {
	Producto       string `json:"producto"`
	CodigoBarras   string `json:"codigo_barras"`
	NumeroLote     int    `json:"numero_lote"`
	Cantidad       int    `json:"cantidad"`
	PrecioUnitario int64  `json:"precio_unitario"`
	Subtotal       int64  `json:"subtotal"`
	TotalIVA       int64  `json:"total_iva"`
}

type FacturaResponse struct {
	ID            string                   `json:"id"`
	NumeroFactura int                      `json:"numero_factura"`
	Detalles      []DetalleFacturaResponse `json:"detalles"`
	TotalFactura  int64                    `json:"total_factura"`
	TotalIVA      int64                    `json:"total_iva"`
	ValorRecibido int64                    `json:"valor_recibido"`
	Vuelto        int64                    `json:"vuelto"`
	Pagos         []PagoRequest            `json:"pagos"`
	Estado        string                   `json:"estado"`
	CreatedAt     string                   `json:"created_at"`
}

type FacturaListResponse struct {
	Data  []FacturaResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
