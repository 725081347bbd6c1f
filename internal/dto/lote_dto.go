package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ActualizarPrecioRequest crea un lote nuevo con el precio actualizado.
// El lote vigente anterior queda CERRADO, nunca se muta su precio.
type ActualizarPrecioRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	// PrecioVenta en pesos enteros. El front puede mandar el monto ya
	// normalizado o el string localizado por PrecioVentaTexto.
	PrecioVenta int64 `json:"precio_venta" validate:"min=0"`
	// PrecioVentaTexto es el monto tal como lo tipeó el humano ("$ 25.500").
	// Si viene, manda sobre PrecioVenta.
	PrecioVentaTexto   *string `json:"precio_venta_texto"`
	Stock              int     `json:"stock"                validate:"min=0"`
	DiasVigenciaPrecio int     `json:"dias_vigencia_precio" validate:"required,gt=0"`
}

// RecibirCompraRequest crea el lote inicial de una recepción de compra.
type RecibirCompraRequest struct {
	ProductoID         string `json:"producto_id"          validate:"required,uuid"`
	PrecioVenta        int64  `json:"precio_venta"         validate:"required,gt=0"`
	Stock              int    `json:"stock"                validate:"required,gt=0"`
	DiasVigenciaPrecio int    `json:"dias_vigencia_precio" validate:"required,gt=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LoteResponse struct {
	ID                  string `json:"id"`
	ProductoID          string `json:"producto_id"`
	NumeroLote          int    `json:"numero_lote"`
	FechaIngreso        string `json:"fecha_ingreso"`
	PrecioVenta         int64  `json:"precio_venta"`
	StockInicial        int    `json:"stock_inicial"`
	StockActual         int    `json:"stock_actual"`
	DiasVigenciaPrecio  int    `json:"dias_vigencia_precio"`
	FechaVencimiento    string `json:"fecha_vencimiento"`
	DiasParaVencimiento int    `json:"dias_para_vencimiento"`
	Estado              string `json:"estado"` // ACTIVO | AGOTADO | VENCIDO | CERRADO (derivado)
}

// AlertaLoteResponse es un renglón de la lista de alertas por vencer,
// ordenada por urgencia (menos días primero).
type AlertaLoteResponse struct {
	LoteID              string `json:"lote_id"`
	ProductoID          string `json:"producto_id"`
	Producto            string `json:"producto"`
	NumeroLote          int    `json:"numero_lote"`
	DiasParaVencimiento int    `json:"dias_para_vencimiento"`
	FechaVencimiento    string `json:"fecha_vencimiento"`
	StockActual         int    `json:"stock_actual"`
}
