package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	CodigoBarras string  `json:"codigo_barras" validate:"required"`
	Nombre       string  `json:"nombre"        validate:"required"`
	Descripcion  *string `json:"descripcion"`
	TipoIVA      string  `json:"tipo_iva"      validate:"required"`
	UnidadMedida string  `json:"unidad_medida"`
}

type ActualizarProductoRequest struct {
	Nombre       string  `json:"nombre"   validate:"required"`
	Descripcion  *string `json:"descripcion"`
	TipoIVA      string  `json:"tipo_iva" validate:"required"`
	UnidadMedida string  `json:"unidad_medida"`
}

// ProductoFilter se bindea del query string de GET /v1/productos.
type ProductoFilter struct {
	Barcode string `form:"barcode"`
	Nombre  string `form:"nombre"`
	Activo  string `form:"activo"` // "false" = inactivos, "all" = todos, default activos
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID           string  `json:"id"`
	CodigoBarras string  `json:"codigo_barras"`
	Nombre       string  `json:"nombre"`
	Descripcion  *string `json:"descripcion"`
	TipoIVA      string  `json:"tipo_iva"`
	UnidadMedida string  `json:"unidad_medida"`
	Activo       bool    `json:"activo"`
	// PrecioVigente es el precio del lote vendible actual; 0 si no hay lote.
	PrecioVigente   int64 `json:"precio_vigente"`
	StockDisponible int   `json:"stock_disponible"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// ConsultaPrecioResponse sirve la consulta pública por código de barras.
type ConsultaPrecioResponse struct {
	Nombre          string `json:"nombre"`
	PrecioVenta     int64  `json:"precio_venta"`
	PrecioFormato   string `json:"precio_formato"` // "25.500"
	StockDisponible int    `json:"stock_disponible"`
}
