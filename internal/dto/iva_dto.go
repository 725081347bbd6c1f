package dto

import "github.com/shopspring/decimal"

type TarifaIVAResponse struct {
	Codigo      string          `json:"codigo"`
	Descripcion string          `json:"descripcion"`
	Porcentaje  decimal.Decimal `json:"porcentaje"`
}

type CrearTarifaIVARequest struct {
	Codigo      string          `json:"codigo"      validate:"required"`
	Descripcion string          `json:"descripcion" validate:"required"`
	Porcentaje  decimal.Decimal `json:"porcentaje"  validate:"min=0"`
}
