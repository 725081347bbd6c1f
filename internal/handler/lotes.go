package handler

import (
	"net/http"
	"strconv"

	"lotepos/internal/apierror"
	"lotepos/internal/dto"
	"lotepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LotesHandler struct {
	svc    service.LoteService
	umbral int
}

func NewLotesHandler(svc service.LoteService, umbralAlertaDias int) *LotesHandler {
	return &LotesHandler{svc: svc, umbral: umbralAlertaDias}
}

// ListActivos godoc
// @Summary      Lotes activos de un producto
// @Description  Retorna los lotes vendibles del producto con su estado derivado (ACTIVO | AGOTADO | VENCIDO), más antiguos primero.
// @Tags         lotes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del producto"
// @Success      200 {array} dto.LoteResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/productos/{id}/lotes/activos [get]
func (h *LotesHandler) ListActivos(c *gin.Context) {
	productoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ListActivos(c.Request.Context(), productoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.WithCode(apierror.CodeInterno, "Error al listar lotes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarPrecio godoc
// @Summary      Actualizar precio de venta
// @Description  Cierra el lote vigente y crea uno nuevo con el precio actualizado y ventana de vigencia fresca. El historial de precios nunca se muta.
// @Tags         lotes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ActualizarPrecioRequest true "Nuevo precio"
// @Success      201 {object} dto.LoteResponse
// @Failure      422 {object} apierror.ValidationError
// @Router       /v1/lotes/actualizar-precio [post]
func (h *LotesHandler) ActualizarPrecio(c *gin.Context) {
	var req dto.ActualizarPrecioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarPrecio(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RecibirCompra godoc
// @Summary      Registrar recepción de compra
// @Description  Crea el lote de una recepción de mercancía con su precio y stock inicial.
// @Tags         lotes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RecibirCompraRequest true "Lote recibido"
// @Success      201 {object} dto.LoteResponse
// @Failure      422 {object} apierror.ValidationError
// @Router       /v1/lotes/recibir [post]
func (h *LotesHandler) RecibirCompra(c *gin.Context) {
	var req dto.RecibirCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecibirCompra(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// PorVencer godoc
// @Summary      Lotes con precio por vencer
// @Description  Lista lotes con stock cuya vigencia de precio vence dentro del umbral, más urgentes primero.
// @Tags         lotes
// @Produce      json
// @Security     BearerAuth
// @Param        dias query int false "Umbral en días (default configurado)"
// @Success      200 {array} dto.AlertaLoteResponse
// @Router       /v1/lotes/por-vencer [get]
func (h *LotesHandler) PorVencer(c *gin.Context) {
	umbral := h.umbral
	if v := c.Query("dias"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, apierror.New("dias inválido"))
			return
		}
		umbral = parsed
	}
	resp, err := h.svc.PorVencer(c.Request.Context(), umbral)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.WithCode(apierror.CodeInterno, "Error al listar alertas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
