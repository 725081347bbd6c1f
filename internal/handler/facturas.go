package handler

import (
	"errors"
	"net/http"

	"lotepos/internal/apierror"
	"lotepos/internal/dto"
	"lotepos/internal/lote"
	"lotepos/internal/middleware"
	"lotepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FacturasHandler struct{ svc service.FacturaService }

func NewFacturasHandler(svc service.FacturaService) *FacturasHandler {
	return &FacturasHandler{svc: svc}
}

// Registrar godoc
// @Summary      Registrar una factura
// @Description  Crea una factura ACID: selecciona lote FIFO por línea, calcula IVA, descuenta stock y asienta los movimientos de caja.
// @Tags         facturas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarFacturaRequest true "Detalle de la factura"
// @Success      201 {object} dto.FacturaResponse
// @Failure      400 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError "Precio de lote vencido"
// @Router       /v1/facturas [post]
func (h *FacturasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarFacturaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Registrar(c.Request.Context(), usuarioID, req)
	if err != nil {
		// Precio vencido no es un 400 genérico: el cliente debe llevar al
		// cajero al flujo de actualización de precio.
		if errors.Is(err, lote.ErrPrecioVencido) {
			c.JSON(http.StatusConflict, apierror.WithCode(apierror.CodePrecioVencido, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obtener godoc
// @Summary      Consultar factura
// @Tags         facturas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la factura"
// @Success      200 {object} dto.FacturaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/facturas/{id} [get]
func (h *FacturasHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Factura no encontrada"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary      Reporte de facturas
// @Description  Lista paginada de facturas filtrada por fecha (default hoy) y estado.
// @Tags         facturas
// @Produce      json
// @Security     BearerAuth
// @Param        fecha  query string false "Fecha YYYY-MM-DD (default: hoy)"
// @Param        estado query string false "completada | anulada | all"
// @Param        page   query int    false "Página (default 1)"
// @Param        limit  query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.FacturaListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/facturas [get]
func (h *FacturasHandler) Listar(c *gin.Context) {
	var filter dto.FacturaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.WithCode(apierror.CodeInterno, "Error al listar facturas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Anular godoc
// @Summary      Anular factura
// @Description  Anula una factura: restaura stock al lote de origen y asienta movimientos de caja inversos.
// @Tags         facturas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                  true "UUID de la factura"
// @Param        body body dto.AnularFacturaRequest true "Motivo de anulación"
// @Success      200 {object} dto.FacturaResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/facturas/{id}/anular [post]
func (h *FacturasHandler) Anular(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AnularFacturaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Anular(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
