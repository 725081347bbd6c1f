package handler

import (
	"net/http"

	"lotepos/internal/apierror"
	"lotepos/internal/dto"
	"lotepos/internal/service"

	"github.com/gin-gonic/gin"
)

type IVAHandler struct{ svc service.IVAService }

func NewIVAHandler(svc service.IVAService) *IVAHandler { return &IVAHandler{svc: svc} }

// Tarifas godoc
// @Summary      Listar tarifas de IVA
// @Tags         iva
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.TarifaIVAResponse
// @Router       /v1/iva/tarifas [get]
func (h *IVAHandler) Tarifas(c *gin.Context) {
	resp, err := h.svc.Tarifas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.WithCode(apierror.CodeInterno, "Error al listar tarifas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary      Crear tarifa de IVA
// @Description  Crea un tipo de IVA y refresca la caché precargada.
// @Tags         iva
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearTarifaIVARequest true "Tarifa nueva"
// @Success      201
// @Failure      422 {object} apierror.ValidationError
// @Router       /v1/iva/tarifas [post]
func (h *IVAHandler) Crear(c *gin.Context) {
	var req dto.CrearTarifaIVARequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Crear(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusCreated)
}
