package handler

import (
	"errors"
	"net/http"

	"lotepos/internal/apierror"
	"lotepos/internal/dto"
	"lotepos/internal/middleware"
	"lotepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ArqueoHandler struct{ svc service.ArqueoService }

func NewArqueoHandler(svc service.ArqueoService) *ArqueoHandler {
	return &ArqueoHandler{svc: svc}
}

// Abrir godoc
// @Summary      Abrir sesión de arqueo
// @Description  Abre la sesión de caja del día con su saldo de apertura. Un usuario solo puede tener una sesión EN_PROGRESO.
// @Tags         arqueo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AbrirArqueoRequest true "Saldo de apertura"
// @Success      201 {object} dto.ArqueoResponse
// @Failure      409 {object} apierror.APIError "Ya hay una sesión abierta"
// @Router       /v1/arqueo [post]
func (h *ArqueoHandler) Abrir(c *gin.Context) {
	var req dto.AbrirArqueoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID, _ := uuid.Parse(middleware.GetClaims(c).UserID)

	resp, err := h.svc.Abrir(c.Request.Context(), usuarioID, req)
	if err != nil {
		if errors.Is(err, service.ErrSesionYaAbierta) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obtener godoc
// @Summary      Consultar sesión de arqueo
// @Tags         arqueo
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la sesión"
// @Success      200 {object} dto.ArqueoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/arqueo/{id} [get]
func (h *ArqueoHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Sesión no encontrada"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary      Actualizar conteo de denominaciones
// @Description  Reemplaza el conteo físico de una sesión EN_PROGRESO. Sobre una sesión cerrada o anulada la escritura se rechaza.
// @Tags         arqueo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                      true "UUID de la sesión"
// @Param        body body dto.ActualizarArqueoRequest true "Denominaciones contadas"
// @Success      200 {object} dto.ArqueoResponse
// @Failure      409 {object} apierror.APIError "Sesión cerrada o anulada"
// @Router       /v1/arqueo/{id} [put]
func (h *ArqueoHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarArqueoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrSesionTerminal) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResumenDiario godoc
// @Summary      Resumen diario de la sesión abierta
// @Description  Agrega los movimientos de la sesión EN_PROGRESO del usuario: total de ventas, efectivo esperado y ventas por otros medios.
// @Tags         arqueo
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ResumenDiarioResponse
// @Failure      404 {object} apierror.APIError "Sin sesión abierta"
// @Router       /v1/arqueo/resumen-diario [get]
func (h *ArqueoHandler) ResumenDiario(c *gin.Context) {
	usuarioID, _ := uuid.Parse(middleware.GetClaims(c).UserID)

	resp, err := h.svc.ResumenDiario(c.Request.Context(), usuarioID)
	if err != nil {
		if errors.Is(err, service.ErrSesionNoAbierta) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.WithCode(apierror.CodeInterno, "Error al calcular el resumen"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cerrar godoc
// @Summary      Cerrar sesión de arqueo
// @Description  Concilia el conteo físico contra el efectivo esperado, clasifica (Cuadrado | Sobrante | Faltante) y deja la sesión CERRADA (terminal).
// @Tags         arqueo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                  true "UUID de la sesión"
// @Param        body body dto.CerrarArqueoRequest true "Conteo final"
// @Success      200 {object} dto.ArqueoResponse
// @Failure      409 {object} apierror.APIError "Sesión ya cerrada o anulada"
// @Router       /v1/arqueo/{id}/cerrar [post]
func (h *ArqueoHandler) Cerrar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CerrarArqueoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cerrar(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrSesionTerminal) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Anular godoc
// @Summary      Anular sesión de arqueo
// @Description  Marca la sesión ANULADA (terminal) sin conciliar. Solo supervisor o administrador.
// @Tags         arqueo
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la sesión"
// @Success      200 {object} dto.ArqueoResponse
// @Failure      409 {object} apierror.APIError "Sesión ya cerrada o anulada"
// @Router       /v1/arqueo/{id}/anular [post]
func (h *ArqueoHandler) Anular(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Anular(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSesionTerminal) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
