package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lotepos/internal/arqueo"
	"lotepos/internal/dto"
	"lotepos/internal/model"
	"lotepos/internal/money"
	"lotepos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	// ErrSesionYaAbierta: el usuario ya tiene una sesión EN_PROGRESO.
	ErrSesionYaAbierta = errors.New("ya existe una sesión de arqueo en progreso")
	// ErrSesionTerminal: la sesión está CERRADA o ANULADA y no admite escrituras.
	ErrSesionTerminal = errors.New("la sesión de arqueo está cerrada o anulada")
)

// Mailer envía el resumen de cierre al supervisor. La implementación real vive
// en infra; los tests inyectan un no-op.
type Mailer interface {
	Send(asunto, cuerpo string) error
}

type ArqueoService interface {
	Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirArqueoRequest) (*dto.ArqueoResponse, error)
	Obtener(ctx context.Context, sesionID uuid.UUID) (*dto.ArqueoResponse, error)
	// Actualizar reemplaza el conteo de denominaciones de una sesión abierta.
	Actualizar(ctx context.Context, sesionID uuid.UUID, req dto.ActualizarArqueoRequest) (*dto.ArqueoResponse, error)
	// ResumenDiario agrega los movimientos de la sesión abierta del usuario.
	ResumenDiario(ctx context.Context, usuarioID uuid.UUID) (*dto.ResumenDiarioResponse, error)
	// Cerrar concilia el conteo contra el efectivo esperado y deja la sesión
	// CERRADA (terminal). El resumen se envía por correo best-effort.
	Cerrar(ctx context.Context, sesionID uuid.UUID, req dto.CerrarArqueoRequest) (*dto.ArqueoResponse, error)
	// Anular marca la sesión ANULADA (terminal) sin conciliar.
	Anular(ctx context.Context, sesionID uuid.UUID) (*dto.ArqueoResponse, error)
}

type arqueoService struct {
	repo   repository.ArqueoRepository
	mailer Mailer
	now    func() time.Time
}

func NewArqueoService(repo repository.ArqueoRepository, mailer Mailer) ArqueoService {
	return &arqueoService{repo: repo, mailer: mailer, now: time.Now}
}

func (s *arqueoService) Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirArqueoRequest) (*dto.ArqueoResponse, error) {
	abierta, err := s.repo.FindSesionEnProgreso(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if abierta != nil {
		return nil, ErrSesionYaAbierta
	}

	sesion := &model.SesionArqueo{
		UsuarioID:     usuarioID,
		SaldoApertura: req.SaldoApertura,
		Estado:        model.ArqueoEnProgreso,
		OpenedAt:      s.now(),
	}
	if err := s.repo.CreateSesion(ctx, sesion); err != nil {
		return nil, err
	}

	log.Info().Str("sesion_id", sesion.ID.String()).Int64("saldo_apertura", req.SaldoApertura).Msg("sesión de arqueo abierta")

	resp := arqueoToResponse(sesion)
	return &resp, nil
}

func (s *arqueoService) Obtener(ctx context.Context, sesionID uuid.UUID) (*dto.ArqueoResponse, error) {
	sesion, err := s.repo.FindSesionByID(ctx, sesionID)
	if err != nil {
		return nil, err
	}
	resp := arqueoToResponse(sesion)
	return &resp, nil
}

func (s *arqueoService) Actualizar(ctx context.Context, sesionID uuid.UUID, req dto.ActualizarArqueoRequest) (*dto.ArqueoResponse, error) {
	sesion, err := s.repo.FindSesionByID(ctx, sesionID)
	if err != nil {
		return nil, err
	}
	if sesion.Estado != model.ArqueoEnProgreso {
		return nil, ErrSesionTerminal
	}

	denoms := denominacionesFromRequest(sesion.ID, req.Denominaciones)
	if err := s.repo.ReplaceDenominaciones(ctx, sesion.ID, denoms); err != nil {
		return nil, err
	}
	sesion.Denominaciones = denoms
	resp := arqueoToResponse(sesion)
	return &resp, nil
}

func (s *arqueoService) ResumenDiario(ctx context.Context, usuarioID uuid.UUID) (*dto.ResumenDiarioResponse, error) {
	sesion, err := s.repo.FindSesionEnProgreso(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if sesion == nil {
		return nil, ErrSesionNoAbierta
	}

	sums, err := s.repo.SumMovimientosByMetodo(ctx, sesion.ID)
	if err != nil {
		return nil, err
	}

	var totalVentas, otros int64
	for metodo, monto := range sums {
		totalVentas += monto
		if metodo != "efectivo" {
			otros += monto
		}
	}
	efectivo := sums["efectivo"]

	return &dto.ResumenDiarioResponse{
		SesionArqueoID:   sesion.ID.String(),
		SaldoApertura:    sesion.SaldoApertura,
		EfectivoEsperado: efectivo,
		TotalVentas:      totalVentas,
		VentasEfectivo:   efectivo,
		VentasOtros:      otros,
		Estado:           sesion.Estado,
	}, nil
}

func (s *arqueoService) Cerrar(ctx context.Context, sesionID uuid.UUID, req dto.CerrarArqueoRequest) (*dto.ArqueoResponse, error) {
	sesion, err := s.repo.FindSesionByID(ctx, sesionID)
	if err != nil {
		return nil, err
	}
	if sesion.Estado != model.ArqueoEnProgreso {
		return nil, ErrSesionTerminal
	}

	sums, err := s.repo.SumMovimientosByMetodo(ctx, sesion.ID)
	if err != nil {
		return nil, err
	}
	efectivoEsperado := sums["efectivo"]

	conteo := make([]arqueo.Denominacion, 0, len(req.Denominaciones))
	for _, d := range req.Denominaciones {
		conteo = append(conteo, arqueo.Denominacion{Valor: d.Valor, Cantidad: d.Cantidad})
	}
	res := arqueo.Reconciliar(conteo, sesion.SaldoApertura, efectivoEsperado)

	denoms := denominacionesFromRequest(sesion.ID, req.Denominaciones)
	if err := s.repo.ReplaceDenominaciones(ctx, sesion.ID, denoms); err != nil {
		return nil, err
	}

	closedAt := s.now()
	sesion.EfectivoEsperado = &res.EfectivoTotal
	sesion.TotalContado = &res.TotalContado
	sesion.Diferencia = &res.Diferencia
	sesion.Clasificacion = &res.Clasificacion
	sesion.DesvioPct = &res.DesvioPct
	sesion.Observaciones = req.Observaciones
	sesion.Estado = model.ArqueoCerrado
	sesion.ClosedAt = &closedAt
	if err := s.repo.UpdateSesion(ctx, sesion); err != nil {
		return nil, err
	}
	sesion.Denominaciones = denoms

	log.Info().
		Str("sesion_id", sesion.ID.String()).
		Int64("total_contado", res.TotalContado).
		Int64("diferencia", res.Diferencia).
		Str("clasificacion", res.Clasificacion).
		Str("desvio", res.ClasifDesvio).
		Msg("sesión de arqueo cerrada")

	s.enviarResumen(sesion, res)

	resp := arqueoToResponse(sesion)
	return &resp, nil
}

func (s *arqueoService) Anular(ctx context.Context, sesionID uuid.UUID) (*dto.ArqueoResponse, error) {
	sesion, err := s.repo.FindSesionByID(ctx, sesionID)
	if err != nil {
		return nil, err
	}
	if sesion.Estado != model.ArqueoEnProgreso {
		return nil, ErrSesionTerminal
	}

	closedAt := s.now()
	sesion.Estado = model.ArqueoAnulado
	sesion.ClosedAt = &closedAt
	if err := s.repo.UpdateSesion(ctx, sesion); err != nil {
		return nil, err
	}

	log.Info().Str("sesion_id", sesion.ID.String()).Msg("sesión de arqueo anulada")

	resp := arqueoToResponse(sesion)
	return &resp, nil
}

// enviarResumen manda el resumen de cierre al supervisor. Un fallo de correo
// nunca revierte el cierre: solo se loguea.
func (s *arqueoService) enviarResumen(sesion *model.SesionArqueo, res arqueo.Resultado) {
	if s.mailer == nil {
		return
	}
	cuerpo := fmt.Sprintf(
		"Cierre de caja %s\n\nSaldo apertura: $ %s\nEfectivo esperado: $ %s\nTotal contado: $ %s\nDiferencia: $ %s (%s)\nDesvío: %s%% (%s)\n",
		sesion.ClosedAt.Format("2006-01-02 15:04"),
		money.Format(sesion.SaldoApertura),
		money.Format(res.EfectivoTotal),
		money.Format(res.TotalContado),
		money.Format(res.Diferencia),
		res.Clasificacion,
		res.DesvioPct.String(),
		res.ClasifDesvio,
	)
	asunto := fmt.Sprintf("Arqueo %s — %s", sesion.ClosedAt.Format("2006-01-02"), res.Clasificacion)
	if err := s.mailer.Send(asunto, cuerpo); err != nil {
		log.Warn().Err(err).Msg("no se pudo enviar el resumen de arqueo")
	}
}

func denominacionesFromRequest(sesionID uuid.UUID, reqs []dto.DenominacionRequest) []model.DenominacionConteo {
	denoms := make([]model.DenominacionConteo, 0, len(reqs))
	for _, d := range reqs {
		denoms = append(denoms, model.DenominacionConteo{
			SesionArqueoID: sesionID,
			Valor:          d.Valor,
			Cantidad:       d.Cantidad,
			Subtotal:       d.Valor * int64(d.Cantidad),
		})
	}
	return denoms
}

func arqueoToResponse(s *model.SesionArqueo) dto.ArqueoResponse {
	resp := dto.ArqueoResponse{
		SesionArqueoID: s.ID.String(),
		SaldoApertura:  s.SaldoApertura,
		Estado:         s.Estado,
		Observaciones:  s.Observaciones,
		OpenedAt:       s.OpenedAt.Format(time.RFC3339),
	}
	if s.EfectivoEsperado != nil {
		resp.EfectivoEsperado = *s.EfectivoEsperado
	}
	if s.TotalContado != nil {
		resp.TotalContado = *s.TotalContado
	}
	if s.Diferencia != nil {
		resp.Diferencia = *s.Diferencia
	}
	if s.Clasificacion != nil {
		resp.Clasificacion = *s.Clasificacion
	}
	if s.ClosedAt != nil {
		closed := s.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &closed
	}
	for _, d := range s.Denominaciones {
		resp.Denominaciones = append(resp.Denominaciones, dto.DenominacionResponse{
			Valor:    d.Valor,
			Cantidad: d.Cantidad,
			Subtotal: d.Subtotal,
		})
	}
	return resp
}
