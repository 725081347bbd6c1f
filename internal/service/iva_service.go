package service

import (
	"context"
	"sync"

	"lotepos/internal/dto"
	"lotepos/internal/model"
	"lotepos/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// IVAService mantiene la tabla de tarifas precargada en memoria. Después de
// Cargar, Porcentaje resuelve sin tocar la base — es la caché síncrona que
// consume el agregador de líneas. Un código ausente resuelve a 0% (fail-open):
// una venta nunca se bloquea por configuración tributaria incompleta.
type IVAService interface {
	// Cargar refresca la caché completa desde la base.
	Cargar(ctx context.Context) error
	// Porcentaje implementa factura.TarifasIVA.
	Porcentaje(codigo string) decimal.Decimal
	Tarifas(ctx context.Context) ([]dto.TarifaIVAResponse, error)
	Crear(ctx context.Context, req dto.CrearTarifaIVARequest) error
}

type ivaService struct {
	repo repository.TipoIVARepository

	mu      sync.RWMutex
	tarifas map[string]decimal.Decimal
}

func NewIVAService(repo repository.TipoIVARepository) IVAService {
	return &ivaService{
		repo:    repo,
		tarifas: make(map[string]decimal.Decimal),
	}
}

func (s *ivaService) Cargar(ctx context.Context) error {
	tipos, err := s.repo.ListActivos(ctx)
	if err != nil {
		return err
	}
	nuevas := make(map[string]decimal.Decimal, len(tipos))
	for _, t := range tipos {
		nuevas[t.Codigo] = t.Porcentaje
	}

	s.mu.Lock()
	s.tarifas = nuevas
	s.mu.Unlock()

	log.Info().Int("tarifas", len(nuevas)).Msg("tabla de IVA precargada")
	return nil
}

func (s *ivaService) Porcentaje(codigo string) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pct, ok := s.tarifas[codigo]
	if !ok {
		// Deliberado: tipo desconocido factura con IVA 0, no con error.
		return decimal.Zero
	}
	return pct
}

func (s *ivaService) Tarifas(ctx context.Context) ([]dto.TarifaIVAResponse, error) {
	tipos, err := s.repo.ListActivos(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TarifaIVAResponse, 0, len(tipos))
	for _, t := range tipos {
		out = append(out, dto.TarifaIVAResponse{
			Codigo:      t.Codigo,
			Descripcion: t.Descripcion,
			Porcentaje:  t.Porcentaje,
		})
	}
	return out, nil
}

func (s *ivaService) Crear(ctx context.Context, req dto.CrearTarifaIVARequest) error {
	t := &model.TipoIVA{
		Codigo:      req.Codigo,
		Descripcion: req.Descripcion,
		Porcentaje:  req.Porcentaje,
		Activo:      true,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return err
	}
	// La caché se refresca completa; la escritura es poco frecuente.
	return s.Cargar(ctx)
}
