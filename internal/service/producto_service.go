package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"lotepos/internal/dto"
	"lotepos/internal/lote"
	"lotepos/internal/model"
	"lotepos/internal/money"
	"lotepos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	precioCachePrefix = "precio:"
	precioCacheTTL    = 60 * time.Second
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	// ConsultarPrecio resuelve nombre, precio vigente y stock por código de
	// barras, con cache-aside en Redis (TTL corto: el precio puede cambiar por
	// actualización de lote en cualquier momento).
	ConsultarPrecio(ctx context.Context, barcode string) (*dto.ConsultaPrecioResponse, error)
}

type productoService struct {
	repo     repository.ProductoRepository
	loteRepo repository.LoteRepository
	rdb      *redis.Client
	now      func() time.Time
}

func NewProductoService(repo repository.ProductoRepository, loteRepo repository.LoteRepository, rdb *redis.Client) ProductoService {
	return &productoService{repo: repo, loteRepo: loteRepo, rdb: rdb, now: time.Now}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	unidad := req.UnidadMedida
	if unidad == "" {
		unidad = "unidad"
	}
	p := &model.Producto{
		CodigoBarras: req.CodigoBarras,
		Nombre:       req.Nombre,
		Descripcion:  req.Descripcion,
		TipoIVA:      req.TipoIVA,
		UnidadMedida: unidad,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := s.toResponse(ctx, p)
	return &resp, nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	resp := s.toResponse(ctx, p)
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		out = append(out, s.toResponse(ctx, &productos[i]))
	}
	return &dto.ProductoListResponse{
		Data:  out,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	p.Nombre = req.Nombre
	p.Descripcion = req.Descripcion
	p.TipoIVA = req.TipoIVA
	if req.UnidadMedida != "" {
		p.UnidadMedida = req.UnidadMedida
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidarPrecio(ctx, p.CodigoBarras)
	resp := s.toResponse(ctx, p)
	return &resp, nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("producto no encontrado")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidarPrecio(ctx, p.CodigoBarras)
	return nil
}

func (s *productoService) ConsultarPrecio(ctx context.Context, barcode string) (*dto.ConsultaPrecioResponse, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, precioCachePrefix+barcode).Bytes(); err == nil {
			var cached dto.ConsultaPrecioResponse
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	p, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	precio, stock := s.precioVigente(ctx, p.ID)

	resp := &dto.ConsultaPrecioResponse{
		Nombre:          p.Nombre,
		PrecioVenta:     precio,
		PrecioFormato:   money.Format(precio),
		StockDisponible: stock,
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, precioCachePrefix+barcode, raw, precioCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("barcode", barcode).Msg("no se pudo cachear el precio")
			}
		}
	}
	return resp, nil
}

// precioVigente resuelve el precio del lote vendible actual y el stock total.
// Sin lote vendible el precio es 0.
func (s *productoService) precioVigente(ctx context.Context, productoID uuid.UUID) (int64, int) {
	activos, err := s.loteRepo.ListActivos(ctx, productoID)
	if err != nil {
		return 0, 0
	}
	stock := 0
	for i := range activos {
		stock += activos[i].StockActual
	}
	sel, err := lote.Seleccionar(activos, 1, s.now())
	if err != nil {
		return 0, stock
	}
	return sel.Lote.PrecioVenta, stock
}

func (s *productoService) invalidarPrecio(ctx context.Context, barcode string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, precioCachePrefix+barcode).Err(); err != nil {
		log.Warn().Err(err).Str("barcode", barcode).Msg("no se pudo invalidar el precio cacheado")
	}
}

func (s *productoService) toResponse(ctx context.Context, p *model.Producto) dto.ProductoResponse {
	precio, stock := s.precioVigente(ctx, p.ID)
	return dto.ProductoResponse{
		ID:              p.ID.String(),
		CodigoBarras:    p.CodigoBarras,
		Nombre:          p.Nombre,
		Descripcion:     p.Descripcion,
		TipoIVA:         p.TipoIVA,
		UnidadMedida:    p.UnidadMedida,
		Activo:          p.Activo,
		PrecioVigente:   precio,
		StockDisponible: stock,
	}
}
