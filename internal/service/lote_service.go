package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lotepos/internal/dto"
	"lotepos/internal/lote"
	"lotepos/internal/model"
	"lotepos/internal/money"
	"lotepos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LoteService interface {
	// ListActivos retorna los lotes vendibles del producto con estado derivado.
	ListActivos(ctx context.Context, productoID uuid.UUID) ([]dto.LoteResponse, error)
	// ActualizarPrecio cierra el lote vigente y crea uno nuevo con numero_lote
	// consecutivo y ventana de vigencia fresca. Nunca muta el precio existente.
	ActualizarPrecio(ctx context.Context, req dto.ActualizarPrecioRequest) (*dto.LoteResponse, error)
	// RecibirCompra crea el lote de una recepción de mercancía.
	RecibirCompra(ctx context.Context, req dto.RecibirCompraRequest) (*dto.LoteResponse, error)
	// PorVencer lista lotes con stock cuyo precio vence en <= umbral días,
	// más urgentes primero.
	PorVencer(ctx context.Context, umbral int) ([]dto.AlertaLoteResponse, error)
}

type loteService struct {
	repo         repository.LoteRepository
	productoRepo repository.ProductoRepository
	// now se inyecta en tests para fijar la fecha de referencia.
	now func() time.Time
}

func NewLoteService(repo repository.LoteRepository, productoRepo repository.ProductoRepository) LoteService {
	return &loteService{repo: repo, productoRepo: productoRepo, now: time.Now}
}

func (s *loteService) ListActivos(ctx context.Context, productoID uuid.UUID) ([]dto.LoteResponse, error) {
	lotes, err := s.repo.ListActivos(ctx, productoID)
	if err != nil {
		return nil, err
	}
	hoy := s.now()
	out := make([]dto.LoteResponse, 0, len(lotes))
	for i := range lotes {
		out = append(out, loteToResponse(&lotes[i], hoy))
	}
	return out, nil
}

func (s *loteService) ActualizarPrecio(ctx context.Context, req dto.ActualizarPrecioRequest) (*dto.LoteResponse, error) {
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, fmt.Errorf("producto_id inválido: %w", err)
	}
	if _, err := s.productoRepo.FindByID(ctx, productoID); err != nil {
		return nil, errors.New("producto no encontrado")
	}

	precio := req.PrecioVenta
	if req.PrecioVentaTexto != nil {
		// El monto viene tal como lo tipeó el humano; no parseable degrada a 0.
		precio = money.Normalize(*req.PrecioVentaTexto)
	}
	if precio <= 0 {
		return nil, errors.New("el precio de venta debe ser mayor a cero")
	}

	stock := req.Stock
	nuevo, err := s.crearLote(ctx, productoID, precio, stock, req.DiasVigenciaPrecio, true)
	if err != nil {
		return nil, err
	}
	resp := loteToResponse(nuevo, s.now())
	return &resp, nil
}

func (s *loteService) RecibirCompra(ctx context.Context, req dto.RecibirCompraRequest) (*dto.LoteResponse, error) {
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, fmt.Errorf("producto_id inválido: %w", err)
	}
	if _, err := s.productoRepo.FindByID(ctx, productoID); err != nil {
		return nil, errors.New("producto no encontrado")
	}

	nuevo, err := s.crearLote(ctx, productoID, req.PrecioVenta, req.Stock, req.DiasVigenciaPrecio, false)
	if err != nil {
		return nil, err
	}
	resp := loteToResponse(nuevo, s.now())
	return &resp, nil
}

// crearLote encapsula el append: consecutivo, ventana de vigencia y, en
// actualización de precio, cierre del lote vigente — todo en una tx.
func (s *loteService) crearLote(ctx context.Context, productoID uuid.UUID, precio int64, stock, diasVigencia int, cerrarVigente bool) (*model.Lote, error) {
	ingreso := s.now()
	nuevo := &model.Lote{
		ProductoID:         productoID,
		FechaIngreso:       ingreso,
		PrecioVenta:        precio,
		StockInicial:       stock,
		StockActual:        stock,
		DiasVigenciaPrecio: diasVigencia,
		FechaVencimiento:   lote.FechaVencimientoDesde(ingreso, diasVigencia),
		Estado:             model.LoteActivo,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if cerrarVigente {
			if err := s.repo.CerrarVigenteTx(tx, productoID); err != nil {
				return err
			}
		}
		numero, err := s.repo.NextNumeroLote(ctx, tx, productoID)
		if err != nil {
			return err
		}
		nuevo.NumeroLote = numero
		if tx == nil {
			return s.repo.Create(ctx, nuevo)
		}
		return s.repo.CreateTx(tx, nuevo)
	})
	if txErr != nil {
		return nil, txErr
	}
	return nuevo, nil
}

func (s *loteService) PorVencer(ctx context.Context, umbral int) ([]dto.AlertaLoteResponse, error) {
	if umbral < 0 {
		umbral = lote.UmbralPorVencerDefault
	}
	hoy := s.now()
	limite := hoy.AddDate(0, 0, umbral)

	lotes, err := s.repo.ListPorVencer(ctx, limite)
	if err != nil {
		return nil, err
	}

	// El repo trae también vencidos (fecha <= límite); acá quedan solo los
	// que están en la ventana de alerta.
	enVentana := lotes[:0]
	for i := range lotes {
		if lote.PorVencer(&lotes[i], hoy, umbral) {
			enVentana = append(enVentana, lotes[i])
		}
	}
	lote.OrdenarPorUrgencia(enVentana, hoy)

	out := make([]dto.AlertaLoteResponse, 0, len(enVentana))
	for i := range enVentana {
		l := &enVentana[i]
		nombre := ""
		if l.Producto != nil {
			nombre = l.Producto.Nombre
		}
		out = append(out, dto.AlertaLoteResponse{
			LoteID:              l.ID.String(),
			ProductoID:          l.ProductoID.String(),
			Producto:            nombre,
			NumeroLote:          l.NumeroLote,
			DiasParaVencimiento: lote.DiasParaVencimiento(l, hoy),
			FechaVencimiento:    l.FechaVencimiento.Format("2006-01-02"),
			StockActual:         l.StockActual,
		})
	}
	return out, nil
}

func loteToResponse(l *model.Lote, hoy time.Time) dto.LoteResponse {
	return dto.LoteResponse{
		ID:                  l.ID.String(),
		ProductoID:          l.ProductoID.String(),
		NumeroLote:          l.NumeroLote,
		FechaIngreso:        l.FechaIngreso.Format("2006-01-02"),
		PrecioVenta:         l.PrecioVenta,
		StockInicial:        l.StockInicial,
		StockActual:         l.StockActual,
		DiasVigenciaPrecio:  l.DiasVigenciaPrecio,
		FechaVencimiento:    l.FechaVencimiento.Format("2006-01-02"),
		DiasParaVencimiento: lote.DiasParaVencimiento(l, hoy),
		Estado:              lote.EstadoDerivado(l, hoy),
	}
}
