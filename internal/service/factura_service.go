package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lotepos/internal/dto"
	"lotepos/internal/factura"
	"lotepos/internal/lote"
	"lotepos/internal/model"
	"lotepos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	// ErrSesionNoAbierta: la sesión de arqueo referenciada no existe o ya no
	// está EN_PROGRESO. Sin sesión abierta no se factura.
	ErrSesionNoAbierta = errors.New("no hay una sesión de arqueo abierta para facturar")
	// ErrPagoInsuficiente: el valor recibido no cubre el total. La factura se
	// rechaza completa y el vuelto queda en 0.
	ErrPagoInsuficiente = errors.New("el valor recibido no cubre el total de la factura")
	// ErrFacturaAnulada: la factura ya fue anulada; la anulación no es idempotente.
	ErrFacturaAnulada = errors.New("la factura ya está anulada")
)

type FacturaService interface {
	// Registrar valida, arma las líneas contra los lotes vigentes y persiste
	// la factura, el descuento de stock y los movimientos de caja en una sola
	// transacción.
	Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarFacturaRequest) (*dto.FacturaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.FacturaResponse, error)
	Listar(ctx context.Context, filter dto.FacturaFilter) (*dto.FacturaListResponse, error)
	// Anular marca la factura anulada, restaura stock a sus lotes de origen y
	// registra los movimientos inversos. Nunca borra nada.
	Anular(ctx context.Context, id uuid.UUID, req dto.AnularFacturaRequest) (*dto.FacturaResponse, error)
}

type facturaService struct {
	facturaRepo  repository.FacturaRepository
	loteRepo     repository.LoteRepository
	productoRepo repository.ProductoRepository
	arqueoRepo   repository.ArqueoRepository
	tarifas      factura.TarifasIVA
	now          func() time.Time
}

func NewFacturaService(
	facturaRepo repository.FacturaRepository,
	loteRepo repository.LoteRepository,
	productoRepo repository.ProductoRepository,
	arqueoRepo repository.ArqueoRepository,
	tarifas factura.TarifasIVA,
) FacturaService {
	return &facturaService{
		facturaRepo:  facturaRepo,
		loteRepo:     loteRepo,
		productoRepo: productoRepo,
		arqueoRepo:   arqueoRepo,
		tarifas:      tarifas,
		now:          time.Now,
	}
}

// lineaArmada junta la línea agregada con el lote del que sale el stock.
type lineaArmada struct {
	linea factura.Linea
	lote  *model.Lote
}

func (s *facturaService) Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarFacturaRequest) (*dto.FacturaResponse, error) {
	sesionID, err := uuid.Parse(req.SesionArqueoID)
	if err != nil {
		return nil, fmt.Errorf("sesion_arqueo_id inválido: %w", err)
	}
	sesion, err := s.arqueoRepo.FindSesionByID(ctx, sesionID)
	if err != nil || sesion.Estado != model.ArqueoEnProgreso {
		return nil, ErrSesionNoAbierta
	}

	hoy := s.now()

	// Armado de líneas: el agregador deduplica por código de barras, así que
	// dos detalles del mismo producto colapsan en uno (gana el último).
	var lineas []factura.Linea
	lotesPorCodigo := make(map[string]*model.Lote)
	for _, d := range req.Detalles {
		p, err := s.productoRepo.FindByBarcode(ctx, d.CodigoBarras)
		if err != nil {
			return nil, fmt.Errorf("producto %s no encontrado", d.CodigoBarras)
		}
		activos, err := s.loteRepo.ListActivos(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		sel, err := lote.Seleccionar(activos, d.Cantidad, hoy)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Nombre, err)
		}
		lineas = factura.AgregarLinea(lineas, factura.Linea{
			ProductoID:     p.ID,
			CodigoBarras:   p.CodigoBarras,
			Nombre:         p.Nombre,
			TipoIVA:        p.TipoIVA,
			Cantidad:       sel.Cantidad,
			PrecioUnitario: sel.Lote.PrecioVenta,
		}, s.tarifas)
		lotesPorCodigo[p.CodigoBarras] = sel.Lote
	}

	totalFactura, totalIVA := factura.Totales(lineas)
	if req.ValorRecibido < totalFactura {
		return nil, fmt.Errorf("%w: recibido %d, total %d", ErrPagoInsuficiente, req.ValorRecibido, totalFactura)
	}

	var clienteID *uuid.UUID
	if req.ClienteID != nil {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, fmt.Errorf("cliente_id inválido: %w", err)
		}
		clienteID = &cid
	}

	f := &model.Factura{
		UsuarioID:      usuarioID,
		ClienteID:      clienteID,
		SesionArqueoID: sesionID,
		TotalFactura:   totalFactura,
		TotalIVA:       totalIVA,
		ValorRecibido:  req.ValorRecibido,
		Vuelto:         factura.Vuelto(req.ValorRecibido, totalFactura),
		Estado:         "completada",
	}
	for i := range lineas {
		l := &lineas[i]
		f.Detalles = append(f.Detalles, model.DetalleFactura{
			ProductoID:     l.ProductoID,
			LoteID:         lotesPorCodigo[l.CodigoBarras].ID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			Subtotal:       l.Subtotal,
			TotalIVA:       l.TotalIVA,
		})
	}
	for _, p := range req.Pagos {
		f.Pagos = append(f.Pagos, model.PagoFactura{Metodo: p.Metodo, Monto: p.Monto})
	}

	txErr := runTx(ctx, s.facturaRepo.DB(), func(tx *gorm.DB) error {
		numero, err := s.facturaRepo.NextNumeroFactura(ctx, tx)
		if err != nil {
			return err
		}
		f.NumeroFactura = numero

		if err := s.facturaRepo.Create(ctx, tx, f); err != nil {
			return err
		}
		for i := range f.Detalles {
			d := &f.Detalles[i]
			if err := s.loteRepo.DescontarStockTx(tx, d.LoteID, d.Cantidad); err != nil {
				return fmt.Errorf("stock insuficiente en lote: %w", err)
			}
		}
		for _, p := range f.Pagos {
			metodo := p.Metodo
			mov := &model.MovimientoCaja{
				SesionArqueoID: sesionID,
				Tipo:           "venta",
				MetodoPago:     &metodo,
				Monto:          p.Monto,
				Descripcion:    fmt.Sprintf("Factura #%d", f.NumeroFactura),
				ReferenciaID:   &f.ID,
			}
			if tx == nil {
				if err := s.arqueoRepo.CreateMovimiento(ctx, mov); err != nil {
					return err
				}
				continue
			}
			if err := s.arqueoRepo.CreateMovimientoTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Int("numero_factura", f.NumeroFactura).
		Int64("total", f.TotalFactura).
		Int64("vuelto", f.Vuelto).
		Int("lineas", len(f.Detalles)).
		Msg("factura registrada")

	resp := s.toResponse(f, lineas, lotesPorCodigo)
	return resp, nil
}

func (s *facturaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.FacturaResponse, error) {
	f, err := s.facturaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := facturaToResponse(f)
	return &resp, nil
}

func (s *facturaService) Listar(ctx context.Context, filter dto.FacturaFilter) (*dto.FacturaListResponse, error) {
	facturas, total, err := s.facturaRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FacturaResponse, 0, len(facturas))
	for i := range facturas {
		out = append(out, facturaToResponse(&facturas[i]))
	}
	return &dto.FacturaListResponse{
		Data:  out,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *facturaService) Anular(ctx context.Context, id uuid.UUID, req dto.AnularFacturaRequest) (*dto.FacturaResponse, error) {
	f, err := s.facturaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.Estado == "anulada" {
		return nil, ErrFacturaAnulada
	}

	txErr := runTx(ctx, s.facturaRepo.DB(), func(tx *gorm.DB) error {
		if err := s.facturaRepo.UpdateEstadoTx(tx, f.ID, "anulada"); err != nil {
			return err
		}
		// El stock vuelve al lote exacto del que salió.
		for i := range f.Detalles {
			d := &f.Detalles[i]
			if err := s.loteRepo.RestaurarStockTx(tx, d.LoteID, d.Cantidad); err != nil {
				return err
			}
		}
		// Movimientos inversos: el libro de caja es inmutable, la anulación
		// asienta montos negativos.
		for _, p := range f.Pagos {
			metodo := p.Metodo
			mov := &model.MovimientoCaja{
				SesionArqueoID: f.SesionArqueoID,
				Tipo:           "anulacion",
				MetodoPago:     &metodo,
				Monto:          -p.Monto,
				Descripcion:    fmt.Sprintf("Anulación factura #%d: %s", f.NumeroFactura, req.Motivo),
				ReferenciaID:   &f.ID,
			}
			if tx == nil {
				if err := s.arqueoRepo.CreateMovimiento(ctx, mov); err != nil {
					return err
				}
				continue
			}
			if err := s.arqueoRepo.CreateMovimientoTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().Int("numero_factura", f.NumeroFactura).Str("motivo", req.Motivo).Msg("factura anulada")

	f.Estado = "anulada"
	resp := facturaToResponse(f)
	return &resp, nil
}

func (s *facturaService) toResponse(f *model.Factura, lineas []factura.Linea, lotes map[string]*model.Lote) *dto.FacturaResponse {
	resp := &dto.FacturaResponse{
		ID:            f.ID.String(),
		NumeroFactura: f.NumeroFactura,
		TotalFactura:  f.TotalFactura,
		TotalIVA:      f.TotalIVA,
		ValorRecibido: f.ValorRecibido,
		Vuelto:        f.Vuelto,
		Estado:        f.Estado,
		CreatedAt:     f.CreatedAt.Format(time.RFC3339),
	}
	for i := range lineas {
		l := &lineas[i]
		resp.Detalles = append(resp.Detalles, dto.DetalleFacturaResponse{
			Producto:       l.Nombre,
			CodigoBarras:   l.CodigoBarras,
			NumeroLote:     lotes[l.CodigoBarras].NumeroLote,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			Subtotal:       l.Subtotal,
			TotalIVA:       l.TotalIVA,
		})
	}
	for _, p := range f.Pagos {
		resp.Pagos = append(resp.Pagos, dto.PagoRequest{Metodo: p.Metodo, Monto: p.Monto})
	}
	return resp
}

func facturaToResponse(f *model.Factura) dto.FacturaResponse {
	resp := dto.FacturaResponse{
		ID:            f.ID.String(),
		NumeroFactura: f.NumeroFactura,
		TotalFactura:  f.TotalFactura,
		TotalIVA:      f.TotalIVA,
		ValorRecibido: f.ValorRecibido,
		Vuelto:        f.Vuelto,
		Estado:        f.Estado,
		CreatedAt:     f.CreatedAt.Format(time.RFC3339),
	}
	for i := range f.Detalles {
		d := &f.Detalles[i]
		det := dto.DetalleFacturaResponse{
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
			TotalIVA:       d.TotalIVA,
		}
		if d.Producto != nil {
			det.Producto = d.Producto.Nombre
			det.CodigoBarras = d.Producto.CodigoBarras
		}
		if d.Lote != nil {
			det.NumeroLote = d.Lote.NumeroLote
		}
		resp.Detalles = append(resp.Detalles, det)
	}
	for _, p := range f.Pagos {
		resp.Pagos = append(resp.Pagos, dto.PagoRequest{Metodo: p.Metodo, Monto: p.Monto})
	}
	return resp
}
