package tests

import (
	"context"
	"errors"
	"time"

	"lotepos/internal/dto"
	"lotepos/internal/model"
	"lotepos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubProductoRepo es un ProductoRepository en memoria.
type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
	byBarcode map[string]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{
		productos: make(map[uuid.UUID]*model.Producto),
		byBarcode: make(map[string]*model.Producto),
	}
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	r.byBarcode[p.CodigoBarras] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubProductoRepo) FindByBarcode(_ context.Context, barcode string) (*model.Producto, error) {
	p, ok := r.byBarcode[barcode]
	if !ok || !p.Activo {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	var out []model.Producto
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	r.byBarcode[p.CodigoBarras] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = false
	}
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = true
	}
	return nil
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

func seedProducto(r *stubProductoRepo, nombre, barcode, tipoIVA string) *model.Producto {
	p := &model.Producto{
		ID:           uuid.New(),
		CodigoBarras: barcode,
		Nombre:       nombre,
		TipoIVA:      tipoIVA,
		UnidadMedida: "unidad",
		Activo:       true,
	}
	_ = r.Create(context.Background(), p)
	return p
}

// stubLoteRepo mantiene la serie append-only de lotes por producto.
type stubLoteRepo struct {
	lotes map[uuid.UUID]*model.Lote
	serie map[uuid.UUID][]*model.Lote
}

func newStubLoteRepo() *stubLoteRepo {
	return &stubLoteRepo{
		lotes: make(map[uuid.UUID]*model.Lote),
		serie: make(map[uuid.UUID][]*model.Lote),
	}
}

func (r *stubLoteRepo) Create(_ context.Context, l *model.Lote) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	r.lotes[l.ID] = l
	r.serie[l.ProductoID] = append(r.serie[l.ProductoID], l)
	return nil
}

func (r *stubLoteRepo) CreateTx(_ *gorm.DB, l *model.Lote) error {
	return r.Create(context.Background(), l)
}

func (r *stubLoteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Lote, error) {
	l, ok := r.lotes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return l, nil
}

func (r *stubLoteRepo) ListActivos(_ context.Context, productoID uuid.UUID) ([]model.Lote, error) {
	var out []model.Lote
	for _, l := range r.serie[productoID] {
		if l.StockActual > 0 && l.Estado != model.LoteCerrado {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *stubLoteRepo) ListByProducto(_ context.Context, productoID uuid.UUID) ([]model.Lote, error) {
	var out []model.Lote
	for _, l := range r.serie[productoID] {
		out = append(out, *l)
	}
	return out, nil
}

func (r *stubLoteRepo) NextNumeroLote(_ context.Context, _ *gorm.DB, productoID uuid.UUID) (int, error) {
	max := 0
	for _, l := range r.serie[productoID] {
		if l.NumeroLote > max {
			max = l.NumeroLote
		}
	}
	return max + 1, nil
}

func (r *stubLoteRepo) CerrarVigenteTx(_ *gorm.DB, productoID uuid.UUID) error {
	for _, l := range r.serie[productoID] {
		if l.Estado == model.LoteActivo {
			l.Estado = model.LoteCerrado
		}
	}
	return nil
}

func (r *stubLoteRepo) DescontarStockTx(_ *gorm.DB, loteID uuid.UUID, cantidad int) error {
	l, ok := r.lotes[loteID]
	if !ok || l.StockActual < cantidad {
		return gorm.ErrRecordNotFound
	}
	l.StockActual -= cantidad
	if l.StockActual == 0 && l.Estado == model.LoteActivo {
		l.Estado = model.LoteAgotado
	}
	return nil
}

func (r *stubLoteRepo) RestaurarStockTx(_ *gorm.DB, loteID uuid.UUID, cantidad int) error {
	l, ok := r.lotes[loteID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	l.StockActual += cantidad
	if l.StockActual > 0 && l.Estado == model.LoteAgotado {
		l.Estado = model.LoteActivo
	}
	return nil
}

func (r *stubLoteRepo) ListPorVencer(_ context.Context, limite time.Time) ([]model.Lote, error) {
	var out []model.Lote
	for _, l := range r.lotes {
		if l.StockActual > 0 && l.Estado == model.LoteActivo && !l.FechaVencimiento.After(limite) {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *stubLoteRepo) DB() *gorm.DB { return nil }

var _ repository.LoteRepository = (*stubLoteRepo)(nil)

func seedLote(r *stubLoteRepo, productoID uuid.UUID, numero int, precio int64, stock int, vence time.Time) *model.Lote {
	l := &model.Lote{
		ID:                 uuid.New(),
		ProductoID:         productoID,
		NumeroLote:         numero,
		FechaIngreso:       time.Now(),
		PrecioVenta:        precio,
		StockInicial:       stock,
		StockActual:        stock,
		DiasVigenciaPrecio: 8,
		FechaVencimiento:   vence,
		Estado:             model.LoteActivo,
	}
	_ = r.Create(context.Background(), l)
	return l
}

// stubFacturaRepo acumula facturas en memoria con consecutivo propio.
type stubFacturaRepo struct {
	facturas map[uuid.UUID]*model.Factura
	seq      int
}

func newStubFacturaRepo() *stubFacturaRepo {
	return &stubFacturaRepo{facturas: make(map[uuid.UUID]*model.Factura)}
}

func (r *stubFacturaRepo) Create(_ context.Context, _ *gorm.DB, f *model.Factura) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.CreatedAt = time.Now()
	r.facturas[f.ID] = f
	return nil
}

func (r *stubFacturaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Factura, error) {
	f, ok := r.facturas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return f, nil
}

func (r *stubFacturaRepo) List(_ context.Context, _ dto.FacturaFilter) ([]model.Factura, int64, error) {
	var out []model.Factura
	for _, f := range r.facturas {
		out = append(out, *f)
	}
	return out, int64(len(out)), nil
}

func (r *stubFacturaRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	f, ok := r.facturas[id]
	if !ok {
		return errors.New("not found")
	}
	f.Estado = estado
	return nil
}

func (r *stubFacturaRepo) NextNumeroFactura(_ context.Context, _ *gorm.DB) (int, error) {
	r.seq++
	return r.seq, nil
}

func (r *stubFacturaRepo) DB() *gorm.DB { return nil }

var _ repository.FacturaRepository = (*stubFacturaRepo)(nil)

// stubArqueoRepo guarda sesiones y el libro de movimientos.
type stubArqueoRepo struct {
	sesiones    map[uuid.UUID]*model.SesionArqueo
	movimientos []model.MovimientoCaja
}

func newStubArqueoRepo() *stubArqueoRepo {
	return &stubArqueoRepo{sesiones: make(map[uuid.UUID]*model.SesionArqueo)}
}

func (r *stubArqueoRepo) CreateSesion(_ context.Context, s *model.SesionArqueo) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sesiones[s.ID] = s
	return nil
}

func (r *stubArqueoRepo) FindSesionByID(_ context.Context, id uuid.UUID) (*model.SesionArqueo, error) {
	s, ok := r.sesiones[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (r *stubArqueoRepo) FindSesionEnProgreso(_ context.Context, usuarioID uuid.UUID) (*model.SesionArqueo, error) {
	for _, s := range r.sesiones {
		if s.UsuarioID == usuarioID && s.Estado == model.ArqueoEnProgreso {
			return s, nil
		}
	}
	return nil, nil
}

func (r *stubArqueoRepo) UpdateSesion(_ context.Context, s *model.SesionArqueo) error {
	r.sesiones[s.ID] = s
	return nil
}

func (r *stubArqueoRepo) ReplaceDenominaciones(_ context.Context, sesionID uuid.UUID, denoms []model.DenominacionConteo) error {
	if s, ok := r.sesiones[sesionID]; ok {
		s.Denominaciones = denoms
	}
	return nil
}

func (r *stubArqueoRepo) ListSesiones(_ context.Context, _, _ int) ([]model.SesionArqueo, int64, error) {
	var out []model.SesionArqueo
	for _, s := range r.sesiones {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubArqueoRepo) CreateMovimiento(_ context.Context, m *model.MovimientoCaja) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubArqueoRepo) CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoCaja) error {
	return r.CreateMovimiento(context.Background(), m)
}

func (r *stubArqueoRepo) SumMovimientosByMetodo(_ context.Context, sesionID uuid.UUID) (map[string]int64, error) {
	sums := make(map[string]int64)
	for _, m := range r.movimientos {
		if m.SesionArqueoID == sesionID && m.MetodoPago != nil {
			sums[*m.MetodoPago] += m.Monto
		}
	}
	return sums, nil
}

var _ repository.ArqueoRepository = (*stubArqueoRepo)(nil)

// stubTarifas resuelve porcentajes de IVA de un mapa fijo, fail-open a 0.
type stubTarifas map[string]decimal.Decimal

func (t stubTarifas) Porcentaje(codigo string) decimal.Decimal {
	pct, ok := t[codigo]
	if !ok {
		return decimal.Zero
	}
	return pct
}

// stubMailer captura los envíos para assertions.
type stubMailer struct {
	asuntos []string
	fail    bool
}

func (m *stubMailer) Send(asunto, _ string) error {
	if m.fail {
		return errors.New("smtp down")
	}
	m.asuntos = append(m.asuntos, asunto)
	return nil
}
