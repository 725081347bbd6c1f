package tests

import (
	"context"
	"testing"
	"time"

	"lotepos/internal/dto"
	"lotepos/internal/lote"
	"lotepos/internal/model"
	"lotepos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Armado del servicio ───────────────────────────────────────────────────────

func buildFacturaSvc() (service.FacturaService, *stubFacturaRepo, *stubLoteRepo, *stubProductoRepo, *stubArqueoRepo) {
	facturaRepo := newStubFacturaRepo()
	loteRepo := newStubLoteRepo()
	productoRepo := newStubProductoRepo()
	arqueoRepo := newStubArqueoRepo()
	tarifas := stubTarifas{"IVA19": decimal.NewFromInt(19), "EXENTO": decimal.Zero}

	svc := service.NewFacturaService(facturaRepo, loteRepo, productoRepo, arqueoRepo, tarifas)
	return svc, facturaRepo, loteRepo, productoRepo, arqueoRepo
}

func abrirSesion(t *testing.T, arqueoRepo *stubArqueoRepo) uuid.UUID {
	t.Helper()
	sesion := &model.SesionArqueo{
		UsuarioID: uuid.New(),
		Estado:    model.ArqueoEnProgreso,
		OpenedAt:  time.Now(),
	}
	require.NoError(t, arqueoRepo.CreateSesion(context.Background(), sesion))
	return sesion.ID
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestRegistrarFactura_OK(t *testing.T) {
	svc, _, loteRepo, productoRepo, arqueoRepo := buildFacturaSvc()
	sesionID := abrirSesion(t, arqueoRepo)

	p := seedProducto(productoRepo, "Concentrado 40kg", "7701234567890", "IVA19")
	l := seedLote(loteRepo, p.ID, 1, 25500, 10, time.Now().AddDate(0, 0, 8))

	resp, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarFacturaRequest{
		SesionArqueoID: sesionID.String(),
		Detalles:       []dto.DetalleFacturaRequest{{CodigoBarras: p.CodigoBarras, Cantidad: 2}},
		Pagos:          []dto.PagoRequest{{Metodo: "efectivo", Monto: 60000}},
		ValorRecibido:  60000,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.NumeroFactura)
	assert.Equal(t, int64(51000), resp.TotalFactura)
	// IVA 19% de 51000 truncado a pesos enteros
	assert.Equal(t, int64(9690), resp.TotalIVA)
	assert.Equal(t, int64(9000), resp.Vuelto)
	require.Len(t, resp.Detalles, 1)
	assert.Equal(t, 1, resp.Detalles[0].NumeroLote)

	// El stock salió del lote exacto
	assert.Equal(t, 8, loteRepo.lotes[l.ID].StockActual)

	// Un movimiento de caja por pago
	require.Len(t, arqueoRepo.movimientos, 1)
	assert.Equal(t, "venta", arqueoRepo.movimientos[0].Tipo)
	assert.Equal(t, int64(60000), arqueoRepo.movimientos[0].Monto)
}

func TestRegistrarFactura_DetalleRepetidoNoDuplicaLinea(t *testing.T) {
	svc, _, loteRepo, productoRepo, arqueoRepo := buildFacturaSvc()
	sesionID := abrirSesion(t, arqueoRepo)

	p := seedProducto(productoRepo, "Maíz amarillo 1kg", "7700000000011", "EXENTO")
	seedLote(loteRepo, p.ID, 1, 1000, 50, time.Now().AddDate(0, 0, 8))

	// El mismo código de barras dos veces: la línea se actualiza, no se
	// duplica, y gana la última cantidad.
	resp, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarFacturaRequest{
		SesionArqueoID: sesionID.String(),
		Detalles: []dto.DetalleFacturaRequest{
			{CodigoBarras: p.CodigoBarras, Cantidad: 2},
			{CodigoBarras: p.CodigoBarras, Cantidad: 5},
		},
		Pagos:         []dto.PagoRequest{{Metodo: "efectivo", Monto: 5000}},
		ValorRecibido: 5000,
	})
	require.NoError(t, err)

	require.Len(t, resp.Detalles, 1)
	assert.Equal(t, 5, resp.Detalles[0].Cantidad)
	assert.Equal(t, int64(5000), resp.TotalFactura)
}

func TestRegistrarFactura_PagoInsuficiente(t *testing.T) {
	svc, facturaRepo, loteRepo, productoRepo, arqueoRepo := buildFacturaSvc()
	sesionID := abrirSesion(t, arqueoRepo)

	p := seedProducto(productoRepo, "Purina 500g", "7700000000028", "EXENTO")
	l := seedLote(loteRepo, p.ID, 1, 7000, 10, time.Now().AddDate(0, 0, 8))

	// Recibido 5000 contra un total de 7000: la factura se rechaza entera.
	_, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarFacturaRequest{
		SesionArqueoID: sesionID.String(),
		Detalles:       []dto.DetalleFacturaRequest{{CodigoBarras: p.CodigoBarras, Cantidad: 1}},
		Pagos:          []dto.PagoRequest{{Metodo: "efectivo", Monto: 5000}},
		ValorRecibido:  5000,
	})
	require.ErrorIs(t, err, service.ErrPagoInsuficiente)

	// Nada quedó persistido: ni factura, ni descuento de stock, ni movimientos.
	assert.Empty(t, facturaRepo.facturas)
	assert.Equal(t, 10, loteRepo.lotes[l.ID].StockActual)
	assert.Empty(t, arqueoRepo.movimientos)
}

func TestRegistrarFactura_PrecioVencido(t *testing.T) {
	svc, _, loteRepo, productoRepo, arqueoRepo := buildFacturaSvc()
	sesionID := abrirSesion(t, arqueoRepo)

	p := seedProducto(productoRepo, "Afrecho 5kg", "7700000000035", "EXENTO")
	// Único lote con stock pero vencido ayer: error duro, no venta a precio viejo.
	seedLote(loteRepo, p.ID, 1, 12000, 10, time.Now().AddDate(0, 0, -1))

	_, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarFacturaRequest{
		SesionArqueoID: sesionID.String(),
		Detalles:       []dto.DetalleFacturaRequest{{CodigoBarras: p.CodigoBarras, Cantidad: 1}},
		Pagos:          []dto.PagoRequest{{Metodo: "efectivo", Monto: 12000}},
		ValorRecibido:  12000,
	})
	require.ErrorIs(t, err, lote.ErrPrecioVencido)
}

func TestRegistrarFactura_FIFOEligeLoteMasAntiguo(t *testing.T) {
	svc, _, loteRepo, productoRepo, arqueoRepo := buildFacturaSvc()
	sesionID := abrirSesion(t, arqueoRepo)

	p := seedProducto(productoRepo, "Salvado 2kg", "7700000000042", "EXENTO")
	viejo := seedLote(loteRepo, p.ID, 1, 8000, 3, time.Now().AddDate(0, 0, 5))
	nuevo := seedLote(loteRepo, p.ID, 2, 9000, 20, time.Now().AddDate(0, 0, 8))

	resp, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarFacturaRequest{
		SesionArqueoID: sesionID.String(),
		Detalles:       []dto.DetalleFacturaRequest{{CodigoBarras: p.CodigoBarras, Cantidad: 2}},
		Pagos:          []dto.PagoRequest{{Metodo: "efectivo", Monto: 16000}},
		ValorRecibido:  16000,
	})
	require.NoError(t, err)

	// Vende del lote 1 (más antiguo) a su precio, no al del lote 2.
	assert.Equal(t, 1, resp.Detalles[0].NumeroLote)
	assert.Equal(t, int64(8000), resp.Detalles[0].PrecioUnitario)
	assert.Equal(t, 1, loteRepo.lotes[viejo.ID].StockActual)
	assert.Equal(t, 20, loteRepo.lotes[nuevo.ID].StockActual)
}

func TestRegistrarFactura_CantidadSeAcotaAlStock(t *testing.T) {
	svc, _, loteRepo, productoRepo, arqueoRepo := buildFacturaSvc()
	sesionID := abrirSesion(t, arqueoRepo)

	p := seedProducto(productoRepo, "Melaza 1L", "7700000000059", "EXENTO")
	l := seedLote(loteRepo, p.ID, 1, 4000, 3, time.Now().AddDate(0, 0, 8))

	resp, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarFacturaRequest{
		SesionArqueoID: sesionID.String(),
		Detalles:       []dto.DetalleFacturaRequest{{CodigoBarras: p.CodigoBarras, Cantidad: 10}},
		Pagos:          []dto.PagoRequest{{Metodo: "efectivo", Monto: 12000}},
		ValorRecibido:  12000,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Detalles[0].Cantidad)
	assert.Equal(t, int64(12000), resp.TotalFactura)
	assert.Equal(t, 0, loteRepo.lotes[l.ID].StockActual)
	assert.Equal(t, model.LoteAgotado, loteRepo.lotes[l.ID].Estado)
}

func TestRegistrarFactura_SinSesionAbierta(t *testing.T) {
	svc, _, loteRepo, productoRepo, _ := buildFacturaSvc()

	p := seedProducto(productoRepo, "Sal mineral 1kg", "7700000000066", "EXENTO")
	seedLote(loteRepo, p.ID, 1, 3000, 10, time.Now().AddDate(0, 0, 8))

	_, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarFacturaRequest{
		SesionArqueoID: uuid.New().String(),
		Detalles:       []dto.DetalleFacturaRequest{{CodigoBarras: p.CodigoBarras, Cantidad: 1}},
		Pagos:          []dto.PagoRequest{{Metodo: "efectivo", Monto: 3000}},
		ValorRecibido:  3000,
	})
	require.ErrorIs(t, err, service.ErrSesionNoAbierta)
}

func TestAnularFactura_RestauraStockYAsientaInversos(t *testing.T) {
	svc, _, loteRepo, productoRepo, arqueoRepo := buildFacturaSvc()
	sesionID := abrirSesion(t, arqueoRepo)

	p := seedProducto(productoRepo, "Heno 10kg", "7700000000073", "EXENTO")
	l := seedLote(loteRepo, p.ID, 1, 15000, 5, time.Now().AddDate(0, 0, 8))

	resp, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarFacturaRequest{
		SesionArqueoID: sesionID.String(),
		Detalles:       []dto.DetalleFacturaRequest{{CodigoBarras: p.CodigoBarras, Cantidad: 2}},
		Pagos:          []dto.PagoRequest{{Metodo: "efectivo", Monto: 30000}},
		ValorRecibido:  30000,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, loteRepo.lotes[l.ID].StockActual)

	facturaID, err := uuid.Parse(resp.ID)
	require.NoError(t, err)

	anulada, err := svc.Anular(context.Background(), facturaID, dto.AnularFacturaRequest{Motivo: "cliente se arrepintió"})
	require.NoError(t, err)
	assert.Equal(t, "anulada", anulada.Estado)

	// Stock de vuelta al lote de origen
	assert.Equal(t, 5, loteRepo.lotes[l.ID].StockActual)

	// El libro no se reescribe: venta + inverso
	require.Len(t, arqueoRepo.movimientos, 2)
	assert.Equal(t, "anulacion", arqueoRepo.movimientos[1].Tipo)
	assert.Equal(t, int64(-30000), arqueoRepo.movimientos[1].Monto)

	// Segunda anulación se rechaza
	_, err = svc.Anular(context.Background(), facturaID, dto.AnularFacturaRequest{Motivo: "otra vez"})
	require.ErrorIs(t, err, service.ErrFacturaAnulada)
}
