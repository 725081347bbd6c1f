package tests

import (
	"context"
	"testing"
	"time"

	"lotepos/internal/dto"
	"lotepos/internal/model"
	"lotepos/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildLoteSvc() (service.LoteService, *stubLoteRepo, *stubProductoRepo) {
	loteRepo := newStubLoteRepo()
	productoRepo := newStubProductoRepo()
	return service.NewLoteService(loteRepo, productoRepo), loteRepo, productoRepo
}

func TestActualizarPrecio_CreaLoteNuevoYCierraElVigente(t *testing.T) {
	svc, loteRepo, productoRepo := buildLoteSvc()
	p := seedProducto(productoRepo, "Concentrado 40kg", "7701234567890", "IVA19")
	viejo := seedLote(loteRepo, p.ID, 1, 23000, 12, time.Now().AddDate(0, 0, 3))

	// El precio llega como lo tipeó el humano; los centavos se descartan.
	texto := "$ 25.500,90"
	resp, err := svc.ActualizarPrecio(context.Background(), dto.ActualizarPrecioRequest{
		ProductoID:         p.ID.String(),
		PrecioVentaTexto:   &texto,
		Stock:              12,
		DiasVigenciaPrecio: 8,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.NumeroLote)
	assert.Equal(t, int64(25500), resp.PrecioVenta)
	assert.Equal(t, model.LoteActivo, resp.Estado)
	assert.Equal(t, 8, resp.DiasParaVencimiento)

	// El lote anterior quedó CERRADO con su precio intacto.
	assert.Equal(t, model.LoteCerrado, loteRepo.lotes[viejo.ID].Estado)
	assert.Equal(t, int64(23000), loteRepo.lotes[viejo.ID].PrecioVenta)
}

func TestActualizarPrecio_RechazaPrecioNoParseable(t *testing.T) {
	svc, _, productoRepo := buildLoteSvc()
	p := seedProducto(productoRepo, "Maíz pira 500g", "7700000000080", "EXENTO")

	// "abc" degrada a 0 y el servicio lo rechaza: nunca se crea un lote gratis.
	texto := "abc"
	_, err := svc.ActualizarPrecio(context.Background(), dto.ActualizarPrecioRequest{
		ProductoID:         p.ID.String(),
		PrecioVentaTexto:   &texto,
		Stock:              5,
		DiasVigenciaPrecio: 8,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mayor a cero")
}

func TestActualizarPrecio_ProductoInexistente(t *testing.T) {
	svc, _, _ := buildLoteSvc()
	_, err := svc.ActualizarPrecio(context.Background(), dto.ActualizarPrecioRequest{
		ProductoID:         "00000000-0000-0000-0000-000000000001",
		PrecioVenta:        1000,
		Stock:              1,
		DiasVigenciaPrecio: 8,
	})
	require.Error(t, err)
}

func TestRecibirCompra_NumeroConsecutivo(t *testing.T) {
	svc, _, productoRepo := buildLoteSvc()
	p := seedProducto(productoRepo, "Avena 1kg", "7700000000097", "EXENTO")

	primero, err := svc.RecibirCompra(context.Background(), dto.RecibirCompraRequest{
		ProductoID: p.ID.String(), PrecioVenta: 5000, Stock: 30, DiasVigenciaPrecio: 15,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, primero.NumeroLote)

	segundo, err := svc.RecibirCompra(context.Background(), dto.RecibirCompraRequest{
		ProductoID: p.ID.String(), PrecioVenta: 5200, Stock: 30, DiasVigenciaPrecio: 15,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, segundo.NumeroLote)
}

func TestListActivos_EstadoDerivado(t *testing.T) {
	svc, loteRepo, productoRepo := buildLoteSvc()
	p := seedProducto(productoRepo, "Gallinaza 25kg", "7700000000103", "EXENTO")

	seedLote(loteRepo, p.ID, 1, 9000, 10, time.Now().AddDate(0, 0, -2)) // precio vencido
	seedLote(loteRepo, p.ID, 2, 9500, 10, time.Now().AddDate(0, 0, 6))  // vigente

	resp, err := svc.ListActivos(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, resp, 2)

	// VENCIDO se deriva al leer, nunca se persiste.
	assert.Equal(t, model.LoteVencido, resp[0].Estado)
	assert.True(t, resp[0].DiasParaVencimiento < 0)
	assert.Equal(t, model.LoteActivo, resp[1].Estado)
	assert.Equal(t, model.LoteActivo, loteRepo.serie[p.ID][0].Estado)
}

func TestPorVencer_SoloVentanaYOrdenadoPorUrgencia(t *testing.T) {
	svc, loteRepo, productoRepo := buildLoteSvc()
	p := seedProducto(productoRepo, "Torta de soya 40kg", "7700000000110", "IVA19")

	manana := seedLote(loteRepo, p.ID, 1, 10000, 5, time.Now().AddDate(0, 0, 1))
	hoy := seedLote(loteRepo, p.ID, 2, 10500, 5, time.Now())
	seedLote(loteRepo, p.ID, 3, 11000, 5, time.Now().AddDate(0, 0, 10)) // fuera de ventana
	seedLote(loteRepo, p.ID, 4, 11500, 5, time.Now().AddDate(0, 0, -1)) // ya vencido: no es alerta
	sinStock := seedLote(loteRepo, p.ID, 5, 12000, 1, time.Now())
	sinStock.StockActual = 0
	sinStock.Estado = model.LoteAgotado

	resp, err := svc.PorVencer(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, resp, 2)

	// Más urgente primero: vence hoy (0 días) antes que mañana (1 día).
	assert.Equal(t, hoy.ID.String(), resp[0].LoteID)
	assert.Equal(t, 0, resp[0].DiasParaVencimiento)
	assert.Equal(t, manana.ID.String(), resp[1].LoteID)
	assert.Equal(t, 1, resp[1].DiasParaVencimiento)
}
