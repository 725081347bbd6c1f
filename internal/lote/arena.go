package lote

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"lotepos/internal/model"
)

// Arena es el registro append-only de lotes en memoria, indexado por
// (producto, numero_lote). Replica los invariantes de la tabla lotes sin
// base de datos: los lotes se agregan y se les descuenta stock, jamás se
// eliminan ni se les cambia el precio. Respalda los tests de los servicios
// y cualquier despliegue sin Postgres (demo, caja offline).
type Arena struct {
	mu    sync.RWMutex
	lotes map[uuid.UUID][]model.Lote // por producto, en orden de creación
}

func NewArena() *Arena {
	return &Arena{lotes: make(map[uuid.UUID][]model.Lote)}
}

// Agregar crea el siguiente lote del producto: numero_lote consecutivo y
// vencimiento calculado desde la fecha de ingreso. El lote vigente anterior
// (si existe y aún está ACTIVO) pasa a CERRADO — eso ES la actualización de
// precio: una fila nueva, nunca una mutación.
func (a *Arena) Agregar(productoID uuid.UUID, precioVenta int64, stock, diasVigencia int, ingreso time.Time) model.Lote {
	a.mu.Lock()
	defer a.mu.Unlock()

	serie := a.lotes[productoID]
	for i := range serie {
		if serie[i].Estado == model.LoteActivo {
			serie[i].Estado = model.LoteCerrado
		}
	}

	nuevo := model.Lote{
		ID:                 uuid.New(),
		ProductoID:         productoID,
		NumeroLote:         len(serie) + 1,
		FechaIngreso:       ingreso,
		PrecioVenta:        precioVenta,
		StockInicial:       stock,
		StockActual:        stock,
		DiasVigenciaPrecio: diasVigencia,
		FechaVencimiento:   FechaVencimientoDesde(ingreso, diasVigencia),
		Estado:             model.LoteActivo,
	}
	a.lotes[productoID] = append(serie, nuevo)
	return nuevo
}

// Serie devuelve una copia de todos los lotes del producto en orden de creación.
func (a *Arena) Serie(productoID uuid.UUID) []model.Lote {
	a.mu.RLock()
	defer a.mu.RUnlock()
	serie := a.lotes[productoID]
	out := make([]model.Lote, len(serie))
	copy(out, serie)
	return out
}

var errStockInsuficiente = errors.New("stock insuficiente en el lote")

// Descontar baja stock de un lote puntual. Al llegar a cero el lote queda
// AGOTADO. Es la única mutación permitida sobre un lote existente.
func (a *Arena) Descontar(productoID uuid.UUID, numeroLote, cantidad int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	serie := a.lotes[productoID]
	for i := range serie {
		if serie[i].NumeroLote != numeroLote {
			continue
		}
		if cantidad > serie[i].StockActual {
			return errStockInsuficiente
		}
		serie[i].StockActual -= cantidad
		if serie[i].StockActual == 0 && serie[i].Estado == model.LoteActivo {
			serie[i].Estado = model.LoteAgotado
		}
		return nil
	}
	return errors.New("lote no encontrado")
}
