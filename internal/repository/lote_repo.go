package repository

import (
	"context"
	"time"

	"lotepos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoteRepository es el acceso a la tabla append-only de lotes. No existe
// Update de precio ni Delete: la única mutación sobre una fila existente es
// el descuento de stock y el cambio de estado.
type LoteRepository interface {
	Create(ctx context.Context, l *model.Lote) error
	CreateTx(tx *gorm.DB, l *model.Lote) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Lote, error)
	// ListActivos trae los lotes con stock del producto, más antiguos primero.
	ListActivos(ctx context.Context, productoID uuid.UUID) ([]model.Lote, error)
	ListByProducto(ctx context.Context, productoID uuid.UUID) ([]model.Lote, error)
	// NextNumeroLote retorna el consecutivo siguiente del producto (desde 1).
	NextNumeroLote(ctx context.Context, tx *gorm.DB, productoID uuid.UUID) (int, error)
	// CerrarVigenteTx marca CERRADO el lote ACTIVO vigente del producto.
	CerrarVigenteTx(tx *gorm.DB, productoID uuid.UUID) error
	// DescontarStockTx descuenta stock de un lote puntual dentro de una tx.
	// Falla si el stock quedaría negativo.
	DescontarStockTx(tx *gorm.DB, loteID uuid.UUID, cantidad int) error
	RestaurarStockTx(tx *gorm.DB, loteID uuid.UUID, cantidad int) error
	// ListPorVencer trae lotes con stock cuyo vencimiento cae hasta la fecha límite.
	ListPorVencer(ctx context.Context, limite time.Time) ([]model.Lote, error)
	DB() *gorm.DB
}

type loteRepo struct{ db *gorm.DB }

func NewLoteRepository(db *gorm.DB) LoteRepository { return &loteRepo{db: db} }

func (r *loteRepo) Create(ctx context.Context, l *model.Lote) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *loteRepo) CreateTx(tx *gorm.DB, l *model.Lote) error {
	return tx.Create(l).Error
}

func (r *loteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Lote, error) {
	var l model.Lote
	err := r.db.WithContext(ctx).First(&l, id).Error
	return &l, err
}

func (r *loteRepo) ListActivos(ctx context.Context, productoID uuid.UUID) ([]model.Lote, error) {
	var lotes []model.Lote
	err := r.db.WithContext(ctx).
		Where("producto_id = ? AND stock_actual > 0 AND estado <> ?", productoID, model.LoteCerrado).
		Order("numero_lote ASC").
		Find(&lotes).Error
	return lotes, err
}

func (r *loteRepo) ListByProducto(ctx context.Context, productoID uuid.UUID) ([]model.Lote, error) {
	var lotes []model.Lote
	err := r.db.WithContext(ctx).
		Where("producto_id = ?", productoID).
		Order("numero_lote ASC").
		Find(&lotes).Error
	return lotes, err
}

func (r *loteRepo) NextNumeroLote(ctx context.Context, tx *gorm.DB, productoID uuid.UUID) (int, error) {
	db := tx
	if db == nil {
		db = r.db.WithContext(ctx)
	}
	var max int
	err := db.Model(&model.Lote{}).
		Where("producto_id = ?", productoID).
		Select("COALESCE(MAX(numero_lote), 0)").
		Scan(&max).Error
	return max + 1, err
}

func (r *loteRepo) CerrarVigenteTx(tx *gorm.DB, productoID uuid.UUID) error {
	return tx.Model(&model.Lote{}).
		Where("producto_id = ? AND estado = ?", productoID, model.LoteActivo).
		Update("estado", model.LoteCerrado).Error
}

func (r *loteRepo) DescontarStockTx(tx *gorm.DB, loteID uuid.UUID, cantidad int) error {
	res := tx.Model(&model.Lote{}).
		Where("id = ? AND stock_actual >= ?", loteID, cantidad).
		Update("stock_actual", gorm.Expr("stock_actual - ?", cantidad))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	// Lote sin stock pasa a AGOTADO (invariante: AGOTADO ⟺ stock 0).
	return tx.Model(&model.Lote{}).
		Where("id = ? AND stock_actual = 0 AND estado = ?", loteID, model.LoteActivo).
		Update("estado", model.LoteAgotado).Error
}

func (r *loteRepo) RestaurarStockTx(tx *gorm.DB, loteID uuid.UUID, cantidad int) error {
	if err := tx.Model(&model.Lote{}).
		Where("id = ?", loteID).
		Update("stock_actual", gorm.Expr("stock_actual + ?", cantidad)).Error; err != nil {
		return err
	}
	return tx.Model(&model.Lote{}).
		Where("id = ? AND stock_actual > 0 AND estado = ?", loteID, model.LoteAgotado).
		Update("estado", model.LoteActivo).Error
}

func (r *loteRepo) ListPorVencer(ctx context.Context, limite time.Time) ([]model.Lote, error) {
	var lotes []model.Lote
	err := r.db.WithContext(ctx).
		Preload("Producto").
		Where("stock_actual > 0 AND estado = ? AND fecha_vencimiento <= ?", model.LoteActivo, limite).
		Order("fecha_vencimiento ASC").
		Find(&lotes).Error
	return lotes, err
}

func (r *loteRepo) DB() *gorm.DB { return r.db }
