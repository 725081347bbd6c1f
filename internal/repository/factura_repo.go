package repository

import (
	"context"
	"time"

	"lotepos/internal/dto"
	"lotepos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FacturaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, f *model.Factura) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Factura, error)
	List(ctx context.Context, filter dto.FacturaFilter) ([]model.Factura, int64, error)
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error
	NextNumeroFactura(ctx context.Context, tx *gorm.DB) (int, error)
	DB() *gorm.DB
}

type facturaRepo struct{ db *gorm.DB }

func NewFacturaRepository(db *gorm.DB) FacturaRepository { return &facturaRepo{db: db} }

func (r *facturaRepo) Create(ctx context.Context, tx *gorm.DB, f *model.Factura) error {
	db := tx
	if db == nil {
		db = r.db.WithContext(ctx)
	}
	return db.Create(f).Error
}

func (r *facturaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Factura, error) {
	var f model.Factura
	err := r.db.WithContext(ctx).
		Preload("Detalles").
		Preload("Detalles.Producto").
		Preload("Detalles.Lote").
		Preload("Pagos").
		First(&f, id).Error
	return &f, err
}

func (r *facturaRepo) List(ctx context.Context, filter dto.FacturaFilter) ([]model.Factura, int64, error) {
	var facturas []model.Factura
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Factura{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}

	// Fecha vacía = hoy; las fechas llegan date-only y se interpretan en hora local.
	fecha := filter.Fecha
	var desde time.Time
	if fecha == "" {
		now := time.Now()
		desde = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	} else {
		parsed, err := time.ParseInLocation("2006-01-02", fecha, time.Local)
		if err != nil {
			return nil, 0, err
		}
		desde = parsed
	}
	q = q.Where("created_at >= ? AND created_at < ?", desde, desde.AddDate(0, 0, 1))

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Preload("Detalles").
		Preload("Detalles.Producto").
		Preload("Detalles.Lote").
		Preload("Pagos").
		Find(&facturas).Error
	return facturas, total, err
}

func (r *facturaRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.Factura{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *facturaRepo) NextNumeroFactura(ctx context.Context, tx *gorm.DB) (int, error) {
	db := tx
	if db == nil {
		db = r.db.WithContext(ctx)
	}
	var max int
	err := db.Model(&model.Factura{}).
		Select("COALESCE(MAX(numero_factura), 0)").
		Scan(&max).Error
	return max + 1, err
}

func (r *facturaRepo) DB() *gorm.DB { return r.db }
