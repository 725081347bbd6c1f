package repository

import (
	"context"

	"lotepos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ArqueoRepository interface {
	CreateSesion(ctx context.Context, s *model.SesionArqueo) error
	FindSesionByID(ctx context.Context, id uuid.UUID) (*model.SesionArqueo, error)
	// FindSesionEnProgreso retorna la sesión abierta del usuario; nil si no hay.
	FindSesionEnProgreso(ctx context.Context, usuarioID uuid.UUID) (*model.SesionArqueo, error)
	UpdateSesion(ctx context.Context, s *model.SesionArqueo) error
	ReplaceDenominaciones(ctx context.Context, sesionID uuid.UUID, denoms []model.DenominacionConteo) error
	ListSesiones(ctx context.Context, page, limit int) ([]model.SesionArqueo, int64, error)

	CreateMovimiento(ctx context.Context, m *model.MovimientoCaja) error
	CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoCaja) error
	// SumMovimientosByMetodo agrupa los montos de la sesión por medio de pago.
	SumMovimientosByMetodo(ctx context.Context, sesionID uuid.UUID) (map[string]int64, error)
}

type arqueoRepo struct{ db *gorm.DB }

func NewArqueoRepository(db *gorm.DB) ArqueoRepository { return &arqueoRepo{db: db} }

func (r *arqueoRepo) CreateSesion(ctx context.Context, s *model.SesionArqueo) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *arqueoRepo) FindSesionByID(ctx context.Context, id uuid.UUID) (*model.SesionArqueo, error) {
	var s model.SesionArqueo
	err := r.db.WithContext(ctx).Preload("Denominaciones").First(&s, id).Error
	return &s, err
}

func (r *arqueoRepo) FindSesionEnProgreso(ctx context.Context, usuarioID uuid.UUID) (*model.SesionArqueo, error) {
	var s model.SesionArqueo
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND estado = ?", usuarioID, model.ArqueoEnProgreso).
		Preload("Denominaciones").
		First(&s).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	return &s, err
}

func (r *arqueoRepo) UpdateSesion(ctx context.Context, s *model.SesionArqueo) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *arqueoRepo) ReplaceDenominaciones(ctx context.Context, sesionID uuid.UUID, denoms []model.DenominacionConteo) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sesion_arqueo_id = ?", sesionID).
			Delete(&model.DenominacionConteo{}).Error; err != nil {
			return err
		}
		if len(denoms) == 0 {
			return nil
		}
		return tx.Create(&denoms).Error
	})
}

func (r *arqueoRepo) ListSesiones(ctx context.Context, page, limit int) ([]model.SesionArqueo, int64, error) {
	var sesiones []model.SesionArqueo
	var total int64

	q := r.db.WithContext(ctx).Model(&model.SesionArqueo{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("opened_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Preload("Denominaciones").
		Find(&sesiones).Error
	return sesiones, total, err
}

func (r *arqueoRepo) CreateMovimiento(ctx context.Context, m *model.MovimientoCaja) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *arqueoRepo) CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoCaja) error {
	return tx.Create(m).Error
}

func (r *arqueoRepo) SumMovimientosByMetodo(ctx context.Context, sesionID uuid.UUID) (map[string]int64, error) {
	type fila struct {
		MetodoPago string
		Total      int64
	}
	var filas []fila
	err := r.db.WithContext(ctx).
		Model(&model.MovimientoCaja{}).
		Select("metodo_pago, SUM(monto) AS total").
		Where("sesion_arqueo_id = ? AND metodo_pago IS NOT NULL", sesionID).
		Group("metodo_pago").
		Scan(&filas).Error
	if err != nil {
		return nil, err
	}
	sums := make(map[string]int64, len(filas))
	for _, f := range filas {
		sums[f.MetodoPago] = f.Total
	}
	return sums, nil
}
