package repository

import (
	"context"

	"lotepos/internal/model"

	"gorm.io/gorm"
)

type TipoIVARepository interface {
	ListActivos(ctx context.Context) ([]model.TipoIVA, error)
	Create(ctx context.Context, t *model.TipoIVA) error
}

type tipoIVARepo struct{ db *gorm.DB }

func NewTipoIVARepository(db *gorm.DB) TipoIVARepository { return &tipoIVARepo{db: db} }

func (r *tipoIVARepo) ListActivos(ctx context.Context) ([]model.TipoIVA, error) {
	var tipos []model.TipoIVA
	err := r.db.WithContext(ctx).Where("activo = true").Order("codigo ASC").Find(&tipos).Error
	return tipos, err
}

func (r *tipoIVARepo) Create(ctx context.Context, t *model.TipoIVA) error {
	return r.db.WithContext(ctx).Create(t).Error
}
