package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lombain_backend/internals/features/competitions/competitions/model"
	typeModel "lombain_backend/internals/features/competitions/types/model"
)

// CompetitionRepository adalah kontrak table-level ke relational store
// (select join/embed agregat, insert, update-by-id, delete-by-id).
type CompetitionRepository interface {
	ListAggregates(ctx context.Context) ([]model.CompetitionModel, error)
	FindAggregate(ctx context.Context, id uuid.UUID) (*model.CompetitionModel, error)
	Insert(ctx context.Context, comp *model.CompetitionModel) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error

	InsertTypeLinks(ctx context.Context, id uuid.UUID, typeIDs []uuid.UUID) error
	DeleteTypeLinks(ctx context.Context, id uuid.UUID) error

	InsertImages(ctx context.Context, rows []model.CompetitionImageModel) error
	DeleteImages(ctx context.Context, competitionID uuid.UUID) error

	ListTypes(ctx context.Context) ([]typeModel.CompetitionTypeModel, error)
	InsertType(ctx context.Context, t *typeModel.CompetitionTypeModel) error
	UpdateType(ctx context.Context, id uuid.UUID, name string) error
	DeleteType(ctx context.Context, id uuid.UUID) error
	CountTypeLinks(ctx context.Context, typeID uuid.UUID) (int64, error)
}

// ImageStorage adalah kontrak object storage (Supabase Storage).
type ImageStorage interface {
	UploadPoster(ctx context.Context, filename string, data []byte) (publicURL, path string, err error)
	Delete(ctx context.Context, path string) error
}

/* =======================================================
   Implementasi GORM (Supabase Postgres)
======================================================= */

type GormCompetitionRepository struct {
	DB *gorm.DB
}

func NewGormCompetitionRepository(db *gorm.DB) *GormCompetitionRepository {
	return &GormCompetitionRepository{DB: db}
}

func (r *GormCompetitionRepository) ListAggregates(ctx context.Context) ([]model.CompetitionModel, error) {
	var comps []model.CompetitionModel
	err := r.DB.WithContext(ctx).
		Preload("Types", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order(`"order" ASC`) }).
		Order("created_at DESC").
		Find(&comps).Error
	return comps, err
}

func (r *GormCompetitionRepository) FindAggregate(ctx context.Context, id uuid.UUID) (*model.CompetitionModel, error) {
	var comp model.CompetitionModel
	err := r.DB.WithContext(ctx).
		Preload("Types", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order(`"order" ASC`) }).
		First(&comp, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &comp, nil
}

func (r *GormCompetitionRepository) Insert(ctx context.Context, comp *model.CompetitionModel) error {
	return r.DB.WithContext(ctx).Omit("Types", "Images").Create(comp).Error
}

func (r *GormCompetitionRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	res := r.DB.WithContext(ctx).
		Model(&model.CompetitionModel{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormCompetitionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// pivot & competition_images ikut terhapus via ON DELETE CASCADE
	return r.DB.WithContext(ctx).Delete(&model.CompetitionModel{}, "id = ?", id).Error
}

func (r *GormCompetitionRepository) InsertTypeLinks(ctx context.Context, id uuid.UUID, typeIDs []uuid.UUID) error {
	if len(typeIDs) == 0 {
		return nil
	}
	pivots := make([]model.CompetitionTypePivot, 0, len(typeIDs))
	for _, typeID := range typeIDs {
		pivots = append(pivots, model.CompetitionTypePivot{
			CompetitionID: id,
			TypeID:        typeID,
		})
	}
	return r.DB.WithContext(ctx).Create(&pivots).Error
}

func (r *GormCompetitionRepository) DeleteTypeLinks(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Delete(&model.CompetitionTypePivot{}, "competition_id = ?", id).Error
}

func (r *GormCompetitionRepository) InsertImages(ctx context.Context, rows []model.CompetitionImageModel) error {
	if len(rows) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(&rows).Error
}

func (r *GormCompetitionRepository) DeleteImages(ctx context.Context, competitionID uuid.UUID) error {
	return r.DB.WithContext(ctx).Delete(&model.CompetitionImageModel{}, "competition_id = ?", competitionID).Error
}

func (r *GormCompetitionRepository) ListTypes(ctx context.Context) ([]typeModel.CompetitionTypeModel, error) {
	var types []typeModel.CompetitionTypeModel
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&types).Error
	return types, err
}

func (r *GormCompetitionRepository) InsertType(ctx context.Context, t *typeModel.CompetitionTypeModel) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *GormCompetitionRepository) UpdateType(ctx context.Context, id uuid.UUID, name string) error {
	res := r.DB.WithContext(ctx).
		Model(&typeModel.CompetitionTypeModel{}).
		Where("id = ?", id).
		Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormCompetitionRepository) DeleteType(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Delete(&typeModel.CompetitionTypeModel{}, "id = ?", id).Error
}

func (r *GormCompetitionRepository) CountTypeLinks(ctx context.Context, typeID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&model.CompetitionTypePivot{}).
		Where("type_id = ?", typeID).
		Count(&count).Error
	return count, err
}
