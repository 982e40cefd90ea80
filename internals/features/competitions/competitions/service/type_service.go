package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	typeModel "lombain_backend/internals/features/competitions/types/model"
)

/* =======================================================
   Manajemen bidang (competition_types)
   Setiap mutasi diikuti re-fetch list supaya caller selalu
   memegang state terbaru.
======================================================= */

func (s *CompetitionService) ListTypes(ctx context.Context) ([]typeModel.CompetitionTypeModel, error) {
	return s.Repo.ListTypes(ctx)
}

func (s *CompetitionService) AddType(ctx context.Context, name string) ([]typeModel.CompetitionTypeModel, error) {
	t := &typeModel.CompetitionTypeModel{Name: strings.TrimSpace(name)}
	if err := s.Repo.InsertType(ctx, t); err != nil {
		return nil, &PersistenceError{Op: "insert type", Err: err}
	}
	return s.Repo.ListTypes(ctx)
}

func (s *CompetitionService) RenameType(ctx context.Context, id uuid.UUID, name string) ([]typeModel.CompetitionTypeModel, error) {
	if err := s.Repo.UpdateType(ctx, id, strings.TrimSpace(name)); err != nil {
		if err == ErrNotFound {
			return nil, err
		}
		return nil, &PersistenceError{Op: "update type", Err: err}
	}
	return s.Repo.ListTypes(ctx)
}

// DeleteType menolak penghapusan bidang yang masih direferensikan
// lomba (ErrTypeInUse) supaya pivot tidak menyimpan relasi yatim.
func (s *CompetitionService) DeleteType(ctx context.Context, id uuid.UUID) ([]typeModel.CompetitionTypeModel, error) {
	count, err := s.Repo.CountTypeLinks(ctx, id)
	if err != nil {
		return nil, &PersistenceError{Op: "count type links", Err: err}
	}
	if count > 0 {
		return nil, ErrTypeInUse
	}
	if err := s.Repo.DeleteType(ctx, id); err != nil {
		return nil, &PersistenceError{Op: "delete type", Err: err}
	}
	return s.Repo.ListTypes(ctx)
}
