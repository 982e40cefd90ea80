package dto

import (
	"lombain_backend/internals/features/competitions/types/model"
)

// ============================
// Response DTO
// ============================

type CompetitionTypeDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ============================
// Create & Update Request DTO
// ============================

type CompetitionTypeRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// ============================
// Converter
// ============================

func ToCompetitionTypeDTO(m model.CompetitionTypeModel) CompetitionTypeDTO {
	return CompetitionTypeDTO{
		ID:   m.ID.String(),
		Name: m.Name,
	}
}

func ToCompetitionTypeDTOs(ms []model.CompetitionTypeModel) []CompetitionTypeDTO {
	out := make([]CompetitionTypeDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToCompetitionTypeDTO(m))
	}
	return out
}
