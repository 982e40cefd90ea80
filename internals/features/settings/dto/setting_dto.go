package dto

import (
	"time"

	"lombain_backend/internals/features/settings/model"
)

type SettingDTO struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpsertSettingRequest struct {
	Value string `json:"value" validate:"required"`
}

func ToSettingDTO(m model.SettingModel) SettingDTO {
	return SettingDTO{
		Key:       m.SettingKey,
		Value:     m.SettingValue,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToSettingDTOs(ms []model.SettingModel) []SettingDTO {
	out := make([]SettingDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToSettingDTO(m))
	}
	return out
}
