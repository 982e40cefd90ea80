package dto

import (
	"time"

	"lombain_backend/internals/features/competitions/competitions/model"
	typeDto "lombain_backend/internals/features/competitions/types/dto"
)

// ============================
// Response DTO
// ============================

type CompetitionImageDTO struct {
	ID     string  `json:"id"`
	URL    string  `json:"url"`
	Path   *string `json:"path,omitempty"`
	Source string  `json:"source"`
	Order  int     `json:"order"`
}

type CompetitionDTO struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Location    *string `json:"location,omitempty"`
	Deadline    string  `json:"deadline"` // YYYY-MM-DD
	Link        string  `json:"link"`
	IsPriority  bool    `json:"is_priority"`

	ImageURL    string  `json:"image_url"`
	ImagePath   *string `json:"image_path,omitempty"`
	ImageSource string  `json:"image_source"`

	// Status dihitung server-side saat response dibentuk, tidak disimpan
	Status    model.Status `json:"status"`
	IsVisible bool         `json:"is_visible"`

	Bidang           []typeDto.CompetitionTypeDTO `json:"bidang"`
	AdditionalImages []CompetitionImageDTO        `json:"additional_images"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ============================
// Create & Update Request DTO
// ============================
// Diisi controller dari multipart form, lalu divalidasi.

type CompetitionRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=200"`
	Description string  `json:"description" validate:"required"`
	Category    string  `json:"category" validate:"required,oneof=Internal External"`
	Location    *string `json:"location"`
	Deadline    string  `json:"deadline" validate:"required,datetime=2006-01-02"`
	Link        string  `json:"link" validate:"required,url"`
	IsPriority  bool    `json:"is_priority"`
}

// AdditionalImageMeta menggambarkan satu slot galeri dari
// additional_images_json; slot source=file diisi dari
// additional_image_files[] dengan urutan sama.
type AdditionalImageMeta struct {
	SourceType string  `json:"source_type" validate:"required,oneof=file url"`
	URL        string  `json:"url"`
	Path       *string `json:"path"`
}

// ============================
// Converter
// ============================

func ToCompetitionImageDTO(m model.CompetitionImageModel) CompetitionImageDTO {
	return CompetitionImageDTO{
		ID:     m.ID.String(),
		URL:    m.URL,
		Path:   m.Path,
		Source: m.Source,
		Order:  m.Order,
	}
}

func ToCompetitionDTO(m model.CompetitionModel, now time.Time) CompetitionDTO {
	deadline := m.DeadlineTime()

	bidang := make([]typeDto.CompetitionTypeDTO, 0, len(m.Types))
	for _, t := range m.Types {
		bidang = append(bidang, typeDto.ToCompetitionTypeDTO(t))
	}
	images := make([]CompetitionImageDTO, 0, len(m.Images))
	for _, img := range m.Images {
		images = append(images, ToCompetitionImageDTO(img))
	}

	return CompetitionDTO{
		ID:               m.ID.String(),
		Title:            m.Title,
		Description:      m.Description,
		Category:         m.Category,
		Location:         m.Location,
		Deadline:         deadline.Format(time.DateOnly),
		Link:             m.Link,
		IsPriority:       m.IsPriority,
		ImageURL:         m.ImageURL,
		ImagePath:        m.ImagePath,
		ImageSource:      m.ImageSource,
		Status:           model.ClassifyStatus(deadline, now),
		IsVisible:        model.IsVisible(deadline, now),
		Bidang:           bidang,
		AdditionalImages: images,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func ToCompetitionDTOs(ms []model.CompetitionModel, now time.Time) []CompetitionDTO {
	out := make([]CompetitionDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToCompetitionDTO(m, now))
	}
	return out
}
