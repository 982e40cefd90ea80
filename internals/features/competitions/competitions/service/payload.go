package service

import (
	"time"

	"github.com/google/uuid"
)

// Batas gambar galeri per lomba (kontrak UI)
const MaxAdditionalImages = 4

// ImageInput adalah satu gambar dari form: URL eksternal atau file upload.
type ImageInput struct {
	SourceType string  // model.ImageSourceFile | model.ImageSourceURL
	Value      string  // URL (untuk source "url", atau URL lama yang dipertahankan)
	Path       *string // object path lama yang ikut dipertahankan (update)
	Filename   string
	FileBytes  []byte
}

// CompetitionFields adalah atribut skalar lomba dari form.
type CompetitionFields struct {
	Title       string
	Description string
	Category    string
	Location    *string
	Deadline    time.Time
	Link        string
	IsPriority  bool
}

type CreateCompetitionPayload struct {
	Fields           CompetitionFields
	PrimaryImage     ImageInput
	AdditionalImages []ImageInput // urutan = index 0..3
	TypeIDs          []uuid.UUID
}

type UpdateCompetitionPayload struct {
	Fields CompetitionFields

	// nil = poster utama tidak disentuh
	PrimaryImage *ImageInput

	// nil = galeri tidak disentuh; non-nil = full replace
	AdditionalImages *[]ImageInput

	// nil = relasi bidang tidak disentuh; non-nil = full replace
	// (slice kosong berarti lomba jadi tanpa bidang)
	TypeIDs *[]uuid.UUID

	// Object path yang menurut caller sudah tidak direferensikan lagi;
	// dihapus best-effort SEBELUM langkah lain.
	DeletedPaths []string
}
