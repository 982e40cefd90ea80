package controller

import (
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	compDTO "lombain_backend/internals/features/competitions/competitions/dto"
	"lombain_backend/internals/features/competitions/competitions/model"
	"lombain_backend/internals/features/competitions/competitions/service"
	helper "lombain_backend/internals/helpers"
)

type CompetitionAdminController struct {
	Service *service.CompetitionService
}

func NewCompetitionAdminController(svc *service.CompetitionService) *CompetitionAdminController {
	return &CompetitionAdminController{Service: svc}
}

var validateCompetition = validator.New()

/* =======================================================
   LIST (admin melihat semua, termasuk yang sudah lewat grace)
   GET /api/a/competitions
======================================================= */

func (h *CompetitionAdminController) List(c *fiber.Ctx) error {
	comps, err := h.Service.ListAll(c.Context())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar lomba")
	}

	now := time.Now()
	paging := helper.ResolvePaging(c, 20, 100)
	total := int64(len(comps))
	comps = slicePage(comps, paging)

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar lomba berhasil diambil", compDTO.ToCompetitionDTOs(comps, now), &pagination)
}

/* =======================================================
   DETAIL
   GET /api/a/competitions/:id
======================================================= */

func (h *CompetitionAdminController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID lomba tidak valid")
	}

	comp, err := h.Service.Get(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonOK(c, "Detail lomba berhasil diambil", compDTO.ToCompetitionDTO(*comp, time.Now()))
}

/* =======================================================
   CREATE (multipart)
   POST /api/a/competitions
======================================================= */

func (h *CompetitionAdminController) Create(c *fiber.Ctx) error {
	req, fields, err := parseCompetitionForm(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := validateCompetition.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	typeIDs, err := parseUUIDsCSV(c.FormValue("type_ids"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "type_ids berisi UUID tidak valid")
	}

	primary, err := parsePrimaryImage(c, true)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	additional, err := parseAdditionalImages(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	comp, err := h.Service.Create(c.Context(), service.CreateCompetitionPayload{
		Fields:           *fields,
		PrimaryImage:     *primary,
		AdditionalImages: additional,
		TypeIDs:          typeIDs,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonCreated(c, "Lomba berhasil dibuat", compDTO.ToCompetitionDTO(*comp, time.Now()))
}

/* =======================================================
   UPDATE (multipart)
   PUT /api/a/competitions/:id
======================================================= */

func (h *CompetitionAdminController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID lomba tidak valid")
	}

	req, fields, err := parseCompetitionForm(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := validateCompetition.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	payload := service.UpdateCompetitionPayload{Fields: *fields}

	// type_ids: absen = tidak disentuh, "" = kosongkan semua
	if raw, sent := formValueIfSent(c, "type_ids"); sent {
		typeIDs, err := parseUUIDsCSV(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "type_ids berisi UUID tidak valid")
		}
		payload.TypeIDs = &typeIDs
	}

	// poster utama hanya diganti kalau dikirim
	if hasPrimaryImage(c) {
		primary, err := parsePrimaryImage(c, false)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		payload.PrimaryImage = primary
	}

	// galeri: absen = tidak disentuh, hadir = full replace
	if _, sent := formValueIfSent(c, "additional_images_json"); sent {
		additional, err := parseAdditionalImages(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		payload.AdditionalImages = &additional
	}

	if raw := strings.TrimSpace(c.FormValue("deleted_paths_json")); raw != "" {
		if err := sonic.Unmarshal([]byte(raw), &payload.DeletedPaths); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "deleted_paths_json tidak valid")
		}
	}

	comp, err := h.Service.Update(c.Context(), id, payload)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Lomba berhasil diperbarui", compDTO.ToCompetitionDTO(*comp, time.Now()))
}

/* =======================================================
   DELETE
   DELETE /api/a/competitions/:id
======================================================= */

func (h *CompetitionAdminController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID lomba tidak valid")
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Lomba berhasil dihapus", fiber.Map{"id": id})
}

/* =======================================================
   DASHBOARD
   GET /api/a/dashboard
======================================================= */

func (h *CompetitionAdminController) Dashboard(c *fiber.Ctx) error {
	comps, err := h.Service.ListAll(c.Context())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data dashboard")
	}

	now := time.Now()
	counts := map[model.StatusCode]int{}
	visible := 0
	priority := 0
	for _, comp := range comps {
		deadline := comp.DeadlineTime()
		counts[model.ClassifyStatus(deadline, now).Code]++
		if model.IsVisible(deadline, now) {
			visible++
		}
		if comp.IsPriority {
			priority++
		}
	}

	return helper.JsonOK(c, "Ringkasan dashboard berhasil diambil", fiber.Map{
		"total":        len(comps),
		"visible":      visible,
		"priority":     priority,
		"active":       counts[model.StatusActive],
		"closing_soon": counts[model.StatusClosingSoon],
		"grace_period": counts[model.StatusGracePeriod],
		"expired":      counts[model.StatusExpired],
	})
}

/* =======================================================
   Parsing helpers (multipart form)
======================================================= */

// parseCompetitionForm membaca field skalar lomba dari form,
// mengembalikan request DTO (untuk validasi) + fields service.
func parseCompetitionForm(c *fiber.Ctx) (*compDTO.CompetitionRequest, *service.CompetitionFields, error) {
	req := &compDTO.CompetitionRequest{
		Title:       strings.TrimSpace(c.FormValue("title")),
		Description: strings.TrimSpace(c.FormValue("description")),
		Category:    strings.TrimSpace(c.FormValue("category")),
		Deadline:    strings.TrimSpace(c.FormValue("deadline")),
		Link:        strings.TrimSpace(c.FormValue("link")),
	}
	if v := strings.TrimSpace(c.FormValue("location")); v != "" {
		req.Location = &v
	}
	if v := strings.TrimSpace(c.FormValue("is_priority")); v != "" {
		req.IsPriority = strings.EqualFold(v, "true") || v == "1"
	}

	deadline, err := time.ParseInLocation(time.DateOnly, req.Deadline, time.Local)
	if err != nil {
		return nil, nil, errors.New("deadline harus berformat YYYY-MM-DD")
	}

	fields := &service.CompetitionFields{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Deadline:    deadline,
		Link:        req.Link,
		IsPriority:  req.IsPriority,
	}
	return req, fields, nil
}

func hasPrimaryImage(c *fiber.Ctx) bool {
	if _, err := c.FormFile("primary_image"); err == nil {
		return true
	}
	return strings.TrimSpace(c.FormValue("primary_image_url")) != ""
}

// parsePrimaryImage membaca poster utama: file upload ATAU URL eksternal.
func parsePrimaryImage(c *fiber.Ctx, required bool) (*service.ImageInput, error) {
	if fh, err := c.FormFile("primary_image"); err == nil && fh != nil {
		data, err := readFileHeader(fh)
		if err != nil {
			return nil, errors.New("gagal membaca file poster")
		}
		return &service.ImageInput{
			SourceType: model.ImageSourceFile,
			Filename:   fh.Filename,
			FileBytes:  data,
		}, nil
	}

	if v := strings.TrimSpace(c.FormValue("primary_image_url")); v != "" {
		return &service.ImageInput{SourceType: model.ImageSourceURL, Value: v}, nil
	}

	if required {
		return nil, errors.New("poster utama wajib diisi (primary_image atau primary_image_url)")
	}
	return nil, errors.New("poster utama kosong")
}

// parseAdditionalImages membaca galeri: metadata dari
// additional_images_json, file upload dari additional_image_files[].
func parseAdditionalImages(c *fiber.Ctx) ([]service.ImageInput, error) {
	raw := strings.TrimSpace(c.FormValue("additional_images_json"))
	if raw == "" {
		return nil, nil
	}

	var metas []compDTO.AdditionalImageMeta
	if err := sonic.Unmarshal([]byte(raw), &metas); err != nil {
		return nil, errors.New("additional_images_json tidak valid")
	}

	var files []galleryFile
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["additional_image_files[]"] {
			data, err := readFileHeader(fh)
			if err != nil {
				return nil, errors.New("gagal membaca file galeri")
			}
			files = append(files, galleryFile{filename: fh.Filename, data: data})
		}
	}
	return buildGalleryInputs(metas, files)
}

type galleryFile struct {
	filename string
	data     []byte
}

// buildGalleryInputs mencocokkan metadata slot dengan file upload.
// Slot source=file dengan URL terisi adalah gambar lama yang
// dipertahankan; HANYA slot file tanpa URL yang mengambil jatah
// upload berikutnya (urutan file mengikuti urutan slot kosong).
func buildGalleryInputs(metas []compDTO.AdditionalImageMeta, files []galleryFile) ([]service.ImageInput, error) {
	if len(metas) > service.MaxAdditionalImages {
		return nil, errors.New("gambar galeri maksimal 4")
	}

	inputs := make([]service.ImageInput, 0, len(metas))
	fileIdx := 0
	for _, meta := range metas {
		switch meta.SourceType {
		case model.ImageSourceFile:
			if meta.URL != "" {
				inputs = append(inputs, service.ImageInput{
					SourceType: model.ImageSourceFile,
					Value:      meta.URL,
					Path:       meta.Path,
				})
				continue
			}
			if fileIdx >= len(files) {
				return nil, errors.New("jumlah file galeri tidak sesuai metadata")
			}
			inputs = append(inputs, service.ImageInput{
				SourceType: model.ImageSourceFile,
				Filename:   files[fileIdx].filename,
				FileBytes:  files[fileIdx].data,
			})
			fileIdx++
		case model.ImageSourceURL:
			inputs = append(inputs, service.ImageInput{
				SourceType: model.ImageSourceURL,
				Value:      meta.URL,
			})
		default:
			return nil, errors.New("source_type galeri harus file atau url")
		}
	}
	return inputs, nil
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// formValueIfSent membedakan field absen vs field kosong.
func formValueIfSent(c *fiber.Ctx, key string) (string, bool) {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if vals, ok := form.Value[key]; ok && len(vals) > 0 {
			return strings.TrimSpace(vals[0]), true
		}
		return "", false
	}
	v := c.FormValue(key)
	return strings.TrimSpace(v), v != ""
}

func parseUUIDsCSV(raw string) ([]uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []uuid.UUID{}, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := uuid.Parse(p)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

/* =======================================================
   Error mapping (service → HTTP)
======================================================= */

func mapServiceError(c *fiber.Ctx, err error) error {
	var se *service.StorageError
	var pe *service.PersistenceError
	switch {
	case errors.Is(err, service.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Lomba tidak ditemukan")
	case errors.Is(err, service.ErrTypeInUse):
		return helper.JsonError(c, fiber.StatusConflict, "Bidang masih dipakai lomba lain")
	case errors.As(err, &se):
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal upload ke storage: "+se.Error())
	case errors.As(err, &pe):
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan data lomba")
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
}

func slicePage(comps []model.CompetitionModel, p helper.Paging) []model.CompetitionModel {
	if p.Offset >= len(comps) {
		return []model.CompetitionModel{}
	}
	end := p.Offset + p.Limit
	if end > len(comps) {
		end = len(comps)
	}
	return comps[p.Offset:end]
}
