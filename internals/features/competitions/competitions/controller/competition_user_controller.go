package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	compDTO "lombain_backend/internals/features/competitions/competitions/dto"
	"lombain_backend/internals/features/competitions/competitions/model"
	"lombain_backend/internals/features/competitions/competitions/service"
	helper "lombain_backend/internals/helpers"
)

type CompetitionUserController struct {
	Service *service.CompetitionService
}

func NewCompetitionUserController(svc *service.CompetitionService) *CompetitionUserController {
	return &CompetitionUserController{Service: svc}
}

/* =======================================================
   LIST publik (hanya lomba yang masih visible)
   GET /api/public/competitions?type_id=&category=&q=
======================================================= */

func (h *CompetitionUserController) List(c *fiber.Ctx) error {
	comps, err := h.Service.ListVisible(c.Context())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar lomba")
	}

	comps = filterCompetitions(c, comps)

	now := time.Now()
	paging := helper.ResolvePaging(c, 12, 50)
	total := int64(len(comps))
	comps = slicePage(comps, paging)

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar lomba berhasil diambil", compDTO.ToCompetitionDTOs(comps, now), &pagination)
}

/* =======================================================
   FEATURED (is_priority, masih visible)
   GET /api/public/competitions/featured
======================================================= */

func (h *CompetitionUserController) Featured(c *fiber.Ctx) error {
	comps, err := h.Service.ListVisible(c.Context())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil lomba unggulan")
	}

	featured := make([]model.CompetitionModel, 0)
	for _, comp := range comps {
		if comp.IsPriority {
			featured = append(featured, comp)
		}
	}
	return helper.JsonOK(c, "Lomba unggulan berhasil diambil", compDTO.ToCompetitionDTOs(featured, time.Now()))
}

/* =======================================================
   DETAIL publik
   GET /api/public/competitions/:id
======================================================= */

func (h *CompetitionUserController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID lomba tidak valid")
	}

	comp, err := h.Service.Get(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}

	// detail lomba yang sudah lewat grace tidak diekspos ke publik
	if !model.IsVisible(comp.DeadlineTime(), time.Now()) {
		return helper.JsonError(c, fiber.StatusNotFound, "Lomba tidak ditemukan")
	}
	return helper.JsonOK(c, "Detail lomba berhasil diambil", compDTO.ToCompetitionDTO(*comp, time.Now()))
}

/* =======================================================
   Filter in-memory: bidang, kategori, kata kunci
======================================================= */

func filterCompetitions(c *fiber.Ctx, comps []model.CompetitionModel) []model.CompetitionModel {
	typeIDRaw := strings.TrimSpace(c.Query("type_id"))
	category := strings.TrimSpace(c.Query("category"))
	keyword := strings.ToLower(strings.TrimSpace(c.Query("q")))

	var typeID *uuid.UUID
	if typeIDRaw != "" {
		if id, err := uuid.Parse(typeIDRaw); err == nil {
			typeID = &id
		}
	}

	out := make([]model.CompetitionModel, 0, len(comps))
	for _, comp := range comps {
		if category != "" && !strings.EqualFold(comp.Category, category) {
			continue
		}
		if typeID != nil && !hasType(comp, *typeID) {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(comp.Title), keyword) {
			continue
		}
		out = append(out, comp)
	}
	return out
}

func hasType(comp model.CompetitionModel, typeID uuid.UUID) bool {
	for _, t := range comp.Types {
		if t.ID == typeID {
			return true
		}
	}
	return false
}
