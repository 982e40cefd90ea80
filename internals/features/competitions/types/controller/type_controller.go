package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lombain_backend/internals/features/competitions/competitions/service"
	typeDto "lombain_backend/internals/features/competitions/types/dto"
	helper "lombain_backend/internals/helpers"
)

type CompetitionTypeController struct {
	Service *service.CompetitionService
}

func NewCompetitionTypeController(svc *service.CompetitionService) *CompetitionTypeController {
	return &CompetitionTypeController{Service: svc}
}

var validateType = validator.New()

// GET /api/public/types
func (h *CompetitionTypeController) List(c *fiber.Ctx) error {
	types, err := h.Service.ListTypes(c.Context())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar bidang")
	}
	return helper.JsonOK(c, "Daftar bidang berhasil diambil", typeDto.ToCompetitionTypeDTOs(types))
}

// POST /api/a/types
func (h *CompetitionTypeController) Create(c *fiber.Ctx) error {
	var req typeDto.CompetitionTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateType.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	types, err := h.Service.AddType(c.Context(), req.Name)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menambah bidang")
	}
	return helper.JsonCreated(c, "Bidang berhasil ditambahkan", typeDto.ToCompetitionTypeDTOs(types))
}

// PUT /api/a/types/:id
func (h *CompetitionTypeController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID bidang tidak valid")
	}

	var req typeDto.CompetitionTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateType.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	types, err := h.Service.RenameType(c.Context(), id, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Bidang tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui bidang")
	}
	return helper.JsonUpdated(c, "Bidang berhasil diperbarui", typeDto.ToCompetitionTypeDTOs(types))
}

// DELETE /api/a/types/:id
func (h *CompetitionTypeController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID bidang tidak valid")
	}

	types, err := h.Service.DeleteType(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTypeInUse) {
			return helper.JsonError(c, fiber.StatusConflict, "Bidang masih dipakai lomba, tidak bisa dihapus")
		}
		if errors.Is(err, service.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Bidang tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus bidang")
	}
	return helper.JsonDeleted(c, "Bidang berhasil dihapus", typeDto.ToCompetitionTypeDTOs(types))
}
