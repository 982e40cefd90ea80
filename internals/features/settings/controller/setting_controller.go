package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lombain_backend/internals/features/settings/dto"
	"lombain_backend/internals/features/settings/model"
	helper "lombain_backend/internals/helpers"
)

type SettingController struct{ DB *gorm.DB }

func NewSettingController(db *gorm.DB) *SettingController { return &SettingController{DB: db} }

var validateSetting = validator.New()

// GET /api/public/settings/:key
func (h *SettingController) GetByKey(c *fiber.Ctx) error {
	key := strings.TrimSpace(c.Params("key"))
	if key == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Key tidak boleh kosong")
	}

	var m model.SettingModel
	if err := h.DB.WithContext(c.Context()).First(&m, "setting_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Setting tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil setting")
	}
	return helper.JsonOK(c, "Setting berhasil diambil", dto.ToSettingDTO(m))
}

// GET /api/a/settings
func (h *SettingController) List(c *fiber.Ctx) error {
	var ms []model.SettingModel
	if err := h.DB.WithContext(c.Context()).Order("setting_key ASC").Find(&ms).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar setting")
	}
	return helper.JsonOK(c, "Daftar setting berhasil diambil", dto.ToSettingDTOs(ms))
}

// PUT /api/a/settings/:key — upsert
func (h *SettingController) Upsert(c *fiber.Ctx) error {
	key := strings.TrimSpace(c.Params("key"))
	if key == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Key tidak boleh kosong")
	}

	var req dto.UpsertSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateSetting.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	m := model.SettingModel{SettingKey: key, SettingValue: req.Value}
	err := h.DB.WithContext(c.Context()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"setting_value", "updated_at"}),
		}).
		Create(&m).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan setting")
	}
	return helper.JsonUpdated(c, "Setting berhasil disimpan", dto.ToSettingDTO(m))
}
