package controller

import (
	"errors"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lombain_backend/internals/configs"
	"lombain_backend/internals/features/users/auth/dto"
	"lombain_backend/internals/features/users/auth/model"
	helper "lombain_backend/internals/helpers"
)

const accessTTL = 24 * time.Hour

type AuthController struct{ DB *gorm.DB }

func NewAuthController(db *gorm.DB) *AuthController { return &AuthController{DB: db} }

var validateAuth = validator.New()

/* ==========================
   LOGIN (email + password)
========================== */

// POST /api/auth/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateAuth.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var user model.UserModel
	if err := h.DB.WithContext(c.Context()).First(&user, "email = ?", req.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// pesan sama dengan password salah, jangan bocorkan email terdaftar
			return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses login")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun dinonaktifkan")
	}
	if user.Password == nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Akun ini hanya bisa login via Google")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(req.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}

	return h.issueSession(c, user)
}

/* ==========================
   LOGIN GOOGLE (whitelist)
========================== */

// POST /api/auth/login-google
func (h *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req dto.LoginGoogleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateAuth.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	// Verifikasi token Google
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Google ID Token tidak valid")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal decode ID Token")
	}

	// Hanya email yang sudah terdaftar (whitelist admin) yang boleh masuk
	var user model.UserModel
	if err := h.DB.WithContext(c.Context()).First(&user, "email = ?", claimSet.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusForbidden, "Akun Google ini tidak terdaftar sebagai admin")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses login")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun dinonaktifkan")
	}

	// Tautkan google_id saat login Google pertama
	if user.GoogleID == nil && claimSet.Sub != "" {
		sub := claimSet.Sub
		if err := h.DB.WithContext(c.Context()).Model(&user).Update("google_id", sub).Error; err == nil {
			user.GoogleID = &sub
		}
	}

	return h.issueSession(c, user)
}

/* ==========================
   LOGOUT & ME
========================== */

// POST /api/auth/logout
func (h *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
	})
	return helper.JsonOK(c, "Logout berhasil", nil)
}

// GET /api/auth/me (di belakang AuthJWT)
func (h *AuthController) Me(c *fiber.Ctx) error {
	email, _ := c.Locals("user_email").(string)
	if email == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	var user model.UserModel
	if err := h.DB.WithContext(c.Context()).First(&user, "email = ?", email).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	return helper.JsonOK(c, "Profil berhasil diambil", dto.ToAuthUserDTO(user))
}

/* ==========================
   Internal
========================== */

func (h *AuthController) issueSession(c *fiber.Ctx, user model.UserModel) error {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"name":  user.Name,
		"iat":   now.Unix(),
		"exp":   now.Add(accessTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat access token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(accessTTL),
	})

	return helper.JsonOK(c, "Login berhasil", fiber.Map{
		"user":         dto.ToAuthUserDTO(user),
		"access_token": token,
	})
}
