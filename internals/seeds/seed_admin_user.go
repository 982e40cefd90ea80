package seeds

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lombain_backend/internals/configs"
	userModel "lombain_backend/internals/features/users/auth/model"
)

// SeedAdminUser membuat satu akun admin dari env
// ADMIN_EMAIL / ADMIN_PASSWORD / ADMIN_NAME.
func SeedAdminUser(db *gorm.DB) {
	email := configs.GetEnv("ADMIN_EMAIL")
	password := configs.GetEnv("ADMIN_PASSWORD")
	name := configs.GetEnv("ADMIN_NAME", "Admin Lomba-In")

	if email == "" || password == "" {
		log.Println("ℹ️ ADMIN_EMAIL/ADMIN_PASSWORD tidak diset, seeder admin dilewati.")
		return
	}

	var count int64
	if err := db.Model(&userModel.UserModel{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		log.Printf("❌ Gagal cek admin '%s': %v", email, err)
		return
	}
	if count > 0 {
		log.Printf("ℹ️ Admin '%s' sudah ada, dilewati.", email)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("❌ Gagal hash password admin: %v", err)
		return
	}
	hashedStr := string(hashed)

	if err := db.Create(&userModel.UserModel{
		Name:     name,
		Email:    email,
		Password: &hashedStr,
		IsActive: true,
	}).Error; err != nil {
		log.Printf("❌ Gagal seed admin '%s': %v", email, err)
		return
	}
	log.Printf("✅ Admin '%s' berhasil di-seed", email)
}
