package users

import (
	"encoding/json"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shuttleku_backend/internals/features/users/model"
)

type UserSeed struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func SeedUsersFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Reading user seed file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Failed to read seed JSON: %v", err)
	}

	var inputs []UserSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Failed to decode seed JSON: %v", err)
	}

	for _, data := range inputs {
		email := strings.ToLower(strings.TrimSpace(data.Email))

		var existing model.User
		if err := db.Where("user_email = ?", email).First(&existing).Error; err == nil {
			log.Printf("ℹ️ User '%s' already exists, skipped.", email)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("❌ Failed to hash password for '%s': %v", email, err)
			continue
		}

		role := data.Role
		if role == "" {
			role = model.UserRoleStaff
		}

		newUser := model.User{
			UserName:     data.UserName,
			UserEmail:    email,
			UserPassword: string(hash),
			UserRole:     role,
		}
		if err := db.Create(&newUser).Error; err != nil {
			log.Printf("❌ Failed to insert user '%s': %v", email, err)
		} else {
			log.Printf("✅ Inserted user '%s' (%s)", email, role)
		}
	}
}
