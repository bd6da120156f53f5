package members

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"gorm.io/gorm"

	"shuttleku_backend/internals/features/members/model"
)

type MemberSeed struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	JoinedAt string `json:"joined_at"` // YYYY-MM-DD
}

func SeedMembersFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Reading member seed file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Failed to read seed JSON: %v", err)
	}

	var inputs []MemberSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Failed to decode seed JSON: %v", err)
	}

	for _, data := range inputs {
		var existing model.Member
		if err := db.Where("member_name = ?", data.Name).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Member '%s' already exists, skipped.", data.Name)
			continue
		}

		joined := time.Now()
		if data.JoinedAt != "" {
			if t, err := time.ParseInLocation("2006-01-02", data.JoinedAt, time.Local); err == nil {
				joined = t
			}
		}

		newMember := model.Member{
			MemberName:     data.Name,
			MemberJoinedAt: &joined,
			MemberIsActive: true,
		}
		if data.Phone != "" {
			phone := data.Phone
			newMember.MemberPhone = &phone
		}

		if err := db.Create(&newMember).Error; err != nil {
			log.Printf("❌ Failed to insert member '%s': %v", data.Name, err)
		} else {
			log.Printf("✅ Inserted member '%s'", data.Name)
		}
	}
}
