package seeds

import (
	members "shuttleku_backend/internals/seeds/members"
	users "shuttleku_backend/internals/seeds/users"

	"gorm.io/gorm"
)

func RunAllSeeds(db *gorm.DB) {
	//* Users (admin + staff logins)
	users.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")

	//* Club members
	members.SeedMembersFromJSON(db, "internals/seeds/members/data_members.json")
}
