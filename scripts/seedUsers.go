package main

import (
	"log"

	"mhb/config"
	"mhb/database"
	"mhb/models"
	"mhb/utils"
)

// Seeds one user per role and faculty combination for local development.
// All seeded users share the password "password".
func main() {
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	seed := []models.User{
		{UserID: "11", Name: "Module Owner Faculty1", Faculty: models.FacultyF1MPM, Role: models.RoleModuleOwner},
		{UserID: "12", Name: "Module Owner Faculty2", Faculty: models.FacultyF2ELS, Role: models.RoleModuleOwner},
		{UserID: "13", Name: "Module Owner Faculty3", Faculty: models.FacultyF3IC, Role: models.RoleModuleOwner},
		{UserID: "14", Name: "Module Owner Faculty4", Faculty: models.FacultyF4BS, Role: models.RoleModuleOwner},
		{UserID: "21", Name: "Program Coordinator Faculty1", Faculty: models.FacultyF1MPM, Role: models.RoleProgramCoordinator},
		{UserID: "22", Name: "Program Coordinator Faculty2", Faculty: models.FacultyF2ELS, Role: models.RoleProgramCoordinator},
		{UserID: "23", Name: "Program Coordinator Faculty3", Faculty: models.FacultyF3IC, Role: models.RoleProgramCoordinator},
		{UserID: "24", Name: "Program Coordinator Faculty4", Faculty: models.FacultyF4BS, Role: models.RoleProgramCoordinator},
		{UserID: "31", Name: "Examination Office", Faculty: models.FacultyAdmin, Role: models.RoleExaminationOffice},
		{UserID: "41", Name: "Deanery", Faculty: models.FacultyAdmin, Role: models.RoleDeanery},
		{UserID: "51", Name: "Admin", Faculty: models.FacultyAdmin, Role: models.RoleAdmin},
	}

	hashed, err := utils.HashPassword("password")
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	created := 0
	for _, user := range seed {
		user.Password = hashed

		var existing models.User
		if err := db.Where("user_id = ?", user.UserID).First(&existing).Error; err == nil {
			continue
		}

		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("Failed to seed user %s: %v", user.UserID, err)
		}
		created++
	}

	log.Printf("Seeding complete. Created %d user(s).", created)
}
