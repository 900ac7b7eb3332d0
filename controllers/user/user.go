package userController

import (
	"log"

	"mhb/database"
	"mhb/middleware"
	"mhb/models"
	"mhb/utils"

	"github.com/gofiber/fiber/v2"
)

// ListUsers returns all users, with optional faculty filter, name search,
// sorting and pagination. Admin only (enforced by the router).
func ListUsers(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Model(&models.User{})

	if faculty := c.Query("faculty"); faculty != "" {
		if !models.Faculty(faculty).IsValid() {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid faculty filter!", nil)
		}
		query = query.Where("faculty = ?", faculty)
	}

	if role := c.Query("role"); role != "" {
		if !models.UserRole(role).IsValid() {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid role filter!", nil)
		}
		query = query.Where("role = ?", role)
	}

	if search := c.Query("search"); search != "" {
		query = query.Where("lower(name) LIKE ?", utils.LikePattern(search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("Error counting users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	allowedSort := map[string]bool{"user_id": true, "name": true, "faculty": true, "role": true}
	page := utils.ParsePagination(c)

	var users []models.User
	if err := query.Order(utils.SortClause(c, allowedSort, "name")).
		Limit(page.Limit).Offset(page.Offset()).
		Find(&users).Error; err != nil {
		log.Printf("Error fetching users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
		"total": total,
		"page":  page.Page,
		"limit": page.Limit,
	})
}

// GetUser returns one user by id. Admin only.
func GetUser(c *fiber.Ctx) error {
	db := database.Database.Db

	var user models.User
	if err := db.Where("user_id = ?", c.Params("id")).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully!", user)
}

// CreateUser creates a new user with a hashed password. Admin only.
func CreateUser(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUser").(*struct {
		UserID   string `json:"user_id"`
		Name     string `json:"name"`
		Faculty  string `json:"faculty"`
		Role     string `json:"role"`
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if user ID already exists
	if err := db.Where("user_id = ?", reqData.UserID).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User ID is already registered!", nil)
	}

	hashedPassword, err := utils.HashPassword(reqData.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		UserID:   reqData.UserID,
		Name:     reqData.Name,
		Faculty:  models.Faculty(reqData.Faculty),
		Role:     models.UserRole(reqData.Role),
		Email:    reqData.Email,
		Password: hashedPassword,
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User created successfully!", newUser)
}

// UpdateUser updates user fields. Admin only.
func UpdateUser(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUserUpdate").(*struct {
		Name     *string `json:"name"`
		Faculty  *string `json:"faculty"`
		Role     *string `json:"role"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("user_id = ?", c.Params("id")).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if reqData.Name != nil {
		user.Name = *reqData.Name
	}
	if reqData.Faculty != nil {
		user.Faculty = models.Faculty(*reqData.Faculty)
	}
	if reqData.Role != nil {
		user.Role = models.UserRole(*reqData.Role)
	}
	if reqData.Email != nil {
		user.Email = *reqData.Email
	}
	if reqData.Password != nil {
		hashedPassword, err := utils.HashPassword(*reqData.Password)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
		}
		user.Password = hashedPassword
	}

	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error updating user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully!", user)
}

// DeleteUser removes a user. Users still owning modules cannot be deleted.
// Admin only.
func DeleteUser(c *fiber.Ctx) error {
	db := database.Database.Db

	var user models.User
	if err := db.Where("user_id = ?", c.Params("id")).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var owned int64
	if err := db.Model(&models.Module{}).Where("owner_id = ?", user.UserID).Count(&owned).Error; err != nil {
		log.Printf("Error counting owned modules: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}
	if owned > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User still owns modules. Reassign them first!", nil)
	}

	if err := db.Delete(&user).Error; err != nil {
		log.Printf("Error deleting user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully!", nil)
}
