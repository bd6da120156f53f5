// file: internals/features/users/controller/auth_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shuttleku_backend/internals/configs"
	"shuttleku_backend/internals/features/users/dto"
	usermodel "shuttleku_backend/internals/features/users/model"
	helper "shuttleku_backend/internals/helpers"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

type AuthHandler struct {
	DB *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{DB: db}
}

// -----------------------------------------
// Login (POST /auth/login)
// -----------------------------------------
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	var user usermodel.User
	err := h.DB.First(&user, "user_email = ?", strings.ToLower(strings.TrimSpace(in.Email))).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "invalid email or password")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(in.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	expiresAt := time.Now().Add(accessTokenTTL)
	access, err := signToken(user, expiresAt, configs.JWTSecret)
	if err != nil {
		log.Println("[ERROR] sign access token:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "could not issue token")
	}
	refresh, err := signToken(user, time.Now().Add(refreshTokenTTL), configs.JWTRefreshSecret)
	if err != nil {
		log.Println("[ERROR] sign refresh token:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "could not issue token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    access,
		Expires:  expiresAt,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return helper.JsonOK(c, "login success", dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
		User:         dto.ToUserResponse(user),
	})
}

// -----------------------------------------
// Refresh (POST /auth/refresh)
// -----------------------------------------
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(in.RefreshToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(configs.JWTRefreshSecret), nil
	}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "invalid refresh token")
	}

	rawID, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "invalid refresh token")
	}

	var user usermodel.User
	if err := h.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "user no longer exists")
	}

	expiresAt := time.Now().Add(accessTokenTTL)
	access, err := signToken(user, expiresAt, configs.JWTSecret)
	if err != nil {
		log.Println("[ERROR] sign access token:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "could not issue token")
	}

	return helper.JsonOK(c, "token refreshed", fiber.Map{
		"access_token": access,
		"expires_at":   expiresAt,
	})
}

// -----------------------------------------
// Register (POST /auth/register) — admin only
// -----------------------------------------
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterUserDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "could not hash password")
	}

	role := in.UserRole
	if role == "" {
		role = usermodel.UserRoleStaff
	}

	user := usermodel.User{
		UserName:     strings.TrimSpace(in.UserName),
		UserEmail:    strings.ToLower(strings.TrimSpace(in.UserEmail)),
		UserPassword: string(hash),
		UserRole:     role,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "user registered", dto.ToUserResponse(user))
}

// -----------------------------------------
// Me (GET /auth/me)
// -----------------------------------------
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	rawID, _ := c.Locals("user_id").(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	var user usermodel.User
	if err := h.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "user not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "me", dto.ToUserResponse(user))
}

func signToken(user usermodel.User, expiresAt time.Time, secret string) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret not configured")
	}
	claims := jwt.MapClaims{
		"user_id": user.UserID.String(),
		"role":    user.UserRole,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
