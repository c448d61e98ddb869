package controllers

import (
	"errors"
	"regexp"
	"strings"

	"bodega-backend/models"
	"bodega-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthController controlador de autenticación
type AuthController struct {
	DB *gorm.DB
}

// NewAuthController crea una nueva instancia de AuthController
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// RegisterRequest estructura de la petición de registro
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest estructura de la petición de inicio de sesión
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthUser datos públicos del usuario autenticado
type AuthUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse estructura de la respuesta de autenticación
type AuthResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Token   string   `json:"token,omitempty"`
	User    AuthUser `json:"user,omitempty"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Register da de alta un usuario del portal
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req RegisterRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Message: "Formato de datos inválido",
		})
	}

	if err := ac.validateRegisterRequest(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	// ¿Existe ya el usuario?
	var existing models.User
	if err := ac.DB.Where("email = ?", strings.ToLower(req.Email)).First(&existing).Error; err == nil {
		return c.Status(409).JSON(AuthResponse{
			Success: false,
			Message: "Ya existe un usuario con ese email",
		})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Error al crear el usuario",
		})
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(req.Email),
		PasswordHash: hashedPassword,
		IsActive:     true,
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Error al crear el usuario",
		})
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Error al generar el token",
		})
	}

	return c.Status(201).JSON(AuthResponse{
		Success: true,
		Message: "Usuario registrado correctamente",
		Token:   token,
		User:    AuthUser{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}

// Login autentica a un usuario con email y contraseña
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Message: "Formato de datos inválido",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Message: "Email y contraseña son obligatorios",
		})
	}

	var user models.User
	if err := ac.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Message: "Email o contraseña incorrectos",
		})
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Message: "Email o contraseña incorrectos",
		})
	}

	if !user.IsActive {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Message: "La cuenta está desactivada",
		})
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Error al generar el token",
		})
	}

	return c.JSON(AuthResponse{
		Success: true,
		Message: "Inicio de sesión correcto",
		Token:   token,
		User:    AuthUser{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}

func (ac *AuthController) validateRegisterRequest(req *RegisterRequest) error {
	if len(strings.TrimSpace(req.Name)) < 2 {
		return errors.New("El nombre debe tener al menos 2 caracteres")
	}
	if !emailPattern.MatchString(req.Email) {
		return errors.New("Formato de email inválido")
	}
	if len(req.Password) < 6 {
		return errors.New("La contraseña debe tener al menos 6 caracteres")
	}
	if req.Password != req.ConfirmPassword {
		return errors.New("Las contraseñas no coinciden")
	}
	return nil
}
