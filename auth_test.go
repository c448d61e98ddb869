package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"bodega-backend/controllers"
	"bodega-backend/utils"

	"github.com/stretchr/testify/assert"
)

func TestRegistro(t *testing.T) {
	app, _, _ := setupTestApp()

	tests := []struct {
		name            string
		request         controllers.RegisterRequest
		expectedStatus  int
		expectedSuccess bool
	}{
		{
			name: "Registro correcto",
			request: controllers.RegisterRequest{
				Name:            "Usuario de Prueba",
				Email:           "prueba@bodega.cl",
				Password:        "secreto123",
				ConfirmPassword: "secreto123",
			},
			expectedStatus:  201,
			expectedSuccess: true,
		},
		{
			name: "Email inválido",
			request: controllers.RegisterRequest{
				Name:            "Usuario de Prueba",
				Email:           "no-es-un-email",
				Password:        "secreto123",
				ConfirmPassword: "secreto123",
			},
			expectedStatus:  400,
			expectedSuccess: false,
		},
		{
			name: "Las contraseñas no coinciden",
			request: controllers.RegisterRequest{
				Name:            "Usuario de Prueba",
				Email:           "otra@bodega.cl",
				Password:        "secreto123",
				ConfirmPassword: "distinta456",
			},
			expectedStatus:  400,
			expectedSuccess: false,
		},
		{
			name: "Contraseña demasiado corta",
			request: controllers.RegisterRequest{
				Name:            "Usuario de Prueba",
				Email:           "corta@bodega.cl",
				Password:        "123",
				ConfirmPassword: "123",
			},
			expectedStatus:  400,
			expectedSuccess: false,
		},
		{
			name: "Email duplicado",
			request: controllers.RegisterRequest{
				Name:            "Usuario Repetido",
				Email:           "prueba@bodega.cl",
				Password:        "secreto123",
				ConfirmPassword: "secreto123",
			},
			expectedStatus:  409,
			expectedSuccess: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonData, _ := json.Marshal(tt.request)
			req := httptest.NewRequest("POST", "/auth/register", bytes.NewBuffer(jsonData))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			var response controllers.AuthResponse
			err = json.NewDecoder(resp.Body).Decode(&response)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedSuccess, response.Success)

			if tt.expectedSuccess {
				assert.NotEmpty(t, response.Token)
				assert.NotEmpty(t, response.User.Email)
			}
		})
	}
}

func TestInicioDeSesion(t *testing.T) {
	app, _, _ := setupTestApp()

	// Primero registramos un usuario
	registerReq := controllers.RegisterRequest{
		Name:            "Usuario de Prueba",
		Email:           "prueba@bodega.cl",
		Password:        "secreto123",
		ConfirmPassword: "secreto123",
	}

	jsonData, _ := json.Marshal(registerReq)
	req := httptest.NewRequest("POST", "/auth/register", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	app.Test(req)

	tests := []struct {
		name            string
		request         controllers.LoginRequest
		expectedStatus  int
		expectedSuccess bool
	}{
		{
			name: "Inicio de sesión correcto",
			request: controllers.LoginRequest{
				Email:    "prueba@bodega.cl",
				Password: "secreto123",
			},
			expectedStatus:  200,
			expectedSuccess: true,
		},
		{
			name: "Contraseña incorrecta",
			request: controllers.LoginRequest{
				Email:    "prueba@bodega.cl",
				Password: "incorrecta",
			},
			expectedStatus:  401,
			expectedSuccess: false,
		},
		{
			name: "Usuario inexistente",
			request: controllers.LoginRequest{
				Email:    "nadie@bodega.cl",
				Password: "secreto123",
			},
			expectedStatus:  401,
			expectedSuccess: false,
		},
		{
			name: "Campos vacíos",
			request: controllers.LoginRequest{
				Email:    "",
				Password: "",
			},
			expectedStatus:  400,
			expectedSuccess: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonData, _ := json.Marshal(tt.request)
			req := httptest.NewRequest("POST", "/auth/login", bytes.NewBuffer(jsonData))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			var response controllers.AuthResponse
			err = json.NewDecoder(resp.Body).Decode(&response)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedSuccess, response.Success)

			if tt.expectedSuccess {
				assert.NotEmpty(t, response.Token)
			}
		})
	}
}

func TestJWT(t *testing.T) {
	userID := uint(1)
	email := "prueba@bodega.cl"

	token, err := utils.GenerateJWT(userID, email)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := utils.ValidateJWT(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, email, claims.Email)
}

func TestHashDeContrasena(t *testing.T) {
	password := "secreto123"

	hash, err := utils.HashPassword(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	assert.True(t, utils.CheckPasswordHash(password, hash))
	assert.False(t, utils.CheckPasswordHash("incorrecta", hash))
}

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "clave-secreta-de-prueba")

	code := m.Run()

	os.Unsetenv("JWT_SECRET")
	os.Exit(code)
}
