package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/thekingpuff/kingpuff-api/internal/config"
	"github.com/thekingpuff/kingpuff-api/internal/models"
	"github.com/thekingpuff/kingpuff-api/internal/services"
)

type AuthController struct {
	userService services.UserService
	cfg         *config.Config
	jwtSecret   []byte
}

func NewAuthController(userService services.UserService, cfg *config.Config) *AuthController {
	return &AuthController{
		userService: userService,
		cfg:         cfg,
		jwtSecret:   []byte(cfg.JWTSecret),
	}
}

// Register godoc
// @Summary Register a customer account
// @Description Create a customer profile with an empty cart
// @Tags auth
// @Accept json
// @Produce json
// @Param account body object{nombre=string,instagram=string,email=string,password=string} true "Account details"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req struct {
		Nombre    string `json:"nombre" binding:"required"`
		Instagram string `json:"instagram" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := &models.User{
		Nombre:    req.Nombre,
		Instagram: req.Instagram,
		Correo:    req.Email,
		CreadoEn:  time.Now(),
	}

	if err := user.SetPassword(req.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "password_hashing_failed"})
		return
	}

	if err := ac.userService.CreateUser(user); err != nil {
		if errors.Is(err, services.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "user_already_exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration_failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "user_created", "uid": user.ID})
}

// Login godoc
// @Summary Log in
// @Description Verify credentials and issue a session token. The admin
// @Description role is derived from the configured allow-list, never
// @Description from stored profile data.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body object{email=string,password=string} true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.userService.GetUserByEmail(req.Email)
	if err != nil || !user.CheckPassword(req.Password) {
		// Same generic message for unknown email and wrong password
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	role := "user"
	if ac.cfg.IsAdminEmail(user.Correo) {
		role = "admin"
	}

	// Generate JWT token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":  user.ID,
		"role": role,
		"exp":  time.Now().Add(time.Hour * 24).Unix(),
		"iat":  time.Now().Unix(),
	})

	tokenString, err := token.SignedString(ac.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token_generation_failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": tokenString,
		"token_type":   "Bearer",
		"expires_in":   86400,
		"user": gin.H{
			"uid":       user.ID,
			"nombre":    user.Nombre,
			"instagram": user.Instagram,
			"correo":    user.Correo,
			"role":      role,
		},
	})
}
