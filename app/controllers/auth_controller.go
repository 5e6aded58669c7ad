package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/sparkcreatives/donations-api/app/models"
	"github.com/sparkcreatives/donations-api/internal/pkg/auth"
	"github.com/sparkcreatives/donations-api/internal/pkg/middleware"
)

// AuthController issues and refreshes staff tokens against the seeded
// directory.
type AuthController struct {
	tokens    *auth.TokenService
	directory *auth.Directory
}

func NewAuthController(tokens *auth.TokenService, directory *auth.Directory) *AuthController {
	return &AuthController{tokens: tokens, directory: directory}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (ac *AuthController) HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Username and password are required")
	}

	user, err := ac.directory.Authenticate(req.Username, req.Password)
	if err != nil {
		log.Printf("failed login attempt for username: %s", req.Username)
		return authFailure(c, "Incorrect username or password")
	}

	return ac.issueTokenPair(c, user)
}

func (ac *AuthController) HandleRefresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "refresh_token is required")
	}

	claims, err := ac.tokens.Verify(req.RefreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return authFailure(c, "Invalid refresh token")
	}
	user := ac.directory.Get(claims.Subject)
	if user == nil || user.Disabled {
		return authFailure(c, "Invalid refresh token")
	}

	return ac.issueTokenPair(c, user)
}

// HandleMe returns the authenticated staff profile. Runs behind RequireAuth.
func (ac *AuthController) HandleMe(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return authFailure(c, "Could not validate credentials")
	}
	return c.JSON(fiber.Map{
		"username":  user.Username,
		"full_name": user.FullName,
		"email":     user.Email,
		"roles":     user.Roles,
		"disabled":  user.Disabled,
	})
}

// HandleLogout is stateless; clients discard their tokens.
func (ac *AuthController) HandleLogout(c *fiber.Ctx) error {
	if user := middleware.CurrentUser(c); user != nil {
		log.Printf("user %s logged out", user.Username)
	}
	return c.JSON(fiber.Map{"message": "Successfully logged out"})
}

func (ac *AuthController) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":          "active",
		"supported_roles": []string{models.RoleAdmin, models.RoleReviewer, models.RoleUser},
	})
}

func (ac *AuthController) issueTokenPair(c *fiber.Ctx, user *models.StaffUser) error {
	accessToken, err := ac.tokens.CreateAccessToken(user)
	if err != nil {
		return serverError(c, "Could not issue token")
	}
	refreshToken, err := ac.tokens.CreateRefreshToken(user.Username)
	if err != nil {
		return serverError(c, "Could not issue token")
	}
	log.Printf("user %s logged in successfully", user.Username)
	return c.JSON(fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "bearer",
	})
}

func authFailure(c *fiber.Ctx, message string) error {
	c.Set("WWW-Authenticate", "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func serverError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}
