package server

import (
	"errors"

	"milaan/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Register handles POST /api/auth/register. The new identity is created and
// adopted in one step: registration logs the user in.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Name     string          `json:"name"`
		Email    string          `json:"email"`
		Password string          `json:"password"`
		Role     models.Role     `json:"role"`
		Bio      string          `json:"bio"`
		Avatar   string          `json:"avatar"`
		Location models.Location `json:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		return s.respondError(c, models.NewValidationError("Invalid request body"))
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return s.respondError(c, models.NewValidationError("Name, email, and password are required"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return s.respondError(c, models.NewInternalError(err))
	}

	user, err := s.directory.Create(&models.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		Bio:          req.Bio,
		Avatar:       req.Avatar,
		Location:     req.Location,
		PasswordHash: string(hashedPassword),
	})
	if err != nil {
		return s.respondError(c, err)
	}

	sess := s.sessions.Start()
	s.sessions.Adopt(c.UserContext(), sess, user)

	token, err := s.generateToken(sess, user.ID)
	if err != nil {
		return s.respondError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login. Identities created through
// registration are verified against their bcrypt hash; the seeded demo
// identities carry no hash and accept any password, a deliberate demo-only
// shortcut.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return s.respondError(c, models.NewValidationError("Invalid request body"))
	}
	if req.Email == "" {
		return s.respondError(c, models.NewValidationError("Email is required"))
	}

	user, err := s.directory.GetByEmail(c.UserContext(), req.Email)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return s.respondError(c, models.NewInvalidCredentialsError())
		}
		return s.respondError(c, err)
	}

	if user.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			return s.respondError(c, models.NewInvalidCredentialsError())
		}
	}

	sess := s.sessions.Start()
	s.sessions.Adopt(c.UserContext(), sess, user)

	token, err := s.generateToken(sess, user.ID)
	if err != nil {
		return s.respondError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /api/auth/logout. The session's sandbox and identity
// slot are discarded.
func (s *Server) Logout(c *fiber.Ctx) error {
	sess := s.currentSession(c)
	if sess != nil {
		s.sessions.End(c.UserContext(), sess)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
