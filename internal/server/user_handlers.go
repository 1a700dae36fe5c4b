package server

import (
	"milaan/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	// The directory copy carries the live derived counters; the session slot
	// may lag behind them.
	user, err := s.directory.GetByID(c.UserContext(), s.currentUser(c).ID)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me. Self-service only: the patch is
// always applied to the acting identity.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	actor := s.currentUser(c)

	var patch models.UserPatch
	if err := c.BodyParser(&patch); err != nil {
		return s.respondError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.directory.Update(actor.ID, patch)
	if err != nil {
		return s.respondError(c, err)
	}

	if sess := s.currentSession(c); sess != nil {
		s.sessions.Adopt(c.UserContext(), sess, user)
	}

	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	user, err := s.directory.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(user)
}

// GetUserProblems handles GET /api/users/:id/problems.
func (s *Server) GetUserProblems(c *fiber.Ctx) error {
	problems, err := s.sandbox(c).ProblemsByUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(problems)
}

// GetUserHelping handles GET /api/users/:id/helping, the problems the user
// has offered help on.
func (s *Server) GetUserHelping(c *fiber.Ctx) error {
	problems, err := s.sandbox(c).ProblemsByHelper(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(problems)
}

// ListUsers handles GET /api/users?role=helper|asker.
func (s *Server) ListUsers(c *fiber.Ctx) error {
	role := models.Role(c.Query("role"))
	if role == "" {
		users, err := s.directory.Search(c.UserContext(), "")
		if err != nil {
			return s.respondError(c, err)
		}
		return c.JSON(users)
	}
	if !models.ValidRole(role) {
		return s.respondError(c, models.NewValidationError("Role must be helper or asker"))
	}
	users, err := s.directory.ListByRole(c.UserContext(), role)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(users)
}

// SearchUsers handles GET /api/users/search?q=...
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return s.respondError(c, models.NewValidationError("Search query is required"))
	}
	users, err := s.directory.Search(c.UserContext(), q)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(users)
}
