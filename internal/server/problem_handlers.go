package server

import (
	"fmt"

	"milaan/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCategories handles GET /api/categories.
func (s *Server) GetCategories(c *fiber.Ctx) error {
	type category struct {
		Value models.Category `json:"value"`
		Label string          `json:"label"`
	}
	categories := models.Categories()
	out := make([]category, 0, len(categories))
	for _, cat := range categories {
		out = append(out, category{Value: cat, Label: cat.Label()})
	}
	return c.JSON(out)
}

// ListProblems handles GET /api/problems.
func (s *Server) ListProblems(c *fiber.Ctx) error {
	problems, err := s.sandbox(c).ListProblems(c.UserContext())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(problems)
}

// SearchProblems handles GET /api/problems/search?q=...
func (s *Server) SearchProblems(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return s.respondError(c, models.NewValidationError("Search query is required"))
	}
	problems, err := s.sandbox(c).SearchProblems(c.UserContext(), q)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(problems)
}

// GetProblem handles GET /api/problems/:id, returning the denormalized view.
func (s *Server) GetProblem(c *fiber.Ctx) error {
	view, err := s.sandbox(c).GetProblem(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(view)
}

// CreateProblem handles POST /api/problems.
func (s *Server) CreateProblem(c *fiber.Ctx) error {
	actor := s.currentUser(c)

	var draft models.ProblemDraft
	if err := c.BodyParser(&draft); err != nil {
		return s.respondError(c, models.NewValidationError("Invalid request body"))
	}

	problem, err := s.sandbox(c).CreateProblem(draft, actor)
	if err != nil {
		return s.respondError(c, err)
	}

	s.directory.IncProblemCount(actor.ID)

	return c.Status(fiber.StatusCreated).JSON(problem)
}

// UpdateProblem handles PUT /api/problems/:id. Owner-only; the container
// enforces ownership atomically with the merge.
func (s *Server) UpdateProblem(c *fiber.Ctx) error {
	var patch models.ProblemPatch
	if err := c.BodyParser(&patch); err != nil {
		return s.respondError(c, models.NewValidationError("Invalid request body"))
	}

	problem, err := s.sandbox(c).UpdateProblem(c.Params("id"), patch, s.currentUser(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(problem)
}

// DeleteProblem handles DELETE /api/problems/:id. Removal is idempotent: a
// problem that is already gone is a success, but a problem that exists and
// belongs to someone else is refused.
func (s *Server) DeleteProblem(c *fiber.Ctx) error {
	if err := s.sandbox(c).DeleteProblem(c.Params("id"), s.currentUser(c)); err != nil {
		return s.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpvoteProblem handles POST /api/problems/:id/upvote.
func (s *Server) UpvoteProblem(c *fiber.Ctx) error {
	actor := s.currentUser(c)

	problem, err := s.sandbox(c).UpvoteProblem(c.Params("id"), actor)
	if err != nil {
		return s.respondError(c, err)
	}

	if problem.UserID != actor.ID {
		s.notifier.Notify(c.UserContext(), problem.UserID, models.NotificationUpvote,
			fmt.Sprintf("%s upvoted %q", actor.Name, problem.Title), problem.ID)
	}

	return c.JSON(problem)
}

// OfferHelp handles POST /api/problems/:id/help.
func (s *Server) OfferHelp(c *fiber.Ctx) error {
	actor := s.currentUser(c)

	problem, err := s.sandbox(c).OfferHelp(c.Params("id"), actor)
	if err != nil {
		return s.respondError(c, err)
	}

	s.directory.IncHelpCount(actor.ID)
	s.notifier.Notify(c.UserContext(), problem.UserID, models.NotificationHelper,
		fmt.Sprintf("%s offered to help with %q", actor.Name, problem.Title), problem.ID)

	return c.JSON(problem)
}
