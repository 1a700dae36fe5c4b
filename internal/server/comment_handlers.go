package server

import (
	"fmt"

	"milaan/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListComments handles GET /api/problems/:id/comments (public).
func (s *Server) ListComments(c *fiber.Ctx) error {
	comments, err := s.sandbox(c).ListComments(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(comments)
}

// CreateComment handles POST /api/problems/:id/comments.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	actor := s.currentUser(c)
	problemID := c.Params("id")

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return s.respondError(c, models.NewValidationError("Invalid request body"))
	}

	sandbox := s.sandbox(c)
	comment, err := sandbox.AddComment(req.Content, problemID, actor)
	if err != nil {
		return s.respondError(c, err)
	}

	if problem, pErr := sandbox.Problem(problemID); pErr == nil && problem.UserID != actor.ID {
		s.notifier.Notify(c.UserContext(), problem.UserID, models.NotificationComment,
			fmt.Sprintf("%s commented on %q", actor.Name, problem.Title), comment.ID)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeleteComment handles DELETE /api/problems/:id/comments/:commentId.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	actor := s.currentUser(c)

	err := s.sandbox(c).DeleteComment(c.Params("id"), c.Params("commentId"), actor)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkSolution handles POST /api/problems/:id/comments/:commentId/solution.
// Accepting a solution also resolves the problem, as one operation.
func (s *Server) MarkSolution(c *fiber.Ctx) error {
	actor := s.currentUser(c)
	problemID := c.Params("id")
	commentID := c.Params("commentId")

	sandbox := s.sandbox(c)
	problem, err := sandbox.MarkAsSolution(commentID, problemID, actor)
	if err != nil {
		return s.respondError(c, err)
	}

	if comment, cErr := sandbox.Comment(problemID, commentID); cErr == nil && comment.UserID != actor.ID {
		s.notifier.Notify(c.UserContext(), comment.UserID, models.NotificationSolution,
			fmt.Sprintf("Your comment was accepted as the solution for %q", problem.Title), commentID)
	}

	return c.JSON(problem)
}
