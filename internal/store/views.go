package store

import (
	"context"
	"strings"
	"time"

	"milaan/internal/models"
)

// The read side. These are pure reads over the container that attach the
// referenced user records for display and simulate remote latency. A user id
// that no longer resolves fails the whole read rather than being silently
// omitted, so the caller never sees a half-resolved view.

// wait blocks for the configured read latency or until ctx is done.
func (s *Store) wait(ctx context.Context) error {
	if s.readLatency <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(s.readLatency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// snapshot copies the current problem list under the lock.
func (s *Store) snapshot() []*models.Problem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Problem, 0, len(s.problems))
	for _, p := range s.problems {
		out = append(out, p.Clone())
	}
	return out
}

// ListProblems returns the ordered collection, most recent first.
func (s *Store) ListProblems(ctx context.Context) ([]*models.Problem, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.snapshot(), nil
}

// GetProblem returns the problem enriched with its author and helper records.
func (s *Store) GetProblem(ctx context.Context, id string) (*models.ProblemView, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	p, ok := s.byID[id]
	if ok {
		p = p.Clone()
	}
	s.mu.Unlock()
	if !ok {
		return nil, models.NewNotFoundError("problem", id)
	}

	user, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	view := &models.ProblemView{Problem: *p, User: user}
	for _, helperID := range p.HelperIDs {
		helper, err := s.users.GetByID(ctx, helperID)
		if err != nil {
			return nil, err
		}
		view.Helpers = append(view.Helpers, helper)
	}
	return view, nil
}

// ListComments returns the problem's comments enriched with their authors,
// oldest first. NotFound when the problem does not exist.
func (s *Store) ListComments(ctx context.Context, problemID string) ([]*models.CommentView, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	_, ok := s.byID[problemID]
	comments := make([]*models.Comment, 0, len(s.comments[problemID]))
	for _, c := range s.comments[problemID] {
		comments = append(comments, c.Clone())
	}
	s.mu.Unlock()
	if !ok {
		return nil, models.NewNotFoundError("problem", problemID)
	}

	views := make([]*models.CommentView, 0, len(comments))
	for _, c := range comments {
		user, err := s.users.GetByID(ctx, c.UserID)
		if err != nil {
			return nil, err
		}
		views = append(views, &models.CommentView{Comment: *c, User: user})
	}
	return views, nil
}

// ProblemsByUser returns the problems posted by the given user.
func (s *Store) ProblemsByUser(ctx context.Context, userID string) ([]*models.Problem, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	var out []*models.Problem
	for _, p := range s.snapshot() {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ProblemsByHelper returns the problems the given user is helping with.
func (s *Store) ProblemsByHelper(ctx context.Context, helperID string) ([]*models.Problem, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	var out []*models.Problem
	for _, p := range s.snapshot() {
		if p.HasHelper(helperID) {
			out = append(out, p)
		}
	}
	return out, nil
}

// SearchProblems returns problems whose title, description, category or
// address contains the query, case-insensitive.
func (s *Store) SearchProblems(ctx context.Context, query string) ([]*models.Problem, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var out []*models.Problem
	for _, p := range s.snapshot() {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(string(p.Category)), q) ||
			strings.Contains(strings.ToLower(p.Location.Address), q) {
			out = append(out, p)
		}
	}
	return out, nil
}
