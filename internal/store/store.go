// Package store implements the problem/comment state container: the single
// source of truth for one session's problem collection and, per problem, its
// comments. All lifecycle invariants are enforced here and every operation is
// atomic from the caller's perspective.
package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"milaan/internal/models"

	"github.com/google/uuid"
)

// UserResolver resolves a user id to its record. Satisfied by
// *directory.Directory; only the denormalized reads use it.
type UserResolver interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Store owns one session's problem and comment collections.
// Problems are kept most-recent-first. Safe for concurrent use: the mutex
// serializes mutations so callers observe the same ordering a single-actor
// session would.
type Store struct {
	mu       sync.Mutex
	problems []*models.Problem
	byID     map[string]*models.Problem
	comments map[string][]*models.Comment

	users       UserResolver
	readLatency time.Duration
	now         func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithReadLatency makes the query operations wait d before resolving.
func WithReadLatency(d time.Duration) Option {
	return func(s *Store) { s.readLatency = d }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns an empty store resolving users through users.
func New(users UserResolver, opts ...Option) *Store {
	s := &Store{
		byID:     make(map[string]*models.Problem),
		comments: make(map[string][]*models.Comment),
		users:    users,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load preloads problems (given most-recent-first) and comments without
// validation. Intended for seeding; comment counts are recomputed so the
// CommentCount invariant holds regardless of the fixture values.
func (s *Store) Load(problems []*models.Problem, comments []*models.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range problems {
		cp := p.Clone()
		s.problems = append(s.problems, cp)
		s.byID[cp.ID] = cp
	}
	for _, c := range comments {
		cp := c.Clone()
		s.comments[cp.ProblemID] = append(s.comments[cp.ProblemID], cp)
	}
	for _, p := range s.problems {
		p.CommentCount = len(s.comments[p.ID])
	}
}

// Problem returns the problem by id without latency simulation or user
// resolution. Used for cheap existence and ownership checks.
func (s *Store) Problem(id string) (*models.Problem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return nil, models.NewNotFoundError("problem", id)
	}
	return p.Clone(), nil
}

// Comment returns a comment by id without latency simulation or user
// resolution.
func (s *Store) Comment(problemID, commentID string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.comments[problemID] {
		if c.ID == commentID {
			return c.Clone(), nil
		}
	}
	return nil, models.NewNotFoundError("comment", commentID)
}

// CreateProblem adds a new problem authored by actor at the head of the
// collection. Status starts open with zero upvotes and comments.
func (s *Store) CreateProblem(draft models.ProblemDraft, actor *models.User) (*models.Problem, error) {
	if actor == nil {
		return nil, models.NewUnauthorizedError("You must be logged in to post a problem")
	}
	if strings.TrimSpace(draft.Title) == "" || strings.TrimSpace(draft.Description) == "" {
		return nil, models.NewValidationError("Title and description are required")
	}
	if !models.ValidCategory(draft.Category) {
		return nil, models.NewValidationError("Unknown category")
	}

	now := s.now()
	p := &models.Problem{
		ID:          "problem_" + uuid.NewString(),
		Title:       draft.Title,
		Description: draft.Description,
		Category:    draft.Category,
		Status:      models.StatusOpen,
		Location:    draft.Location,
		Images:      append([]string(nil), draft.Images...),
		UserID:      actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
		IsUrgent:    draft.IsUrgent,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.problems = append([]*models.Problem{p}, s.problems...)
	s.byID[p.ID] = p
	return p.Clone(), nil
}

// UpdateProblem merges the patch into the problem and refreshes UpdatedAt.
// Only the problem's owner may edit; the check and the merge happen under one
// lock acquisition so concurrent requests cannot interleave between them.
func (s *Store) UpdateProblem(id string, patch models.ProblemPatch, actor *models.User) (*models.Problem, error) {
	if actor == nil {
		return nil, models.NewUnauthorizedError("You must be logged in to edit a problem")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return nil, models.NewNotFoundError("problem", id)
	}
	if p.UserID != actor.ID {
		return nil, models.NewForbiddenError("You can only edit your own problems")
	}
	if patch.Category != nil && !models.ValidCategory(*patch.Category) {
		return nil, models.NewValidationError("Unknown category")
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if patch.Images != nil {
		p.Images = append([]string(nil), (*patch.Images)...)
	}
	if patch.IsUrgent != nil {
		p.IsUrgent = *patch.IsUrgent
	}
	p.UpdatedAt = s.now()
	return p.Clone(), nil
}

// DeleteProblem removes the problem and its comments. Absence is success,
// not an error; a problem that exists and belongs to someone else is refused.
func (s *Store) DeleteProblem(id string, actor *models.User) error {
	if actor == nil {
		return models.NewUnauthorizedError("You must be logged in to delete a problem")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return nil
	}
	if p.UserID != actor.ID {
		return models.NewForbiddenError("You can only delete your own problems")
	}
	delete(s.byID, id)
	delete(s.comments, id)
	for i, q := range s.problems {
		if q.ID == id {
			s.problems = append(s.problems[:i], s.problems[i+1:]...)
			break
		}
	}
	return nil
}

// UpvoteProblem increments the problem's upvote count by one. Every call from
// an authenticated user counts; there is no per-user dedup.
func (s *Store) UpvoteProblem(id string, actor *models.User) (*models.Problem, error) {
	if actor == nil {
		return nil, models.NewUnauthorizedError("You must be logged in to upvote")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return nil, models.NewNotFoundError("problem", id)
	}
	p.Upvotes++
	return p.Clone(), nil
}

// AddComment creates a comment under the problem and bumps its CommentCount.
func (s *Store) AddComment(content, problemID string, actor *models.User) (*models.Comment, error) {
	if actor == nil {
		return nil, models.NewUnauthorizedError("You must be logged in to comment")
	}
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Content is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[problemID]
	if !ok {
		return nil, models.NewNotFoundError("problem", problemID)
	}

	c := &models.Comment{
		ID:        "comment_" + uuid.NewString(),
		Content:   content,
		ProblemID: problemID,
		UserID:    actor.ID,
		CreatedAt: s.now(),
	}
	s.comments[problemID] = append(s.comments[problemID], c)
	p.CommentCount++
	return c.Clone(), nil
}

// DeleteComment removes a comment. Only the comment's author may delete it;
// the parent problem's CommentCount is decremented so it keeps mirroring the
// collection size.
func (s *Store) DeleteComment(problemID, commentID string, actor *models.User) error {
	if actor == nil {
		return models.NewUnauthorizedError("You must be logged in to delete a comment")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[problemID]
	if !ok {
		return models.NewNotFoundError("problem", problemID)
	}
	for i, c := range s.comments[problemID] {
		if c.ID != commentID {
			continue
		}
		if c.UserID != actor.ID {
			return models.NewForbiddenError("You can only delete your own comments")
		}
		s.comments[problemID] = append(s.comments[problemID][:i], s.comments[problemID][i+1:]...)
		p.CommentCount--
		return nil
	}
	return models.NewNotFoundError("comment", commentID)
}

// MarkAsSolution flags the comment as the problem's accepted solution and
// moves the problem to solved, as one atomic operation. Only the problem's
// owner may accept a solution, and a solved problem accepts no further one,
// which keeps at most one solution comment per problem.
func (s *Store) MarkAsSolution(commentID, problemID string, actor *models.User) (*models.Problem, error) {
	if actor == nil {
		return nil, models.NewUnauthorizedError("You must be logged in to mark a solution")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[problemID]
	if !ok {
		return nil, models.NewNotFoundError("problem", problemID)
	}
	if p.UserID != actor.ID {
		return nil, models.NewForbiddenError("Only the problem owner can mark a solution")
	}
	if p.Status == models.StatusSolved {
		return nil, models.NewConflictError("This problem is already solved")
	}

	var target *models.Comment
	for _, c := range s.comments[problemID] {
		if c.ID == commentID {
			target = c
			break
		}
	}
	if target == nil {
		return nil, models.NewNotFoundError("comment", commentID)
	}

	target.IsSolution = true
	p.Status = models.StatusSolved
	p.UpdatedAt = s.now()
	return p.Clone(), nil
}

// OfferHelp adds actor to the problem's helper set. Only helpers may offer;
// re-offering is a conflict. The first helper moves an open problem to
// in-progress; later helpers leave the status alone.
func (s *Store) OfferHelp(problemID string, actor *models.User) (*models.Problem, error) {
	if actor == nil {
		return nil, models.NewUnauthorizedError("You must be logged in to offer help")
	}
	if actor.Role != models.RoleHelper {
		return nil, models.NewForbiddenError("Only helpers can offer help")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[problemID]
	if !ok {
		return nil, models.NewNotFoundError("problem", problemID)
	}
	if p.HasHelper(actor.ID) {
		return nil, models.NewConflictError("You are already helping with this problem")
	}
	p.HelperIDs = append(p.HelperIDs, actor.ID)
	if p.Status == models.StatusOpen {
		p.Status = models.StatusInProgress
	}
	p.UpdatedAt = s.now()
	return p.Clone(), nil
}
