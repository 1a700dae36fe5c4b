// Package directory holds the server-wide user records and serves the
// read-only user lookups the denormalized views are built from. Reads
// simulate remote latency; mutations apply immediately.
package directory

import (
	"context"
	"strings"
	"sync"
	"time"

	"milaan/internal/models"

	"github.com/google/uuid"
)

// Directory is the user record collection. Safe for concurrent use.
type Directory struct {
	mu          sync.RWMutex
	byID        map[string]*models.User
	byEmail     map[string]*models.User
	order       []string
	readLatency time.Duration
}

// Option configures a Directory.
type Option func(*Directory)

// WithReadLatency makes every read wait d before resolving, to exercise the
// callers' async paths. Zero disables the wait.
func WithReadLatency(d time.Duration) Option {
	return func(dir *Directory) { dir.readLatency = d }
}

// New returns an empty directory.
func New(opts ...Option) *Directory {
	dir := &Directory{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]*models.User),
	}
	for _, opt := range opts {
		opt(dir)
	}
	return dir
}

// Load registers users without validation. Intended for seeding.
func (d *Directory) Load(users []*models.User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, u := range users {
		cp := u.Clone()
		d.byID[cp.ID] = cp
		d.byEmail[strings.ToLower(cp.Email)] = cp
		d.order = append(d.order, cp.ID)
	}
}

// wait blocks for the configured read latency or until ctx is done.
func (d *Directory) wait(ctx context.Context) error {
	if d.readLatency <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(d.readLatency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GetByID resolves a user id to its record.
func (d *Directory) GetByID(ctx context.Context, id string) (*models.User, error) {
	if err := d.wait(ctx); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.byID[id]
	if !ok {
		return nil, models.NewNotFoundError("user", id)
	}
	return u.Clone(), nil
}

// GetByEmail resolves an email address to its record. The match is
// case-insensitive.
func (d *Directory) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := d.wait(ctx); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, models.NewNotFoundError("user", email)
	}
	return u.Clone(), nil
}

// ListByRole returns all users with the given role, in registration order.
func (d *Directory) ListByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	if err := d.wait(ctx); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	var users []*models.User
	for _, id := range d.order {
		if u := d.byID[id]; u.Role == role {
			users = append(users, u.Clone())
		}
	}
	return users, nil
}

// Search returns users whose name, email or bio contains the query,
// case-insensitive.
func (d *Directory) Search(ctx context.Context, query string) ([]*models.User, error) {
	if err := d.wait(ctx); err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	d.mu.RLock()
	defer d.mu.RUnlock()
	var users []*models.User
	for _, id := range d.order {
		u := d.byID[id]
		if strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Email), q) ||
			strings.Contains(strings.ToLower(u.Bio), q) {
			users = append(users, u.Clone())
		}
	}
	return users, nil
}

// Create registers a new user. The id and creation timestamp are assigned
// here. Fails with Conflict when the email is already taken and with
// ValidationFailed on missing required fields.
func (d *Directory) Create(u *models.User) (*models.User, error) {
	if u.Name == "" || u.Email == "" {
		return nil, models.NewValidationError("Name and email are required")
	}
	if !models.ValidRole(u.Role) {
		return nil, models.NewValidationError("Role must be helper or asker")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, exists := d.byEmail[key]; exists {
		return nil, models.NewConflictError("A user with this email already exists")
	}

	cp := u.Clone()
	cp.ID = "user_" + uuid.NewString()
	cp.CreatedAt = time.Now().UTC()
	d.byID[cp.ID] = cp
	d.byEmail[key] = cp
	d.order = append(d.order, cp.ID)
	return cp.Clone(), nil
}

// Update merges the patch into the user record and returns the result.
func (d *Directory) Update(id string, patch models.UserPatch) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.byID[id]
	if !ok {
		return nil, models.NewNotFoundError("user", id)
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}
	if patch.Bio != nil {
		u.Bio = *patch.Bio
	}
	if patch.Location != nil {
		u.Location = *patch.Location
	}
	return u.Clone(), nil
}

// IncHelpCount bumps a helper's derived counter when they take on a problem.
func (d *Directory) IncHelpCount(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if u, ok := d.byID[id]; ok {
		u.HelpCount++
	}
}

// IncProblemCount bumps an asker's derived counter when they post a problem.
func (d *Directory) IncProblemCount(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if u, ok := d.byID[id]; ok {
		u.ProblemCount++
	}
}
