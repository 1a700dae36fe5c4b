package models

import "time"

// Status is the lifecycle state of a problem. It only ever advances:
// open -> in-progress -> solved, with open -> solved permitted when the owner
// accepts a solution before any helper is tracked. Nothing leaves solved.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusSolved     Status = "solved"
)

// Problem is a request for help posted by an asker.
type Problem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Status      Status    `json:"status"`
	Location    Location  `json:"location"`
	Images      []string  `json:"images,omitempty"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	// HelperIDs has set semantics; a user appears at most once.
	HelperIDs    []string `json:"helperIds,omitempty"`
	Upvotes      int      `json:"upvotes"`
	CommentCount int      `json:"commentCount"`
	IsUrgent     bool     `json:"isUrgent"`
}

// ProblemDraft carries the caller-supplied fields of a new problem.
type ProblemDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Location    Location `json:"location"`
	Images      []string `json:"images,omitempty"`
	IsUrgent    bool     `json:"isUrgent"`
}

// ProblemPatch holds the updatable content fields of a problem. Nil fields
// are left untouched. Lifecycle fields (status, counters, helpers) are never
// patched directly; they change only through their dedicated operations.
type ProblemPatch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Category    *Category `json:"category"`
	Location    *Location `json:"location"`
	Images      *[]string `json:"images"`
	IsUrgent    *bool     `json:"isUrgent"`
}

// HasHelper reports whether userID is already in the helper set.
func (p *Problem) HasHelper(userID string) bool {
	for _, id := range p.HelperIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the problem.
func (p *Problem) Clone() *Problem {
	if p == nil {
		return nil
	}
	c := *p
	if p.Images != nil {
		c.Images = append([]string(nil), p.Images...)
	}
	if p.HelperIDs != nil {
		c.HelperIDs = append([]string(nil), p.HelperIDs...)
	}
	return &c
}

// ProblemView is a problem enriched with the referenced user records for
// display, computed at read time.
type ProblemView struct {
	Problem
	User    *User   `json:"user,omitempty"`
	Helpers []*User `json:"helpers,omitempty"`
}
