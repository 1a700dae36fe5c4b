package models

import "time"

// Comment is an offer of assistance or discussion under a problem.
// At most one comment per problem carries IsSolution = true.
type Comment struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	ProblemID  string    `json:"problemId"`
	UserID     string    `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
	IsSolution bool      `json:"isSolution"`
}

// Clone returns a copy of the comment.
func (c *Comment) Clone() *Comment {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// CommentView is a comment enriched with its author's user record.
type CommentView struct {
	Comment
	User *User `json:"user,omitempty"`
}
