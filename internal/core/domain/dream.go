package domain

import (
	"strings"
	"time"
)

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// reactionKinds is the closed set of accepted reaction kinds. Input is
// normalised to lower case before the lookup, so counts and replacements
// never depend on caller casing.
var reactionKinds = map[string]struct{}{
	"like":    {},
	"dislike": {},
	"cry":     {},
	"best":    {},
}

// NormalizeReactionKind lower-cases kind and validates it against the
// accepted set. Returns ErrInvalidReaction for anything outside the set.
func NormalizeReactionKind(kind string) (string, error) {
	k := strings.ToLower(strings.TrimSpace(kind))
	if _, ok := reactionKinds[k]; !ok {
		return "", ErrInvalidReaction
	}
	return k, nil
}

// Reaction is one user's current sentiment on a dream. A dream never holds
// more than one reaction per user; reacting again replaces the old entry.
type Reaction struct {
	UserID    string    `json:"user_id" bson:"user_id"`
	Kind      string    `json:"kind" bson:"kind"`
	ReactedAt time.Time `json:"reacted_at" bson:"reacted_at"`
}

// Dream is the core content aggregate. Reactions live embedded in the dream
// document and share its lifetime.
type Dream struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	AuthorID    string     `json:"author_id" bson:"author_id"`
	Title       string     `json:"title" bson:"title"`
	Content     string     `json:"content" bson:"content"`
	Tags        []string   `json:"tags,omitempty" bson:"tags,omitempty"`
	Visibility  string     `json:"visibility" bson:"visibility"`
	IsReposted  bool       `json:"is_reposted" bson:"is_reposted"`
	Reactions   []Reaction `json:"reactions" bson:"reactions"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	LastUpdated time.Time  `json:"last_updated" bson:"last_updated"`
}

// HasReaction reports whether userID has any reaction on the dream.
func (d *Dream) HasReaction(userID string) bool {
	for _, r := range d.Reactions {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// ReactionCount returns the number of reactions of the given kind.
// The match is case-insensitive.
func (d *Dream) ReactionCount(kind string) int {
	n := 0
	for _, r := range d.Reactions {
		if strings.EqualFold(r.Kind, kind) {
			n++
		}
	}
	return n
}

// TotalReactionCount returns the number of reactions across all kinds.
func (d *Dream) TotalReactionCount() int {
	return len(d.Reactions)
}
