package domain

import "time"

// Comment is a user's remark on a dream, stored in its own collection and
// listed in creation order.
type Comment struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	DreamID   string    `json:"dream_id" bson:"dream_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
