package domain

import "time"

// FollowEdge is a directed relationship: follower observes followed's
// content. The ordered (FollowerID, FollowedID) pair is the identity of the
// edge; there is no surrogate key, and A→B never implies B→A.
type FollowEdge struct {
	FollowerID string    `json:"follower_id" bson:"follower_id"`
	FollowedID string    `json:"followed_id" bson:"followed_id"`
	FollowedAt time.Time `json:"followed_at" bson:"followed_at"`
}
