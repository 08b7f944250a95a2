package domain

import "time"

// Activity verbs recorded in the engagement trail.
const (
	ActivityFollow   = "follow"
	ActivityUnfollow = "unfollow"
	ActivityReact    = "react"
	ActivityUnreact  = "unreact"
)

// Activity is one engagement event for the audit trail. SubjectID is the
// followed user for follow verbs and the dream for reaction verbs. Kind is
// only set for react.
type Activity struct {
	ActorID   string    `json:"actor_id" bson:"actor_id"`
	Verb      string    `json:"verb" bson:"verb"`
	SubjectID string    `json:"subject_id" bson:"subject_id"`
	Kind      string    `json:"kind,omitempty" bson:"kind,omitempty"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}
