package ports

import (
	"context"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
)

// ActivityRepository persists the engagement audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, activity *domain.Activity) error
}

// ActivityService consumes engagement events off the dispatcher workers.
type ActivityService interface {
	Process(ctx context.Context, activity domain.Activity) error
}

// ActivityRecorder is the producer side: services enqueue events without
// blocking the request; delivery failures never surface to callers.
type ActivityRecorder interface {
	Record(activity domain.Activity)
}
