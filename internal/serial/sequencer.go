package serial

import (
	"context"
	"time"
)

// TimeSequencer derives the sequence from the wall clock (unix millis modulo
// one million). Two calls within the same millisecond, or 1000 seconds
// apart, collide; use it only where uniqueness does not matter.
type TimeSequencer struct {
	Now func() time.Time
}

func (s TimeSequencer) Next(_ context.Context, _ string) (int64, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return now().UnixMilli() % (MaxSequence + 1), nil
}
