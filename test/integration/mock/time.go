package mock

import "time"

// Time is a settable clock that keeps ticking from the value it was set to.
type Time struct {
	currentStartTime time.Time
	updatedAt        time.Time
}

func NewTime() *Time {
	now := time.Now().UTC()
	return &Time{
		currentStartTime: now,
		updatedAt:        now,
	}
}

func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.currentStartTime = currentTime.UTC()
	t.updatedAt = time.Now().UTC()
}

func (t *Time) Now() time.Time {
	elapsed := time.Now().UTC().Sub(t.updatedAt)
	return t.currentStartTime.Add(elapsed)
}
