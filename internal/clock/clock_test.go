package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fixedClock always reports the same instant.
type fixedClock time.Time

func (f fixedClock) Now() time.Time { return time.Time(f) }

func TestRealClock_Now(t *testing.T) {
	before := time.Now()
	got := RealClock{}.Now()
	after := time.Now()

	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
}

func TestSince(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := fixedClock(start.Add(1500 * time.Millisecond))

	assert.Equal(t, 1500*time.Millisecond, Since(c, start))
	assert.Zero(t, Since(fixedClock(start), start))
}
