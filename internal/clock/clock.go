package clock

import "time"

// Clock abstracts wall-clock reads so state transitions can be tested with
// fixed instants.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func New() Clock {
	return RealClock{}
}

func (RealClock) Now() time.Time {
	return time.Now()
}

// MockClock returns a programmable instant. Not safe for concurrent Set.
type MockClock struct {
	current time.Time
}

func NewMock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

func (c *MockClock) Now() time.Time {
	return c.current
}

func (c *MockClock) Set(t time.Time) {
	c.current = t
}

func (c *MockClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
