// Package settings holds the project planning parameters that drive
// the expiry-risk horizon.
package settings

import "context"

// Month parameter bounds. Anything outside collapses to the nearest
// bound rather than erroring: a wild value in the store must not stop
// a refresh.
const (
	MinMonths = 0
	MaxMonths = 24
)

// Project is the stored project configuration.
type Project struct {
	Name string
	Code string

	LeadMonths   int
	CoverMonths  int
	BufferMonths int
}

// ClampMonths forces a month parameter into [MinMonths, MaxMonths].
func ClampMonths(n int) int {
	if n < MinMonths {
		return MinMonths
	}
	if n > MaxMonths {
		return MaxMonths
	}
	return n
}

// Normalize returns the project with every month parameter clamped.
func (p Project) Normalize() Project {
	p.LeadMonths = ClampMonths(p.LeadMonths)
	p.CoverMonths = ClampMonths(p.CoverMonths)
	p.BufferMonths = ClampMonths(p.BufferMonths)
	return p
}

// HorizonMonths is the expiry lookahead: lead + cover + buffer, each
// clamped independently.
func (p Project) HorizonMonths() int {
	return ClampMonths(p.LeadMonths) + ClampMonths(p.CoverMonths) + ClampMonths(p.BufferMonths)
}

// Repository loads the stored project configuration. A store without
// project details yields a zero Project rather than an error.
type Repository interface {
	Load(ctx context.Context) (Project, error)
}
