package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampMonths(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-3, 0},
		{0, 0},
		{7, 7},
		{24, 24},
		{25, 24},
		{1000, 24},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampMonths(tt.in), "ClampMonths(%d)", tt.in)
	}
}

func TestProjectHorizon(t *testing.T) {
	p := Project{LeadMonths: 3, CoverMonths: 6, BufferMonths: 2}
	assert.Equal(t, 11, p.HorizonMonths())

	// Each parameter clamps independently before summing.
	wild := Project{LeadMonths: 99, CoverMonths: -5, BufferMonths: 12}
	assert.Equal(t, 36, wild.HorizonMonths())

	norm := wild.Normalize()
	assert.Equal(t, Project{LeadMonths: 24, CoverMonths: 0, BufferMonths: 12}, norm)
}

func TestZeroProjectHasZeroHorizon(t *testing.T) {
	assert.Zero(t, Project{}.HorizonMonths())
}
