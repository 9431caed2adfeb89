package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeFromUniqueID(t *testing.T) {
	tests := []struct {
		name     string
		uniqueID string
		want     string
	}{
		{"four segments", "PRJ/WH1/KMEDKIT01/DORACET1T", "DORACET1T"},
		{"fourth segment None falls back", "PRJ/WH1/DORACET1T/None", "DORACET1T"},
		{"three segments", "PRJ/WH1/DORACET1T", "DORACET1T"},
		{"third segment None falls back", "PRJ/DORACET1T/None", "DORACET1T"},
		{"two segments", "PRJ/DORACET1T", "DORACET1T"},
		{"second segment None returns whole", "PRJ/None", "PRJ/None"},
		{"plain code", "DORACET1T", "DORACET1T"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeFromUniqueID(tt.uniqueID))
		})
	}
}
