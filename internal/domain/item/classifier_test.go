package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectType(t *testing.T) {
	tests := []struct {
		name        string
		code        string
		designation string
		want        Type
	}{
		{"empty code", "", "anything", TypeItem},
		{"kit by designation prefix", "KMEDKIT01", "Kit, surgical, complete", TypeKit},
		{"kit by modules mention", "KSUR05", "surgical set with modules", TypeKit},
		{"module", "KMOD02", "dressing module, sterile", TypeModule},
		{"lowercase k prefix", "kmod07", "injection module", TypeModule},
		{"k prefix plain designation", "KXY", "scalpel", TypeItem},
		{"ordinary item", "DORAAMOX1T", "amoxicillin 250mg tab", TypeItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectType(tt.code, tt.designation))
		})
	}
}

func TestTypeMatches(t *testing.T) {
	assert.True(t, TypeKit.Matches("all"))
	assert.True(t, TypeKit.Matches(""))
	assert.True(t, TypeKit.Matches("kit"))
	assert.True(t, TypeModule.Matches("MODULE"))
	assert.False(t, TypeItem.Matches("Kit"))
}
