package removal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kinasplayground/hammerremove/pkg/core"
)

func TestEligible(t *testing.T) {
	tests := []struct {
		name string
		obj  core.Removable
		want bool
	}{
		{"nil", nil, false},
		{"structure", &piece{kind: core.KindStructure, alive: true}, true},
		{"deployable", &piece{kind: core.KindDeployable, alive: true}, true},
		{"dead structure", &piece{kind: core.KindStructure, alive: false}, false},
		{"player", &piece{kind: core.KindPlayer, alive: true}, false},
		{"vehicle", &piece{kind: core.KindVehicle, alive: true}, false},
		{"world item", &piece{kind: core.KindWorldItem, alive: true}, false},
		{"corpse", &piece{kind: core.KindCorpse, alive: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Eligible(tt.obj))
		})
	}
}
