package removal

import "github.com/kinasplayground/hammerremove/pkg/core"

// Eligible reports whether obj may be picked or removed by a hammer trigger.
// Participants, vehicles, dropped items and corpses are never eligible.
func Eligible(obj core.Removable) bool {
	if obj == nil || !obj.Alive() {
		return false
	}
	switch obj.Kind() {
	case core.KindPlayer, core.KindVehicle, core.KindWorldItem, core.KindCorpse:
		return false
	}
	return true
}
