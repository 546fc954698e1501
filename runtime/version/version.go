// Package version defines the fork versions a beacon state may carry.
package version

const (
	Phase0 = iota
	Altair
	Bellatrix
	Capella
)

// String returns the human readable name of a fork version.
func String(version int) string {
	switch version {
	case Phase0:
		return "phase0"
	case Altair:
		return "altair"
	case Bellatrix:
		return "bellatrix"
	case Capella:
		return "capella"
	default:
		return "unknown version"
	}
}
