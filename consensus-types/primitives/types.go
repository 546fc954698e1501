// Package primitives defines the base integer types used across consensus
// objects. They are thin wrappers over uint64 so that slots, epochs and
// validator indices cannot be mixed up silently.
package primitives

// Slot represents a single slot.
type Slot uint64

// Epoch represents a single epoch.
type Epoch uint64

// ValidatorIndex is the index of a validator in the registry.
type ValidatorIndex uint64

// CommitteeIndex is the index of a committee within a slot.
type CommitteeIndex uint64

// Add returns s + x.
func (s Slot) Add(x uint64) Slot {
	return s + Slot(x)
}

// Sub returns s - x. Callers must guarantee s >= x.
func (s Slot) Sub(x uint64) Slot {
	return s - Slot(x)
}

// Mod returns s % x.
func (s Slot) Mod(x uint64) Slot {
	return s % Slot(x)
}

// Add returns e + x.
func (e Epoch) Add(x uint64) Epoch {
	return e + Epoch(x)
}

// Sub returns e - x. Callers must guarantee e >= x.
func (e Epoch) Sub(x uint64) Epoch {
	return e - Epoch(x)
}
