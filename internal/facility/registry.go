package facility

import "github.com/google/uuid"

// Registry keeps facilities in the order they were added. The simulation never
// reads it back; it exists for display.
type Registry struct {
	facilities []Facility
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends f.
func (r *Registry) Add(f Facility) {
	r.facilities = append(r.facilities, f)
}

// All returns a copy of every registered facility.
func (r *Registry) All() []Facility {
	out := make([]Facility, len(r.facilities))
	copy(out, r.facilities)
	return out
}

// Len returns the number of registered facilities.
func (r *Registry) Len() int {
	return len(r.facilities)
}

// CountByOwner returns how many facilities the giant with ownerID has built.
// Giants are told apart by ID, so two giants sharing a name keep separate counts.
func (r *Registry) CountByOwner(ownerID uuid.UUID) int {
	if ownerID == uuid.Nil {
		return 0
	}
	n := 0
	for _, f := range r.facilities {
		if f.OwnerID == ownerID {
			n++
		}
	}
	return n
}
