package profile

import "sync"

// Registry holds the custom profiles known to one session. It is owned by the
// session object and handed to whatever needs profile lookups.
type Registry struct {
	mu     sync.RWMutex
	custom []Profile
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// RegisterCustom records a custom profile. Well-known names and names already
// registered are ignored. It reports whether the registry changed.
func (r *Registry) RegisterCustom(name string) bool {
	p := Normalize(name)
	if !p.IsCustom() {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.custom {
		if existing == p {
			return false
		}
	}
	r.custom = append(r.custom, p)
	return true
}

// Custom returns the custom profiles in discovery order.
func (r *Registry) Custom() []Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Profile, len(r.custom))
	copy(out, r.custom)
	return out
}

// All returns the well-known profiles in canonical order followed by the
// custom profiles in discovery order.
func (r *Registry) All() []Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Profile, 0, len(WellKnown)+len(r.custom))
	out = append(out, WellKnown...)
	out = append(out, r.custom...)
	return out
}

// Contains reports whether p is well-known or registered.
func (r *Registry) Contains(p Profile) bool {
	if !p.IsCustom() {
		return true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, existing := range r.custom {
		if existing == p {
			return true
		}
	}
	return false
}

// Reset clears every custom profile.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.custom = nil
}

// Replace swaps the custom set for names, keeping the same filtering rules as
// RegisterCustom. Readers see either the old or the new set.
func (r *Registry) Replace(names []string) {
	var next []Profile
	seen := make(map[Profile]bool)
	for _, name := range names {
		p := Normalize(name)
		if p.IsCustom() && !seen[p] {
			seen[p] = true
			next = append(next, p)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.custom = next
}
