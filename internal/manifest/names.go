package manifest

import "github.com/jakoblorz/cargo-ws/internal/profile"

// nameSet keeps profile names unique in first-seen order.
type nameSet struct {
	seen  map[profile.Profile]bool
	names []string
}

func newNameSet() *nameSet {
	return &nameSet{seen: make(map[profile.Profile]bool)}
}

func (s *nameSet) addAll(names []string) {
	for _, name := range names {
		p := profile.Normalize(name)
		if s.seen[p] {
			continue
		}
		s.seen[p] = true
		s.names = append(s.names, p.Name())
	}
}

func (s *nameSet) customOnly() []string {
	var out []string
	for _, name := range s.names {
		if profile.Normalize(name).IsCustom() {
			out = append(out, name)
		}
	}
	return out
}
