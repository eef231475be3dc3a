package selection

// AllFeatures is the sentinel feature name meaning "--all-features".
const AllFeatures = "all"

// FeatureSet is the selected features: either an ordered set of names or the
// all-features sentinel. The zero value selects nothing.
type FeatureSet struct {
	all   bool
	names []string
}

// NewFeatureSet creates a set holding names in order, without duplicates.
func NewFeatureSet(names ...string) FeatureSet {
	var fs FeatureSet
	for _, n := range names {
		if n == AllFeatures {
			return FeatureSet{all: true}
		}
		if n != "" && !fs.Contains(n) {
			fs.names = append(fs.names, n)
		}
	}
	return fs
}

// All reports whether the all-features sentinel is selected.
func (f FeatureSet) All() bool {
	return f.all
}

// Names returns the explicitly selected features in selection order.
func (f FeatureSet) Names() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// Contains reports whether name is explicitly selected.
func (f FeatureSet) Contains(name string) bool {
	for _, n := range f.names {
		if n == name {
			return true
		}
	}
	return false
}

// Empty reports whether nothing is selected.
func (f FeatureSet) Empty() bool {
	return !f.all && len(f.names) == 0
}

func (f FeatureSet) equal(other FeatureSet) bool {
	if f.all != other.all || len(f.names) != len(other.names) {
		return false
	}
	for i := range f.names {
		if f.names[i] != other.names[i] {
			return false
		}
	}
	return true
}

func (f FeatureSet) toggle(name string) FeatureSet {
	if f.all {
		return FeatureSet{names: []string{name}}
	}
	if f.Contains(name) {
		out := FeatureSet{}
		for _, n := range f.names {
			if n != name {
				out.names = append(out.names, n)
			}
		}
		return out
	}
	return FeatureSet{names: append(f.Names(), name)}
}
