package model

// DefaultCategories lists the operator categories packages are filed
// under. The order here is the order /categories shows.
var DefaultCategories = []string{
	"GP",
	"Robi",
	"Banglalink",
	"Airtel",
	"Teletalk",
	"Skitto",
}

// Registry is the fixed set of valid categories. It is built once at
// startup and never changes while the process runs.
type Registry struct {
	names []string
	index map[string]struct{}
}

// NewRegistry builds a registry from names, falling back to
// DefaultCategories when names is empty.
func NewRegistry(names []string) Registry {
	if len(names) == 0 {
		names = DefaultCategories
	}
	r := Registry{
		names: append([]string(nil), names...),
		index: make(map[string]struct{}, len(names)),
	}
	for _, n := range r.names {
		r.index[n] = struct{}{}
	}
	return r
}

// Names returns the categories in listing order.
func (r Registry) Names() []string {
	return r.names
}

// Valid reports whether name is a known category. Matching is exact:
// store paths are case-sensitive.
func (r Registry) Valid(name string) bool {
	_, ok := r.index[name]
	return ok
}
