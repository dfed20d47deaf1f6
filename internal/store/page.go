package store

// Pagination bounds applied to every list operation.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

// Page selects a window of a list result.
type Page struct {
	Limit  int
	Offset int
}

// Normalize clamps the page to valid bounds: a non-positive limit becomes
// DefaultPageLimit, limits above MaxPageLimit are capped and negative offsets
// become zero.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
