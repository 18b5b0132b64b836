package category

// DefaultOrder is the admin entry order for Hall of Fame categories.
var DefaultOrder = []string{
	"Written Content",
	"Art & Visual",
	"Meme Content",
	"Other Creative Content",
}

// DefaultThreshold is the group size that triggers an advance.
const DefaultThreshold = 3

// Next returns the category after current in order. The last entry and
// unknown categories return current unchanged; there is no wraparound.
func Next(current string, order []string) string {
	for i, c := range order {
		if c != current {
			continue
		}
		if i == len(order)-1 {
			return current
		}
		return order[i+1]
	}
	return current
}

// Rotation decides whether the active category advances after a creation.
type Rotation struct {
	Order     []string
	Threshold int
}

// NewRotation builds a policy, falling back to the defaults for empty input.
func NewRotation(order []string, threshold int) Rotation {
	if len(order) == 0 {
		order = DefaultOrder
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return Rotation{Order: order, Threshold: threshold}
}

// Advance returns the category to use for subsequent entries once the
// (month, category) group holds groupCount records. The bool reports
// whether the category actually changed.
func (r Rotation) Advance(current string, groupCount int) (string, bool) {
	if groupCount < r.Threshold {
		return current, false
	}
	next := Next(current, r.Order)
	return next, next != current
}

// First returns the first category of the order.
func (r Rotation) First() string {
	if len(r.Order) == 0 {
		return ""
	}
	return r.Order[0]
}

// Contains reports whether c is one of the ordered categories.
func (r Rotation) Contains(c string) bool {
	for _, o := range r.Order {
		if o == c {
			return true
		}
	}
	return false
}
