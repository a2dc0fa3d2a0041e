package event

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidQuarter is returned when a quarter label is not Q1 through Q4.
var ErrInvalidQuarter = errors.New("quarter must be one of Q1, Q2, Q3, Q4")

// Quarter is one of the four fiscal quarters of a simulated year.
type Quarter int

const (
	Q1 Quarter = iota + 1
	Q2
	Q3
	Q4
)

// Quarters lists every quarter in calendar order.
var Quarters = []Quarter{Q1, Q2, Q3, Q4}

// String returns the quarter tag (e.g. "Q2").
func (q Quarter) String() string {
	if !q.Valid() {
		return "Q?"
	}
	return fmt.Sprintf("Q%d", int(q))
}

// Valid reports whether q is Q1 through Q4.
func (q Quarter) Valid() bool {
	return q >= Q1 && q <= Q4
}

// ParseQuarter parses a quarter tag. Matching ignores case and surrounding
// whitespace, and a bare digit ("3") is accepted.
func ParseQuarter(s string) (Quarter, error) {
	tag := strings.ToUpper(strings.TrimSpace(s))
	tag = strings.TrimPrefix(tag, "Q")
	for _, q := range Quarters {
		if tag == fmt.Sprint(int(q)) {
			return q, nil
		}
	}
	return 0, fmt.Errorf("%w: got %q", ErrInvalidQuarter, s)
}
