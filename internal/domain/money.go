package domain

import "fmt"

// Money is an amount in minor currency units (cents). All balance and
// pricing arithmetic stays in integers so repeated rounding can never
// leak or create value.
type Money int64

func (m Money) String() string {
	units := m / 100
	cents := m % 100
	if cents < 0 {
		cents = -cents
	}
	if m < 0 && units == 0 {
		return fmt.Sprintf("-0.%02d", cents)
	}
	return fmt.Sprintf("%d.%02d", units, cents)
}
