package progression

import "math"

// Checked int64 arithmetic. Any result that would wrap is reported as
// ErrInvalidParams so a transition never commits a wrapped value.

func addInt64(a, b int64) (int64, error) {
	c := a + b
	if (c > a) != (b > 0) {
		return 0, ErrInvalidParams
	}
	return c, nil
}

func subInt64(a, b int64) (int64, error) {
	c := a - b
	if (c < a) != (b > 0) {
		return 0, ErrInvalidParams
	}
	return c, nil
}

func mulInt64(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, ErrInvalidParams
	}
	c := a * b
	if c/b != a {
		return 0, ErrInvalidParams
	}
	return c, nil
}
