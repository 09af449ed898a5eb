// Package assert provides runtime assertion checking for invariants. A failed assertion is a bug
// in this module, never a problem with the parsed input, so assertions panic.
package assert

import "fmt"

// That panics with the formatted message if condition is false.
func That(condition bool, msg string, args ...any) {
	if condition {
		return
	}

	if len(args) > 0 {
		panic(fmt.Sprintf(msg, args...))
	}
	panic(msg)
}

// Index panics if i is not a valid index into a sequence of length n.
func Index(i, n int, what string) {
	That(i >= 0 && i < n, "%s index %d out of range [0, %d)", what, i, n)
}
