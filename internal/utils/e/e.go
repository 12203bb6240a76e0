package e

import "fmt"

// Wrap prefixes err with msg, keeping it matchable with errors.Is
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

