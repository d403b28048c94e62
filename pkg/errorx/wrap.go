package errorx

import "fmt"

// Wrap annotates err with the operation that produced it. The original
// error remains reachable through errors.Is/errors.As.
func Wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
