package validationx

import (
	"errors"
	"regexp"

	"github.com/ARUMANDESU/validation"
)

var digitsRegex = regexp.MustCompile(`^[0-9]+$`)

var ErrNotDigits = validation.NewError("validation_is_digit", "must contain digits only")

// IsDigits accepts strings made of ASCII digits only. Verification codes are
// zero-padded decimals, so is.Int would wrongly reject codes like "012345".
var IsDigits = validation.By(func(value any) error {
	s, ok := value.(string)
	if !ok {
		return errors.New("value is not a string")
	}
	if s == "" {
		return nil // Required handles emptiness
	}
	if !digitsRegex.MatchString(s) {
		return ErrNotDigits
	}
	return nil
})
