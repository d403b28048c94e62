package validationx

import (
	"github.com/ARUMANDESU/validation"
	"github.com/ARUMANDESU/validation/is"
)

var (
	EmailRules = []validation.Rule{
		validation.Required,
		is.Email,
		validation.Length(5, 254),
	}

	CodeRules = []validation.Rule{
		validation.Required,
		validation.Length(6, 6),
		IsDigits,
	}
)
