package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var shared = validator.New()

// Validator returns the process-wide validator shared by request DTOs and
// stored models.
func Validator() *validator.Validate {
	return shared
}

// MustRegister adds a custom tag to the shared validator. Registration runs at
// package init, so a bad tag panics at startup.
func MustRegister(tag string, fn validator.Func) {
	if err := shared.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}
