// file: internals/helpers/validator.go
package helper

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the validate tags on a DTO and maps failures
// into the field-error shape used by JsonValidationError.
func ValidateStruct(s any) map[string][]string {
	if err := validate.Struct(s); err != nil {
		out := map[string][]string{}
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				field := strings.ToLower(fe.Field())
				out[field] = append(out[field], fe.Tag())
			}
			return out
		}
		out["_"] = []string{err.Error()}
		return out
	}
	return nil
}
