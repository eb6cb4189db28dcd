package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"rapid-pay-api/internal/constant"
)

// ValidationMsg renders one binding failure as English text.
func ValidationMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must match %s", fe.Field(), fe.Param())
	case "gt", "gte":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "dive":
		return fmt.Sprintf("%s contains an invalid entry", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}

// BindingError converts a gin binding failure into a field error. Only the
// first failing field is reported.
func BindingError(err error) constant.Error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		code := constant.CodeParamsFormatError
		if fe.Tag() == "required" {
			code = constant.CodeMissingParams
		}
		return constant.NewFieldErrorMsg(code, fe.Field(), ValidationMsg(fe))
	}
	return constant.NewError(constant.CodeInvalidParams)
}

var wireNamesOnce sync.Once

// UseWireFieldNames makes validator report json/form names instead of Go field names.
func UseWireFieldNames() {
	wireNamesOnce.Do(registerWireNames)
}

func registerWireNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
}
