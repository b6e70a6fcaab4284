package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/stemsi/elearning-backend/internal/apperror"
)

// trans is the singleton English translator for validation errors.
var trans ut.Translator

// Setup registers the validator with English translations on Gin's binding engine.
// Call once during application startup.
func Setup() {
	if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
		// Use JSON tag name for field names in error messages.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, trans)
	}
}

// TranslateErrors returns a map of JSON field name to message, or nil when
// err is not a validation error.
func TranslateErrors(err error) map[string]string {
	var ve govalidator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		if trans != nil {
			fields[fe.Field()] = fe.Translate(trans)
		} else {
			fields[fe.Field()] = fe.Error()
		}
	}
	return fields
}

// BindJSON decodes and validates the request body into dst.
// A body that does not decode yields an InvalidPayload error; a decoded body
// that breaks a rule yields a Validation error and dst is still populated.
func BindJSON(c *gin.Context, dst interface{}) error {
	return classify(c.ShouldBindJSON(dst))
}

// Struct validates an already-populated value with the binding rules.
func Struct(v interface{}) error {
	return classify(binding.Validator.ValidateStruct(v))
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	if fields := TranslateErrors(err); fields != nil {
		return apperror.Validation(fields)
	}
	return apperror.InvalidPayload(err)
}
