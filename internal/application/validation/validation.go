// Package validation checks request DTOs at the boundary and turns the first
// failing field into a readable apperr validation error.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"usdh/internal/domain/account"
	"usdh/internal/domain/apperr"
)

// custom validation tags
const (
	notBlankTag = "notblank"
	emailTag    = "emailfmt"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Messages name fields by their label tag, falling back to the form name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlank)
	_ = validate.RegisterValidation(emailTag, emailFormat)

	registerTranslation(notBlankTag, "{0} is required")
	registerTranslation(emailTag, "please enter a valid email address")
}

func registerTranslation(tag, text string) {
	_ = validate.RegisterTranslation(tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		})
}

func notBlank(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return false
}

func emailFormat(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	return ok && account.ValidateEmail(s) == nil
}

// Struct validates v and returns the first failure as an apperr validation
// error, or nil.
// PRE: v is a struct or pointer to struct with validate tags
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperr.Validation(capitalize(verrs[0].Translate(translator)))
	}
	return apperr.Validation(err.Error())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
