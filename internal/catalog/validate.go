package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"golang.org/x/mod/semver"
)

var (
	validatorOnce sync.Once
	validate      *validator.Validate
	trans         ut.Translator
)

var examIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// engine returns the shared validator with English translations.
func engine() (*validator.Validate, ut.Translator) {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their JSON names.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("semver_v", func(fl validator.FieldLevel) bool {
			return semver.IsValid(fl.Field().String())
		})
		_ = v.RegisterValidation("examid", func(fl validator.FieldLevel) bool {
			return examIDPattern.MatchString(fl.Field().String())
		})

		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, trans)
		registerMessage(v, "semver_v", "{0} must be a semantic version such as v1.2.0")
		registerMessage(v, "examid", "{0} may only contain lowercase letters, digits and dashes")

		validate = v
	})
	return validate, trans
}

func registerMessage(v *validator.Validate, tag, text string) {
	_ = v.RegisterTranslation(tag, trans, func(t ut.Translator) error {
		return t.Add(tag, text, true)
	}, func(t ut.Translator, fe validator.FieldError) string {
		msg, _ := t.T(tag, fe.Field())
		return msg
	})
}

// ValidationError lists the problems found in one exam definition.
type ValidationError struct {
	ExamID string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
	}
	return fmt.Sprintf("exam %q invalid: %s", e.ExamID, strings.Join(parts, "; "))
}

// Validate checks an exam definition. It returns a *ValidationError listing
// every failing field.
func Validate(cfg ExamConfig) error {
	cfg = cfg.Clone()
	cfg.normalize()
	v, _ := engine()

	fields := make(map[string]string)
	if err := v.Struct(cfg); err != nil {
		for k, msg := range TranslateErrors(err) {
			fields[k] = msg
		}
	}

	seen := make(map[string]bool, len(cfg.Questions))
	for i, q := range cfg.Questions {
		if seen[q.ID] {
			fields[fmt.Sprintf("questions[%d].id", i)] = fmt.Sprintf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
	}

	if len(fields) > 0 {
		return &ValidationError{ExamID: cfg.ID, Fields: fields}
	}
	return nil
}

// TranslateErrors maps each failing field to a readable message. An error
// that is not a validation error is reported under "detail".
func TranslateErrors(err error) map[string]string {
	_, tr := engine()
	fields := make(map[string]string)

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fieldPath(fe.Namespace())] = fe.Translate(tr)
		}
		return fields
	}

	fields["detail"] = err.Error()
	return fields
}

// fieldPath drops the leading struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
