// Package validation holds the form rules shared by every public and admin
// form. Rules are declared as `validate` struct tags; failures come back as
// human-readable messages keyed by the field's JSON name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"suryaghar_backend/internals/constants"
)

var (
	mobileRe     = regexp.MustCompile(`^[6-9]\d{9}$`)
	personNameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z ]*$`)
	otpRe        = regexp.MustCompile(`^\d{4}$`)
)

var (
	once     sync.Once
	validate *validator.Validate
)

func enumRule(list []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return constants.Contains(list, fl.Field().String())
	}
}

func regexRule(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(strings.TrimSpace(fl.Field().String()))
	}
}

// Validator returns the shared instance with the custom tags registered.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		rules := map[string]validator.Func{
			"indian_mobile":      regexRule(mobileRe),
			"person_name":        regexRule(personNameRe),
			"otp4":               regexRule(otpRe),
			"indian_state":       enumRule(constants.States),
			"job_position":       enumRule(constants.Positions),
			"legal_doc_type":     enumRule(constants.LegalDocumentTypes),
			"gallery_category":   enumRule(constants.GalleryCategories),
			"job_category":       enumRule(constants.JobCategories),
			"job_type":           enumRule(constants.JobTypes),
			"applicant_status":   enumRule(constants.ApplicantStatuses),
			"job_status":         enumRule(constants.JobStatuses),
			"application_status": enumRule(constants.JobApplicationStatuses),
		}
		for tag, fn := range rules {
			if err := v.RegisterValidation(tag, fn); err != nil {
				panic(fmt.Sprintf("register %s: %v", tag, err))
			}
		}
		validate = v
	})
	return validate
}

// Messages overrides the default text. Keys are "field" (any rule) or
// "field.tag" (one rule).
type Messages map[string]string

// Errors is the per-field result; nil means valid.
type Errors map[string][]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e[k], ", "))
	}
	return strings.Join(parts, "; ")
}

func (e Errors) Add(field, msg string) {
	for _, m := range e[field] {
		if m == msg {
			return
		}
	}
	e[field] = append(e[field], msg)
}

// Check validates the whole form.
func Check(form any, msgs Messages) Errors {
	return check(form, msgs, nil)
}

// CheckPresent reports only the fields listed in present. It backs the
// field-by-field validation the forms run while the user types.
func CheckPresent(form any, msgs Messages, present map[string]bool) Errors {
	if present == nil {
		present = map[string]bool{}
	}
	return check(form, msgs, present)
}

func check(form any, msgs Messages, present map[string]bool) Errors {
	err := Validator().Struct(form)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return Errors{"_": {err.Error()}}
	}
	out := Errors{}
	for _, fe := range ves {
		field := fe.Field()
		if present != nil && !present[field] {
			continue
		}
		out.Add(field, message(fe, msgs))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func message(fe validator.FieldError, msgs Messages) string {
	if m, ok := msgs[fe.Field()+"."+fe.Tag()]; ok {
		return m
	}
	if m, ok := msgs[fe.Field()]; ok {
		return m
	}
	label := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "gte":
		return fmt.Sprintf("%s cannot be less than %s", label, fe.Param())
	case "lte":
		return fmt.Sprintf("%s cannot be more than %s", label, fe.Param())
	case "email":
		return "Invalid email address"
	case "url":
		return label + " must be a valid URL"
	case "indian_mobile":
		return "Invalid mobile number"
	case "person_name":
		return label + " can only contain letters and spaces"
	case "otp4":
		return "Code must be 4 digits"
	case "eqfield":
		return label + " does not match"
	case "indian_state":
		return "Please select a state"
	case "job_position":
		return "Please select a position"
	case "legal_doc_type":
		return "Unknown document type"
	case "gallery_category":
		return "Please select a category"
	case "job_category":
		return "Please select a job category"
	case "job_type":
		return "Please select a job type"
	case "applicant_status", "job_status", "application_status":
		return "Invalid status"
	}
	return label + " is invalid"
}

func humanize(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return "Field"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// IsMobile applies the one mobile rule used by every form.
func IsMobile(s string) bool { return mobileRe.MatchString(strings.TrimSpace(s)) }
