package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Fullname: letters (accented included), spaces, hyphens, apostrophes.
var fullnameRe = regexp.MustCompile(`^[\p{L}\s\-']+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
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
	return v
}

// Messages maps a field path ("agent.email") or "path.tag" ("price.gte") to
// the text shown to the user. The more specific key wins.
type Messages map[string]string

// FieldErrors is keyed by json field path.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for k, v := range fe {
		parts = append(parts, k+": "+v)
	}
	return strings.Join(parts, "; ")
}

// Struct validates v against its `validate` tags. It returns nil or a
// FieldErrors with one message per failing field.
func Struct(v any, msgs Messages) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		path := fieldPath(fe.Namespace())
		if _, seen := out[path]; seen {
			continue
		}
		out[path] = message(msgs, path, fe)
	}
	return out
}

// fieldPath drops the root struct name: "EstateInput.agent.name" -> "agent.name".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(msgs Messages, path string, fe validator.FieldError) string {
	if m, ok := msgs[path+"."+fe.Tag()]; ok {
		return m
	}
	if m, ok := msgs[path]; ok {
		return m
	}
	if fe.Param() != "" {
		return "failed " + fe.Tag() + "=" + fe.Param()
	}
	return "failed " + fe.Tag()
}

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidPassword requires at least 8 characters with a letter, a digit and
// a punctuation or symbol character.
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter, hasDigit, hasSpecial := false, false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	return hasLetter && hasDigit && hasSpecial
}

func IsValidFullname(fullname string) bool {
	return fullname != "" && fullnameRe.MatchString(fullname)
}
