// Package validation evaluates ordered per-field rule tables and collects
// every failure message instead of stopping at the first one.
package validation

import (
	"net"
	"net/url"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// validator instances cache tag parsing and are safe for concurrent use.
var validate = validator.New()

// Field is a single request value. Present is false when the JSON key was
// missing or null.
type Field struct {
	Present bool
	Value   string
}

func Of(v *string) Field {
	if v == nil {
		return Field{}
	}
	return Field{Present: true, Value: *v}
}

type Rule struct {
	Message string
	Valid   func(Field) bool
}

// Required fails when the field is absent.
func Required(label string) Rule {
	return Rule{
		Message: label + " cannot be omitted",
		Valid:   func(f Field) bool { return f.Present },
	}
}

// NotEmpty fails when the field is present but blank.
func NotEmpty(label string) Rule {
	return Rule{
		Message: label + " cannot be an empty string",
		Valid: func(f Field) bool {
			return !f.Present || strings.TrimSpace(f.Value) != ""
		},
	}
}

// Tag fails when a present field does not satisfy the validator tag,
// e.g. "email", "url" or "min=6,max=10".
func Tag(tag, message string) Rule {
	return Rule{
		Message: message,
		Valid: func(f Field) bool {
			if !f.Present {
				return true
			}
			return validate.Var(f.Value, tag) == nil
		},
	}
}

// WebURL fails when a present field is not an absolute http, https or ftp
// URL whose host is an IP or a dotted name ending in an alphabetic TLD.
func WebURL(message string) Rule {
	return Rule{
		Message: message,
		Valid: func(f Field) bool {
			if !f.Present {
				return true
			}
			return isWebURL(f.Value)
		},
	}
}

func isWebURL(s string) bool {
	if validate.Var(s, "url") != nil {
		return false
	}

	u, err := url.Parse(s)
	if err != nil {
		return false
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https", "ftp":
	default:
		return false
	}

	host := u.Hostname()
	if net.ParseIP(host) != nil {
		return true
	}

	dot := strings.LastIndex(host, ".")
	if dot <= 0 {
		return false
	}

	tld := host[dot+1:]
	if len(tld) < 2 {
		return false
	}
	for _, r := range tld {
		if !unicode.IsLetter(r) {
			return false
		}
	}

	return true
}

type FieldRules struct {
	Name  string
	Rules []Rule
}

// Schema is evaluated in declaration order.
type Schema []FieldRules

// Validate returns the message of every violated rule, or nil.
func (s Schema) Validate(values map[string]Field) []string {
	var messages []string

	for _, fr := range s {
		f := values[fr.Name]

		for _, rule := range fr.Rules {
			if !rule.Valid(f) {
				messages = append(messages, rule.Message)
			}
		}
	}

	return messages
}
