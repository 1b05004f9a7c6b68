package order

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldAddress Field = "address"
)

// Fields lists the customer fields in form order.
var Fields = []Field{FieldName, FieldEmail, FieldPhone, FieldAddress}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-\+\(\)]{10,}$`)
)

type rule struct {
	check   func(string) bool
	message string
}

var rules = map[Field]rule{
	FieldName: {
		check:   func(v string) bool { return utf8.RuneCountInString(v) >= 2 },
		message: "Name must be at least 2 characters",
	},
	FieldEmail: {
		check:   emailPattern.MatchString,
		message: "Please enter a valid email address",
	},
	FieldPhone: {
		check:   phonePattern.MatchString,
		message: "Please enter a valid phone number",
	},
	FieldAddress: {
		check:   func(v string) bool { return utf8.RuneCountInString(v) >= 10 },
		message: "Please enter your complete address",
	},
}

func ParseField(s string) (Field, bool) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	_, ok := rules[f]
	return f, ok
}

// ValidateField checks the trimmed value against the field's rule. Fields
// without a rule always pass.
func ValidateField(field Field, value string) (bool, string) {
	r, ok := rules[field]
	if !ok {
		return true, ""
	}
	if r.check(strings.TrimSpace(value)) {
		return true, ""
	}
	return false, r.message
}

type Validation struct {
	Valid    bool             `json:"valid"`
	Messages map[Field]string `json:"errors"`
}

func (v Validation) Message(f Field) string {
	return v.Messages[f]
}

// ValidateAll runs every field rule. Messages holds an entry for every
// field, empty when the field is valid.
func ValidateAll(c CustomerInfo) Validation {
	v := Validation{Valid: true, Messages: make(map[Field]string, len(Fields))}
	for _, f := range Fields {
		ok, msg := ValidateField(f, c.value(f))
		if !ok {
			v.Valid = false
		}
		v.Messages[f] = msg
	}
	return v
}

func (c CustomerInfo) value(f Field) string {
	switch f {
	case FieldName:
		return c.Name
	case FieldEmail:
		return c.Email
	case FieldPhone:
		return c.Phone
	case FieldAddress:
		return c.Address
	}
	return ""
}

func (c CustomerInfo) trimmed() CustomerInfo {
	return CustomerInfo{
		Name:    strings.TrimSpace(c.Name),
		Email:   strings.TrimSpace(c.Email),
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
	}
}
