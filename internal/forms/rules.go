// Package forms declares the validation rules of every form on the site and the helpers that run them.
package forms

import (
	"regexp"

	"github.com/mabego/edustream/internal/validator"
)

const (
	SignInForm     = "signin"
	SignUpForm     = "signup"
	EnrollmentForm = "enrollment"
	CheckoutForm   = "checkout"
)

var (
	// PhoneRX accepts an optional leading plus followed by up to 16 digits, the first of them non-zero.
	PhoneRX = regexp.MustCompile(`^[+]?[1-9][\d]{0,15}$`)
	// CardNumberRX accepts 16 digits written in groups of four, the shape FormatCardNumber produces.
	CardNumberRX = regexp.MustCompile(`^\d{4} \d{4} \d{4} \d{4}$`)
	ExpiryDateRX = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	CVVRX        = regexp.MustCompile(`^\d{3,4}$`)
	ZipCodeRX    = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 -]{1,9}$`)
	// PasswordRX matches values that mix both letter cases with at least one digit. RE2 has no
	// look-ahead, so each class is its own expression.
	PasswordRX validator.Matcher = allOf{
		regexp.MustCompile(`[a-z]`),
		regexp.MustCompile(`[A-Z]`),
		regexp.MustCompile(`\d`),
	}
)

// SignIn returns the rules of the sign-in form.
func SignIn() validator.Rules {
	return validator.Rules{
		"email":    {Required: true, Pattern: validator.EmailRX},
		"password": {Required: true, MinLength: 6},
	}
}

// SignUp returns the rules of the account creation form. confirmPassword is compared against the
// password value of the same submission.
func SignUp() validator.Rules {
	return validator.Rules{
		"name":  {Required: true, MinLength: 2, MaxLength: 50},
		"email": {Required: true, Pattern: validator.EmailRX},
		"password": {
			Required:  true,
			MinLength: 8,
			Pattern:   PasswordRX,
		},
		"confirmPassword": {
			Required: true,
			Custom:   matchesPassword,
		},
	}
}

// allOf matches a value only when every one of its matchers does.
type allOf []validator.Matcher

func (m allOf) MatchString(s string) bool {
	for _, matcher := range m {
		if !matcher.MatchString(s) {
			return false
		}
	}
	return true
}

func matchesPassword(value string, data map[string]string) string {
	if value != data["password"] {
		return "Passwords do not match"
	}
	return ""
}

// Enrollment returns the rules of the course enrollment form.
func Enrollment() validator.Rules {
	return validator.Rules{
		"firstName":  {Required: true, MinLength: 2, MaxLength: 30},
		"lastName":   {Required: true, MinLength: 2, MaxLength: 30},
		"email":      {Required: true, Pattern: validator.EmailRX},
		"phone":      {Required: true, Pattern: PhoneRX},
		"experience": {Required: true, Custom: permitted(ExperienceLevels...)},
		"goals":      {Required: true, MinLength: 10, MaxLength: 500},
	}
}

// ExperienceLevels are the choices offered by the enrollment form.
var ExperienceLevels = []string{"beginner", "intermediate", "advanced"}

func permitted(values ...string) func(string, map[string]string) string {
	return func(value string, _ map[string]string) string {
		if !validator.PermittedValue(value, values...) {
			return "Please choose one of the listed options"
		}
		return ""
	}
}

// Checkout returns the rules of the checkout form. Card fields are validated for shape only.
func Checkout() validator.Rules {
	return validator.Rules{
		"email":          {Required: true, Pattern: validator.EmailRX},
		"firstName":      {Required: true},
		"lastName":       {Required: true},
		"cardNumber":     {Required: true, Pattern: CardNumberRX},
		"expiryDate":     {Required: true, Pattern: ExpiryDateRX},
		"cvv":            {Required: true, Pattern: CVVRX},
		"billingAddress": {MaxLength: 120},
		"city":           {MaxLength: 60},
		"zipCode":        {Pattern: ZipCodeRX},
		"agreeToTerms": {Required: true, Custom: func(value string, _ map[string]string) string {
			if value != "true" {
				return "You must agree to the terms"
			}
			return ""
		}},
	}
}

var registry = map[string]func() validator.Rules{
	SignInForm:     SignIn,
	SignUpForm:     SignUp,
	EnrollmentForm: Enrollment,
	CheckoutForm:   Checkout,
}

// normalizers rewrite submitted values before validation, per form and field.
var normalizers = map[string]map[string]func(string) string{
	SignUpForm: {
		"name": Squash,
	},
	EnrollmentForm: {
		"firstName": Squash,
		"lastName":  Squash,
	},
	CheckoutForm: {
		"firstName":  Squash,
		"lastName":   Squash,
		"cardNumber": FormatCardNumber,
		"expiryDate": FormatExpiryDate,
	},
}

// Normalize rewrites values in place the way every submission of the named form is cleaned, so live
// checks and the final submission validate the same text.
func Normalize(name string, values map[string]string) {
	for field, normalize := range normalizers[name] {
		if value, ok := values[field]; ok {
			values[field] = normalize(value)
		}
	}
}

// Lookup returns the rules of a form by name.
func Lookup(name string) (validator.Rules, bool) {
	build, ok := registry[name]
	if !ok {
		return nil, false
	}
	return build(), true
}
