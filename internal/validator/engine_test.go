package validator

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/mabego/edustream/internal/assert"
)

func newTestEngine(initial map[string]string, rules Rules) *Engine {
	return NewEngine(initial, rules, WithDebounce(0))
}

func TestValidateField(t *testing.T) {
	rules := Rules{
		"name":     {Required: true, MinLength: 2, MaxLength: 5},
		"email":    {Required: true, Pattern: EmailRX},
		"nickname": {MinLength: 3, Pattern: regexp.MustCompile(`^[a-z]+$`)},
		"code":     {Pattern: regexp.MustCompile(`^\d+$`)},
		"cvv":      {Pattern: regexp.MustCompile(`^\d{3,4}$`)},
		"color": {Custom: func(value string, _ map[string]string) string {
			if value != "red" {
				return "Only red"
			}
			return ""
		}},
	}

	tests := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{name: "Required empty", field: "name", value: "", want: MsgRequired},
		{name: "Required blank", field: "name", value: "   ", want: MsgRequired},
		{name: "Too short", field: "name", value: "a", want: "Must be at least 2 characters"},
		{name: "Min boundary", field: "name", value: "ab", want: ""},
		{name: "Max boundary", field: "name", value: "abcde", want: ""},
		{name: "Too long", field: "name", value: "abcdef", want: "Must be no more than 5 characters"},
		{name: "Runes not bytes", field: "name", value: "ééééé", want: ""},
		{name: "Valid email", field: "email", value: "a@b.com", want: ""},
		{name: "Invalid email", field: "email", value: "not-an-email", want: "Please enter a valid email address"},
		{name: "Optional empty skips checks", field: "nickname", value: "", want: ""},
		{name: "Length before pattern", field: "nickname", value: "A1", want: "Must be at least 3 characters"},
		{name: "Generic pattern message", field: "code", value: "12a", want: MsgInvalidFormat},
		{name: "Dedicated pattern message", field: "cvv", value: "12", want: "Please enter a valid CVV"},
		{name: "Custom failure", field: "color", value: "blue", want: "Only red"},
		{name: "Custom pass", field: "color", value: "red", want: ""},
		{name: "No rule", field: "unknown", value: "", want: ""},
	}

	e := newTestEngine(nil, rules)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, e.ValidateField(tt.field, tt.value), tt.want)
		})
	}

	assert.Len(t, e.Errors(), 0)
	assert.Len(t, e.Touched(), 0)
}

func TestValidateFieldCustomSkippedAfterFailure(t *testing.T) {
	called := false
	rules := Rules{"pin": {Required: true, MinLength: 4, Custom: func(string, map[string]string) string {
		called = true
		return "custom"
	}}}

	e := newTestEngine(nil, rules)

	assert.Equal(t, e.ValidateField("pin", "12"), "Must be at least 4 characters")
	assert.Equal(t, called, false)
	assert.Equal(t, e.ValidateField("pin", "1234"), "custom")
	assert.Equal(t, called, true)
}

func TestValidateForm(t *testing.T) {
	rules := Rules{
		"email":    {Required: true},
		"password": {Required: true},
	}

	e := newTestEngine(map[string]string{"email": "a@b.com", "password": "", "extra": ""}, rules)

	assert.Equal(t, e.ValidateForm(), false)
	assert.Equal(t, e.Valid(), false)
	assert.Len(t, e.Errors(), 1)
	assert.Equal(t, e.Error("password"), MsgRequired)
	assert.Equal(t, e.IsTouched("email"), true)
	assert.Equal(t, e.IsTouched("password"), true)
	assert.Equal(t, e.IsTouched("extra"), false)

	first := e.Errors()
	assert.Equal(t, e.ValidateForm(), false)
	second := e.Errors()
	assert.Len(t, second, len(first))
	for name, msg := range first {
		assert.Equal(t, second[name], msg)
	}

	e.HandleChange("password", "secret")
	assert.Equal(t, e.ValidateForm(), true)
	assert.Len(t, e.Errors(), 0)
}

type hasDigit struct{}

func (hasDigit) MatchString(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}

func TestValidateFieldMatcher(t *testing.T) {
	e := newTestEngine(nil, Rules{
		"password": {MinLength: 4, Pattern: hasDigit{}},
		"pin":      {Pattern: hasDigit{}},
	})

	assert.Equal(t, e.ValidateField("password", "abcd"),
		"Password must contain at least 8 characters, one uppercase, one lowercase, and one number")
	assert.Equal(t, e.ValidateField("password", "abc"), "Must be at least 4 characters")
	assert.Equal(t, e.ValidateField("password", "abc1"), "")
	assert.Equal(t, e.ValidateField("pin", "none"), MsgInvalidFormat)
}

func TestHandleChange(t *testing.T) {
	rules := Rules{"email": {Required: true, Pattern: EmailRX}}

	t.Run("Untouched", func(t *testing.T) {
		e := newTestEngine(map[string]string{"email": ""}, rules)

		e.HandleChange("email", "bad")
		assert.Equal(t, e.Value("email"), "bad")
		assert.Len(t, e.Errors(), 0)
	})

	t.Run("Touched", func(t *testing.T) {
		e := newTestEngine(map[string]string{"email": ""}, rules)

		e.HandleBlur("email")
		assert.Equal(t, e.Error("email"), MsgRequired)

		e.HandleChange("email", "bad")
		assert.Equal(t, e.Error("email"), "Please enter a valid email address")

		e.HandleChange("email", "a@b.com")
		assert.Equal(t, e.Error("email"), "")
		assert.Len(t, e.Errors(), 0)
	})

	t.Run("Fields without rules", func(t *testing.T) {
		e := newTestEngine(nil, rules)

		e.HandleBlur("note")
		e.HandleChange("note", "anything")
		assert.Equal(t, e.Value("note"), "anything")
		assert.Len(t, e.Errors(), 0)
	})
}

func TestHandleBlur(t *testing.T) {
	e := newTestEngine(map[string]string{"name": "ok"}, Rules{"name": {Required: true, MinLength: 2}})

	assert.Len(t, e.VisibleErrors(), 0)

	e.HandleBlur("name")
	assert.Equal(t, e.IsTouched("name"), true)
	assert.Len(t, e.Errors(), 0)

	e.HandleChange("name", "x")
	assert.Equal(t, e.VisibleErrors()["name"], "Must be at least 2 characters")

	e.HandleBlur("name")
	assert.Equal(t, e.IsTouched("name"), true)
	assert.Equal(t, e.Error("name"), "Must be at least 2 characters")
}

func TestVisibleErrors(t *testing.T) {
	e := newTestEngine(nil, Rules{
		"a": {Required: true},
		"b": {Required: true},
	})

	e.HandleBlur("a")
	e.HandleChange("b", "")

	visible := e.VisibleErrors()
	assert.Len(t, visible, 1)
	assert.Equal(t, visible["a"], MsgRequired)
}

func TestReset(t *testing.T) {
	initial := map[string]string{"name": "Ada", "email": ""}
	e := newTestEngine(initial, Rules{"name": {Required: true}, "email": {Required: true}})

	e.HandleBlur("name")
	e.HandleChange("name", "")
	e.HandleChange("email", "a@b.com")
	e.HandleChange("other", "x")
	e.ValidateForm()

	e.Reset()

	data := e.Data()
	assert.Len(t, data, len(initial))
	for name, value := range initial {
		assert.Equal(t, data[name], value)
	}
	assert.Len(t, e.Errors(), 0)
	assert.Len(t, e.Touched(), 0)
	assert.Equal(t, e.Valid(), false)

	// The caller's map was copied on construction.
	assert.Equal(t, initial["name"], "Ada")
}

func TestCrossFieldCustom(t *testing.T) {
	rules := Rules{
		"password": {Required: true},
		"confirmPassword": {Required: true, Custom: func(value string, data map[string]string) string {
			if value != data["password"] {
				return "Passwords do not match"
			}
			return ""
		}},
	}

	e := newTestEngine(map[string]string{"password": "", "confirmPassword": ""}, rules)

	e.HandleChange("password", "Secret123")
	e.HandleChange("confirmPassword", "Secret12")
	e.HandleBlur("confirmPassword")
	assert.Equal(t, e.Error("confirmPassword"), "Passwords do not match")

	e.HandleChange("password", "Secret12")
	e.HandleBlur("confirmPassword")
	assert.Equal(t, e.Error("confirmPassword"), "")

	assert.Equal(t, e.ValidateForm(), true)
}

func TestDebouncedValidation(t *testing.T) {
	results := make(chan bool, 10)

	e := NewEngine(map[string]string{"name": ""}, Rules{"name": {Required: true, MinLength: 3}},
		WithDebounce(20*time.Millisecond),
		WithOnValidate(func(valid bool) { results <- valid }))
	defer e.Close()

	e.HandleChange("name", "a")
	e.HandleChange("name", "ab")
	e.HandleChange("name", "abc")

	select {
	case valid := <-results:
		assert.Equal(t, valid, true)
	case <-time.After(2 * time.Second):
		t.Fatal("debounced validation did not run")
	}

	// Rapid edits were coalesced into the single pass above.
	select {
	case <-results:
		t.Fatal("more than one debounced pass ran")
	case <-time.After(100 * time.Millisecond):
	}

	assert.Equal(t, e.Valid(), true)
	assert.Equal(t, e.Pending(), false)

	// The debounced pass fills the error map but does not touch fields.
	e.HandleChange("name", "")
	<-results
	assert.Equal(t, e.Error("name"), MsgRequired)
	assert.Equal(t, e.IsTouched("name"), false)
	assert.Len(t, e.VisibleErrors(), 0)
}

func TestDebounceCancelled(t *testing.T) {
	results := make(chan bool, 1)
	newEngine := func() *Engine {
		return NewEngine(nil, Rules{"name": {Required: true}},
			WithDebounce(20*time.Millisecond),
			WithOnValidate(func(valid bool) { results <- valid }))
	}

	t.Run("Close", func(t *testing.T) {
		e := newEngine()
		e.HandleChange("name", "x")
		assert.Equal(t, e.Pending(), true)
		e.Close()
		assert.Equal(t, e.Pending(), false)

		e.HandleChange("name", "y")
		assert.Equal(t, e.Pending(), false)
		assert.Equal(t, e.Value("name"), "y")
	})

	t.Run("Reset", func(t *testing.T) {
		e := newEngine()
		defer e.Close()
		e.HandleChange("name", "x")
		e.Reset()
		assert.Equal(t, e.Pending(), false)
	})

	select {
	case <-results:
		t.Fatal("cancelled pass ran")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestEngineProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	e := newTestEngine(nil, Rules{
		"required": {Required: true},
		"optional": {MinLength: 6, Pattern: regexp.MustCompile(`^x+$`)},
		"min":      {MinLength: 6},
	})

	properties.Property("blank required values report the required message", prop.ForAll(
		func(n int) bool {
			return e.ValidateField("required", strings.Repeat(" ", n)) == MsgRequired
		},
		gen.IntRange(0, 20),
	))

	properties.Property("non-blank values pass a bare required rule", prop.ForAll(
		func(s string) bool {
			return e.ValidateField("required", "a"+s) == ""
		},
		gen.AlphaString(),
	))

	properties.Property("empty optional values pass", prop.ForAll(
		func(string) bool {
			return e.ValidateField("optional", "") == ""
		},
		gen.AlphaString(),
	))

	properties.Property("min length is inclusive", prop.ForAll(
		func(n int) bool {
			got := e.ValidateField("min", strings.Repeat("a", n))
			if n == 0 || n >= 6 {
				return got == ""
			}
			return got == "Must be at least 6 characters"
		},
		gen.IntRange(0, 20),
	))

	properties.Property("validate form is idempotent", prop.ForAll(
		func(required, min string) bool {
			form := newTestEngine(map[string]string{"required": required, "min": min}, e.rules)
			firstValid, firstErrs := form.ValidateForm(), form.Errors()
			secondValid, secondErrs := form.ValidateForm(), form.Errors()
			if firstValid != secondValid || len(firstErrs) != len(secondErrs) {
				return false
			}
			for name, msg := range firstErrs {
				if secondErrs[name] != msg {
					return false
				}
			}
			return firstValid == (len(firstErrs) == 0)
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
