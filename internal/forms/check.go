package forms

import (
	"strings"

	"github.com/mabego/edustream/internal/validator"
)

// Check replays a submitted form through a fresh engine and runs the whole-form pass that gates
// submission. It returns the error map and whether the form may be accepted. The debounced pass is
// off because the whole form is checked synchronously here.
func Check(rules validator.Rules, values map[string]string) (map[string]string, bool) {
	e := validator.NewEngine(blank(rules), rules, validator.WithDebounce(0))
	defer e.Close()

	for name, value := range values {
		e.HandleChange(name, value)
	}

	valid := e.ValidateForm()

	return e.Errors(), valid
}

// Interaction is one live-validation round trip from a form view: the current values, the fields the
// user has left at least once and the field that just changed, if any.
type Interaction struct {
	Values  map[string]string
	Touched []string
	Changed string
}

// Feedback is what a form view displays after an interaction.
type Feedback struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

// Live replays an interaction and returns the errors the view should show. Values of untouched fields
// are validated for the overall flag but their errors stay hidden. The browser already debounces input
// before each round trip, so the engine here does not.
func Live(rules validator.Rules, in Interaction) Feedback {
	e := validator.NewEngine(blank(rules), rules, validator.WithDebounce(0))
	defer e.Close()

	for name, value := range in.Values {
		if name != in.Changed {
			e.HandleChange(name, value)
		}
	}

	for _, name := range in.Touched {
		e.HandleBlur(strings.TrimSpace(name))
	}

	if in.Changed != "" {
		e.HandleChange(in.Changed, in.Values[in.Changed])
	}

	visible := e.VisibleErrors()

	valid := true
	for name := range rules {
		if e.ValidateField(name, e.Value(name)) != "" {
			valid = false
			break
		}
	}

	return Feedback{Valid: valid, Errors: visible}
}

func blank(rules validator.Rules) map[string]string {
	initial := make(map[string]string, len(rules))
	for name := range rules {
		initial[name] = ""
	}
	return initial
}
