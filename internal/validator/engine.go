package validator

import (
	"fmt"
	"maps"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// DefaultDebounce is how long an engine waits after the last change before re-validating the whole form.
const DefaultDebounce = 100 * time.Millisecond

const (
	MsgRequired      = "This field is required"
	MsgInvalidFormat = "Invalid format"
)

// patternMessages holds the pattern failure text for fields that have a dedicated one.
var patternMessages = map[string]string{
	"email":      "Please enter a valid email address",
	"password":   "Password must contain at least 8 characters, one uppercase, one lowercase, and one number",
	"cardNumber": "Please enter a valid card number",
	"expiryDate": "Please enter a valid expiry date (MM/YY)",
	"cvv":        "Please enter a valid CVV",
}

// Matcher reports whether a value has the expected shape. *regexp.Regexp satisfies it.
type Matcher interface {
	MatchString(s string) bool
}

// Rule declares the constraints of a single field. Zero MinLength and MaxLength are unset.
//
// Custom runs last and only when every other check passed. It receives the value being checked and a
// copy of the whole form, so cross-field checks read the live sibling values. It must not call back
// into the engine.
type Rule struct {
	Required  bool
	MinLength int
	MaxLength int
	Pattern   Matcher
	Custom    func(value string, data map[string]string) string
}

// Rules maps field names to their rule. The engine never modifies it.
type Rules map[string]Rule

// Option configures an Engine.
type Option func(*Engine)

// WithDebounce sets the delay of the coalesced whole-form pass. A delay <= 0 disables it.
func WithDebounce(d time.Duration) Option {
	return func(e *Engine) {
		e.delay = d
	}
}

// WithOnValidate registers fn to be called with the form validity after every debounced pass.
func WithOnValidate(fn func(valid bool)) Option {
	return func(e *Engine) {
		e.onValidate = fn
	}
}

// Engine holds the live state of one form: its values, the current error of each field, which fields
// have been touched and whether the form as a whole is valid.
//
// The debounced pass runs on a timer goroutine, so all state is guarded by mu.
type Engine struct {
	mu         sync.Mutex
	rules      Rules
	initial    map[string]string
	data       map[string]string
	errors     map[string]string
	touched    map[string]bool
	valid      bool
	delay      time.Duration
	onValidate func(valid bool)
	timer      *time.Timer
	generation uint64
	closed     bool
}

// NewEngine returns an engine over a copy of initial, validated by rules.
func NewEngine(initial map[string]string, rules Rules, opts ...Option) *Engine {
	e := &Engine{
		rules:   rules,
		initial: maps.Clone(initial),
		data:    maps.Clone(initial),
		errors:  make(map[string]string),
		touched: make(map[string]bool),
		delay:   DefaultDebounce,
	}
	if e.initial == nil {
		e.initial = make(map[string]string)
		e.data = make(map[string]string)
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// ValidateField checks value against the rule of name and returns the first failure, or "" when the
// value passes. It does not change any engine state.
func (e *Engine) ValidateField(name, value string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.check(name, value, maps.Clone(e.data))
}

func (e *Engine) check(name, value string, data map[string]string) string {
	rule, ok := e.rules[name]
	if !ok {
		return ""
	}

	if rule.Required && strings.TrimSpace(value) == "" {
		return MsgRequired
	}

	if value == "" {
		return ""
	}

	length := utf8.RuneCountInString(value)

	if rule.MinLength > 0 && length < rule.MinLength {
		return fmt.Sprintf("Must be at least %d characters", rule.MinLength)
	}

	if rule.MaxLength > 0 && length > rule.MaxLength {
		return fmt.Sprintf("Must be no more than %d characters", rule.MaxLength)
	}

	if rule.Pattern != nil && !rule.Pattern.MatchString(value) {
		if msg, ok := patternMessages[name]; ok {
			return msg
		}
		return MsgInvalidFormat
	}

	if rule.Custom != nil {
		return rule.Custom(value, data)
	}

	return ""
}

// ValidateForm checks every ruled field, replaces the error map with the result and marks those fields
// touched so their errors become visible. It reports whether the form is valid and must be called
// before a submission is accepted.
func (e *Engine) ValidateForm() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for name := range e.rules {
		e.touched[name] = true
	}

	return e.validateAll()
}

func (e *Engine) validateAll() bool {
	snapshot := maps.Clone(e.data)
	errs := make(map[string]string)

	for name := range e.rules {
		if msg := e.check(name, snapshot[name], snapshot); msg != "" {
			errs[name] = msg
		}
	}

	e.errors = errs
	e.valid = len(errs) == 0

	return e.valid
}

// HandleChange stores a new value. Once the field has been touched its error is recomputed at once;
// before that the change is silent. Every change reschedules the debounced whole-form pass.
func (e *Engine) HandleChange(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.data[name] = value

	if e.touched[name] {
		e.setError(name, e.check(name, value, maps.Clone(e.data)))
	}

	e.schedule()
}

// HandleBlur marks a field touched and recomputes its error against the stored value.
func (e *Engine) HandleBlur(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.touched[name] = true
	e.setError(name, e.check(name, e.data[name], maps.Clone(e.data)))
}

func (e *Engine) setError(name, msg string) {
	if msg == "" {
		delete(e.errors, name)
		return
	}
	e.errors[name] = msg
}

// Reset restores the initial values, forgets all errors and touched fields and cancels a pending pass.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancel()
	e.data = maps.Clone(e.initial)
	e.errors = make(map[string]string)
	e.touched = make(map[string]bool)
	e.valid = false
}

// Close cancels a pending pass. Changes made after Close are stored but never schedule another one.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancel()
	e.closed = true
}

// schedule replaces any pending pass with a new one. Callers hold mu.
func (e *Engine) schedule() {
	e.cancel()
	if e.closed || e.delay <= 0 {
		return
	}

	generation := e.generation
	e.timer = time.AfterFunc(e.delay, func() {
		e.fire(generation)
	})
}

// cancel stops the pending timer and invalidates it in case it already fired. Callers hold mu.
func (e *Engine) cancel() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.generation++
}

func (e *Engine) fire(generation uint64) {
	e.mu.Lock()
	if e.closed || generation != e.generation {
		e.mu.Unlock()
		return
	}
	e.timer = nil
	valid := e.validateAll()
	notify := e.onValidate
	e.mu.Unlock()

	if notify != nil {
		notify(valid)
	}
}

// Pending reports whether a debounced pass is scheduled.
func (e *Engine) Pending() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.timer != nil
}

func (e *Engine) Data() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return maps.Clone(e.data)
}

func (e *Engine) Value(name string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.data[name]
}

// Errors returns a copy of the error map, including errors of fields that are not yet touched.
func (e *Engine) Errors() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return maps.Clone(e.errors)
}

func (e *Engine) Error(name string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.errors[name]
}

// VisibleErrors returns the errors of touched fields only, which is what a form view should display.
func (e *Engine) VisibleErrors() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()

	visible := make(map[string]string)
	for name, msg := range e.errors {
		if e.touched[name] && msg != "" {
			visible[name] = msg
		}
	}

	return visible
}

func (e *Engine) Touched() map[string]bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return maps.Clone(e.touched)
}

func (e *Engine) IsTouched(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.touched[name]
}

func (e *Engine) Valid() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.valid
}
