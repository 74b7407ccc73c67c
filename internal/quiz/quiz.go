// Package quiz runs timed multiple-choice quizzes: answering, navigation, submission and scoring.
package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	MsgSelectAnswer   = "Please select an answer before proceeding"
	MsgAnswerRequired = "This question requires an answer"
)

var (
	ErrUnknownQuestion = errors.New("quiz: unknown question")
	ErrInvalidOption   = errors.New("quiz: invalid option")
	ErrSubmitted       = errors.New("quiz: already submitted")
	ErrWrongQuiz       = errors.New("quiz: attempt belongs to another quiz")
)

type Question struct {
	ID            string
	Question      string
	Options       []string
	CorrectAnswer int
	Explanation   string
}

type Quiz struct {
	ID        string
	Title     string
	TimeLimit time.Duration
	Questions []Question
}

func (q *Quiz) question(id string) (Question, bool) {
	for _, question := range q.Questions {
		if question.ID == id {
			return question, true
		}
	}
	return Question{}, false
}

// Attempt is one pass of a visitor through a quiz. Answers maps question IDs to option indexes.
type Attempt struct {
	QuizID    string            `json:"quizId"`
	Current   int               `json:"current"`
	Answers   map[string]int    `json:"answers"`
	Errors    map[string]string `json:"errors"`
	StartedAt time.Time         `json:"startedAt"`
	Submitted bool              `json:"submitted"`
	Expired   bool              `json:"expired"`

	quiz *Quiz
}

// Start begins a new attempt at now.
func (q *Quiz) Start(now time.Time) *Attempt {
	return &Attempt{
		QuizID:    q.ID,
		Answers:   make(map[string]int),
		Errors:    make(map[string]string),
		StartedAt: now,
		quiz:      q,
	}
}

// Restore decodes an attempt previously produced by Encode and binds it to q.
func Restore(q *Quiz, data []byte) (*Attempt, error) {
	a := &Attempt{}
	if err := json.Unmarshal(data, a); err != nil {
		return nil, fmt.Errorf("quiz: decode attempt: %w", err)
	}
	if a.QuizID != q.ID {
		return nil, ErrWrongQuiz
	}
	if a.Answers == nil {
		a.Answers = make(map[string]int)
	}
	if a.Errors == nil {
		a.Errors = make(map[string]string)
	}
	if a.Current < 0 || a.Current >= len(q.Questions) {
		a.Current = 0
	}

	a.quiz = q

	return a, nil
}

func (a *Attempt) Encode() ([]byte, error) {
	return json.Marshal(a)
}

func (a *Attempt) Quiz() *Quiz {
	return a.quiz
}

// CurrentQuestion returns the question the attempt is on, or the zero Question when the quiz has none.
func (a *Attempt) CurrentQuestion() Question {
	if a.Current < 0 || a.Current >= len(a.quiz.Questions) {
		return Question{}
	}
	return a.quiz.Questions[a.Current]
}

// Answer records option for the question with the given id and clears that question's error.
func (a *Attempt) Answer(id string, option int) error {
	if a.Submitted {
		return ErrSubmitted
	}

	question, ok := a.quiz.question(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, id)
	}
	if option < 0 || option >= len(question.Options) {
		return fmt.Errorf("%w: %d", ErrInvalidOption, option)
	}

	a.Answers[id] = option
	delete(a.Errors, id)

	return nil
}

func (a *Attempt) HasAnswer(id string) bool {
	_, ok := a.Answers[id]
	return ok
}

// Next moves to the following question. It refuses, flagging the current question, while the current
// question has no answer. On the last question it stays put.
func (a *Attempt) Next() bool {
	if len(a.quiz.Questions) == 0 {
		return false
	}

	id := a.CurrentQuestion().ID
	if !a.HasAnswer(id) {
		a.Errors[id] = MsgSelectAnswer
		return false
	}

	if a.Current < len(a.quiz.Questions)-1 {
		a.Current++
	}

	return true
}

func (a *Attempt) Previous() {
	if a.Current > 0 {
		a.Current--
	}
}

// Submit finishes the attempt once every question has an answer. Otherwise each unanswered question is
// flagged, the attempt moves to the first of them and Submit reports false.
func (a *Attempt) Submit() bool {
	if a.Submitted {
		return true
	}

	first := -1
	for i, question := range a.quiz.Questions {
		if !a.HasAnswer(question.ID) {
			a.Errors[question.ID] = MsgAnswerRequired
			if first < 0 {
				first = i
			}
		}
	}

	if first >= 0 {
		a.Current = first
		return false
	}

	a.Submitted = true
	a.Errors = make(map[string]string)

	return true
}

// Tick submits the attempt, answered or not, once its time limit has run out. It reports whether the
// attempt is submitted.
func (a *Attempt) Tick(now time.Time) bool {
	if !a.Submitted && a.quiz.TimeLimit > 0 && a.Remaining(now) == 0 {
		a.Submitted = true
		a.Expired = true
	}

	return a.Submitted
}

// Remaining is the time left at now, in whole seconds and never negative.
func (a *Attempt) Remaining(now time.Time) time.Duration {
	left := a.quiz.TimeLimit - now.Sub(a.StartedAt)
	if left <= 0 {
		return 0
	}
	return left.Truncate(time.Second)
}

func (a *Attempt) Answered() int {
	return len(a.Answers)
}

// Error returns the message flagged on a question, or the select prompt when it is the current
// question and still unanswered.
func (a *Attempt) Error(id string) string {
	if msg, ok := a.Errors[id]; ok {
		return msg
	}
	if !a.Submitted && len(a.quiz.Questions) > 0 && a.CurrentQuestion().ID == id && !a.HasAnswer(id) {
		return MsgSelectAnswer
	}
	return ""
}

func (a *Attempt) IsCorrect(id string) bool {
	question, ok := a.quiz.question(id)
	if !ok {
		return false
	}
	answer, ok := a.Answers[id]
	return ok && answer == question.CorrectAnswer
}

func (a *Attempt) Correct() int {
	n := 0
	for _, question := range a.quiz.Questions {
		if a.IsCorrect(question.ID) {
			n++
		}
	}
	return n
}

// Score is the share of correct answers as a rounded percentage.
func (a *Attempt) Score() int {
	if len(a.quiz.Questions) == 0 {
		return 0
	}
	return int(math.Round(float64(a.Correct()) / float64(len(a.quiz.Questions)) * 100))
}

// Progress is the position of the current question as a percentage of the quiz.
func (a *Attempt) Progress() int {
	if len(a.quiz.Questions) == 0 {
		return 0
	}
	return int(math.Round(float64(a.Current+1) / float64(len(a.quiz.Questions)) * 100))
}

// FormatTime renders d as minutes and zero-padded seconds, e.g. 4:05.
func FormatTime(d time.Duration) string {
	seconds := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Urgency classifies the remaining time for display: normal above five minutes, warning above one
// minute and critical below that.
func Urgency(remaining time.Duration) string {
	switch {
	case remaining > 5*time.Minute:
		return "normal"
	case remaining > time.Minute:
		return "warning"
	default:
		return "critical"
	}
}
