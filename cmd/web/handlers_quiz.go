package main

import (
	"errors"
	"net/http"

	"github.com/mabego/edustream/internal/quiz"
)

type quizForm struct {
	Question string `form:"question"`
	Answer   *int   `form:"answer"`
	Action   string `form:"action"`
}

// loadAttempt restores the visitor's attempt from the session, starting a new one when there is none or
// the stored one cannot be read.
func (app *application) loadAttempt(r *http.Request) *quiz.Attempt {
	data := app.sessionManager.GetBytes(r.Context(), quizAttemptSessionKey)
	if data == nil {
		return app.quiz.Start(app.now())
	}

	attempt, err := quiz.Restore(app.quiz, data)
	if err != nil {
		app.errorLog.Printf("Failed to restore quiz attempt: %v", err)
		return app.quiz.Start(app.now())
	}

	return attempt
}

func (app *application) saveAttempt(r *http.Request, attempt *quiz.Attempt) error {
	data, err := attempt.Encode()
	if err != nil {
		return err
	}

	app.sessionManager.Put(r.Context(), quizAttemptSessionKey, data)

	return nil
}

// recordResult stores the score of a finished attempt for a signed-in user.
func (app *application) recordResult(r *http.Request, attempt *quiz.Attempt) error {
	if !app.isAuthenticated(r) {
		return nil
	}

	userID := app.sessionManager.GetInt(r.Context(), authenticatedUserIDSessionKey)

	app.infoLog.Printf("Quiz %s submitted by user %d: %d%%", attempt.QuizID, userID, attempt.Score())

	return app.quizResults.Insert(userID, attempt.QuizID, attempt.Score())
}

func (app *application) quizView(w http.ResponseWriter, r *http.Request) {
	now := app.now()
	attempt := app.loadAttempt(r)

	wasSubmitted := attempt.Submitted
	if attempt.Tick(now) && !wasSubmitted {
		if err := app.recordResult(r, attempt); err != nil {
			app.serverError(w, err)
			return
		}
	}

	if err := app.saveAttempt(r, attempt); err != nil {
		app.serverError(w, err)
		return
	}

	data := app.newTemplateData(r)
	data.Attempt = attempt
	data.Remaining = attempt.Remaining(now)

	app.render(w, http.StatusOK, "quiz.page.tmpl", data)
}

func (app *application) quizPost(w http.ResponseWriter, r *http.Request) {
	var form quizForm

	err := app.decodePostForm(r, &form)
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	if form.Action == "restart" {
		app.sessionManager.Remove(r.Context(), quizAttemptSessionKey)
		http.Redirect(w, r, "/quiz", http.StatusSeeOther)
		return
	}

	attempt := app.loadAttempt(r)
	wasSubmitted := attempt.Submitted

	// Answers arriving after the time limit are discarded.
	if !attempt.Tick(app.now()) {
		if form.Answer != nil {
			err := attempt.Answer(form.Question, *form.Answer)
			if err != nil {
				if errors.Is(err, quiz.ErrUnknownQuestion) || errors.Is(err, quiz.ErrInvalidOption) {
					app.clientError(w, http.StatusBadRequest)
				} else {
					app.serverError(w, err)
				}
				return
			}
		}

		switch form.Action {
		case "next":
			attempt.Next()
		case "previous":
			attempt.Previous()
		case "submit":
			attempt.Submit()
		default:
			app.clientError(w, http.StatusBadRequest)
			return
		}
	}

	if attempt.Submitted && !wasSubmitted {
		if err := app.recordResult(r, attempt); err != nil {
			app.serverError(w, err)
			return
		}
	}

	if err := app.saveAttempt(r, attempt); err != nil {
		app.serverError(w, err)
		return
	}

	http.Redirect(w, r, "/quiz", http.StatusSeeOther)
}
