package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mabego/edustream/internal/forms"
	"github.com/mabego/edustream/internal/models"
	"github.com/mabego/edustream/internal/validator"
)

// The struct tags tell the go-playground/form decoder how to map HTML form values into the different struct fields.
// Any type conversions are handled automatically.
// The struct tag `form:"-"` tells the decoder to completely ignore a field during decoding.
type userSignupForm struct {
	Name                string `form:"name"`
	Email               string `form:"email"`
	Password            string `form:"password"`
	ConfirmPassword     string `form:"confirmPassword"`
	validator.Validator `form:"-"`
}

func (f *userSignupForm) values() map[string]string {
	return map[string]string{
		"name":            f.Name,
		"email":           f.Email,
		"password":        f.Password,
		"confirmPassword": f.ConfirmPassword,
	}
}

type userLoginForm struct {
	Email               string `form:"email"`
	Password            string `form:"password"`
	validator.Validator `form:"-"`
}

func (f *userLoginForm) values() map[string]string {
	return map[string]string{
		"email":    f.Email,
		"password": f.Password,
	}
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	courses, err := app.courses.Latest()
	if err != nil {
		app.serverError(w, err)
		return
	}

	data := app.newTemplateData(r)
	data.Courses = courses

	app.render(w, http.StatusOK, "home.page.tmpl", data)
}

func (app *application) courseView(w http.ResponseWriter, r *http.Request) {
	course, ok := app.courseFromParam(w, r)
	if !ok {
		return
	}

	data := app.newTemplateData(r)
	data.Course = course
	data.InCart = data.Cart.Contains(course.ID)

	app.render(w, http.StatusOK, "course.page.tmpl", data)
}

func (app *application) userSignup(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(r)
	data.Form = userSignupForm{}
	app.render(w, http.StatusOK, "signup.page.tmpl", data)
}

func (app *application) userSignupPost(w http.ResponseWriter, r *http.Request) {
	var form userSignupForm

	err := app.decodePostForm(r, &form)
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	values := form.values()
	forms.Normalize(forms.SignUpForm, values)
	form.Name = values["name"]

	errs, _ := forms.Check(forms.SignUp(), values)
	form.AddFieldErrors(errs)

	// If there are validation errors, redisplay the signup form along with a 422 status code.
	if !form.Valid() {
		data := app.newTemplateData(r)
		data.Form = form
		app.render(w, http.StatusUnprocessableEntity, "signup.page.tmpl", data)
		return
	}

	err = app.users.Insert(form.Name, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			form.AddFieldError("email", "Email address is already in use")
			data := app.newTemplateData(r)
			data.Form = form
			app.render(w, http.StatusUnprocessableEntity, "signup.page.tmpl", data)
		} else {
			app.serverError(w, err)
		}

		return
	}

	app.infoLog.Printf("Sign up successful: %s", form.Email)

	app.sessionManager.Put(r.Context(), "flash", "Your signup was successful. Please log in")

	http.Redirect(w, r, "/user/login", http.StatusSeeOther)
}

func (app *application) userLogin(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(r)
	data.Form = userLoginForm{}
	app.render(w, http.StatusOK, "login.page.tmpl", data)
}

func (app *application) userLoginPost(w http.ResponseWriter, r *http.Request) {
	var form userLoginForm

	err := app.decodePostForm(r, &form)
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	errs, _ := forms.Check(forms.SignIn(), form.values())
	form.AddFieldErrors(errs)

	if !form.Valid() {
		data := app.newTemplateData(r)
		data.Form = form
		app.render(w, http.StatusUnprocessableEntity, "login.page.tmpl", data)
		return
	}

	// If the credentials are invalid, add a generic non-field error and redisplay the login form.
	id, err := app.users.Authenticate(form.Email, form.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			form.AddNonFieldError("Email or password is incorrect")
			data := app.newTemplateData(r)
			data.Form = form
			app.render(w, http.StatusUnprocessableEntity, "login.page.tmpl", data)
		} else {
			app.serverError(w, err)
		}
		return
	}

	// RenewToken changes the current session ID when the authentication state changes for the user
	// with the login operation.
	err = app.sessionManager.RenewToken(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}

	// Add the ID of the current user to the session, so that they are now logged in.
	app.sessionManager.Put(r.Context(), authenticatedUserIDSessionKey, id)

	// PopString pops the value for the "redirectPathAfterLogin" key from the session data.
	// If there is no matching key in the session data, it will return an empty string.
	urlPath := app.sessionManager.PopString(r.Context(), redirectPathSessionKey)
	if urlPath != "" {
		http.Redirect(w, r, urlPath, http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/account/view", http.StatusSeeOther)
}

func (app *application) userLogoutPost(w http.ResponseWriter, r *http.Request) {
	// RenewToken changes the current session ID when the authentication state changes for the user
	// with the logout operation.
	err := app.sessionManager.RenewToken(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}

	// Remove authenticatedUserID from the session data so the user is logged out.
	app.sessionManager.Remove(r.Context(), authenticatedUserIDSessionKey)

	app.sessionManager.Put(r.Context(), "flash", "You've been logged out successfully!")

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) accountView(w http.ResponseWriter, r *http.Request) {
	// GetInt will return 0 if no authenticatedUserID value is in the session.
	userID := app.sessionManager.GetInt(r.Context(), authenticatedUserIDSessionKey)

	user, err := app.users.Get(userID)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			http.Redirect(w, r, "/user/login", http.StatusSeeOther)
		} else {
			app.serverError(w, err)
		}
		return
	}

	enrollments, err := app.enrollments.ForEmail(user.Email)
	if err != nil {
		app.serverError(w, err)
		return
	}

	orders, err := app.orders.ForEmail(user.Email)
	if err != nil {
		app.serverError(w, err)
		return
	}

	results, err := app.quizResults.ForUser(user.ID)
	if err != nil {
		app.serverError(w, err)
		return
	}

	data := app.newTemplateData(r)
	data.User = user
	data.Enrollments = enrollments
	data.Orders = orders
	data.QuizResults = results
	app.render(w, http.StatusOK, "account.page.tmpl", data)
}

func ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodGet {
		fmt.Fprintln(w, "OK")
	}
}
