package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/mabego/edustream/internal/forms"
	"github.com/mabego/edustream/internal/models"
	"github.com/mabego/edustream/internal/validator"
)

type enrollmentForm struct {
	FirstName           string `form:"firstName"`
	LastName            string `form:"lastName"`
	Email               string `form:"email"`
	Phone               string `form:"phone"`
	Experience          string `form:"experience"`
	Goals               string `form:"goals"`
	validator.Validator `form:"-"`
}

func (f *enrollmentForm) values() map[string]string {
	return map[string]string{
		"firstName":  f.FirstName,
		"lastName":   f.LastName,
		"email":      f.Email,
		"phone":      f.Phone,
		"experience": f.Experience,
		"goals":      f.Goals,
	}
}

// Fields of a live-validation request that are not form values.
const (
	touchedField = "touched"
	changedField = "changed"
	csrfField    = "csrf_token"
)

// courseFromParam loads the course named by the "id" route parameter and writes the error response
// itself when there is none.
func (app *application) courseFromParam(w http.ResponseWriter, r *http.Request) (*models.Course, bool) {
	id, ok := idParam(r)
	if !ok {
		app.notFound(w)
		return nil, false
	}

	course, err := app.courses.Get(id)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
		} else {
			app.serverError(w, err)
		}
		return nil, false
	}

	return course, true
}

func (app *application) courseEnroll(w http.ResponseWriter, r *http.Request) {
	course, ok := app.courseFromParam(w, r)
	if !ok {
		return
	}

	data := app.newTemplateData(r)
	data.Course = course
	data.ExperienceLevels = forms.ExperienceLevels
	data.Form = enrollmentForm{}

	app.render(w, http.StatusOK, "enroll.page.tmpl", data)
}

func (app *application) courseEnrollPost(w http.ResponseWriter, r *http.Request) {
	course, ok := app.courseFromParam(w, r)
	if !ok {
		return
	}

	var form enrollmentForm

	err := app.decodePostForm(r, &form)
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	values := form.values()
	forms.Normalize(forms.EnrollmentForm, values)
	form.FirstName, form.LastName = values["firstName"], values["lastName"]

	errs, _ := forms.Check(forms.Enrollment(), values)
	form.AddFieldErrors(errs)

	redisplay := func() {
		data := app.newTemplateData(r)
		data.Course = course
		data.ExperienceLevels = forms.ExperienceLevels
		data.Form = form
		app.render(w, http.StatusUnprocessableEntity, "enroll.page.tmpl", data)
	}

	if !form.Valid() {
		redisplay()
		return
	}

	_, err = app.enrollments.Insert(course.ID, models.Enrollment{
		FirstName:  form.FirstName,
		LastName:   form.LastName,
		Email:      form.Email,
		Phone:      form.Phone,
		Experience: form.Experience,
		Goals:      form.Goals,
	})
	if err != nil {
		if errors.Is(err, models.ErrAlreadyEnrolled) {
			form.AddFieldError("email", "This email is already enrolled in this course")
			redisplay()
		} else {
			app.serverError(w, err)
		}
		return
	}

	app.infoLog.Printf("Enrollment in course %d: %s", course.ID, form.Email)

	app.sessionManager.Put(r.Context(), "flash",
		fmt.Sprintf("Enrollment successful! Welcome to %s. You'll receive a confirmation email shortly.", course.Title))

	http.Redirect(w, r, fmt.Sprintf("/course/view/%d", course.ID), http.StatusSeeOther)
}

// formValidatePost answers the inline validation requests sent by form views as the user types and
// leaves fields.
func (app *application) formValidatePost(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	formName := params.ByName("form")

	rules, ok := forms.Lookup(formName)
	if !ok {
		app.notFound(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	in := forms.Interaction{
		Values:  make(map[string]string, len(r.PostForm)),
		Touched: r.PostForm[touchedField],
		Changed: r.PostForm.Get(changedField),
	}

	for name := range r.PostForm {
		switch name {
		case touchedField, changedField, csrfField:
			continue
		}
		in.Values[name] = r.PostForm.Get(name)
	}

	forms.Normalize(formName, in.Values)

	app.writeJSON(w, http.StatusOK, forms.Live(rules, in))
}
