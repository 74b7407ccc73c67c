package main

import (
	"fmt"
	"net/http"

	"github.com/mabego/edustream/internal/forms"
	"github.com/mabego/edustream/internal/models"
	"github.com/mabego/edustream/internal/validator"
)

type checkoutForm struct {
	Email               string `form:"email"`
	FirstName           string `form:"firstName"`
	LastName            string `form:"lastName"`
	CardNumber          string `form:"cardNumber"`
	ExpiryDate          string `form:"expiryDate"`
	CVV                 string `form:"cvv"`
	BillingAddress      string `form:"billingAddress"`
	City                string `form:"city"`
	ZipCode             string `form:"zipCode"`
	AgreeToTerms        bool   `form:"agreeToTerms"`
	validator.Validator `form:"-"`
}

func (f *checkoutForm) values() map[string]string {
	agree := ""
	if f.AgreeToTerms {
		agree = "true"
	}

	return map[string]string{
		"email":          f.Email,
		"firstName":      f.FirstName,
		"lastName":       f.LastName,
		"cardNumber":     f.CardNumber,
		"expiryDate":     f.ExpiryDate,
		"cvv":            f.CVV,
		"billingAddress": f.BillingAddress,
		"city":           f.City,
		"zipCode":        f.ZipCode,
		"agreeToTerms":   agree,
	}
}

func (app *application) cartView(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(r)
	app.render(w, http.StatusOK, "cart.page.tmpl", data)
}

func (app *application) cartAddPost(w http.ResponseWriter, r *http.Request) {
	course, ok := app.courseFromParam(w, r)
	if !ok {
		return
	}

	c := app.loadCart(r)

	if c.Add(course.CartItem()) {
		app.sessionManager.Put(r.Context(), "flash", fmt.Sprintf("%s was added to your cart", course.Title))
	} else {
		app.sessionManager.Put(r.Context(), "flash", fmt.Sprintf("%s is already in your cart", course.Title))
	}
	c.Open()

	if err := app.saveCart(r, c); err != nil {
		app.serverError(w, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/course/view/%d", course.ID), http.StatusSeeOther)
}

func (app *application) cartRemovePost(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		app.notFound(w)
		return
	}

	c := app.loadCart(r)
	c.Remove(id)

	if err := app.saveCart(r, c); err != nil {
		app.serverError(w, err)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (app *application) cartClearPost(w http.ResponseWriter, r *http.Request) {
	c := app.loadCart(r)
	c.Clear()

	if err := app.saveCart(r, c); err != nil {
		app.serverError(w, err)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (app *application) cartTogglePost(w http.ResponseWriter, r *http.Request) {
	c := app.loadCart(r)
	c.Toggle()

	if err := app.saveCart(r, c); err != nil {
		app.serverError(w, err)
		return
	}

	// Return the visitor to the page the toggle was pressed on.
	target := "/"
	if referer := r.Referer(); referer != "" {
		target = referer
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (app *application) checkout(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(r)

	if data.Cart.Empty() {
		app.sessionManager.Put(r.Context(), "flash", "Your cart is empty")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	data.Form = checkoutForm{}
	app.render(w, http.StatusOK, "checkout.page.tmpl", data)
}

func (app *application) checkoutPost(w http.ResponseWriter, r *http.Request) {
	var form checkoutForm

	err := app.decodePostForm(r, &form)
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	c := app.loadCart(r)
	if c.Empty() {
		app.sessionManager.Put(r.Context(), "flash", "Your cart is empty")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	values := form.values()
	forms.Normalize(forms.CheckoutForm, values)
	form.CardNumber, form.ExpiryDate = values["cardNumber"], values["expiryDate"]
	form.FirstName, form.LastName = values["firstName"], values["lastName"]

	errs, _ := forms.Check(forms.Checkout(), values)
	form.AddFieldErrors(errs)

	if !form.Valid() {
		// The security code is never sent back to the browser.
		form.CVV = ""

		data := app.newTemplateData(r)
		data.Form = form
		app.render(w, http.StatusUnprocessableEntity, "checkout.page.tmpl", data)
		return
	}

	order := models.Order{
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Subtotal:  c.Total,
		Tax:       c.Tax(),
		Total:     c.TotalWithTax(),
	}

	reference, err := app.orders.Insert(order, c.Items)
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.infoLog.Printf("Order %s placed by %s for %d courses", reference, form.Email, c.ItemCount)

	c.Clear()
	c.Close()
	if err := app.saveCart(r, c); err != nil {
		app.serverError(w, err)
		return
	}

	app.sessionManager.Put(r.Context(), "flash",
		fmt.Sprintf("Payment with card ending %s accepted. Your order reference is %s",
			forms.CardLast4(form.CardNumber), reference))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
