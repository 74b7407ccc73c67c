package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/mabego/edustream/ui"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	// Set the custom handler for 404 responses through httprouter.
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.notFound(w)
	})

	// Use an embedded file system instead of reading files from the disk at runtime.
	fileServer := http.FileServer(http.FS(ui.Files))
	router.Handler(http.MethodGet, "/static/*filepath", fileServer)

	// A ping route for testing.
	router.HandlerFunc(http.MethodGet, "/ping", ping)

	// An unprotected middleware chain using alice, specific to 'dynamic' application routes.
	dynamic := alice.New(app.sessionManager.LoadAndSave, noSurf, app.authenticate)

	// 'dynamic' middleware chain routes
	router.Handler(http.MethodGet, "/", dynamic.ThenFunc(app.home))
	router.Handler(http.MethodGet, "/course/view/:id", dynamic.ThenFunc(app.courseView))
	router.Handler(http.MethodGet, "/course/enroll/:id", dynamic.ThenFunc(app.courseEnroll))
	router.Handler(http.MethodPost, "/course/enroll/:id", dynamic.ThenFunc(app.courseEnrollPost))
	router.Handler(http.MethodGet, "/cart", dynamic.ThenFunc(app.cartView))
	router.Handler(http.MethodPost, "/cart/add/:id", dynamic.ThenFunc(app.cartAddPost))
	router.Handler(http.MethodPost, "/cart/remove/:id", dynamic.ThenFunc(app.cartRemovePost))
	router.Handler(http.MethodPost, "/cart/clear", dynamic.ThenFunc(app.cartClearPost))
	router.Handler(http.MethodPost, "/cart/toggle", dynamic.ThenFunc(app.cartTogglePost))
	router.Handler(http.MethodGet, "/checkout", dynamic.ThenFunc(app.checkout))
	router.Handler(http.MethodPost, "/checkout", dynamic.ThenFunc(app.checkoutPost))
	router.Handler(http.MethodPost, "/forms/:form/validate", dynamic.ThenFunc(app.formValidatePost))
	router.Handler(http.MethodGet, "/quiz", dynamic.ThenFunc(app.quizView))
	router.Handler(http.MethodPost, "/quiz", dynamic.ThenFunc(app.quizPost))
	router.Handler(http.MethodGet, "/user/signup", dynamic.ThenFunc(app.userSignup))
	router.Handler(http.MethodPost, "/user/signup", dynamic.ThenFunc(app.userSignupPost))
	router.Handler(http.MethodGet, "/user/login", dynamic.ThenFunc(app.userLogin))
	router.Handler(http.MethodPost, "/user/login", dynamic.ThenFunc(app.userLoginPost))

	// A protected (authenticated-only) and dynamic middleware chain.
	protected := dynamic.Append(app.requireAuthentication)

	// 'protected' middleware chain routes
	router.Handler(http.MethodPost, "/user/logout", protected.ThenFunc(app.userLogoutPost))
	router.Handler(http.MethodGet, "/account/view", protected.ThenFunc(app.accountView))

	// A middleware chain using alice containing the 'standard' middleware used for every application request.
	standard := alice.New(app.recoverPanic, app.logRequest, secureHeaders)

	// Return the 'standard' middleware chain followed by the ServeMux.
	return standard.Then(router)
}
