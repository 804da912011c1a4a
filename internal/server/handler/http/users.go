package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/atinyakov/filecms/internal/middleware"
	"github.com/atinyakov/filecms/internal/models"
	"github.com/atinyakov/filecms/internal/view"
)

// InvalidCredentialsMessage is shown when sign in fails.
const InvalidCredentialsMessage = "Invalid Credentials"

// AuthService defines the account operations required by the UserHandler.
type AuthService interface {
	// SignIn reports whether the credentials match a stored account.
	SignIn(ctx context.Context, username, password string) (bool, error)
	// SignUp validates and stores a new account.
	SignUp(ctx context.Context, username, password string) error
	// DeleteUser removes an account, or fails with models.ErrNotFound.
	DeleteUser(ctx context.Context, username string) error
}

// UserHandler serves the /users routes.
type UserHandler struct {
	Auth  AuthService
	Pages *Pages
}

// SignInForm handles GET /users/signin.
func (h *UserHandler) SignInForm(w http.ResponseWriter, r *http.Request) {
	h.Pages.render(w, r, http.StatusOK, view.PageSignIn, view.Page{
		Title: "Sign In",
		Data:  view.CredentialsData{},
	})
}

// SignIn handles POST /users/signin.
func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	ok, err := h.Auth.SignIn(r.Context(), username, password)
	if err != nil {
		h.Pages.serverError(w, r, err)
		return
	}
	if !ok {
		h.Pages.render(w, r, http.StatusUnprocessableEntity, view.PageSignIn, view.Page{
			Title: "Sign In",
			Data:  view.CredentialsData{Username: username, Error: InvalidCredentialsMessage},
		})
		return
	}

	if sess := middleware.SessionFromContext(r.Context()); sess != nil {
		sess.SignIn(username)
	}
	h.Pages.redirect(w, r, "Welcome!")
}

// SignOut handles POST /users/signout.
func (h *UserHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if sess := middleware.SessionFromContext(r.Context()); sess != nil {
		sess.SignOut()
	}
	h.Pages.redirect(w, r, "You have been signed out.")
}

// SignUpForm handles GET /users/signup.
func (h *UserHandler) SignUpForm(w http.ResponseWriter, r *http.Request) {
	h.Pages.render(w, r, http.StatusOK, view.PageSignUp, view.Page{
		Title: "Sign Up",
		Data:  view.CredentialsData{},
	})
}

// CreateUser handles POST /users/create_user. A new account is signed in
// right away.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	if err := h.Auth.SignUp(r.Context(), username, password); err != nil {
		if msg, ok := validationMessage(err); ok {
			h.Pages.render(w, r, http.StatusUnprocessableEntity, view.PageSignUp, view.Page{
				Title: "Sign Up",
				Data:  view.CredentialsData{Username: username, Error: msg},
			})
			return
		}
		h.Pages.serverError(w, r, err)
		return
	}

	if sess := middleware.SessionFromContext(r.Context()); sess != nil {
		sess.SignIn(username)
	}
	h.Pages.redirect(w, r, "You have signed up successfully.")
}

// Delete handles POST /users/delete. The "username" form field selects the
// account and defaults to the signed-in user. The session is only signed
// out when its own account is removed.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	current := signedInUser(r)
	username := r.PostFormValue("username")
	if username == "" {
		username = current
	}

	if err := h.Auth.DeleteUser(r.Context(), username); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.Pages.redirect(w, r, username+" does not exist.")
			return
		}
		h.Pages.serverError(w, r, err)
		return
	}

	if username == current {
		if sess := middleware.SessionFromContext(r.Context()); sess != nil {
			sess.SignOut()
		}
	}
	h.Pages.redirect(w, r, username+" has been deleted.")
}
