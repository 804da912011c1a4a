package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/atinyakov/filecms/internal/middleware"
	"github.com/atinyakov/filecms/internal/session"
)

// NewRouter constructs the HTTP handler serving the CMS.
//
// Routes:
//
//	GET  /                      → docs.Index
//	GET  /new                   → docs.New            (signed in)
//	POST /create                → docs.Create         (signed in)
//	GET  /media/{name}          → media.Show
//	POST /media/upload          → media.Upload        (signed in)
//	POST /media/{name}/delete   → media.Delete        (signed in)
//	GET  /users/signin          → users.SignInForm
//	POST /users/signin          → users.SignIn
//	POST /users/signout         → users.SignOut
//	GET  /users/signup          → users.SignUpForm
//	POST /users/create_user     → users.CreateUser
//	POST /users/delete          → users.Delete        (signed in)
//	GET  /{name}                → docs.Show
//	GET  /{name}/edit           → docs.Edit           (signed in)
//	POST /{name}                → docs.Update         (signed in)
//	POST /{name}/delete         → docs.Delete         (signed in)
//
// Middleware chain (applied in order):
//  1. RequestID          tags the request for the logs
//  2. WithRequestLogging logs every request
//  3. Recoverer          turns panics into 500
//  4. WithSession        loads the session cookie into the context
//
// Uploads are limited to maxUpload bytes.
func NewRouter(
	docs *DocumentHandler,
	media *MediaHandler,
	users *UserHandler,
	store *session.Store,
	logger *zap.Logger,
	maxUpload int64,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.WithSession(store, logger))

	r.Get("/", docs.Index)

	r.Route("/users", func(r chi.Router) {
		r.Get("/signin", users.SignInForm)
		r.Post("/signin", users.SignIn)
		r.Post("/signout", users.SignOut)
		r.Get("/signup", users.SignUpForm)
		r.Post("/create_user", users.CreateUser)

		r.With(middleware.RequireSignedIn).Post("/delete", users.Delete)
	})

	r.Route("/media", func(r chi.Router) {
		r.Get("/{name}", media.Show)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSignedIn)
			r.With(chiMiddleware.RequestSize(maxUpload)).Post("/upload", media.Upload)
			r.Post("/{name}/delete", media.Delete)
		})
	})

	r.Get("/{name}", docs.Show)

	// Protected group: requires a signed-in session
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSignedIn)
		r.Get("/new", docs.New)
		r.Post("/create", docs.Create)
		r.Get("/{name}/edit", docs.Edit)
		r.Post("/{name}", docs.Update)
		r.Post("/{name}/delete", docs.Delete)
	})

	return r
}
