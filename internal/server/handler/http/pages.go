package http

import (
	"bytes"
	"errors"
	"net/http"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"github.com/atinyakov/filecms/internal/middleware"
	"github.com/atinyakov/filecms/internal/view"
)

// ServerErrorMessage is the only text a client sees for unexpected failures.
const ServerErrorMessage = "Something went wrong."

// Pages renders views and redirects on behalf of the handlers. It owns the
// interaction with the session: flash messages are consumed when a page is
// rendered and set before a redirect.
type Pages struct {
	View   *view.Renderer
	Logger *zap.Logger
}

// render writes page with status. When page.Message is empty the pending
// flash message of the session is shown and cleared.
func (p *Pages) render(w http.ResponseWriter, r *http.Request, status int, name string, page view.Page) {
	sess := middleware.SessionFromContext(r.Context())
	if sess != nil {
		page.User = sess.User()
		if page.Message == "" {
			page.Message = sess.TakeMessage()
		}
	}

	var buf bytes.Buffer
	if err := p.View.Render(&buf, name, page); err != nil {
		p.serverError(w, r, err)
		return
	}

	if sess != nil {
		if err := sess.Save(r, w); err != nil {
			p.Logger.Error("failed to save session", zap.Error(err))
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// redirect flashes msg and sends the client back to the index.
func (p *Pages) redirect(w http.ResponseWriter, r *http.Request, msg string) {
	if sess := middleware.SessionFromContext(r.Context()); sess != nil {
		if msg != "" {
			sess.SetMessage(msg)
		}
		if err := sess.Save(r, w); err != nil {
			p.Logger.Error("failed to save session", zap.Error(err))
		}
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// serverError logs err and answers 500 without exposing it.
func (p *Pages) serverError(w http.ResponseWriter, r *http.Request, err error) {
	p.Logger.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", chiMiddleware.GetReqID(r.Context())),
		zap.Error(err),
	)

	var buf bytes.Buffer
	if rerr := p.View.Render(&buf, view.PageError, view.Page{Title: "Error"}); rerr != nil {
		http.Error(w, ServerErrorMessage, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = buf.WriteTo(w)
}

// validationMessage returns the user facing message of a validation error.
func validationMessage(err error) (string, bool) {
	var verr validation.Error
	if errors.As(err, &verr) {
		return verr.Message(), true
	}
	return "", false
}

func signedInUser(r *http.Request) string {
	if sess := middleware.SessionFromContext(r.Context()); sess != nil {
		return sess.User()
	}
	return ""
}
