package auth

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
)

// LoginPath is where unauthenticated visitors of protected pages are sent.
const LoginPath = "/login"

// SessionResolver resolves a session cookie value to a user, nil meaning
// unauthenticated.
type SessionResolver interface {
	Resolve(ctx context.Context, cookieValue string) *models.User
}

// Outcome is the result of Gate.Require: either Identity or Redirect.
// Callers must switch on the concrete type and hand a Redirect back to the
// client untouched before doing anything else.
type Outcome interface {
	outcome()
}

// Identity is the authenticated user behind the request.
type Identity struct {
	User *models.User
}

// Redirect sends the client to Location with a flash message.
type Redirect struct {
	Location string
	Flash    string
}

func (Identity) outcome() {}
func (Redirect) outcome() {}

// Write sets the flash cookie and answers 303 See Other.
func (r Redirect) Write(w http.ResponseWriter, req *http.Request, secure bool) {
	if r.Flash != "" {
		http.SetCookie(w, FlashCookie(r.Flash, secure))
	}
	http.Redirect(w, req, r.Location, http.StatusSeeOther)
}

// Gate guards pages that need a logged-in user.
type Gate struct {
	resolver SessionResolver
}

func NewGate(resolver SessionResolver) *Gate {
	return &Gate{resolver: resolver}
}

// Require resolves the request's session cookie. Without a valid session it
// returns a Redirect to the login page carrying common.LoginRequiredMessage.
func (g *Gate) Require(r *http.Request) Outcome {
	var value string
	if c, err := r.Cookie(common.AccessTokenCookieName); err == nil {
		value = c.Value
	}

	user := g.resolver.Resolve(r.Context(), value)
	if user == nil {
		return Redirect{Location: LoginPath, Flash: common.LoginRequiredMessage}
	}
	return Identity{User: user}
}

// Current is the advisory variant of Require: it returns the user or nil
// and never redirects. Public pages use it to personalise their output.
func (g *Gate) Current(r *http.Request) *models.User {
	if o, ok := g.Require(r).(Identity); ok {
		return o.User
	}
	return nil
}
