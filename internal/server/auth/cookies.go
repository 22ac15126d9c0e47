package auth

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
)

// SessionCookie carries token for ttl. It is HttpOnly so scripts cannot read it.
func SessionCookie(token string, ttl time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     common.AccessTokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// FlashCookie carries a one-shot notice for the next page render.
func FlashCookie(message string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     common.FlashMessageCookieName,
		Value:    message,
		Path:     "/",
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredCookie instructs the browser to drop the cookie called name.
func ExpiredCookie(name string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: name == common.AccessTokenCookieName,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
