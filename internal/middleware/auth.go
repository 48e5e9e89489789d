package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/config"
)

type CtxKey int

const (
	CtxPlayerClaims CtxKey = iota
)

/*
 * Auth puts the player's claims into the request context when the auth
 * cookies hold a valid token. Broken cookies are cleared; anonymous
 * requests pass through untouched.
 */
func Auth(log *logrus.Logger, cookies *config.Cookies) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := cookies.ParsePlayerClaims(r)
			if errors.Is(err, http.ErrNoCookie) {
				h.ServeHTTP(w, r)
				return
			}
			if err != nil {
				log.WithError(err).Debug("invalid auth cookies")
				cookies.Clear(w)
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxPlayerClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
