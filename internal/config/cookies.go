package config

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	authCookie = "auth"
	signCookie = "sign"
)

/*
 * Cookies carries the player's token split in two: the header and payload
 * in a script-readable "auth" cookie, the signature in an http-only
 * "sign" cookie.
 */
type Cookies struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
	jwt      *JWT
}

func parseSameSite(s string) http.SameSite {
	switch strings.ToUpper(s) {
	case "DEFAULT":
		return http.SameSiteDefaultMode
	case "LAX":
		return http.SameSiteLaxMode
	case "NONE":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}

func NewCookies(jwt *JWT) (*Cookies, error) {
	domain, err := requireEnv("COOKIES_DOMAIN")
	if err != nil {
		return nil, err
	}
	secure, err := requireEnv("COOKIES_SECURE")
	if err != nil {
		return nil, err
	}
	sameSite, err := requireEnv("COOKIES_SAMESITE")
	if err != nil {
		return nil, err
	}

	return NewCookiesWith(domain, secure != "0", parseSameSite(sameSite), jwt), nil
}

func NewCookiesWith(domain string, secure bool, sameSite http.SameSite, jwt *JWT) *Cookies {
	return &Cookies{
		Domain:   domain,
		Secure:   secure,
		SameSite: sameSite,
		jwt:      jwt,
	}
}

func (c *Cookies) cookie(name, value string, httpOnly bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Path:     "/",
		Value:    value,
		HttpOnly: httpOnly,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	}
}

func (c *Cookies) Clear(w http.ResponseWriter) {
	for _, name := range []string{authCookie, signCookie} {
		cookie := c.cookie(name, "delete", name == signCookie)
		cookie.MaxAge = -1
		http.SetCookie(w, cookie)
	}
}

// Refresh signs the claims again and sets both cookies.
func (c *Cookies) Refresh(w http.ResponseWriter, claims *PlayerClaims) error {
	token, err := c.jwt.Sign(claims)
	if err != nil {
		return fmt.Errorf("unable to sign claims: %w", err)
	}
	i := strings.LastIndexByte(token, '.')
	if i < 0 || strings.Count(token, ".") != 2 {
		return fmt.Errorf("malformed JWT token generated")
	}
	expires := time.Now().Add(c.jwt.Lifetime())

	auth := c.cookie(authCookie, token[:i], false)
	auth.Expires = expires
	http.SetCookie(w, auth)

	sign := c.cookie(signCookie, token[i+1:], true)
	sign.Expires = expires
	http.SetCookie(w, sign)

	return nil
}

func (c *Cookies) ParsePlayerClaims(r *http.Request) (*PlayerClaims, error) {
	auth, err := r.Cookie(authCookie)
	if err != nil {
		return nil, err
	}
	sign, err := r.Cookie(signCookie)
	if err != nil {
		return nil, err
	}
	return c.jwt.ParsePlayerClaims(auth.Value + "." + sign.Value)
}
