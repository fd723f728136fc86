// Authentication endpoints and helpers. The OAuth code flow itself is
// delegated to the authenticator; this file owns the signed-cookie session
// handling around it. Cookies carry an HMAC signature so a tampered user ID
// is rejected rather than trusted.

package handlers

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

const (
	userCookie  = "spotify_user_id"
	stateCookie = "oauth_state"
)

// signValue computes an HMAC signature for value and appends it using the
// format value|signature, base64 URL encoded so it is cookie safe.
func signValue(value string, key []byte) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(value))
	sig := mac.Sum(nil)
	return value + "|" + base64.RawURLEncoding.EncodeToString(sig)
}

// verifyValue checks the HMAC signature appended to signed. It returns the
// original value and true when the signature matches.
func verifyValue(signed string, key []byte) (string, bool) {
	parts := strings.Split(signed, "|")
	if len(parts) != 2 {
		return "", false
	}
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(parts[0]))
	expected := mac.Sum(nil)
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil || !hmac.Equal(expected, sig) {
		return "", false
	}
	return parts[0], true
}

// userFromCookie returns the verified Spotify user ID from the request
// cookie. An error is returned when the cookie is missing or tampered with.
func (app *Application) userFromCookie(r *http.Request) (string, error) {
	c, err := r.Cookie(userCookie)
	if err != nil {
		return "", err
	}
	if v, ok := verifyValue(c.Value, app.SignKey); ok {
		return v, nil
	}
	return "", fmt.Errorf("invalid signature")
}

// requireUser enforces authentication, writing a 401 response on failure.
func (app *Application) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := app.userFromCookie(r)
	if err != nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return "", false
	}
	return id, true
}

// Login begins the OAuth flow, storing a signed random state value in a
// cookie before redirecting to the authorization URL.
func (app *Application) Login(w http.ResponseWriter, r *http.Request) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		http.Error(w, "failed to generate state", http.StatusInternalServerError)
		return
	}
	state := base64.RawURLEncoding.EncodeToString(b)
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    signValue(state, app.SignKey),
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, app.Auth.AuthURL(state), http.StatusFound)
}

// Callback completes the OAuth flow: it exchanges the authorization code for
// a token, resolves the account it belongs to, persists the token and sets
// the signed user cookie.
func (app *Application) Callback(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(stateCookie)
	if err != nil {
		http.Error(w, "state mismatch", http.StatusBadRequest)
		return
	}
	state, ok := verifyValue(c.Value, app.SignKey)
	if !ok || r.URL.Query().Get("state") != state {
		http.Error(w, "state mismatch", http.StatusBadRequest)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Path: "/", MaxAge: -1})

	token, err := app.Auth.Token(r.Context(), state, r)
	if err != nil {
		log.WithError(err).Error("token exchange")
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}
	sess, err := app.Sessions(r.Context(), token)
	if err != nil {
		log.WithError(err).Error("create session")
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}
	user, err := sess.CurrentUser(r.Context())
	if err != nil {
		log.WithError(err).Error("resolve user")
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}
	if err := app.DB.SaveToken(r.Context(), user.ID, token); err != nil {
		log.WithError(err).WithField("user", user.ID).Error("persist token")
		http.Error(w, "failed to store credentials", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     userCookie,
		Value:    signValue(user.ID, app.SignKey),
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	log.WithField("user", user.ID).Info("login complete")
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout expires the user cookie so the caller must re-authenticate.
func (app *Application) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     userCookie,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}
