// Package handlers exposes the playback facade as a JSON API. Each handler
// resolves the caller's stored OAuth token into a fresh facade instance,
// delegates to it and translates the facade's error taxonomy into HTTP
// status codes. No playback state lives in this process; the remote service
// owns everything except the token store and the local play-history log.

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"

	"Spotify-Manager-Go/pkg/db"
	"Spotify-Manager-Go/pkg/player"
)

var log = logrus.StandardLogger()

// SessionFactory turns a stored OAuth token into an authenticated remote
// session. Injected so tests can substitute a fake session.
type SessionFactory func(ctx context.Context, token *oauth2.Token) (player.Session, error)

// Application bundles the dependencies shared by all handlers.
type Application struct {
	Auth     *spotifyauth.Authenticator
	DB       *db.DB
	SignKey  []byte
	Sessions SessionFactory
}

// playerFromRequest authenticates the request and builds a facade over the
// caller's session. It writes the error response itself when returning
// ok=false.
func (app *Application) playerFromRequest(w http.ResponseWriter, r *http.Request) (*player.Player, string, bool) {
	userID, ok := app.requireUser(w, r)
	if !ok {
		return nil, "", false
	}
	token, err := app.DB.GetToken(r.Context(), userID)
	if err != nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return nil, "", false
	}
	sess, err := app.Sessions(r.Context(), token)
	if err != nil {
		log.WithError(err).WithField("user", userID).Error("restore session")
		http.Error(w, "authentication failed", http.StatusUnauthorized)
		return nil, "", false
	}
	return player.New(sess), userID, true
}

// respondError maps the facade's error taxonomy onto HTTP status codes.
// Unrecognized upstream faults surface as 502 with the original message
// attached for diagnostics.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, player.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, player.ErrAuthentication):
		status = http.StatusUnauthorized
	case errors.Is(err, player.ErrNoActiveDevice), errors.Is(err, player.ErrNoResults):
		status = http.StatusNotFound
	case errors.Is(err, player.ErrNotConnected):
		status = http.StatusConflict
	}
	if status == http.StatusBadGateway {
		log.WithError(err).Warn("upstream fault")
	}
	respondJSONError(w, status, err.Error())
}

// requireMethod writes a 405 response and returns false when the request
// method does not match.
func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}
