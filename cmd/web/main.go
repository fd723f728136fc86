// Command web starts the playback-control server. Configuration comes from
// environment variables: Spotify API credentials, the cookie signing key and
// the SQLite database location. All state beyond the token store and the play
// history lives on the Spotify side.

package main

import (
	"context"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"Spotify-Manager-Go/pkg/db"
	"Spotify-Manager-Go/pkg/handlers"
	"Spotify-Manager-Go/pkg/player"
	"Spotify-Manager-Go/pkg/spotify"
)

var log = logrus.StandardLogger()

func main() {
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}

	clientID := os.Getenv("SPOTIFY_CLIENT_ID")
	clientSecret := os.Getenv("SPOTIFY_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		log.Fatal("SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET must be set")
	}
	// The redirect URL must match the callback registered in the Spotify
	// developer dashboard.
	redirectURL := os.Getenv("SPOTIFY_REDIRECT_URL")
	if redirectURL == "" {
		redirectURL = "http://localhost:4000/callback"
	}
	signingKey := os.Getenv("SIGNING_KEY")
	if signingKey == "" {
		log.Fatal("SIGNING_KEY must be set")
	}
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "spotify-manager.db"
	}
	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":4000"
	}

	database, err := db.New(dbPath)
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	defer database.Close()

	auth := spotify.NewAuthenticator(clientID, clientSecret, redirectURL)
	app := &handlers.Application{
		Auth:    auth,
		DB:      database,
		SignKey: []byte(signingKey),
		Sessions: func(ctx context.Context, token *oauth2.Token) (player.Session, error) {
			return spotify.NewSession(ctx, auth, token)
		},
	}

	handler := handlers.SecurityHeaders(handlers.Instrument(routes(app)))
	log.WithField("addr", addr).Info("starting server")
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.WithError(err).Fatal("http server")
	}
}

// routes registers every endpoint on a fresh mux. Split out from main so the
// full routing table can be exercised in tests.
func routes(app *handlers.Application) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/login", app.Login)
	mux.HandleFunc("/callback", app.Callback)
	mux.HandleFunc("/logout", app.Logout)

	mux.HandleFunc("/api/status", app.Status)
	mux.HandleFunc("/api/devices", app.Devices)

	mux.HandleFunc("/api/player/play", app.Play)
	mux.HandleFunc("/api/player/pause", app.Pause)
	mux.HandleFunc("/api/player/playpause", app.PlayPause)
	mux.HandleFunc("/api/player/next", app.Next)
	mux.HandleFunc("/api/player/previous", app.Previous)
	mux.HandleFunc("/api/player/restart", app.Restart)
	mux.HandleFunc("/api/player/volume", app.Volume)
	mux.HandleFunc("/api/player/volume/adjust", app.AdjustVolume)
	mux.HandleFunc("/api/player/shuffle", app.Shuffle)
	mux.HandleFunc("/api/player/shuffle/toggle", app.ToggleShuffle)
	mux.HandleFunc("/api/player/repeat", app.Repeat)
	mux.HandleFunc("/api/player/repeat/cycle", app.CycleRepeat)

	mux.HandleFunc("/api/search", app.Search)
	mux.HandleFunc("/api/genres", app.Genres)
	mux.HandleFunc("/api/playlists", app.Playlists)
	mux.HandleFunc("/api/recent", app.RecentlyPlayed)
	mux.HandleFunc("/api/library/tracks", app.SavedTracks)
	mux.HandleFunc("/api/library/albums", app.SavedAlbums)
	mux.HandleFunc("/api/library/current-track", app.CurrentTrack)
	mux.HandleFunc("/api/library/current-album", app.CurrentAlbum)
	mux.HandleFunc("/api/top/tracks", app.TopTracks)
	mux.HandleFunc("/api/top/artists", app.TopArtists)
	mux.HandleFunc("/api/artists/top-tracks", app.ArtistTopTracks)
	mux.HandleFunc("/api/artists/related-tracks", app.RelatedArtistTracks)

	mux.HandleFunc("/api/play", app.PlayQuery)
	mux.HandleFunc("/api/radio", app.Radio)

	mux.HandleFunc("/api/history", app.AddHistory)
	mux.HandleFunc("/api/insights/artists", app.InsightsArtists)
	mux.HandleFunc("/api/insights/tracks", app.InsightsTracks)

	mux.Handle("/metrics", promhttp.Handler())
	return mux
}
