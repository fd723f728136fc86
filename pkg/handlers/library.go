// Library and history endpoints plus the composite play operations.

package handlers

import (
	"net/http"
	"time"

	"Spotify-Manager-Go/pkg/player"
)

type urisRequest struct {
	URIs []string `json:"uris"`
}

// Playlists lists the user's playlists.
func (app *Application) Playlists(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	pl, _, ok := app.playerFromRequest(w, r)
	if !ok {
		return
	}
	lists, err := pl.Playlists(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"playlists": lists})
}

// RecentlyPlayed returns the user's listening history from the remote
// service, most recent first.
func (app *Application) RecentlyPlayed(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	pl, _, ok := app.playerFromRequest(w, r)
	if !ok {
		return
	}
	limit, err := intParam(r, "limit", 50)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	tracks, err := pl.RecentlyPlayed(r.Context(), limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"tracks": tracks})
}

// SavedTracks pages through the tracks saved in the user's library (GET) and
// adds (POST) or removes (DELETE) tracks by URI.
func (app *Application) SavedTracks(w http.ResponseWriter, r *http.Request) {
	pl, _, ok := app.playerFromRequest(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		limit, err := intParam(r, "limit", 20)
		if err != nil {
			respondJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		offset, err := intParam(r, "offset", 0)
		if err != nil {
			respondJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		tracks, err := pl.SavedTracks(r.Context(), limit, offset)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"tracks": tracks})
	case http.MethodPost, http.MethodDelete:
		var req urisRequest
		if err := decodeJSON(r, &req); err != nil {
			respondJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		var err error
		if r.Method == http.MethodPost {
			err = pl.SaveTracks(r.Context(), req.URIs...)
		} else {
			err = pl.DeleteTracks(r.Context(), req.URIs...)
		}
		if err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// SavedAlbums pages through the albums saved in the user's library (GET) and
// adds albums by URI (POST).
func (app *Application) SavedAlbums(w http.ResponseWriter, r *http.Request) {
	pl, _, ok := app.playerFromRequest(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		limit, err := intParam(r, "limit", 20)
		if err != nil {
			respondJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		offset, err := intParam(r, "offset", 0)
		if err != nil {
			respondJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		albums, err := pl.SavedAlbums(r.Context(), limit, offset)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"albums": albums})
	case http.MethodPost:
		var req urisRequest
		if err := decodeJSON(r, &req); err != nil {
			respondJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := pl.SaveAlbums(r.Context(), req.URIs...); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// CurrentTrack saves (POST) or removes (DELETE) the currently playing track
// in the user's library.
func (app *Application) CurrentTrack(w http.ResponseWriter, r *http.Request) {
	pl, _, ok := app.playerFromRequest(w, r)
	if !ok {
		return
	}
	var err error
	switch r.Method {
	case http.MethodPost:
		err = pl.SaveCurrentTrack(r.Context())
	case http.MethodDelete:
		err = pl.DeleteCurrentTrack(r.Context())
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CurrentAlbum saves the current track's album (POST) or removes all of its
// tracks from the library (DELETE).
func (app *Application) CurrentAlbum(w http.ResponseWriter, r *http.Request) {
	pl, _, ok := app.playerFromRequest(w, r)
	if !ok {
		return
	}
	var err error
	switch r.Method {
	case http.MethodPost:
		err = pl.SaveCurrentAlbum(r.Context())
	case http.MethodDelete:
		err = pl.DeleteCurrentAlbum(r.Context())
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TopTracks returns the user's most listened tracks.
func (app *Application) TopTracks(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	pl, _, ok := app.playerFromRequest(w, r)
	if !ok {
		return
	}
	limit, err := intParam(r, "limit", 20)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	tracks, err := pl.TopTracks(r.Context(), limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"tracks": tracks})
}

// TopArtists returns the user's most listened artists.
func (app *Application) TopArtists(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	pl, _, ok := app.playerFromRequest(w, r)
	if !ok {
		return
	}
	limit, err := intParam(r, "limit", 20)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	artists, err := pl.TopArtists(r.Context(), limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"artists": artists})
}

// ArtistTopTracks returns an artist's most popular tracks, capped at the
// requested limit.
func (app *Application) ArtistTopTracks(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	pl, _, ok := app.playerFromRequest(w, r)
	if !ok {
		return
	}
	limit, err := intParam(r, "limit", 10)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	tracks, err := pl.ArtistTopTracks(r.Context(), r.URL.Query().Get("uri"), limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"tracks": tracks})
}

// RelatedArtistTracks fans out to artists related to the given one and
// gathers their top tracks.
func (app *Application) RelatedArtistTracks(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	pl, _, ok := app.playerFromRequest(w, r)
	if !ok {
		return
	}
	maxArtists, err := intParam(r, "artists", 5)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	perArtist, err := intParam(r, "tracks", 5)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	tracks, err := pl.RelatedArtistTracks(r.Context(), r.URL.Query().Get("uri"), maxArtists, perArtist)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"tracks": tracks})
}

// PlayQuery searches for the requested item and plays the top match. On
// success the played track is recorded in the local history log.
func (app *Application) PlayQuery(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	pl, userID, ok := app.playerFromRequest(w, r)
	if !ok {
		return
	}
	var req struct {
		Type     string `json:"type"`
		Query    string `json:"query"`
		DeviceID string `json:"device_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	var err error
	switch req.Type {
	case "", "track":
		err = pl.PlayTrack(r.Context(), req.Query, req.DeviceID)
	case "album":
		err = pl.PlayAlbum(r.Context(), req.Query, req.DeviceID)
	case "artist":
		err = pl.PlayArtist(r.Context(), req.Query, req.DeviceID)
	case "playlist":
		err = pl.PlayPlaylist(r.Context(), req.Query, req.DeviceID)
	default:
		respondJSONError(w, http.StatusBadRequest, "type must be track, artist, album or playlist")
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}
	app.recordHistory(r, pl, userID)
	w.WriteHeader(http.StatusNoContent)
}

// Radio runs one of the composite radio pipelines: pause, gather candidate
// tracks from the requested source, play them in a single call and enable
// shuffle.
func (app *Application) Radio(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	pl, _, ok := app.playerFromRequest(w, r)
	if !ok {
		return
	}
	var req struct {
		Source    string `json:"source"`
		Genre     string `json:"genre"`
		Limit     int    `json:"limit"`
		Artists   int    `json:"artists"`
		PerArtist int    `json:"tracks_per_artist"`
		DeviceID  string `json:"device_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Limit == 0 {
		req.Limit = 20
	}
	if req.Artists == 0 {
		req.Artists = 5
	}
	if req.PerArtist == 0 {
		req.PerArtist = 5
	}
	var err error
	switch req.Source {
	case "top-artists":
		err = pl.PlayTopArtists(r.Context(), req.Artists, req.DeviceID)
	case "top-tracks":
		err = pl.PlayTopTracks(r.Context(), req.Limit, req.DeviceID)
	case "recent":
		err = pl.PlayRecentlyPlayed(r.Context(), req.Limit, req.DeviceID)
	case "current-artist":
		err = pl.PlayCurrentArtistRelated(r.Context(), req.Artists, req.PerArtist, req.DeviceID)
	case "genre":
		err = pl.PlayGenre(r.Context(), req.Genre, req.Limit, req.DeviceID)
	case "similar-track":
		err = pl.PlaySimilarToCurrentTrack(r.Context(), req.Limit, req.DeviceID)
	case "similar-artist":
		err = pl.PlaySimilarToCurrentArtist(r.Context(), req.Limit, req.DeviceID)
	default:
		respondJSONError(w, http.StatusBadRequest, "source must be top-artists, top-tracks, recent, current-artist, genre, similar-track or similar-artist")
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// recordHistory logs the track now playing into the local history table.
// Failures are logged, never surfaced: history is a convenience, not part of
// the playback contract.
func (app *Application) recordHistory(r *http.Request, pl *player.Player, userID string) {
	status, err := pl.CurrentStatus(r.Context())
	if err != nil {
		log.WithError(err).Debug("history: resolve status")
		return
	}
	if err := app.DB.AddHistory(r.Context(), userID, status.Track.URI, status.Track.Name, status.Artists.All, time.Now()); err != nil {
		log.WithError(err).WithField("user", userID).Warn("history: record play")
	}
}
