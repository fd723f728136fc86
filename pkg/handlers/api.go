// Playback, search and library endpoints. Handlers stay thin: parse input,
// call the facade, map the result. Device targeting is always optional; an
// empty device ID addresses whatever device is currently active.

package handlers

import (
	"context"
	"net/http"
	"strconv"

	"Spotify-Manager-Go/pkg/player"
)

// deviceRequest is the shared body shape for transport commands.
type deviceRequest struct {
	DeviceID string `json:"device_id"`
}

type playRequest struct {
	ContextURI string   `json:"context_uri"`
	URIs       []string `json:"uris"`
	DeviceID   string   `json:"device_id"`
}

// Status returns the flattened now-playing state.
func (app *Application) Status(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	pl, _, ok := app.playerFromRequest(w, r)
	if !ok {
		return
	}
	status, err := pl.CurrentStatus(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

// Devices lists the user's playback devices. With ?active=1 only the active
// device is returned, 404 when none is.
func (app *Application) Devices(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	pl, _, ok := app.playerFromRequest(w, r)
	if !ok {
		return
	}
	if r.URL.Query().Get("active") != "" {
		dev, found, err := pl.ActiveDevice(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		if !found {
			respondJSONError(w, http.StatusNotFound, "no active device")
			return
		}
		respondJSON(w, http.StatusOK, dev)
		return
	}
	devs, err := pl.Devices(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"devices": devs})
}

// Play starts or resumes playback, optionally with a context URI or track
// list. An empty body resumes the current playback.
func (app *Application) Play(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	pl, _, ok := app.playerFromRequest(w, r)
	if !ok {
		return
	}
	var req playRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if err := pl.Play(r.Context(), req.ContextURI, req.URIs, req.DeviceID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Pause pauses playback.
func (app *Application) Pause(w http.ResponseWriter, r *http.Request) {
	app.transport(w, r, (*player.Player).Pause)
}

// PlayPause toggles between playing and paused.
func (app *Application) PlayPause(w http.ResponseWriter, r *http.Request) {
	app.transport(w, r, (*player.Player).PlayPause)
}

// Next skips to the next track.
func (app *Application) Next(w http.ResponseWriter, r *http.Request) {
	app.transport(w, r, (*player.Player).Next)
}

// Previous moves to the previous track, restarting the current one when no
// history exists.
func (app *Application) Previous(w http.ResponseWriter, r *http.Request) {
	app.transport(w, r, (*player.Player).Previous)
}

// Restart seeks the current track back to the beginning.
func (app *Application) Restart(w http.ResponseWriter, r *http.Request) {
	app.transport(w, r, (*player.Player).RestartTrack)
}

// transport runs a fire-and-forget transport command with an optional device
// target in the body.
func (app *Application) transport(w http.ResponseWriter, r *http.Request, op func(*player.Player, context.Context, string) error) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	pl, _, ok := app.playerFromRequest(w, r)
	if !ok {
		return
	}
	var req deviceRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if err := op(pl, r.Context(), req.DeviceID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Volume reads (GET) or sets (PUT) the volume of a device.
func (app *Application) Volume(w http.ResponseWriter, r *http.Request) {
	pl, _, ok := app.playerFromRequest(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		v, err := pl.Volume(r.Context(), r.URL.Query().Get("device"))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]int{"volume": v})
	case http.MethodPut:
		var req struct {
			Percent  int    `json:"percent"`
			DeviceID string `json:"device_id"`
		}
		if err := decodeJSON(r, &req); err != nil {
			respondJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := pl.SetVolume(r.Context(), req.Percent, req.DeviceID); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// AdjustVolume shifts the volume by a signed delta, saturating at the
// [0,100] bounds.
func (app *Application) AdjustVolume(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	pl, _, ok := app.playerFromRequest(w, r)
	if !ok {
		return
	}
	var req struct {
		Delta    int    `json:"delta"`
		DeviceID string `json:"device_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := pl.AddVolume(r.Context(), req.Delta, req.DeviceID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Shuffle reads (GET) or sets (PUT) the shuffle state.
func (app *Application) Shuffle(w http.ResponseWriter, r *http.Request) {
	pl, _, ok := app.playerFromRequest(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		s, err := pl.ShuffleState(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"shuffle": s})
	case http.MethodPut:
		var req struct {
			Shuffle  bool   `json:"shuffle"`
			DeviceID string `json:"device_id"`
		}
		if err := decodeJSON(r, &req); err != nil {
			respondJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := pl.SetShuffle(r.Context(), req.Shuffle, req.DeviceID); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// Repeat reads (GET) or sets (PUT) the repeat state.
func (app *Application) Repeat(w http.ResponseWriter, r *http.Request) {
	pl, _, ok := app.playerFromRequest(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		s, err := pl.RepeatState(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"state": s})
	case http.MethodPut:
		var req struct {
			State    string `json:"state"`
			DeviceID string `json:"device_id"`
		}
		if err := decodeJSON(r, &req); err != nil {
			respondJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := pl.SetRepeat(r.Context(), req.State, req.DeviceID); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ToggleShuffle flips the shuffle state and returns the new value.
func (app *Application) ToggleShuffle(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	pl, _, ok := app.playerFromRequest(w, r)
	if !ok {
		return
	}
	var req deviceRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	s, err := pl.ToggleShuffle(r.Context(), req.DeviceID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"shuffle": s})
}

// CycleRepeat advances the repeat state one step and returns the new value.
func (app *Application) CycleRepeat(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	pl, _, ok := app.playerFromRequest(w, r)
	if !ok {
		return
	}
	var req deviceRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	s, err := pl.CycleRepeat(r.Context(), req.DeviceID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"state": s})
}

// Genres lists the genre seeds accepted by the recommendation endpoints.
func (app *Application) Genres(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	pl, _, ok := app.playerFromRequest(w, r)
	if !ok {
		return
	}
	genres, err := pl.Genres(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"genres": genres})
}

// Search runs a type-filtered catalog search. The type parameter selects
// track, artist, album or playlist results.
func (app *Application) Search(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	pl, _, ok := app.playerFromRequest(w, r)
	if !ok {
		return
	}
	query := r.URL.Query().Get("q")
	limit, err := intParam(r, "limit", 20)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	var results any
	switch r.URL.Query().Get("type") {
	case "", "track":
		results, err = pl.SearchTracks(r.Context(), query, limit)
	case "artist":
		results, err = pl.SearchArtists(r.Context(), query, limit)
	case "album":
		results, err = pl.SearchAlbums(r.Context(), query, limit)
	case "playlist":
		results, err = pl.SearchPlaylists(r.Context(), query, limit)
	default:
		respondJSONError(w, http.StatusBadRequest, "type must be track, artist, album or playlist")
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"results": results})
}

// intParam parses an optional positive integer query parameter.
func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	return v, nil
}
