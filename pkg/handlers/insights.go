// Endpoints over the local play-history log: recording plays and the
// aggregated insight views.

package handlers

import (
	"net/http"
	"time"
)

// AddHistory records the currently playing track in the local history log so
// plays triggered outside this process still count toward insights.
func (app *Application) AddHistory(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	pl, userID, ok := app.playerFromRequest(w, r)
	if !ok {
		return
	}
	status, err := pl.CurrentStatus(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if err := app.DB.AddHistory(r.Context(), userID, status.Track.URI, status.Track.Name, status.Artists.All, time.Now()); err != nil {
		http.Error(w, "failed to record history", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// InsightsArtists returns the most played artists over the lookback window
// controlled by the 'days' query parameter (default one week).
func (app *Application) InsightsArtists(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := app.requireUser(w, r)
	if !ok {
		return
	}
	days, err := intParam(r, "days", 7)
	if err != nil || days <= 0 {
		respondJSONError(w, http.StatusBadRequest, "days must be a positive integer")
		return
	}
	since := time.Now().AddDate(0, 0, -days)
	res, err := app.DB.TopArtistsSince(r.Context(), userID, since)
	if err != nil {
		log.WithError(err).Error("load artist insights")
		http.Error(w, "failed to load insights", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"artists": res})
}

// InsightsTracks returns the most played tracks over the lookback window
// controlled by the 'days' query parameter (default one week).
func (app *Application) InsightsTracks(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := app.requireUser(w, r)
	if !ok {
		return
	}
	days, err := intParam(r, "days", 7)
	if err != nil || days <= 0 {
		respondJSONError(w, http.StatusBadRequest, "days must be a positive integer")
		return
	}
	since := time.Now().AddDate(0, 0, -days)
	res, err := app.DB.TopTracksSince(r.Context(), userID, since)
	if err != nil {
		log.WithError(err).Error("load track insights")
		http.Error(w, "failed to load insights", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"tracks": res})
}
