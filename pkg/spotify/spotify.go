// Package spotify wires the playback facade to the real Spotify Web API. It
// builds the OAuth authenticator with the permission scopes the facade needs
// and wraps the official client library as a player.Session. Errors from the
// library are returned unchanged so the facade's classifier can inspect the
// original status codes and message text.

package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"

	"Spotify-Manager-Go/pkg/player"
)

// DefaultScopes is the permission set required by the full facade surface:
// playback state and control, library reads and writes, top items and
// listening history.
var DefaultScopes = []string{
	spotifyauth.ScopePlaylistReadPrivate,
	spotifyauth.ScopePlaylistReadCollaborative,
	spotifyauth.ScopeStreaming,
	spotifyauth.ScopeUserLibraryRead,
	spotifyauth.ScopeUserLibraryModify,
	spotifyauth.ScopeUserReadPrivate,
	spotifyauth.ScopeUserTopRead,
	spotifyauth.ScopeUserReadPlaybackState,
	spotifyauth.ScopeUserModifyPlaybackState,
	spotifyauth.ScopeUserReadCurrentlyPlaying,
	spotifyauth.ScopeUserReadRecentlyPlayed,
}

// defaultCountry selects the market for artist top-track lookups, matching
// the endpoint's required country parameter.
const defaultCountry = "US"

// albumsURL is the library endpoint used for album writes. The client
// library exposes no albums-library write calls, so the session issues these
// two requests itself through the same authorized HTTP client.
const albumsURL = "https://api.spotify.com/v1/me/albums"

// NewAuthenticator builds the OAuth authenticator used both for the initial
// login flow and for restoring sessions from stored tokens. When no scopes
// are given DefaultScopes is used.
func NewAuthenticator(clientID, clientSecret, redirectURL string, scopes ...string) *spotifyauth.Authenticator {
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}
	return spotifyauth.New(
		spotifyauth.WithClientID(clientID),
		spotifyauth.WithClientSecret(clientSecret),
		spotifyauth.WithRedirectURL(redirectURL),
		spotifyauth.WithScopes(scopes...),
	)
}

// Session implements player.Session against the Spotify Web API. It holds
// the wrapped client plus the authorized HTTP client for the few endpoints
// the library does not cover.
type Session struct {
	api       *spotify.Client
	http      *http.Client
	albumsURL string
}

var _ player.Session = (*Session)(nil)

// NewSession turns a previously obtained OAuth token into an authenticated
// session. Token refresh is handled transparently by the oauth2 transport.
// player.ErrAuthentication is returned when no usable token is supplied.
func NewSession(ctx context.Context, auth *spotifyauth.Authenticator, token *oauth2.Token) (*Session, error) {
	if token == nil || (!token.Valid() && token.RefreshToken == "") {
		return nil, fmt.Errorf("%w: missing or expired token", player.ErrAuthentication)
	}
	httpClient := auth.Client(ctx, token)
	return &Session{
		api:       spotify.New(httpClient),
		http:      httpClient,
		albumsURL: albumsURL,
	}, nil
}

func (s *Session) CurrentUser(ctx context.Context) (*spotify.PrivateUser, error) {
	return s.api.CurrentUser(ctx)
}

func (s *Session) PlayerDevices(ctx context.Context) ([]spotify.PlayerDevice, error) {
	return s.api.PlayerDevices(ctx)
}

func (s *Session) PlayerState(ctx context.Context) (*spotify.PlayerState, error) {
	return s.api.PlayerState(ctx)
}

func (s *Session) Play(ctx context.Context, opt *spotify.PlayOptions) error {
	return s.api.PlayOpt(ctx, opt)
}

func (s *Session) Pause(ctx context.Context, opt *spotify.PlayOptions) error {
	return s.api.PauseOpt(ctx, opt)
}

func (s *Session) Next(ctx context.Context, opt *spotify.PlayOptions) error {
	return s.api.NextOpt(ctx, opt)
}

func (s *Session) Previous(ctx context.Context, opt *spotify.PlayOptions) error {
	return s.api.PreviousOpt(ctx, opt)
}

func (s *Session) Seek(ctx context.Context, positionMs int, opt *spotify.PlayOptions) error {
	return s.api.SeekOpt(ctx, positionMs, opt)
}

func (s *Session) SetVolume(ctx context.Context, percent int, opt *spotify.PlayOptions) error {
	return s.api.VolumeOpt(ctx, percent, opt)
}

func (s *Session) SetShuffle(ctx context.Context, shuffle bool, opt *spotify.PlayOptions) error {
	return s.api.ShuffleOpt(ctx, shuffle, opt)
}

func (s *Session) SetRepeat(ctx context.Context, state string, opt *spotify.PlayOptions) error {
	return s.api.RepeatOpt(ctx, state, opt)
}

func (s *Session) Search(ctx context.Context, query string, t spotify.SearchType, limit int) (*spotify.SearchResult, error) {
	return s.api.Search(ctx, query, t, spotify.Limit(limit))
}

func (s *Session) Recommendations(ctx context.Context, seeds spotify.Seeds, limit int) (*spotify.Recommendations, error) {
	return s.api.GetRecommendations(ctx, seeds, nil, spotify.Limit(limit))
}

func (s *Session) AvailableGenres(ctx context.Context) ([]string, error) {
	return s.api.GetAvailableGenreSeeds(ctx)
}

func (s *Session) CurrentUsersPlaylists(ctx context.Context, limit int) (*spotify.SimplePlaylistPage, error) {
	return s.api.CurrentUsersPlaylists(ctx, spotify.Limit(limit))
}

func (s *Session) RecentlyPlayed(ctx context.Context, limit int) ([]spotify.RecentlyPlayedItem, error) {
	return s.api.PlayerRecentlyPlayedOpt(ctx, &spotify.RecentlyPlayedOptions{Limit: spotify.Numeric(limit)})
}

func (s *Session) SavedAlbums(ctx context.Context, limit, offset int) (*spotify.SavedAlbumPage, error) {
	return s.api.CurrentUsersAlbums(ctx, spotify.Limit(limit), spotify.Offset(offset))
}

func (s *Session) SavedTracks(ctx context.Context, limit, offset int) (*spotify.SavedTrackPage, error) {
	return s.api.CurrentUsersTracks(ctx, spotify.Limit(limit), spotify.Offset(offset))
}

func (s *Session) TopArtists(ctx context.Context, limit int) (*spotify.FullArtistPage, error) {
	return s.api.CurrentUsersTopArtists(ctx, spotify.Limit(limit))
}

func (s *Session) TopTracks(ctx context.Context, limit int) (*spotify.FullTrackPage, error) {
	return s.api.CurrentUsersTopTracks(ctx, spotify.Limit(limit))
}

func (s *Session) ArtistTopTracks(ctx context.Context, artistID spotify.ID) ([]spotify.FullTrack, error) {
	return s.api.GetArtistsTopTracks(ctx, artistID, defaultCountry)
}

func (s *Session) RelatedArtists(ctx context.Context, artistID spotify.ID) ([]spotify.FullArtist, error) {
	return s.api.GetRelatedArtists(ctx, artistID)
}

func (s *Session) AlbumTracks(ctx context.Context, albumID spotify.ID) (*spotify.SimpleTrackPage, error) {
	return s.api.GetAlbumTracks(ctx, albumID)
}

func (s *Session) SaveTracks(ctx context.Context, ids ...spotify.ID) error {
	return s.api.AddTracksToLibrary(ctx, ids...)
}

func (s *Session) RemoveTracks(ctx context.Context, ids ...spotify.ID) error {
	return s.api.RemoveTracksFromLibrary(ctx, ids...)
}

func (s *Session) SaveAlbums(ctx context.Context, ids ...spotify.ID) error {
	return s.modifyAlbums(ctx, http.MethodPut, ids)
}

func (s *Session) RemoveAlbums(ctx context.Context, ids ...spotify.ID) error {
	return s.modifyAlbums(ctx, http.MethodDelete, ids)
}

// modifyAlbums issues the albums-library write directly. Failures are decoded
// into the library's error type so the facade classifies them the same way as
// every other call.
func (s *Session) modifyAlbums(ctx context.Context, method string, ids []spotify.ID) error {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = string(id)
	}
	endpoint := s.albumsURL + "?ids=" + url.QueryEscape(strings.Join(strs, ","))
	req, err := http.NewRequestWithContext(ctx, method, endpoint, http.NoBody)
	if err != nil {
		return err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		var body struct {
			Error spotify.Error `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error.Status != 0 {
			return body.Error
		}
		return fmt.Errorf("spotify: %s /me/albums: %s", method, resp.Status)
	}
	return nil
}
