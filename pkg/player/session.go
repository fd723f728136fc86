// Package player implements the playback facade: a thin, synchronous layer
// over an authenticated Spotify session that validates input, issues one or
// more remote calls, flattens the responses into the shapes defined in
// pkg/music and translates upstream faults into a small set of local errors.
//
// The facade holds no state beyond the session handle and performs no retries,
// timeouts or background work; cancellation is the caller's responsibility via
// the context passed to every method. Concurrent use is safe only when the
// underlying session's HTTP client is.

package player

import (
	"context"
	"strings"

	"github.com/zmb3/spotify/v2"
)

// Session is the remote API surface the facade needs. It is a narrow subset
// of the Spotify Web API expressed with the library's response types so the
// concrete client in pkg/spotify can satisfy it directly and tests can fake
// it without network access.
type Session interface {
	CurrentUser(ctx context.Context) (*spotify.PrivateUser, error)
	PlayerDevices(ctx context.Context) ([]spotify.PlayerDevice, error)
	PlayerState(ctx context.Context) (*spotify.PlayerState, error)

	Play(ctx context.Context, opt *spotify.PlayOptions) error
	Pause(ctx context.Context, opt *spotify.PlayOptions) error
	Next(ctx context.Context, opt *spotify.PlayOptions) error
	Previous(ctx context.Context, opt *spotify.PlayOptions) error
	Seek(ctx context.Context, positionMs int, opt *spotify.PlayOptions) error
	SetVolume(ctx context.Context, percent int, opt *spotify.PlayOptions) error
	SetShuffle(ctx context.Context, shuffle bool, opt *spotify.PlayOptions) error
	SetRepeat(ctx context.Context, state string, opt *spotify.PlayOptions) error

	Search(ctx context.Context, query string, t spotify.SearchType, limit int) (*spotify.SearchResult, error)
	Recommendations(ctx context.Context, seeds spotify.Seeds, limit int) (*spotify.Recommendations, error)
	AvailableGenres(ctx context.Context) ([]string, error)

	CurrentUsersPlaylists(ctx context.Context, limit int) (*spotify.SimplePlaylistPage, error)
	RecentlyPlayed(ctx context.Context, limit int) ([]spotify.RecentlyPlayedItem, error)
	SavedAlbums(ctx context.Context, limit, offset int) (*spotify.SavedAlbumPage, error)
	SavedTracks(ctx context.Context, limit, offset int) (*spotify.SavedTrackPage, error)
	TopArtists(ctx context.Context, limit int) (*spotify.FullArtistPage, error)
	TopTracks(ctx context.Context, limit int) (*spotify.FullTrackPage, error)
	ArtistTopTracks(ctx context.Context, artistID spotify.ID) ([]spotify.FullTrack, error)
	RelatedArtists(ctx context.Context, artistID spotify.ID) ([]spotify.FullArtist, error)
	AlbumTracks(ctx context.Context, albumID spotify.ID) (*spotify.SimpleTrackPage, error)

	SaveTracks(ctx context.Context, ids ...spotify.ID) error
	RemoveTracks(ctx context.Context, ids ...spotify.ID) error
	SaveAlbums(ctx context.Context, ids ...spotify.ID) error
	RemoveAlbums(ctx context.Context, ids ...spotify.ID) error
}

// Player is the facade itself. The zero value is not usable; construct one
// with New.
type Player struct {
	session Session
}

// New returns a Player issuing all remote calls through session.
func New(session Session) *Player {
	return &Player{session: session}
}

// uriID extracts the bare identifier from an opaque Spotify URI such as
// "spotify:track:4iV5W9uYEdYUVa79Axb7Rh". Bare IDs pass through unchanged.
func uriID(uri string) spotify.ID {
	if i := strings.LastIndex(uri, ":"); i >= 0 {
		return spotify.ID(uri[i+1:])
	}
	return spotify.ID(uri)
}

// uriIDs maps a URI list to library IDs, preserving order.
func uriIDs(uris []string) []spotify.ID {
	ids := make([]spotify.ID, len(uris))
	for i, u := range uris {
		ids[i] = uriID(u)
	}
	return ids
}

// playOpts builds the device-targeting options shared by all transport
// commands. An empty deviceID targets whatever device is currently active.
func playOpts(deviceID string) *spotify.PlayOptions {
	if deviceID == "" {
		return nil
	}
	id := spotify.ID(deviceID)
	return &spotify.PlayOptions{DeviceID: &id}
}
