package player

import (
	"context"

	"github.com/zmb3/spotify/v2"
)

// fakeSession satisfies Session with per-method hooks and records the order
// of remote calls so tests can assert both results and call sequences.
type fakeSession struct {
	calls []string

	currentUserFn     func(ctx context.Context) (*spotify.PrivateUser, error)
	playerDevicesFn   func(ctx context.Context) ([]spotify.PlayerDevice, error)
	playerStateFn     func(ctx context.Context) (*spotify.PlayerState, error)
	playFn            func(ctx context.Context, opt *spotify.PlayOptions) error
	pauseFn           func(ctx context.Context, opt *spotify.PlayOptions) error
	nextFn            func(ctx context.Context, opt *spotify.PlayOptions) error
	previousFn        func(ctx context.Context, opt *spotify.PlayOptions) error
	seekFn            func(ctx context.Context, positionMs int, opt *spotify.PlayOptions) error
	setVolumeFn       func(ctx context.Context, percent int, opt *spotify.PlayOptions) error
	setShuffleFn      func(ctx context.Context, shuffle bool, opt *spotify.PlayOptions) error
	setRepeatFn       func(ctx context.Context, state string, opt *spotify.PlayOptions) error
	searchFn          func(ctx context.Context, query string, t spotify.SearchType, limit int) (*spotify.SearchResult, error)
	recommendFn       func(ctx context.Context, seeds spotify.Seeds, limit int) (*spotify.Recommendations, error)
	genresFn          func(ctx context.Context) ([]string, error)
	playlistsFn       func(ctx context.Context, limit int) (*spotify.SimplePlaylistPage, error)
	recentlyPlayedFn  func(ctx context.Context, limit int) ([]spotify.RecentlyPlayedItem, error)
	savedAlbumsFn     func(ctx context.Context, limit, offset int) (*spotify.SavedAlbumPage, error)
	savedTracksFn     func(ctx context.Context, limit, offset int) (*spotify.SavedTrackPage, error)
	topArtistsFn      func(ctx context.Context, limit int) (*spotify.FullArtistPage, error)
	topTracksFn       func(ctx context.Context, limit int) (*spotify.FullTrackPage, error)
	artistTopTracksFn func(ctx context.Context, artistID spotify.ID) ([]spotify.FullTrack, error)
	relatedArtistsFn  func(ctx context.Context, artistID spotify.ID) ([]spotify.FullArtist, error)
	albumTracksFn     func(ctx context.Context, albumID spotify.ID) (*spotify.SimpleTrackPage, error)
	saveTracksFn      func(ctx context.Context, ids ...spotify.ID) error
	removeTracksFn    func(ctx context.Context, ids ...spotify.ID) error
	saveAlbumsFn      func(ctx context.Context, ids ...spotify.ID) error
	removeAlbumsFn    func(ctx context.Context, ids ...spotify.ID) error
}

var _ Session = (*fakeSession)(nil)

func (f *fakeSession) record(name string) { f.calls = append(f.calls, name) }

func (f *fakeSession) CurrentUser(ctx context.Context) (*spotify.PrivateUser, error) {
	f.record("CurrentUser")
	if f.currentUserFn != nil {
		return f.currentUserFn(ctx)
	}
	return &spotify.PrivateUser{}, nil
}

func (f *fakeSession) PlayerDevices(ctx context.Context) ([]spotify.PlayerDevice, error) {
	f.record("PlayerDevices")
	if f.playerDevicesFn != nil {
		return f.playerDevicesFn(ctx)
	}
	return nil, nil
}

func (f *fakeSession) PlayerState(ctx context.Context) (*spotify.PlayerState, error) {
	f.record("PlayerState")
	if f.playerStateFn != nil {
		return f.playerStateFn(ctx)
	}
	return nil, nil
}

func (f *fakeSession) Play(ctx context.Context, opt *spotify.PlayOptions) error {
	f.record("Play")
	if f.playFn != nil {
		return f.playFn(ctx, opt)
	}
	return nil
}

func (f *fakeSession) Pause(ctx context.Context, opt *spotify.PlayOptions) error {
	f.record("Pause")
	if f.pauseFn != nil {
		return f.pauseFn(ctx, opt)
	}
	return nil
}

func (f *fakeSession) Next(ctx context.Context, opt *spotify.PlayOptions) error {
	f.record("Next")
	if f.nextFn != nil {
		return f.nextFn(ctx, opt)
	}
	return nil
}

func (f *fakeSession) Previous(ctx context.Context, opt *spotify.PlayOptions) error {
	f.record("Previous")
	if f.previousFn != nil {
		return f.previousFn(ctx, opt)
	}
	return nil
}

func (f *fakeSession) Seek(ctx context.Context, positionMs int, opt *spotify.PlayOptions) error {
	f.record("Seek")
	if f.seekFn != nil {
		return f.seekFn(ctx, positionMs, opt)
	}
	return nil
}

func (f *fakeSession) SetVolume(ctx context.Context, percent int, opt *spotify.PlayOptions) error {
	f.record("SetVolume")
	if f.setVolumeFn != nil {
		return f.setVolumeFn(ctx, percent, opt)
	}
	return nil
}

func (f *fakeSession) SetShuffle(ctx context.Context, shuffle bool, opt *spotify.PlayOptions) error {
	f.record("SetShuffle")
	if f.setShuffleFn != nil {
		return f.setShuffleFn(ctx, shuffle, opt)
	}
	return nil
}

func (f *fakeSession) SetRepeat(ctx context.Context, state string, opt *spotify.PlayOptions) error {
	f.record("SetRepeat")
	if f.setRepeatFn != nil {
		return f.setRepeatFn(ctx, state, opt)
	}
	return nil
}

func (f *fakeSession) Search(ctx context.Context, query string, t spotify.SearchType, limit int) (*spotify.SearchResult, error) {
	f.record("Search")
	if f.searchFn != nil {
		return f.searchFn(ctx, query, t, limit)
	}
	return &spotify.SearchResult{}, nil
}

func (f *fakeSession) Recommendations(ctx context.Context, seeds spotify.Seeds, limit int) (*spotify.Recommendations, error) {
	f.record("Recommendations")
	if f.recommendFn != nil {
		return f.recommendFn(ctx, seeds, limit)
	}
	return &spotify.Recommendations{}, nil
}

func (f *fakeSession) AvailableGenres(ctx context.Context) ([]string, error) {
	f.record("AvailableGenres")
	if f.genresFn != nil {
		return f.genresFn(ctx)
	}
	return nil, nil
}

func (f *fakeSession) CurrentUsersPlaylists(ctx context.Context, limit int) (*spotify.SimplePlaylistPage, error) {
	f.record("CurrentUsersPlaylists")
	if f.playlistsFn != nil {
		return f.playlistsFn(ctx, limit)
	}
	return &spotify.SimplePlaylistPage{}, nil
}

func (f *fakeSession) RecentlyPlayed(ctx context.Context, limit int) ([]spotify.RecentlyPlayedItem, error) {
	f.record("RecentlyPlayed")
	if f.recentlyPlayedFn != nil {
		return f.recentlyPlayedFn(ctx, limit)
	}
	return nil, nil
}

func (f *fakeSession) SavedAlbums(ctx context.Context, limit, offset int) (*spotify.SavedAlbumPage, error) {
	f.record("SavedAlbums")
	if f.savedAlbumsFn != nil {
		return f.savedAlbumsFn(ctx, limit, offset)
	}
	return &spotify.SavedAlbumPage{}, nil
}

func (f *fakeSession) SavedTracks(ctx context.Context, limit, offset int) (*spotify.SavedTrackPage, error) {
	f.record("SavedTracks")
	if f.savedTracksFn != nil {
		return f.savedTracksFn(ctx, limit, offset)
	}
	return &spotify.SavedTrackPage{}, nil
}

func (f *fakeSession) TopArtists(ctx context.Context, limit int) (*spotify.FullArtistPage, error) {
	f.record("TopArtists")
	if f.topArtistsFn != nil {
		return f.topArtistsFn(ctx, limit)
	}
	return &spotify.FullArtistPage{}, nil
}

func (f *fakeSession) TopTracks(ctx context.Context, limit int) (*spotify.FullTrackPage, error) {
	f.record("TopTracks")
	if f.topTracksFn != nil {
		return f.topTracksFn(ctx, limit)
	}
	return &spotify.FullTrackPage{}, nil
}

func (f *fakeSession) ArtistTopTracks(ctx context.Context, artistID spotify.ID) ([]spotify.FullTrack, error) {
	f.record("ArtistTopTracks")
	if f.artistTopTracksFn != nil {
		return f.artistTopTracksFn(ctx, artistID)
	}
	return nil, nil
}

func (f *fakeSession) RelatedArtists(ctx context.Context, artistID spotify.ID) ([]spotify.FullArtist, error) {
	f.record("RelatedArtists")
	if f.relatedArtistsFn != nil {
		return f.relatedArtistsFn(ctx, artistID)
	}
	return nil, nil
}

func (f *fakeSession) AlbumTracks(ctx context.Context, albumID spotify.ID) (*spotify.SimpleTrackPage, error) {
	f.record("AlbumTracks")
	if f.albumTracksFn != nil {
		return f.albumTracksFn(ctx, albumID)
	}
	return &spotify.SimpleTrackPage{}, nil
}

func (f *fakeSession) SaveTracks(ctx context.Context, ids ...spotify.ID) error {
	f.record("SaveTracks")
	if f.saveTracksFn != nil {
		return f.saveTracksFn(ctx, ids...)
	}
	return nil
}

func (f *fakeSession) RemoveTracks(ctx context.Context, ids ...spotify.ID) error {
	f.record("RemoveTracks")
	if f.removeTracksFn != nil {
		return f.removeTracksFn(ctx, ids...)
	}
	return nil
}

func (f *fakeSession) SaveAlbums(ctx context.Context, ids ...spotify.ID) error {
	f.record("SaveAlbums")
	if f.saveAlbumsFn != nil {
		return f.saveAlbumsFn(ctx, ids...)
	}
	return nil
}

func (f *fakeSession) RemoveAlbums(ctx context.Context, ids ...spotify.ID) error {
	f.record("RemoveAlbums")
	if f.removeAlbumsFn != nil {
		return f.removeAlbumsFn(ctx, ids...)
	}
	return nil
}

// apiErr builds the library error shape the classifier inspects.
func apiErr(status int, message string) error {
	return spotify.Error{Message: message, Status: status}
}

// fullTrack builds a minimal track response for mapping tests.
func fullTrack(name, artist, album, uri string) spotify.FullTrack {
	var t spotify.FullTrack
	t.Name = name
	t.URI = spotify.URI(uri)
	t.Artists = []spotify.SimpleArtist{{Name: artist}}
	t.Album = spotify.SimpleAlbum{Name: album}
	return t
}

// playingState builds a player state with the given track as the current item.
func playingState(t spotify.FullTrack) *spotify.PlayerState {
	var st spotify.PlayerState
	st.Item = &t
	return &st
}
