package player

import (
	"context"
	"errors"
	"testing"

	"github.com/zmb3/spotify/v2"
)

func TestSearchTracksMapsResults(t *testing.T) {
	sess := &fakeSession{searchFn: func(_ context.Context, query string, st spotify.SearchType, limit int) (*spotify.SearchResult, error) {
		if query != "so what" || st != spotify.SearchTypeTrack || limit != 10 {
			t.Errorf("search called with %q, %v, %d", query, st, limit)
		}
		return &spotify.SearchResult{Tracks: &spotify.FullTrackPage{Tracks: []spotify.FullTrack{
			fullTrack("So What", "Miles Davis", "Kind of Blue", "spotify:track:t1"),
		}}}, nil
	}}
	got, err := New(sess).SearchTracks(context.Background(), "so what", 10)
	if err != nil {
		t.Fatalf("SearchTracks returned %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1", len(got))
	}
	if got[0].Name != "So What" || got[0].Artists != "Miles Davis" || got[0].Album != "Kind of Blue" || got[0].URI != "spotify:track:t1" {
		t.Errorf("result = %+v", got[0])
	}
}

func TestSearchEmptyResultIsEmptySlice(t *testing.T) {
	p := New(&fakeSession{})
	got, err := p.SearchArtists(context.Background(), "nobody", 5)
	if err != nil {
		t.Fatalf("SearchArtists returned %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("result = %#v, want empty non-nil slice", got)
	}
}

func TestSearchRejectsNonPositiveLimit(t *testing.T) {
	sess := &fakeSession{}
	_, err := New(sess).SearchAlbums(context.Background(), "x", 0)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("SearchAlbums(limit=0) returned %v, want ErrInvalidArgument", err)
	}
	if len(sess.calls) != 0 {
		t.Errorf("invalid limit reached the session: %v", sess.calls)
	}
}

func TestSearchEmptyQueryRejected(t *testing.T) {
	badQuery := func(context.Context, string, spotify.SearchType, int) (*spotify.SearchResult, error) {
		return nil, apiErr(400, "No search query")
	}

	p := New(&fakeSession{searchFn: badQuery})
	if _, err := p.SearchTracks(context.Background(), "", 5); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("SearchTracks returned %v, want ErrInvalidArgument", err)
	}
	if err := p.PlayTrack(context.Background(), "", ""); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("PlayTrack returned %v, want ErrInvalidArgument", err)
	}
}

func TestSearchPlaylistsMapsResults(t *testing.T) {
	sess := &fakeSession{searchFn: func(context.Context, string, spotify.SearchType, int) (*spotify.SearchResult, error) {
		return &spotify.SearchResult{Playlists: &spotify.SimplePlaylistPage{Playlists: []spotify.SimplePlaylist{
			{Name: "Jazz Classics", URI: "spotify:playlist:p1"},
		}}}, nil
	}}
	got, err := New(sess).SearchPlaylists(context.Background(), "jazz", 1)
	if err != nil || len(got) != 1 {
		t.Fatalf("SearchPlaylists = %v, %v", got, err)
	}
	if got[0].Name != "Jazz Classics" || got[0].URI != "spotify:playlist:p1" {
		t.Errorf("result = %+v", got[0])
	}
}
