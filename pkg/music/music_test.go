package music

import (
	"testing"

	"github.com/zmb3/spotify/v2"
)

func TestJoinArtists(t *testing.T) {
	tests := []struct {
		name    string
		artists []spotify.SimpleArtist
		want    string
	}{
		{"none", nil, ""},
		{"one", []spotify.SimpleArtist{{Name: "Miles Davis"}}, "Miles Davis"},
		{"several", []spotify.SimpleArtist{
			{Name: "Miles Davis"}, {Name: "John Coltrane"}, {Name: "Bill Evans"},
		}, "Miles Davis, John Coltrane, Bill Evans"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinArtists(tt.artists); got != tt.want {
				t.Errorf("JoinArtists = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummarizeTrack(t *testing.T) {
	var tr spotify.FullTrack
	tr.Name = "So What"
	tr.URI = "spotify:track:t1"
	tr.Artists = []spotify.SimpleArtist{{Name: "Miles Davis"}}
	tr.Album = spotify.SimpleAlbum{Name: "Kind of Blue"}

	got := SummarizeTrack(tr)
	want := TrackSummary{Name: "So What", Artists: "Miles Davis", Album: "Kind of Blue", URI: "spotify:track:t1"}
	if got != want {
		t.Errorf("SummarizeTrack = %+v, want %+v", got, want)
	}
}

func TestSummarizeSimpleTrackHasNoAlbum(t *testing.T) {
	got := SummarizeSimpleTrack(spotify.SimpleTrack{
		Name:    "Freddie Freeloader",
		URI:     "spotify:track:t2",
		Artists: []spotify.SimpleArtist{{Name: "Miles Davis"}},
	})
	if got.Album != "" {
		t.Errorf("album = %q, want empty for a simple track", got.Album)
	}
	if got.Name != "Freddie Freeloader" || got.Artists != "Miles Davis" {
		t.Errorf("summary = %+v", got)
	}
}

func TestSummarizeDevice(t *testing.T) {
	got := SummarizeDevice(spotify.PlayerDevice{ID: "d1", Name: "Kitchen", Active: true, Volume: 70})
	want := Device{ID: "d1", Name: "Kitchen", Active: true, Volume: 70}
	if got != want {
		t.Errorf("SummarizeDevice = %+v, want %+v", got, want)
	}
}
