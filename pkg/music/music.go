// Package music defines the flat data shapes returned by the playback facade
// and the mapping helpers that build them from Spotify API responses. Every
// value here is a transient projection of a remote response: nothing is owned
// or persisted locally and URIs are carried through exactly as the remote
// service returned them.

package music

import (
	"strings"

	"github.com/zmb3/spotify/v2"
)

// Device describes a playback endpoint registered with Spotify, such as a
// speaker or desktop client. The remote service is the source of truth;
// devices are fetched fresh on every query.
type Device struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"is_active"`
	Volume int    `json:"volume_percent"`
}

// TrackSummary is a flattened track with the artist list joined into a single
// display string.
type TrackSummary struct {
	Name    string `json:"name"`
	Artists string `json:"artists"`
	Album   string `json:"album"`
	URI     string `json:"uri"`
}

// ArtistSummary pairs an artist name with its URI.
type ArtistSummary struct {
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// AlbumSummary is a flattened album with joined artist names.
type AlbumSummary struct {
	Name    string `json:"name"`
	Artists string `json:"artists"`
	URI     string `json:"uri"`
}

// PlaylistSummary pairs a playlist name with its URI.
type PlaylistSummary struct {
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// TrackInfo identifies the currently playing track.
type TrackInfo struct {
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// ArtistInfo carries both the full joined artist string and the primary
// (first listed) artist of the current track.
type ArtistInfo struct {
	All     string        `json:"all"`
	Primary ArtistSummary `json:"primary"`
}

// AlbumInfo identifies the album of the currently playing track.
type AlbumInfo struct {
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// PlaylistContext reports whether playback is happening inside a playlist and
// which one.
type PlaylistContext struct {
	Active bool   `json:"active"`
	URI    string `json:"uri,omitempty"`
}

// PlaybackStatus is the flattened now-playing state assembled by the facade.
type PlaybackStatus struct {
	Username string          `json:"username"`
	Track    TrackInfo       `json:"track"`
	Artists  ArtistInfo      `json:"artists"`
	Album    AlbumInfo       `json:"album"`
	Playlist PlaylistContext `json:"playlist"`
}

// JoinArtists renders a list of artists as a single comma separated string
// with no trailing separator.
func JoinArtists(artists []spotify.SimpleArtist) string {
	names := make([]string, len(artists))
	for i, a := range artists {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

// SummarizeTrack flattens a full track response into a TrackSummary.
func SummarizeTrack(t spotify.FullTrack) TrackSummary {
	return TrackSummary{
		Name:    t.Name,
		Artists: JoinArtists(t.Artists),
		Album:   t.Album.Name,
		URI:     string(t.URI),
	}
}

// SummarizeSimpleTrack flattens a simple track. Simple tracks carry no album
// information, so the Album field is left empty.
func SummarizeSimpleTrack(t spotify.SimpleTrack) TrackSummary {
	return TrackSummary{
		Name:    t.Name,
		Artists: JoinArtists(t.Artists),
		URI:     string(t.URI),
	}
}

// SummarizeArtist projects an artist onto its name and URI.
func SummarizeArtist(a spotify.SimpleArtist) ArtistSummary {
	return ArtistSummary{Name: a.Name, URI: string(a.URI)}
}

// SummarizeAlbum flattens an album response into an AlbumSummary.
func SummarizeAlbum(a spotify.SimpleAlbum) AlbumSummary {
	return AlbumSummary{
		Name:    a.Name,
		Artists: JoinArtists(a.Artists),
		URI:     string(a.URI),
	}
}

// SummarizePlaylist projects a playlist onto its name and URI.
func SummarizePlaylist(p spotify.SimplePlaylist) PlaylistSummary {
	return PlaylistSummary{Name: p.Name, URI: string(p.URI)}
}

// SummarizeDevice projects a player device onto the fields the facade exposes.
func SummarizeDevice(d spotify.PlayerDevice) Device {
	return Device{
		ID:     string(d.ID),
		Name:   d.Name,
		Active: d.Active,
		Volume: int(d.Volume),
	}
}
