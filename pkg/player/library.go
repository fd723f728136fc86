// History and library reads plus the library write operations. Every read is
// a single paginated remote fetch followed by the shared summarize mapping;
// RelatedArtistTracks is the one exception, fanning out into one top-tracks
// call per related artist.

package player

import (
	"context"
	"fmt"

	"Spotify-Manager-Go/pkg/music"
)

// CurrentStatus assembles the flattened now-playing state. ErrNotConnected is
// returned when the service reports no active playback session.
func (p *Player) CurrentStatus(ctx context.Context) (music.PlaybackStatus, error) {
	state, err := p.playerState(ctx)
	if err != nil {
		return music.PlaybackStatus{}, err
	}
	if state.Item == nil {
		return music.PlaybackStatus{}, ErrNotConnected
	}
	user, err := p.session.CurrentUser(ctx)
	if err != nil {
		return music.PlaybackStatus{}, err
	}
	track := state.Item
	status := music.PlaybackStatus{
		Username: user.ID,
		Track:    music.TrackInfo{Name: track.Name, URI: string(track.URI)},
		Artists:  music.ArtistInfo{All: music.JoinArtists(track.Artists)},
		Album:    music.AlbumInfo{Name: track.Album.Name, URI: string(track.Album.URI)},
	}
	if len(track.Artists) > 0 {
		status.Artists.Primary = music.SummarizeArtist(track.Artists[0])
	}
	if state.PlaybackContext.Type == "playlist" {
		status.Playlist = music.PlaylistContext{Active: true, URI: string(state.PlaybackContext.URI)}
	}
	return status, nil
}

// Playlists lists the user's playlists.
func (p *Player) Playlists(ctx context.Context) ([]music.PlaylistSummary, error) {
	page, err := p.session.CurrentUsersPlaylists(ctx, maxPageSize)
	if err != nil {
		return nil, err
	}
	out := make([]music.PlaylistSummary, 0, len(page.Playlists))
	for _, pl := range page.Playlists {
		out = append(out, music.SummarizePlaylist(pl))
	}
	return out, nil
}

// RecentlyPlayed returns the user's listening history, most recent first.
func (p *Player) RecentlyPlayed(ctx context.Context, limit int) ([]music.TrackSummary, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	items, err := p.session.RecentlyPlayed(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]music.TrackSummary, 0, len(items))
	for _, it := range items {
		out = append(out, music.SummarizeSimpleTrack(it.Track))
	}
	return out, nil
}

// SavedAlbums returns one page of the albums saved in the user's library.
func (p *Player) SavedAlbums(ctx context.Context, limit, offset int) ([]music.AlbumSummary, error) {
	if err := checkPage(limit, offset); err != nil {
		return nil, err
	}
	page, err := p.session.SavedAlbums(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]music.AlbumSummary, 0, len(page.Albums))
	for _, a := range page.Albums {
		out = append(out, music.SummarizeAlbum(a.SimpleAlbum))
	}
	return out, nil
}

// SavedTracks returns one page of the tracks saved in the user's library.
func (p *Player) SavedTracks(ctx context.Context, limit, offset int) ([]music.TrackSummary, error) {
	if err := checkPage(limit, offset); err != nil {
		return nil, err
	}
	page, err := p.session.SavedTracks(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]music.TrackSummary, 0, len(page.Tracks))
	for _, t := range page.Tracks {
		out = append(out, music.SummarizeTrack(t.FullTrack))
	}
	return out, nil
}

// TopArtists returns the artists the user listens to the most.
func (p *Player) TopArtists(ctx context.Context, limit int) ([]music.ArtistSummary, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	page, err := p.session.TopArtists(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]music.ArtistSummary, 0, len(page.Artists))
	for _, a := range page.Artists {
		out = append(out, music.SummarizeArtist(a.SimpleArtist))
	}
	return out, nil
}

// TopTracks returns the tracks the user listens to the most.
func (p *Player) TopTracks(ctx context.Context, limit int) ([]music.TrackSummary, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	page, err := p.session.TopTracks(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]music.TrackSummary, 0, len(page.Tracks))
	for _, t := range page.Tracks {
		out = append(out, music.SummarizeTrack(t))
	}
	return out, nil
}

// ArtistTopTracks returns an artist's most popular tracks, truncated to
// limit. The service may return more than requested, so the cap is enforced
// here.
func (p *Player) ArtistTopTracks(ctx context.Context, artistURI string, limit int) ([]music.TrackSummary, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	tracks, err := p.session.ArtistTopTracks(ctx, uriID(artistURI))
	if err != nil {
		return nil, err
	}
	if len(tracks) > limit {
		tracks = tracks[:limit]
	}
	out := make([]music.TrackSummary, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, music.SummarizeTrack(t))
	}
	return out, nil
}

// RelatedArtistTracks gathers top tracks from artists related to the given
// one: one related-artists fetch followed by one top-tracks fetch per artist,
// bounded by maxArtists and tracksPerArtist. At most
// maxArtists*tracksPerArtist summaries are returned.
func (p *Player) RelatedArtistTracks(ctx context.Context, artistURI string, maxArtists, tracksPerArtist int) ([]music.TrackSummary, error) {
	if maxArtists < 1 || tracksPerArtist < 1 {
		return nil, fmt.Errorf("%w: maxArtists %d and tracksPerArtist %d must be positive",
			ErrInvalidArgument, maxArtists, tracksPerArtist)
	}
	related, err := p.session.RelatedArtists(ctx, uriID(artistURI))
	if err != nil {
		return nil, err
	}
	if len(related) > maxArtists {
		related = related[:maxArtists]
	}
	out := []music.TrackSummary{}
	for _, artist := range related {
		tracks, err := p.session.ArtistTopTracks(ctx, artist.ID)
		if err != nil {
			return nil, err
		}
		if len(tracks) > tracksPerArtist {
			tracks = tracks[:tracksPerArtist]
		}
		for _, t := range tracks {
			out = append(out, music.SummarizeTrack(t))
		}
	}
	return out, nil
}

// SaveTracks adds the given tracks to the user's library.
func (p *Player) SaveTracks(ctx context.Context, uris ...string) error {
	if len(uris) == 0 {
		return fmt.Errorf("%w: no track URIs", ErrInvalidArgument)
	}
	return p.session.SaveTracks(ctx, uriIDs(uris)...)
}

// DeleteTracks removes the given tracks from the user's library.
func (p *Player) DeleteTracks(ctx context.Context, uris ...string) error {
	if len(uris) == 0 {
		return fmt.Errorf("%w: no track URIs", ErrInvalidArgument)
	}
	return p.session.RemoveTracks(ctx, uriIDs(uris)...)
}

// SaveAlbums adds the given albums to the user's library.
func (p *Player) SaveAlbums(ctx context.Context, uris ...string) error {
	if len(uris) == 0 {
		return fmt.Errorf("%w: no album URIs", ErrInvalidArgument)
	}
	return p.session.SaveAlbums(ctx, uriIDs(uris)...)
}

// SaveCurrentTrack saves the currently playing track.
func (p *Player) SaveCurrentTrack(ctx context.Context) error {
	status, err := p.CurrentStatus(ctx)
	if err != nil {
		return err
	}
	return p.SaveTracks(ctx, status.Track.URI)
}

// DeleteCurrentTrack removes the currently playing track from the library.
func (p *Player) DeleteCurrentTrack(ctx context.Context) error {
	status, err := p.CurrentStatus(ctx)
	if err != nil {
		return err
	}
	return p.DeleteTracks(ctx, status.Track.URI)
}

// SaveCurrentAlbum saves the album of the currently playing track.
func (p *Player) SaveCurrentAlbum(ctx context.Context) error {
	status, err := p.CurrentStatus(ctx)
	if err != nil {
		return err
	}
	return p.SaveAlbums(ctx, status.Album.URI)
}

// DeleteCurrentAlbum removes every track of the current album from the
// user's library.
func (p *Player) DeleteCurrentAlbum(ctx context.Context) error {
	status, err := p.CurrentStatus(ctx)
	if err != nil {
		return err
	}
	page, err := p.session.AlbumTracks(ctx, uriID(status.Album.URI))
	if err != nil {
		return err
	}
	uris := make([]string, 0, len(page.Tracks))
	for _, t := range page.Tracks {
		uris = append(uris, string(t.URI))
	}
	if len(uris) == 0 {
		return nil
	}
	return p.DeleteTracks(ctx, uris...)
}

// maxPageSize is the largest page the service accepts in one request.
const maxPageSize = 50

func checkLimit(limit int) error {
	if limit < 1 {
		return fmt.Errorf("%w: limit %d must be positive", ErrInvalidArgument, limit)
	}
	return nil
}

func checkPage(limit, offset int) error {
	if err := checkLimit(limit); err != nil {
		return err
	}
	if offset < 0 {
		return fmt.Errorf("%w: offset %d must not be negative", ErrInvalidArgument, offset)
	}
	return nil
}
