// Search operations. Each issues a single type-filtered search call and maps
// the result page into summaries. An empty result set is an empty slice, not
// an error; only the search-and-play composites in radio.go require results.

package player

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"

	"Spotify-Manager-Go/pkg/music"
)

// SearchTracks returns up to limit tracks matching query.
func (p *Player) SearchTracks(ctx context.Context, query string, limit int) ([]music.TrackSummary, error) {
	res, err := p.search(ctx, query, spotify.SearchTypeTrack, limit)
	if err != nil {
		return nil, err
	}
	out := []music.TrackSummary{}
	if res.Tracks != nil {
		for _, t := range res.Tracks.Tracks {
			out = append(out, music.SummarizeTrack(t))
		}
	}
	return out, nil
}

// SearchArtists returns up to limit artists matching query.
func (p *Player) SearchArtists(ctx context.Context, query string, limit int) ([]music.ArtistSummary, error) {
	res, err := p.search(ctx, query, spotify.SearchTypeArtist, limit)
	if err != nil {
		return nil, err
	}
	out := []music.ArtistSummary{}
	if res.Artists != nil {
		for _, a := range res.Artists.Artists {
			out = append(out, music.SummarizeArtist(a.SimpleArtist))
		}
	}
	return out, nil
}

// SearchAlbums returns up to limit albums matching query.
func (p *Player) SearchAlbums(ctx context.Context, query string, limit int) ([]music.AlbumSummary, error) {
	res, err := p.search(ctx, query, spotify.SearchTypeAlbum, limit)
	if err != nil {
		return nil, err
	}
	out := []music.AlbumSummary{}
	if res.Albums != nil {
		for _, a := range res.Albums.Albums {
			out = append(out, music.SummarizeAlbum(a))
		}
	}
	return out, nil
}

// SearchPlaylists returns up to limit playlists matching query.
func (p *Player) SearchPlaylists(ctx context.Context, query string, limit int) ([]music.PlaylistSummary, error) {
	res, err := p.search(ctx, query, spotify.SearchTypePlaylist, limit)
	if err != nil {
		return nil, err
	}
	out := []music.PlaylistSummary{}
	if res.Playlists != nil {
		for _, pl := range res.Playlists.Playlists {
			out = append(out, music.SummarizePlaylist(pl))
		}
	}
	return out, nil
}

func (p *Player) search(ctx context.Context, query string, t spotify.SearchType, limit int) (*spotify.SearchResult, error) {
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit %d must be positive", ErrInvalidArgument, limit)
	}
	res, err := p.session.Search(ctx, query, t, limit)
	if err != nil {
		return nil, translateBadQuery(err)
	}
	return res, nil
}

// translateBadQuery maps the service's empty-query rejection onto the local
// invalid-argument condition; other faults pass through.
func translateBadQuery(err error) error {
	if classify(err) == faultBadQuery {
		return fmt.Errorf("%w: empty search query", ErrInvalidArgument)
	}
	return err
}

// firstURI runs a single-result search and returns the top match's URI.
// ErrNoResults is returned when nothing matches, which makes it the building
// block for the search-and-play composites.
func (p *Player) firstURI(ctx context.Context, query string, t spotify.SearchType) (string, error) {
	res, err := p.session.Search(ctx, query, t, 1)
	if err != nil {
		return "", translateBadQuery(err)
	}
	switch t {
	case spotify.SearchTypeTrack:
		if res.Tracks != nil && len(res.Tracks.Tracks) > 0 {
			return string(res.Tracks.Tracks[0].URI), nil
		}
	case spotify.SearchTypeArtist:
		if res.Artists != nil && len(res.Artists.Artists) > 0 {
			return string(res.Artists.Artists[0].URI), nil
		}
	case spotify.SearchTypeAlbum:
		if res.Albums != nil && len(res.Albums.Albums) > 0 {
			return string(res.Albums.Albums[0].URI), nil
		}
	case spotify.SearchTypePlaylist:
		if res.Playlists != nil && len(res.Playlists.Playlists) > 0 {
			return string(res.Playlists.Playlists[0].URI), nil
		}
	}
	return "", fmt.Errorf("%w for %q", ErrNoResults, query)
}
