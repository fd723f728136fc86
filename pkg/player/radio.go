// Composite operations: the "radio" pipelines and search-and-play. These are
// best-effort sequences of remote calls with no transactional guarantee. A
// radio pipeline pauses first, then gathers candidate tracks, plays them in
// one call and finally sets shuffle; if the gather step fails, playback is
// left paused.

package player

import (
	"context"

	"github.com/zmb3/spotify/v2"

	"Spotify-Manager-Go/pkg/music"
)

// PlayTopArtists plays top tracks from the user's most listened artists,
// shuffled. maxArtists bounds the number of artists analyzed.
func (p *Player) PlayTopArtists(ctx context.Context, maxArtists int, deviceID string) error {
	return p.radio(ctx, deviceID, true, func(ctx context.Context) ([]string, error) {
		artists, err := p.TopArtists(ctx, maxArtists)
		if err != nil {
			return nil, err
		}
		var uris []string
		for _, artist := range artists {
			tracks, err := p.session.ArtistTopTracks(ctx, uriID(artist.URI))
			if err != nil {
				return nil, err
			}
			for _, t := range tracks {
				uris = append(uris, string(t.URI))
			}
		}
		return uris, nil
	})
}

// PlayTopTracks plays the user's most listened tracks, shuffled.
func (p *Player) PlayTopTracks(ctx context.Context, limit int, deviceID string) error {
	return p.radio(ctx, deviceID, true, func(ctx context.Context) ([]string, error) {
		return summaryURIs(p.TopTracks(ctx, limit))
	})
}

// PlayRecentlyPlayed replays the user's listening history, shuffled.
func (p *Player) PlayRecentlyPlayed(ctx context.Context, limit int, deviceID string) error {
	return p.radio(ctx, deviceID, true, func(ctx context.Context) ([]string, error) {
		return summaryURIs(p.RecentlyPlayed(ctx, limit))
	})
}

// PlayCurrentArtistRelated plays top tracks from artists related to the one
// currently playing, shuffled. ErrNotConnected is returned when nothing is
// playing.
func (p *Player) PlayCurrentArtistRelated(ctx context.Context, maxArtists, tracksPerArtist int, deviceID string) error {
	return p.radio(ctx, deviceID, true, func(ctx context.Context) ([]string, error) {
		status, err := p.CurrentStatus(ctx)
		if err != nil {
			return nil, err
		}
		return summaryURIs(p.RelatedArtistTracks(ctx, status.Artists.Primary.URI, maxArtists, tracksPerArtist))
	})
}

// PlayTrack searches for a track matching query and plays the top result.
// ErrNoResults is returned when nothing matches.
func (p *Player) PlayTrack(ctx context.Context, query, deviceID string) error {
	uri, err := p.firstURI(ctx, query, spotify.SearchTypeTrack)
	if err != nil {
		return err
	}
	return p.Play(ctx, "", []string{uri}, deviceID)
}

// PlayAlbum searches for an album matching query and plays it front to back,
// disabling shuffle so the track order is preserved.
func (p *Player) PlayAlbum(ctx context.Context, query, deviceID string) error {
	uri, err := p.firstURI(ctx, query, spotify.SearchTypeAlbum)
	if err != nil {
		return err
	}
	if err := p.Play(ctx, uri, nil, deviceID); err != nil {
		return err
	}
	return p.SetShuffle(ctx, false, deviceID)
}

// PlayArtist searches for an artist matching query and plays from their
// catalog.
func (p *Player) PlayArtist(ctx context.Context, query, deviceID string) error {
	uri, err := p.firstURI(ctx, query, spotify.SearchTypeArtist)
	if err != nil {
		return err
	}
	return p.Play(ctx, uri, nil, deviceID)
}

// PlayPlaylist searches for a playlist matching query and plays it.
func (p *Player) PlayPlaylist(ctx context.Context, query, deviceID string) error {
	uri, err := p.firstURI(ctx, query, spotify.SearchTypePlaylist)
	if err != nil {
		return err
	}
	return p.Play(ctx, uri, nil, deviceID)
}

// radio runs the pause → gather → play → shuffle pipeline shared by all
// radio operations.
func (p *Player) radio(ctx context.Context, deviceID string, shuffle bool, gather func(context.Context) ([]string, error)) error {
	if err := p.Pause(ctx, deviceID); err != nil {
		return err
	}
	uris, err := gather(ctx)
	if err != nil {
		return err
	}
	if len(uris) == 0 {
		return ErrNoResults
	}
	if err := p.Play(ctx, "", uris, deviceID); err != nil {
		return err
	}
	return p.SetShuffle(ctx, shuffle, deviceID)
}

func summaryURIs(tracks []music.TrackSummary, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	uris := make([]string, len(tracks))
	for i, t := range tracks {
		uris[i] = t.URI
	}
	return uris, nil
}
