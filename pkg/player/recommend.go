// Recommendation reads and the recommendation-seeded play composites. Unlike
// the radio pipelines these do not pause first or touch shuffle; they gather
// one recommendation set and issue a single play call with it.

package player

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"

	"Spotify-Manager-Go/pkg/music"
)

// Genres lists the genre seeds the recommendation endpoint accepts.
func (p *Player) Genres(ctx context.Context) ([]string, error) {
	return p.session.AvailableGenres(ctx)
}

// GenreTracks returns up to limit recommended tracks seeded by genre. An
// unknown genre yields an empty slice; the service does not reject it.
func (p *Player) GenreTracks(ctx context.Context, genre string, limit int) ([]music.TrackSummary, error) {
	if genre == "" {
		return nil, fmt.Errorf("%w: empty genre", ErrInvalidArgument)
	}
	return p.recommendTracks(ctx, spotify.Seeds{Genres: []string{genre}}, limit)
}

// SimilarToCurrentTrack returns recommendations seeded by the currently
// playing track. ErrNotConnected is returned when nothing is playing.
func (p *Player) SimilarToCurrentTrack(ctx context.Context, limit int) ([]music.TrackSummary, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	status, err := p.CurrentStatus(ctx)
	if err != nil {
		return nil, err
	}
	return p.recommendTracks(ctx, spotify.Seeds{Tracks: []spotify.ID{uriID(status.Track.URI)}}, limit)
}

// SimilarToCurrentArtist returns recommendations seeded by every artist of
// the currently playing track.
func (p *Player) SimilarToCurrentArtist(ctx context.Context, limit int) ([]music.TrackSummary, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	state, err := p.playerState(ctx)
	if err != nil {
		return nil, err
	}
	if state.Item == nil {
		return nil, ErrNotConnected
	}
	ids := make([]spotify.ID, 0, len(state.Item.Artists))
	for _, a := range state.Item.Artists {
		ids = append(ids, uriID(string(a.URI)))
	}
	return p.recommendTracks(ctx, spotify.Seeds{Artists: ids}, limit)
}

// PlayGenre plays recommended tracks for a genre. ErrNoResults is returned
// when the recommendation set is empty, which is how the service reports an
// unknown genre seed.
func (p *Player) PlayGenre(ctx context.Context, genre string, limit int, deviceID string) error {
	if genre == "" {
		return fmt.Errorf("%w: empty genre", ErrInvalidArgument)
	}
	if err := checkLimit(limit); err != nil {
		return err
	}
	return p.playRecommended(ctx, deviceID, func(ctx context.Context) ([]music.TrackSummary, error) {
		return p.GenreTracks(ctx, genre, limit)
	})
}

// PlaySimilarToCurrentTrack plays tracks similar to the one currently
// playing.
func (p *Player) PlaySimilarToCurrentTrack(ctx context.Context, limit int, deviceID string) error {
	if err := checkLimit(limit); err != nil {
		return err
	}
	return p.playRecommended(ctx, deviceID, func(ctx context.Context) ([]music.TrackSummary, error) {
		return p.SimilarToCurrentTrack(ctx, limit)
	})
}

// PlaySimilarToCurrentArtist plays tracks recommended from the current
// track's artists.
func (p *Player) PlaySimilarToCurrentArtist(ctx context.Context, limit int, deviceID string) error {
	if err := checkLimit(limit); err != nil {
		return err
	}
	return p.playRecommended(ctx, deviceID, func(ctx context.Context) ([]music.TrackSummary, error) {
		return p.SimilarToCurrentArtist(ctx, limit)
	})
}

func (p *Player) playRecommended(ctx context.Context, deviceID string, gather func(context.Context) ([]music.TrackSummary, error)) error {
	uris, err := summaryURIs(gather(ctx))
	if err != nil {
		return err
	}
	if len(uris) == 0 {
		return ErrNoResults
	}
	return p.Play(ctx, "", uris, deviceID)
}

func (p *Player) recommendTracks(ctx context.Context, seeds spotify.Seeds, limit int) ([]music.TrackSummary, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	rec, err := p.session.Recommendations(ctx, seeds, limit)
	if err != nil {
		return nil, err
	}
	out := make([]music.TrackSummary, 0, len(rec.Tracks))
	for _, t := range rec.Tracks {
		out = append(out, music.SummarizeSimpleTrack(t))
	}
	return out, nil
}
