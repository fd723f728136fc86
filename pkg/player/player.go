// Transport, volume and mode operations. Transport commands follow the
// fire-and-forget policy: when the service reports that no device is active
// they return nil rather than an error. Volume and mode operations require a
// target and surface ErrNoActiveDevice instead.

package player

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"
)

// Valid repeat states accepted by SetRepeat.
const (
	RepeatTrack   = "track"
	RepeatContext = "context"
	RepeatOff     = "off"
)

// Play starts or resumes playback. contextURI selects a playable collection
// (album, artist or playlist), uris selects individual tracks; both may be
// empty to resume whatever was playing. deviceID targets a specific device,
// or the active one when empty.
func (p *Player) Play(ctx context.Context, contextURI string, uris []string, deviceID string) error {
	opt := playOpts(deviceID)
	if contextURI != "" || len(uris) > 0 {
		if opt == nil {
			opt = &spotify.PlayOptions{}
		}
		if contextURI != "" {
			u := spotify.URI(contextURI)
			opt.PlaybackContext = &u
		}
		for _, u := range uris {
			opt.URIs = append(opt.URIs, spotify.URI(u))
		}
	}
	return swallowNoDevice(p.session.Play(ctx, opt))
}

// Pause pauses playback on the target device.
func (p *Player) Pause(ctx context.Context, deviceID string) error {
	return swallowNoDevice(p.session.Pause(ctx, playOpts(deviceID)))
}

// PlayPause toggles between playing and paused. The service only exposes an
// asymmetric start-playback primitive: attempting to start while already
// playing fails with the restriction fault, which is the signal to pause
// instead.
func (p *Player) PlayPause(ctx context.Context, deviceID string) error {
	err := p.session.Play(ctx, playOpts(deviceID))
	if classify(err) == faultRestriction {
		return swallowNoDevice(p.session.Pause(ctx, playOpts(deviceID)))
	}
	return swallowNoDevice(err)
}

// Next skips to the next track.
func (p *Player) Next(ctx context.Context, deviceID string) error {
	return swallowNoDevice(p.session.Next(ctx, playOpts(deviceID)))
}

// Previous moves playback to the previous track. When the service reports
// there is no previous track the current one is restarted instead, so the
// absence of history degrades to a restart rather than an error.
func (p *Player) Previous(ctx context.Context, deviceID string) error {
	err := p.session.Previous(ctx, playOpts(deviceID))
	if classify(err) == faultRestriction {
		return p.RestartTrack(ctx, deviceID)
	}
	return swallowNoDevice(err)
}

// RestartTrack seeks the current track back to position zero.
func (p *Player) RestartTrack(ctx context.Context, deviceID string) error {
	return swallowNoDevice(p.session.Seek(ctx, 0, playOpts(deviceID)))
}

// Volume returns the volume of the device with the given ID, or of the
// currently active device when deviceID is empty. ErrNoActiveDevice is
// returned when no matching device exists.
func (p *Player) Volume(ctx context.Context, deviceID string) (int, error) {
	dev, ok, err := p.lookupDevice(ctx, deviceID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrNoActiveDevice
	}
	return dev.Volume, nil
}

// SetVolume sets the device volume. percent must already be within [0,100];
// out of range values fail with ErrInvalidArgument before any remote call.
func (p *Player) SetVolume(ctx context.Context, percent int, deviceID string) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: volume %d outside [0,100]", ErrInvalidArgument, percent)
	}
	return deviceRequired(p.session.SetVolume(ctx, percent, playOpts(deviceID)))
}

// AddVolume adjusts the device volume by delta, saturating at the [0,100]
// bounds instead of erroring on overshoot. Negative deltas lower the volume.
func (p *Player) AddVolume(ctx context.Context, delta int, deviceID string) error {
	current, err := p.Volume(ctx, deviceID)
	if err != nil {
		return err
	}
	v := current + delta
	if v > 100 {
		v = 100
	} else if v < 0 {
		v = 0
	}
	return p.SetVolume(ctx, v, deviceID)
}

// ShuffleState reports whether shuffle is enabled for the current playback
// session. ErrNotConnected is returned when nothing is playing.
func (p *Player) ShuffleState(ctx context.Context) (bool, error) {
	state, err := p.playerState(ctx)
	if err != nil {
		return false, err
	}
	return state.ShuffleState, nil
}

// SetShuffle enables or disables shuffle on the target device.
func (p *Player) SetShuffle(ctx context.Context, shuffle bool, deviceID string) error {
	return deviceRequired(p.session.SetShuffle(ctx, shuffle, playOpts(deviceID)))
}

// ToggleShuffle flips the current shuffle state.
func (p *Player) ToggleShuffle(ctx context.Context, deviceID string) (bool, error) {
	current, err := p.ShuffleState(ctx)
	if err != nil {
		return false, err
	}
	if err := p.SetShuffle(ctx, !current, deviceID); err != nil {
		return false, err
	}
	return !current, nil
}

// RepeatState returns the current repeat state: "track", "context" or "off".
func (p *Player) RepeatState(ctx context.Context) (string, error) {
	state, err := p.playerState(ctx)
	if err != nil {
		return "", err
	}
	return state.RepeatState, nil
}

// SetRepeat sets the repeat state. Values outside the closed enumeration
// {"track","context","off"} fail with ErrInvalidArgument before any remote
// call.
func (p *Player) SetRepeat(ctx context.Context, state string, deviceID string) error {
	switch state {
	case RepeatTrack, RepeatContext, RepeatOff:
	default:
		return fmt.Errorf("%w: repeat state %q must be %q, %q or %q",
			ErrInvalidArgument, state, RepeatTrack, RepeatContext, RepeatOff)
	}
	return deviceRequired(p.session.SetRepeat(ctx, state, playOpts(deviceID)))
}

// CycleRepeat advances the repeat state one step along
// track -> context -> off -> track and returns the new state.
func (p *Player) CycleRepeat(ctx context.Context, deviceID string) (string, error) {
	current, err := p.RepeatState(ctx)
	if err != nil {
		return "", err
	}
	var next string
	switch current {
	case RepeatTrack:
		next = RepeatContext
	case RepeatContext:
		next = RepeatOff
	default:
		next = RepeatTrack
	}
	if err := p.SetRepeat(ctx, next, deviceID); err != nil {
		return "", err
	}
	return next, nil
}

// playerState fetches the current playback state, translating the absent
// session case into ErrNotConnected.
func (p *Player) playerState(ctx context.Context) (*spotify.PlayerState, error) {
	state, err := p.session.PlayerState(ctx)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, ErrNotConnected
	}
	return state, nil
}
