// Device discovery. Lookups report absence explicitly instead of raising:
// only operations that cannot proceed without a device turn a missing device
// into an error.

package player

import (
	"context"

	"Spotify-Manager-Go/pkg/music"
)

// Devices lists every playback device registered with the user's account.
func (p *Player) Devices(ctx context.Context) ([]music.Device, error) {
	devs, err := p.session.PlayerDevices(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]music.Device, 0, len(devs))
	for _, d := range devs {
		out = append(out, music.SummarizeDevice(d))
	}
	return out, nil
}

// ActiveDevice returns the device currently marked active. ok is false when
// no device is active.
func (p *Player) ActiveDevice(ctx context.Context) (music.Device, bool, error) {
	return p.lookupDevice(ctx, "")
}

// Device returns the device with the given ID. ok is false when no device
// matches.
func (p *Player) Device(ctx context.Context, id string) (music.Device, bool, error) {
	return p.lookupDevice(ctx, id)
}

// lookupDevice resolves a device by ID, or the active device when id is
// empty.
func (p *Player) lookupDevice(ctx context.Context, id string) (music.Device, bool, error) {
	devs, err := p.session.PlayerDevices(ctx)
	if err != nil {
		return music.Device{}, false, err
	}
	for _, d := range devs {
		if id == "" && d.Active || id != "" && string(d.ID) == id {
			return music.SummarizeDevice(d), true, nil
		}
	}
	return music.Device{}, false, nil
}
