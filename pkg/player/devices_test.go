package player

import (
	"context"
	"testing"

	"github.com/zmb3/spotify/v2"
)

func devicesSession() *fakeSession {
	return &fakeSession{playerDevicesFn: func(context.Context) ([]spotify.PlayerDevice, error) {
		return []spotify.PlayerDevice{
			{ID: "a", Name: "Desk", Volume: 35},
			{ID: "b", Name: "Kitchen", Active: true, Volume: 70},
		}, nil
	}}
}

func TestDevices(t *testing.T) {
	devs, err := New(devicesSession()).Devices(context.Background())
	if err != nil {
		t.Fatalf("Devices returned %v", err)
	}
	if len(devs) != 2 {
		t.Fatalf("got %d devices, want 2", len(devs))
	}
	if devs[1].ID != "b" || !devs[1].Active || devs[1].Volume != 70 || devs[1].Name != "Kitchen" {
		t.Errorf("device = %+v", devs[1])
	}
}

func TestActiveDevice(t *testing.T) {
	dev, ok, err := New(devicesSession()).ActiveDevice(context.Background())
	if err != nil || !ok {
		t.Fatalf("ActiveDevice = %v, %v", ok, err)
	}
	if dev.ID != "b" {
		t.Errorf("active device = %+v, want ID b", dev)
	}
}

func TestActiveDeviceAbsent(t *testing.T) {
	sess := &fakeSession{playerDevicesFn: func(context.Context) ([]spotify.PlayerDevice, error) {
		return []spotify.PlayerDevice{{ID: "a", Name: "Desk"}}, nil
	}}
	_, ok, err := New(sess).ActiveDevice(context.Background())
	if err != nil {
		t.Fatalf("ActiveDevice returned %v", err)
	}
	if ok {
		t.Error("ok = true, want false when no device is active")
	}
}

func TestDeviceByID(t *testing.T) {
	p := New(devicesSession())
	dev, ok, err := p.Device(context.Background(), "a")
	if err != nil || !ok || dev.Name != "Desk" {
		t.Errorf("Device(a) = %+v, %v, %v", dev, ok, err)
	}
	_, ok, err = p.Device(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Device(missing) returned %v", err)
	}
	if ok {
		t.Error("ok = true for an unknown device ID")
	}
}
