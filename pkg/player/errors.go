// Error taxonomy and upstream fault classification. Spotify overloads a
// single status code across several semantic conditions (403 means both
// "restriction violated" and "no active device" depending on the call and
// message text), so every call site routes errors through one classifier
// instead of matching status codes ad hoc.

package player

import (
	"errors"
	"net/http"
	"strings"

	"github.com/zmb3/spotify/v2"
)

var (
	// ErrAuthentication indicates the session handle could not be obtained
	// or is no longer valid.
	ErrAuthentication = errors.New("spotify: authentication failed")

	// ErrInvalidArgument indicates a locally checked precondition failed.
	// It is always returned before any remote call is made.
	ErrInvalidArgument = errors.New("spotify: invalid argument")

	// ErrNoActiveDevice indicates no playback device is available for an
	// operation that requires one.
	ErrNoActiveDevice = errors.New("spotify: no active device")

	// ErrNotConnected indicates there is no current playback session.
	ErrNotConnected = errors.New("spotify: no active playback session")

	// ErrNoResults indicates a query returned nothing where at least one
	// result was required to proceed.
	ErrNoResults = errors.New("spotify: no results")
)

// faultCategory is the closed set of upstream fault conditions the facade
// distinguishes. Anything not matching a known pattern is faultUpstream and
// propagates untranslated.
type faultCategory int

const (
	faultNone faultCategory = iota
	// faultNoDevice: no active device, or the device ID is not valid.
	faultNoDevice
	// faultRestriction: the 403 "restriction violated" class. Its meaning
	// depends on the command that triggered it: "already playing" for a
	// start-playback call, "no previous track" for a previous call.
	faultRestriction
	// faultBadQuery: the service rejected an empty search query.
	faultBadQuery
	faultUpstream
)

// classify maps an upstream error onto a fault category. The 403 class is
// disambiguated by message text: the service reports plain "Forbidden" for
// missing devices and a descriptive restriction message otherwise.
func classify(err error) faultCategory {
	if err == nil {
		return faultNone
	}
	var se spotify.Error
	if !errors.As(err, &se) {
		return faultUpstream
	}
	switch {
	case se.Status == http.StatusNotFound:
		return faultNoDevice
	case se.Status == http.StatusForbidden && strings.Contains(se.Message, "Forbidden"):
		return faultNoDevice
	case se.Status == http.StatusForbidden:
		return faultRestriction
	case se.Status == http.StatusBadRequest && strings.Contains(se.Message, "No search query"):
		return faultBadQuery
	default:
		return faultUpstream
	}
}

// swallowNoDevice drops the missing-device fault. Transport commands are
// fire-and-forget when no device is active; every other fault propagates.
func swallowNoDevice(err error) error {
	if classify(err) == faultNoDevice {
		return nil
	}
	return err
}

// deviceRequired translates the missing-device fault into ErrNoActiveDevice
// for operations that cannot proceed without a device.
func deviceRequired(err error) error {
	if classify(err) == faultNoDevice {
		return ErrNoActiveDevice
	}
	return err
}
