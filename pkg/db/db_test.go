package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	d, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestTokenRoundTrip(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()

	tok := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).Round(time.Second),
	}
	if err := d.SaveToken(ctx, "alice", tok); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	got, err := d.GetToken(ctx, "alice")
	if err != nil {
		t.Fatalf("GetToken: %v", err)
	}
	if got.AccessToken != tok.AccessToken || got.RefreshToken != tok.RefreshToken {
		t.Errorf("token = %+v, want %+v", got, tok)
	}

	// Saving again must replace, not duplicate.
	tok.AccessToken = "rotated"
	if err := d.SaveToken(ctx, "alice", tok); err != nil {
		t.Fatalf("SaveToken (update): %v", err)
	}
	got, err = d.GetToken(ctx, "alice")
	if err != nil {
		t.Fatalf("GetToken (update): %v", err)
	}
	if got.AccessToken != "rotated" {
		t.Errorf("access token = %q, want rotated", got.AccessToken)
	}
}

func TestGetTokenUnknownUser(t *testing.T) {
	d := testDB(t)
	if _, err := d.GetToken(context.Background(), "nobody"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("GetToken returned %v, want sql.ErrNoRows", err)
	}
}

func TestHistoryInsights(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()
	now := time.Now()

	plays := []struct {
		uri, name, artist string
		at                time.Time
	}{
		{"spotify:track:t1", "So What", "Miles Davis", now.Add(-time.Hour)},
		{"spotify:track:t1", "So What", "Miles Davis", now.Add(-2 * time.Hour)},
		{"spotify:track:t2", "Giant Steps", "John Coltrane", now.Add(-3 * time.Hour)},
		{"spotify:track:t3", "Old One", "Miles Davis", now.AddDate(0, 0, -30)},
	}
	for _, p := range plays {
		if err := d.AddHistory(ctx, "alice", p.uri, p.name, p.artist, p.at); err != nil {
			t.Fatalf("AddHistory: %v", err)
		}
	}
	// Another user's plays must not leak into alice's insights.
	if err := d.AddHistory(ctx, "bob", "spotify:track:t9", "Other", "Somebody", now); err != nil {
		t.Fatalf("AddHistory: %v", err)
	}

	since := now.AddDate(0, 0, -7)
	artists, err := d.TopArtistsSince(ctx, "alice", since)
	if err != nil {
		t.Fatalf("TopArtistsSince: %v", err)
	}
	if len(artists) != 2 {
		t.Fatalf("got %d artists, want 2: %+v", len(artists), artists)
	}
	if artists[0].Artist != "Miles Davis" || artists[0].Count != 2 {
		t.Errorf("top artist = %+v, want Miles Davis x2", artists[0])
	}

	tracks, err := d.TopTracksSince(ctx, "alice", since)
	if err != nil {
		t.Fatalf("TopTracksSince: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2: %+v", len(tracks), tracks)
	}
	if tracks[0].TrackURI != "spotify:track:t1" || tracks[0].Count != 2 {
		t.Errorf("top track = %+v, want t1 x2", tracks[0])
	}
}
