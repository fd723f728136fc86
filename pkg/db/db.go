// Package db provides the small persistence layer used by the web wrapper.
// It wraps a SQLite database holding OAuth tokens keyed by Spotify user ID
// and a local log of tracks played through the facade, which backs the
// insights endpoints. Callers open one DB with New and reuse it.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/oauth2"
)

// DB wraps a sql.DB connection and exposes the persistence helpers used by
// the handlers.
type DB struct {
	*sql.DB
}

// New opens the SQLite database at path, creating the file and schema when
// missing.
func New(path string) (*DB, error) {
	d, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tokens (user_id TEXT PRIMARY KEY, token TEXT NOT NULL)`,
		`CREATE TABLE IF NOT EXISTS history (id INTEGER PRIMARY KEY AUTOINCREMENT, user_id TEXT, track_uri TEXT, track_name TEXT, artist_name TEXT, played_at TIMESTAMP)`,
		`CREATE INDEX IF NOT EXISTS idx_history_user_time ON history(user_id, played_at)`,
	}
	for _, s := range stmts {
		if _, err := d.Exec(s); err != nil {
			d.Close()
			return nil, fmt.Errorf("init db: %w", err)
		}
	}
	return &DB{d}, nil
}

// SaveToken persists the OAuth token for userID, replacing any existing one.
func (db *DB) SaveToken(ctx context.Context, userID string, token *oauth2.Token) error {
	b, err := json.Marshal(token)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `INSERT INTO tokens(user_id, token) VALUES(?, ?) ON CONFLICT(user_id) DO UPDATE SET token=excluded.token`, userID, string(b))
	return err
}

// GetToken retrieves the stored OAuth token for userID. sql.ErrNoRows is
// returned when the user has never logged in.
func (db *DB) GetToken(ctx context.Context, userID string) (*oauth2.Token, error) {
	var data string
	if err := db.QueryRowContext(ctx, `SELECT token FROM tokens WHERE user_id=?`, userID).Scan(&data); err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal([]byte(data), &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

// AddHistory records a track played through the facade.
func (db *DB) AddHistory(ctx context.Context, userID, trackURI, trackName, artistName string, playedAt time.Time) error {
	_, err := db.ExecContext(ctx, `INSERT INTO history(user_id, track_uri, track_name, artist_name, played_at) VALUES(?,?,?,?,?)`,
		userID, trackURI, trackName, artistName, playedAt)
	return err
}

// ArtistCount reports how many times an artist was played.
type ArtistCount struct {
	Artist string `json:"artist"`
	Count  int    `json:"count"`
}

// TopArtistsSince returns the most played artists since the provided time,
// most played first.
func (db *DB) TopArtistsSince(ctx context.Context, userID string, since time.Time) ([]ArtistCount, error) {
	rows, err := db.QueryContext(ctx, `SELECT artist_name, COUNT(*) c FROM history WHERE user_id=? AND played_at>=? GROUP BY artist_name ORDER BY c DESC`, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []ArtistCount
	for rows.Next() {
		var ac ArtistCount
		if err := rows.Scan(&ac.Artist, &ac.Count); err != nil {
			return nil, err
		}
		res = append(res, ac)
	}
	return res, rows.Err()
}

// TrackCount reports how many times a track was played.
type TrackCount struct {
	TrackURI  string `json:"track_uri"`
	TrackName string `json:"track_name"`
	Count     int    `json:"count"`
}

// TopTracksSince returns the most played tracks since the provided time,
// most played first.
func (db *DB) TopTracksSince(ctx context.Context, userID string, since time.Time) ([]TrackCount, error) {
	rows, err := db.QueryContext(ctx, `SELECT track_uri, track_name, COUNT(*) c FROM history WHERE user_id=? AND played_at>=? GROUP BY track_uri, track_name ORDER BY c DESC`, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []TrackCount
	for rows.Next() {
		var tc TrackCount
		if err := rows.Scan(&tc.TrackURI, &tc.TrackName, &tc.Count); err != nil {
			return nil, err
		}
		res = append(res, tc)
	}
	return res, rows.Err()
}
