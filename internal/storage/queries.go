package storage

import (
	"database/sql"
	"fmt"

	"github.com/pable/go-scrim-metrics/internal/model"
	"github.com/pable/go-scrim-metrics/internal/normalize"
)

// MatchExists returns true if a document with the given content hash is stored.
func (db *DB) MatchExists(hash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE hash = ?", hash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AppendMatches stores documents in one transaction, skipping any whose
// content hash is already present. It returns the number inserted.
func (db *DB) AppendMatches(matches []model.StoredMatch) (int, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	matchStmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO matches(id, hash, game_version, version_bucket, imported_at, document)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer matchStmt.Close()

	partStmt, err := tx.Prepare(`
		INSERT INTO participants(
			match_id, slot, player, side, position, champion, win,
			kills, deaths, assists, damage_dealt, damage_taken, gold_earned,
			creep_score, vision_score, wards_placed, wards_killed,
			early_takedowns, time_played
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return 0, err
	}
	defer partStmt.Close()

	inserted := 0
	for _, sm := range matches {
		rec, err := normalize.DecodeMatch(sm.ID, sm.Body)
		if err != nil {
			return 0, fmt.Errorf("match %s: %w", sm.ID, err)
		}
		bucket, _ := normalize.VersionBucket(sm.GameVersion)

		res, err := matchStmt.Exec(sm.ID, sm.Hash, sm.GameVersion, bucket, sm.ImportedAt, sm.Body)
		if err != nil {
			return 0, fmt.Errorf("insert match %s: %w", sm.ID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			continue
		}
		inserted++

		for slot, p := range rec.Participants {
			_, err := partStmt.Exec(
				sm.ID, slot, p.Player, string(p.Side), string(p.Position), p.Champion, boolInt(p.Win),
				p.Kills, p.Deaths, p.Assists, p.DamageDealt, p.DamageTaken, p.GoldEarned,
				p.CreepScore, p.VisionScore, p.WardsPlaced, p.WardsKilled,
				p.EarlyTakedowns, p.TimePlayed,
			)
			if err != nil {
				return 0, fmt.Errorf("insert participant %d of %s: %w", slot, sm.ID, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// FetchAllMatches returns every stored document in insertion order.
func (db *DB) FetchAllMatches() ([]model.StoredMatch, error) {
	rows, err := db.conn.Query(`
		SELECT id, hash, game_version, imported_at, document
		FROM matches ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.StoredMatch
	for rows.Next() {
		var sm model.StoredMatch
		if err := rows.Scan(&sm.ID, &sm.Hash, &sm.GameVersion, &sm.ImportedAt, &sm.Body); err != nil {
			return nil, err
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

// ListMatches returns a summary row per stored match, newest import first.
func (db *DB) ListMatches() ([]model.MatchSummary, error) {
	rows, err := db.conn.Query(`
		SELECT m.id, m.game_version, m.version_bucket, m.imported_at, COUNT(p.slot)
		FROM matches m LEFT JOIN participants p ON p.match_id = m.id
		GROUP BY m.id
		ORDER BY m.imported_at DESC, m.rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchSummary
	for rows.Next() {
		var s model.MatchSummary
		if err := rows.Scan(&s.ID, &s.GameVersion, &s.Bucket, &s.ImportedAt, &s.Participants); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetMatchByPrefix finds the first match whose ID starts with the given prefix.
func (db *DB) GetMatchByPrefix(prefix string) (*model.StoredMatch, error) {
	var sm model.StoredMatch
	err := db.conn.QueryRow(`
		SELECT id, hash, game_version, imported_at, document
		FROM matches WHERE id LIKE ? ORDER BY rowid LIMIT 1`, prefix+"%").
		Scan(&sm.ID, &sm.Hash, &sm.GameVersion, &sm.ImportedAt, &sm.Body)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sm, nil
}

// DeleteMatch removes a match and its participant rows. It reports whether a
// match was deleted.
func (db *DB) DeleteMatch(id string) (bool, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM participants WHERE match_id = ?", id); err != nil {
		return false, err
	}
	res, err := tx.Exec("DELETE FROM matches WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return n > 0, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
