package storage

import (
	"database/sql"
	"fmt"
	"strings"
)

// Overview holds store-wide counts for the summary command.
type Overview struct {
	Matches       int
	Participants  int
	Players       int
	Buckets       int
	Unbucketed    int
	FirstImported string
	LastImported  string
}

// Overview returns store-wide counts.
func (db *DB) Overview() (Overview, error) {
	var o Overview
	var first, last sql.NullString
	var unbucketed sql.NullInt64
	err := db.conn.QueryRow(`
		SELECT COUNT(1),
		       COUNT(DISTINCT NULLIF(version_bucket, '')),
		       SUM(CASE WHEN version_bucket = '' THEN 1 ELSE 0 END),
		       MIN(imported_at), MAX(imported_at)
		FROM matches`).Scan(&o.Matches, &o.Buckets, &unbucketed, &first, &last)
	if err != nil {
		return o, fmt.Errorf("count matches: %w", err)
	}
	o.Unbucketed = int(unbucketed.Int64)
	o.FirstImported, o.LastImported = first.String, last.String

	err = db.conn.QueryRow(`
		SELECT COUNT(1), COUNT(DISTINCT NULLIF(player, '')) FROM participants`).
		Scan(&o.Participants, &o.Players)
	if err != nil {
		return o, fmt.Errorf("count participants: %w", err)
	}
	return o, nil
}

// PlayerGameCount is the number of stored games for one player.
type PlayerGameCount struct {
	Player string
	Games  int
	Wins   int
}

// PlayerGameCounts returns game and win counts for the given players, most
// games first. An empty list returns every player.
func (db *DB) PlayerGameCounts(players []string) ([]PlayerGameCount, error) {
	query := `SELECT player, COUNT(1), SUM(win) FROM participants WHERE player != ''`
	args := make([]any, len(players))
	for i, p := range players {
		args[i] = p
	}
	if len(players) > 0 {
		query += " AND player IN (" + placeholders(len(players)) + ")"
	}
	query += " GROUP BY player ORDER BY COUNT(1) DESC, player"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PlayerGameCount
	for rows.Next() {
		var c PlayerGameCount
		if err := rows.Scan(&c.Player, &c.Games, &c.Wins); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// QueryRaw runs an arbitrary query and returns column names and stringified rows.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(x)
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

// placeholders returns a comma-separated string of n "?" for SQL IN clauses,
// e.g. placeholders(3) → "?,?,?".
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}
