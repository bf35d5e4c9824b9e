package storage

import (
	"fmt"
	"testing"

	"github.com/pable/go-scrim-metrics/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func doc(version string, players ...string) []byte {
	parts := ""
	for i, p := range players {
		if i > 0 {
			parts += ","
		}
		side := "100"
		if i%2 == 1 {
			side = "200"
		}
		parts += fmt.Sprintf(`{"RIOT_ID_GAME_NAME": %q, "TEAM": %q, "WIN": %q, "CHAMPIONS_KILLED": %d}`,
			p, side, map[bool]string{true: "Win", false: "Fail"}[side == "100"], i+1)
	}
	return []byte(fmt.Sprintf(`{"gameVersion": %q, "participants": [%s]}`, version, parts))
}

func stored(id, hash, version, imported string, players ...string) model.StoredMatch {
	return model.StoredMatch{ID: id, Hash: hash, GameVersion: version, ImportedAt: imported, Body: doc(version, players...)}
}

func TestAppendAndExists(t *testing.T) {
	db := openMemDB(t)

	n, err := db.AppendMatches([]model.StoredMatch{
		stored("id-1", "h1", "15.12.1", "2025-06-01T00:00:00Z", "alice", "eve"),
	})
	if err != nil {
		t.Fatalf("AppendMatches: %v", err)
	}
	if n != 1 {
		t.Errorf("inserted = %d, want 1", n)
	}

	exists, err := db.MatchExists("h1")
	if err != nil {
		t.Fatalf("MatchExists: %v", err)
	}
	if !exists {
		t.Error("expected match to exist after insert")
	}
	exists2, _ := db.MatchExists("nonexistent")
	if exists2 {
		t.Error("expected unknown hash to not exist")
	}
}

func TestAppendSkipsDuplicateHashes(t *testing.T) {
	db := openMemDB(t)

	first := stored("id-1", "same", "15.12.1", "2025-06-01T00:00:00Z", "alice")
	again := stored("id-2", "same", "15.12.1", "2025-06-02T00:00:00Z", "alice")
	n, err := db.AppendMatches([]model.StoredMatch{first, again})
	if err != nil {
		t.Fatalf("AppendMatches: %v", err)
	}
	if n != 1 {
		t.Errorf("inserted = %d, want 1", n)
	}
	n, _ = db.AppendMatches([]model.StoredMatch{first})
	if n != 0 {
		t.Errorf("re-import inserted = %d, want 0", n)
	}

	all, _ := db.FetchAllMatches()
	if len(all) != 1 || all[0].ID != "id-1" {
		t.Errorf("expected only id-1 stored, got %+v", all)
	}
}

func TestFetchAllMatchesInsertionOrder(t *testing.T) {
	db := openMemDB(t)

	db.AppendMatches([]model.StoredMatch{stored("b", "h-b", "15.12.1", "2025-06-02T00:00:00Z", "alice")})
	db.AppendMatches([]model.StoredMatch{stored("a", "h-a", "15.13.1", "2025-06-01T00:00:00Z", "bob")})

	all, err := db.FetchAllMatches()
	if err != nil {
		t.Fatalf("FetchAllMatches: %v", err)
	}
	if len(all) != 2 || all[0].ID != "b" || all[1].ID != "a" {
		t.Fatalf("unexpected order: %+v", all)
	}
	if string(all[0].Body) != string(doc("15.12.1", "alice")) {
		t.Error("document body was not preserved")
	}
}

func TestListMatches(t *testing.T) {
	db := openMemDB(t)

	db.AppendMatches([]model.StoredMatch{
		stored("old", "h1", "15.12.1", "2025-06-01T00:00:00Z", "alice", "eve"),
		stored("new", "h2", "15", "2025-06-03T00:00:00Z", "alice", "eve", "bob"),
	})

	list, err := db.ListMatches()
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(list))
	}
	// Newest import first.
	if list[0].ID != "new" || list[0].Participants != 3 || list[0].Bucket != "" {
		t.Errorf("unexpected first row: %+v", list[0])
	}
	if list[1].Bucket != "15.12" {
		t.Errorf("bucket = %q, want 15.12", list[1].Bucket)
	}
}

func TestGetMatchByPrefix(t *testing.T) {
	db := openMemDB(t)
	db.AppendMatches([]model.StoredMatch{stored("deadbeef-1234", "h1", "15.12.1", "2025-06-01T00:00:00Z", "alice")})

	m, err := db.GetMatchByPrefix("deadbeef")
	if err != nil {
		t.Fatalf("GetMatchByPrefix: %v", err)
	}
	if m == nil || m.ID != "deadbeef-1234" {
		t.Errorf("expected deadbeef-1234, got %+v", m)
	}

	missing, err := db.GetMatchByPrefix("zzz")
	if err != nil {
		t.Fatalf("GetMatchByPrefix: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown prefix, got %+v", missing)
	}
}

func TestDeleteMatch(t *testing.T) {
	db := openMemDB(t)
	db.AppendMatches([]model.StoredMatch{stored("id-1", "h1", "15.12.1", "2025-06-01T00:00:00Z", "alice", "eve")})

	ok, err := db.DeleteMatch("id-1")
	if err != nil {
		t.Fatalf("DeleteMatch: %v", err)
	}
	if !ok {
		t.Error("expected a deletion")
	}
	ok, _ = db.DeleteMatch("id-1")
	if ok {
		t.Error("second delete should report nothing deleted")
	}

	o, _ := db.Overview()
	if o.Matches != 0 || o.Participants != 0 {
		t.Errorf("expected empty store, got %+v", o)
	}
}

func TestOverviewAndGameCounts(t *testing.T) {
	db := openMemDB(t)

	empty, err := db.Overview()
	if err != nil {
		t.Fatalf("Overview on empty store: %v", err)
	}
	if empty.Matches != 0 || empty.Unbucketed != 0 {
		t.Errorf("unexpected empty overview: %+v", empty)
	}

	db.AppendMatches([]model.StoredMatch{
		stored("m1", "h1", "15.12.1", "2025-06-01T00:00:00Z", "alice", "eve"),
		stored("m2", "h2", "15.13.1", "2025-06-02T00:00:00Z", "alice", "bob"),
		stored("m3", "h3", "garbage", "2025-06-03T00:00:00Z", "carol"),
	})

	o, err := db.Overview()
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	want := Overview{
		Matches: 3, Participants: 5, Players: 4, Buckets: 2, Unbucketed: 1,
		FirstImported: "2025-06-01T00:00:00Z", LastImported: "2025-06-03T00:00:00Z",
	}
	if o != want {
		t.Errorf("Overview = %+v, want %+v", o, want)
	}

	counts, err := db.PlayerGameCounts([]string{"alice", "eve"})
	if err != nil {
		t.Fatalf("PlayerGameCounts: %v", err)
	}
	if len(counts) != 2 || counts[0].Player != "alice" || counts[0].Games != 2 || counts[0].Wins != 2 {
		t.Errorf("unexpected counts: %+v", counts)
	}
	if counts[1].Player != "eve" || counts[1].Wins != 0 {
		t.Errorf("unexpected eve row: %+v", counts[1])
	}

	all, _ := db.PlayerGameCounts(nil)
	if len(all) != 4 {
		t.Errorf("expected 4 players, got %d", len(all))
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	db.AppendMatches([]model.StoredMatch{stored("m1", "h1", "15.12.1", "2025-06-01T00:00:00Z", "alice", "eve")})

	cols, rows, err := db.QueryRaw("SELECT player, kills FROM participants ORDER BY slot")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(cols) != 2 || cols[0] != "player" {
		t.Errorf("cols = %v", cols)
	}
	if len(rows) != 2 || rows[0][0] != "alice" || rows[0][1] != "1" || rows[1][1] != "2" {
		t.Errorf("rows = %v", rows)
	}

	if _, _, err := db.QueryRaw("SELECT nope FROM nowhere"); err == nil {
		t.Error("expected error for invalid query")
	}
}

func TestPlaceholders(t *testing.T) {
	cases := map[int]string{0: "", 1: "?", 3: "?,?,?"}
	for n, want := range cases {
		if got := placeholders(n); got != want {
			t.Errorf("placeholders(%d) = %q, want %q", n, got, want)
		}
	}
}
