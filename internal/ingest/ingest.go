// Package ingest turns uploaded JSON match files into stored match documents.
package ingest

import (
	"bytes"
	"compress/bzip2"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/pable/go-scrim-metrics/internal/model"
	"github.com/pable/go-scrim-metrics/internal/normalize"
)

// ErrNoParticipants is returned for a document with no participants array.
var ErrNoParticipants = errors.New("match has no participants")

// positionOrder is the order participants are stored in within each match.
var positionOrder = map[string]int{
	"TOP":     0,
	"JUNGLE":  1,
	"MIDDLE":  2,
	"BOTTOM":  3,
	"UTILITY": 4,
	"SUPPORT": 4,
}

// ParseFile reads and parses the upload at path. Files ending in .gz, .zst or
// .bz2 are decompressed first.
func ParseFile(path string) ([]model.StoredMatch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	var src io.Reader = f
	switch {
	case strings.HasSuffix(path, ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		src = dec
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		src = gz
	case strings.HasSuffix(path, ".bz2"):
		src = bzip2.NewReader(f)
	}

	matches, err := Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return matches, nil
}

// Parse decodes an upload holding either one match object or an array of them.
// Each match gets a fresh ID, a content hash and its participants sorted by
// position.
func Parse(r io.Reader) ([]model.StoredMatch, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	body = bytes.TrimSpace(body)

	var docs []normalize.Record
	if len(body) > 0 && body[0] == '[' {
		if err := json.Unmarshal(body, &docs); err != nil {
			return nil, fmt.Errorf("decode upload: %w", err)
		}
	} else {
		rec, err := normalize.Decode(body)
		if err != nil {
			return nil, err
		}
		docs = []normalize.Record{rec}
	}

	imported := time.Now().UTC().Format(time.RFC3339)
	out := make([]model.StoredMatch, 0, len(docs))
	for i, doc := range docs {
		sm, err := prepare(doc)
		if err != nil {
			return nil, fmt.Errorf("match %d: %w", i, err)
		}
		sm.ImportedAt = imported
		out = append(out, sm)
	}
	return out, nil
}

// prepare sorts a document's participants and encodes it for storage.
func prepare(doc normalize.Record) (model.StoredMatch, error) {
	key := "participants"
	raw, ok := doc[key].([]any)
	if !ok {
		key = "PARTICIPANTS"
		raw, ok = doc[key].([]any)
	}
	if !ok || len(raw) == 0 {
		return model.StoredMatch{}, ErrNoParticipants
	}

	sort.SliceStable(raw, func(i, j int) bool {
		return rankOf(raw[i]) < rankOf(raw[j])
	})
	doc[key] = raw

	body, err := json.Marshal(doc)
	if err != nil {
		return model.StoredMatch{}, fmt.Errorf("encode match: %w", err)
	}
	return model.StoredMatch{
		ID:          uuid.NewString(),
		Hash:        Hash(body),
		GameVersion: normalize.GameVersion(doc),
		Body:        body,
	}, nil
}

func rankOf(v any) int {
	m, ok := v.(map[string]any)
	if !ok {
		return len(positionOrder)
	}
	if r, ok := positionOrder[normalize.RawPosition(normalize.Record(m))]; ok {
		return r
	}
	return len(positionOrder)
}

// Hash returns the hex sha256 of a stored document body.
func Hash(body []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(body))
}
