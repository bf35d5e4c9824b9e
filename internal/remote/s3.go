// Package remote keeps match documents in an S3-compatible bucket (AWS S3,
// Cloudflare R2, MinIO) so a team can share one match history.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pable/go-scrim-metrics/internal/config"
	"github.com/pable/go-scrim-metrics/internal/ingest"
	"github.com/pable/go-scrim-metrics/internal/model"
)

// Object metadata keys.
const (
	metaHash       = "hash"
	metaVersion    = "game-version"
	metaImportedAt = "imported-at"
)

// API is the subset of the S3 client the store uses.
type API interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store is a bucket of "<prefix><id>.json" match documents.
type Store struct {
	client API
	bucket string
	prefix string
}

// New returns a Store over an existing client.
func New(client API, bucket, prefix string) *Store {
	return &Store{client: client, bucket: bucket, prefix: prefix}
}

// Open builds an S3 client from cfg. Static keys are used when set, otherwise
// the default AWS credential chain applies.
func Open(ctx context.Context, cfg config.S3Config) (*Store, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("remote store: no bucket configured (set SCRIM_S3_BUCKET)")
	}
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return New(client, cfg.Bucket, cfg.Prefix), nil
}

func (s *Store) key(id string) string { return s.prefix + id + ".json" }

func (s *Store) idOf(key string) (string, bool) {
	if !strings.HasPrefix(key, s.prefix) || !strings.HasSuffix(key, ".json") {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(key, s.prefix), ".json")
	return id, id != "" && !strings.Contains(id, "/")
}

// ListIDs returns the IDs of every match document in the bucket.
func (s *Store) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		for _, obj := range page.Contents {
			if id, ok := s.idOf(aws.ToString(obj.Key)); ok {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

// FetchAllMatches downloads every match document, ordered by import time.
func (s *Store) FetchAllMatches(ctx context.Context) ([]model.StoredMatch, error) {
	ids, err := s.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.StoredMatch, 0, len(ids))
	for _, id := range ids {
		sm, err := s.get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, sm)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ImportedAt != out[j].ImportedAt {
			return out[i].ImportedAt < out[j].ImportedAt
		}
		return out[i].ID < out[j].ID
	})
	slog.Debug("fetched remote matches", "bucket", s.bucket, "count", len(out))
	return out, nil
}

func (s *Store) get(ctx context.Context, id string) (model.StoredMatch, error) {
	obj, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil {
		return model.StoredMatch{}, fmt.Errorf("get %s: %w", id, err)
	}
	defer obj.Body.Close()

	body, err := io.ReadAll(obj.Body)
	if err != nil {
		return model.StoredMatch{}, fmt.Errorf("read %s: %w", id, err)
	}
	sm := model.StoredMatch{
		ID:          id,
		Hash:        obj.Metadata[metaHash],
		GameVersion: obj.Metadata[metaVersion],
		ImportedAt:  obj.Metadata[metaImportedAt],
		Body:        body,
	}
	if sm.Hash == "" {
		sm.Hash = ingest.Hash(body)
	}
	return sm, nil
}

// AppendMatches uploads the matches whose IDs are not in the bucket yet and
// returns the number uploaded.
func (s *Store) AppendMatches(ctx context.Context, matches []model.StoredMatch) (int, error) {
	ids, err := s.ListIDs(ctx)
	if err != nil {
		return 0, err
	}
	existing := make(map[string]bool, len(ids))
	for _, id := range ids {
		existing[id] = true
	}

	uploaded := 0
	for _, sm := range matches {
		if existing[sm.ID] {
			continue
		}
		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(s.key(sm.ID)),
			Body:        bytes.NewReader(sm.Body),
			ContentType: aws.String("application/json"),
			Metadata: map[string]string{
				metaHash:       sm.Hash,
				metaVersion:    sm.GameVersion,
				metaImportedAt: sm.ImportedAt,
			},
		})
		if err != nil {
			return uploaded, fmt.Errorf("put %s: %w", sm.ID, err)
		}
		existing[sm.ID] = true
		uploaded++
		slog.Debug("uploaded match", "id", sm.ID, "bucket", s.bucket)
	}
	return uploaded, nil
}
