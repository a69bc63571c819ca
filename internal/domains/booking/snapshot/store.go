package snapshot

//go:generate go run go.uber.org/mock/mockgen -source=./store.go -destination=./mocks/store_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"velvet/infras/otel"
	"velvet/infras/redis"
	"velvet/shared/timezone"
)

const (
	otelScopeName = "snapshot"

	keyPrefix = "snapshot:"
)

var ErrNotFound = errors.New("snapshot not found")

// Store persists booking detail documents in the document keyspace. The
// canonical row references a snapshot by the opaque ref returned from Create;
// the document side is never consulted for state-machine guards.
type Store interface {
	Create(ctx context.Context, detail Detail) (ref string, err error)
	Get(ctx context.Context, ref string) (Detail, error)
	AttachQRImage(ctx context.Context, ref, image string) error
}

type storeImpl struct {
	client *goRedis.Client
	otel   otel.Otel
}

func NewStore(conn *redis.Connection, ot otel.Otel) Store {
	return &storeImpl{
		client: conn.Document,
		otel:   ot,
	}
}

func (s *storeImpl) Create(ctx context.Context, detail Detail) (ref string, err error) {
	ctx, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if detail.CreatedAt.IsZero() {
		detail.CreatedAt = timezone.Now()
	}

	ref = uuid.NewString()

	payload, err := json.Marshal(detail)
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	// Snapshots have no TTL; orphans from a failed canonical insert are tolerated.
	if err = s.client.Set(ctx, keyPrefix+ref, payload, 0).Err(); err != nil {
		log.Error().Err(err).Str("ref", ref).Msg("failed to persist snapshot")

		return "", fmt.Errorf("failed to persist snapshot: %w", err)
	}

	return ref, nil
}

func (s *storeImpl) Get(ctx context.Context, ref string) (detail Detail, err error) {
	ctx, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".Get")
	defer scope.End()

	payload, err := s.client.Get(ctx, keyPrefix+ref).Result()
	if errors.Is(err, goRedis.Nil) {
		return detail, ErrNotFound
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("ref", ref).Msg("failed to load snapshot")

		return detail, fmt.Errorf("failed to load snapshot: %w", err)
	}

	if err = json.Unmarshal([]byte(payload), &detail); err != nil {
		scope.TraceError(err)

		return detail, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return detail, nil
}

// AttachQRImage writes the rendered QR artifact onto an existing snapshot. The
// first write wins; re-generation of the token does not overwrite the stored
// image.
func (s *storeImpl) AttachQRImage(ctx context.Context, ref, image string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".AttachQRImage")
	defer scope.End()
	defer scope.TraceIfError(err)

	detail, err := s.Get(ctx, ref)
	if err != nil {
		return err
	}

	if detail.QRImage != "" {
		return nil
	}

	detail.QRImage = image

	payload, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err = s.client.Set(ctx, keyPrefix+ref, payload, 0).Err(); err != nil {
		log.Error().Err(err).Str("ref", ref).Msg("failed to update snapshot")

		return fmt.Errorf("failed to update snapshot: %w", err)
	}

	return nil
}
