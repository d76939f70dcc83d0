package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/autoref/internal/models"
)

const (
	snapshotKeyPrefix = "match:snapshot:"
	activeMatchesKey  = "matches:active"

	// defaultFinishedTTL keeps finished matches around long enough to inspect
	defaultFinishedTTL = 7 * 24 * time.Hour
)

// ErrSnapshotNotFound is returned when no snapshot exists for a match
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Config holds configuration for the Redis snapshot repository
type Config struct {
	RedisClient *redis.Client

	// FinishedTTL is how long snapshots of finished matches are kept
	FinishedTTL time.Duration
}

type redisRepository struct {
	client      *redis.Client
	finishedTTL time.Duration
}

// NewRedis creates a new Redis-backed snapshot repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := cfg.FinishedTTL
	if ttl <= 0 {
		ttl = defaultFinishedTTL
	}

	return &redisRepository{
		client:      cfg.RedisClient,
		finishedTTL: ttl,
	}, nil
}

func snapshotKey(matchID string) string {
	return snapshotKeyPrefix + matchID
}

// SaveSnapshot stores the snapshot and keeps the active set in step with it
func (r *redisRepository) SaveSnapshot(ctx context.Context, input *SaveSnapshotInput) error {
	if input == nil || input.Snapshot == nil {
		return errors.New("input and snapshot cannot be nil")
	}

	snap := input.Snapshot
	if snap.MatchID == "" {
		return errors.New("snapshot match ID cannot be empty")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	pipe := r.client.TxPipeline()
	if snap.Finished {
		pipe.Set(ctx, snapshotKey(snap.MatchID), data, r.finishedTTL)
		pipe.SRem(ctx, activeMatchesKey, snap.MatchID)
	} else {
		pipe.Set(ctx, snapshotKey(snap.MatchID), data, 0)
		pipe.SAdd(ctx, activeMatchesKey, snap.MatchID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save snapshot for %s: %w", snap.MatchID, err)
	}

	return nil
}

func (r *redisRepository) GetSnapshot(ctx context.Context, input *GetSnapshotInput) (*models.MatchSnapshot, error) {
	if input == nil || input.MatchID == "" {
		return nil, errors.New("input and match ID cannot be empty")
	}

	data, err := r.client.Get(ctx, snapshotKey(input.MatchID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get snapshot for %s: %w", input.MatchID, err)
	}

	var snap models.MatchSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot for %s: %w", input.MatchID, err)
	}

	return &snap, nil
}

func (r *redisRepository) DeleteSnapshot(ctx context.Context, input *DeleteSnapshotInput) error {
	if input == nil || input.MatchID == "" {
		return errors.New("input and match ID cannot be empty")
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, snapshotKey(input.MatchID))
	pipe.SRem(ctx, activeMatchesKey, input.MatchID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete snapshot for %s: %w", input.MatchID, err)
	}

	return nil
}

// ListActive returns active snapshots ordered by match id
func (r *redisRepository) ListActive(ctx context.Context, input *ListActiveInput) (*ListActiveOutput, error) {
	ids, err := r.client.SMembers(ctx, activeMatchesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get active matches: %w", err)
	}

	if len(ids) == 0 {
		return &ListActiveOutput{Snapshots: []*models.MatchSnapshot{}}, nil
	}

	sort.Strings(ids)

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, snapshotKey(id))
	}

	// redis.Nil for a single key fails Exec but the other commands still hold results
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get active snapshots: %w", err)
	}

	snaps := make([]*models.MatchSnapshot, 0, len(ids))
	for i, cmd := range cmds {
		data, err := cmd.Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// the snapshot was removed between reading the set and the keys
				continue
			}
			return nil, fmt.Errorf("failed to get snapshot %s: %w", ids[i], err)
		}

		var snap models.MatchSnapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to unmarshal snapshot %s: %w", ids[i], err)
		}
		snaps = append(snaps, &snap)
	}

	return &ListActiveOutput{Snapshots: snaps}, nil
}
