package sessions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisKeyPrefix = "authsession:"
	notePrefix            = "note:"

	fieldTabID     = "tab_id"
	fieldClientID  = "client_id"
	fieldUserID    = "user_id"
	fieldCreatedAt = "created_at"
	fieldExpiresAt = "expires_at"
)

// setNoteScript writes a note only while the session hash exists, so a
// write racing expiry cannot recreate the hash without a TTL.
var setNoteScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return 0
end
redis.call("HSET", KEYS[1], ARGV[1], ARGV[2])
return 1
`)

// RedisSessionRepository stores each session as one Redis hash; notes are
// hash fields prefixed with "note:". The hash expires with the session.
type RedisSessionRepository struct {
	client    redis.UniversalClient
	keyPrefix string
}

// RedisRepositoryOption configures a RedisSessionRepository
type RedisRepositoryOption func(*RedisSessionRepository)

// WithKeyPrefix overrides the default "authsession:" key prefix
func WithKeyPrefix(prefix string) RedisRepositoryOption {
	return func(r *RedisSessionRepository) {
		r.keyPrefix = prefix
	}
}

// NewRedisSessionRepository creates a session repository backed by Redis
func NewRedisSessionRepository(client redis.UniversalClient, opts ...RedisRepositoryOption) *RedisSessionRepository {
	repo := &RedisSessionRepository{
		client:    client,
		keyPrefix: defaultRedisKeyPrefix,
	}

	for _, opt := range opts {
		opt(repo)
	}

	return repo
}

func (r *RedisSessionRepository) key(id uuid.UUID) string {
	return r.keyPrefix + id.String()
}

func (r *RedisSessionRepository) Create(ctx context.Context, req CreateSessionRequest) (*Session, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	tabID, err := newTabID()
	if err != nil {
		return nil, err
	}

	ttl := sessionTTL(req)
	now := time.Now().UTC()
	session := Session{
		ID:        uuid.New(),
		TabID:     tabID,
		ClientID:  req.ClientID,
		UserID:    req.UserID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	key := r.key(session.ID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]interface{}{
			fieldTabID:     session.TabID,
			fieldClientID:  session.ClientID,
			fieldUserID:    session.UserID.String(),
			fieldCreatedAt: session.CreatedAt.Format(time.RFC3339Nano),
			fieldExpiresAt: session.ExpiresAt.Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		slog.Error("Failed to create session in redis", "session_id", session.ID, "err", err)
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &session, nil
}

func (r *RedisSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	fields, err := r.client.HGetAll(ctx, r.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrSessionNotFound
	}

	return decodeSession(id, fields)
}

func (r *RedisSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *RedisSessionRepository) GetNote(ctx context.Context, id uuid.UUID, key string) (string, bool, error) {
	if err := r.exists(ctx, id); err != nil {
		return "", false, err
	}

	value, err := r.client.HGet(ctx, r.key(id), notePrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get session note: %w", err)
	}
	return value, true, nil
}

func (r *RedisSessionRepository) SetNote(ctx context.Context, id uuid.UUID, key, value string) error {
	written, err := setNoteScript.Run(ctx, r.client, []string{r.key(id)}, notePrefix+key, value).Int()
	if err != nil {
		return fmt.Errorf("failed to set session note: %w", err)
	}
	if written == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *RedisSessionRepository) RemoveNote(ctx context.Context, id uuid.UUID, key string) error {
	if err := r.exists(ctx, id); err != nil {
		return err
	}

	if err := r.client.HDel(ctx, r.key(id), notePrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to remove session note: %w", err)
	}
	return nil
}

func (r *RedisSessionRepository) exists(ctx context.Context, id uuid.UUID) error {
	n, err := r.client.Exists(ctx, r.key(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func decodeSession(id uuid.UUID, fields map[string]string) (*Session, error) {
	session := Session{
		ID:       id,
		TabID:    fields[fieldTabID],
		ClientID: fields[fieldClientID],
	}

	var err error
	if v := fields[fieldUserID]; v != "" {
		if session.UserID, err = uuid.Parse(v); err != nil {
			return nil, fmt.Errorf("invalid stored user_id: %w", err)
		}
	}
	if session.CreatedAt, err = time.Parse(time.RFC3339Nano, fields[fieldCreatedAt]); err != nil {
		return nil, fmt.Errorf("invalid stored created_at: %w", err)
	}
	if session.ExpiresAt, err = time.Parse(time.RFC3339Nano, fields[fieldExpiresAt]); err != nil {
		return nil, fmt.Errorf("invalid stored expires_at: %w", err)
	}

	return &session, nil
}
