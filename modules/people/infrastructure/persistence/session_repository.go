package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"

	"github.com/iota-uz/teamtrack/modules/people/domain/entities/session"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

const (
	sessionTokenKeyPrefix = "session:token:"
	sessionEmpKeyPrefix   = "session:emp:"
)

// RedisSessionRepository keeps sessions in Redis under two keys: the session
// payload by token, and a reverse index by employee used to displace the
// previous token on re-login. Both expire together, at the session's own
// ExpiresAt.
type RedisSessionRepository struct {
	rdb *redis.Client
}

func NewSessionRepository(rdb *redis.Client) session.Repository {
	return &RedisSessionRepository{rdb: rdb}
}

func (r *RedisSessionRepository) Save(ctx context.Context, s *session.Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session is already expired")
	}

	previous, err := r.rdb.Get(ctx, sessionEmpKeyPrefix+s.EmpID).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return errors.Wrap(err, "failed to look up previous session")
	}
	if previous != "" && previous != s.Token {
		if err := r.rdb.Del(ctx, sessionTokenKeyPrefix+previous).Err(); err != nil {
			return errors.Wrap(err, "failed to displace previous session")
		}
	}

	payload, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "failed to marshal session")
	}

	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, sessionTokenKeyPrefix+s.Token, payload, ttl)
	pipe.Set(ctx, sessionEmpKeyPrefix+s.EmpID, s.Token, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to store session")
	}
	return nil
}

func (r *RedisSessionRepository) FindByToken(ctx context.Context, token string) (*session.Session, error) {
	payload, err := r.rdb.Get(ctx, sessionTokenKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up session")
	}

	var s session.Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal session")
	}
	return &s, nil
}

func (r *RedisSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	s, err := r.FindByToken(ctx, token)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, sessionTokenKeyPrefix+token)
	pipe.Del(ctx, sessionEmpKeyPrefix+s.EmpID)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}
	return nil
}
