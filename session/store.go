package session

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable wraps every failure talking to Redis.
var ErrRedisUnavailable = errors.New("redis unavailable")

// ErrSessionNotFound is returned for unknown, expired, or malformed session ids.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionCorrupt is returned when a stored blob cannot be decoded.
var ErrSessionCorrupt = errors.New("session corrupt")

const minSlidingTTL = time.Second

const deleteSessionScript = `
local existed = redis.call("EXISTS", KEYS[1])
redis.call("SREM", KEYS[2], ARGV[1])
if existed == 1 then
  redis.call("DEL", KEYS[1])
end
if redis.call("SCARD", KEYS[2]) == 0 then
  redis.call("DEL", KEYS[2])
end
return existed
`

var deleteSessionLua = redis.NewScript(deleteSessionScript)

// Store is a Redis-backed session store. Each session lives under
// "<prefix>:<sid>" and is indexed per user under "<prefix>:u:<username>".
type Store struct {
	redis       redis.UniversalClient
	prefix      string
	idleTimeout time.Duration
	jitterRange time.Duration
}

// NewStore creates a session [Store] backed by the given Redis client.
// A positive idleTimeout enables sliding expiration: each successful Get pushes the
// key TTL out to idleTimeout (never past the record's absolute expiry). jitterRange
// spreads those renewals.
func NewStore(
	redis redis.UniversalClient,
	prefix string,
	idleTimeout time.Duration,
	jitterRange time.Duration,
) *Store {
	if prefix == "" {
		prefix = "almapac:sess"
	}
	return &Store{
		redis:       redis,
		prefix:      prefix,
		idleTimeout: idleTimeout,
		jitterRange: jitterRange,
	}
}

func (s *Store) key(sessionID string) string {
	return s.prefix + ":" + sessionID
}

func (s *Store) userKey(username string) string {
	return s.prefix + ":u:" + username
}

// Create persists rec under a fresh random session id and returns that id. The record's
// SessionID, CreatedAt and ExpiresAt are set from the call.
func (s *Store) Create(ctx context.Context, rec *Record, ttl time.Duration) (string, error) {
	if rec == nil || rec.Username == "" {
		return "", errors.New("session record requires a username")
	}
	if ttl <= 0 {
		return "", errors.New("session ttl must be positive")
	}

	now := time.Now()
	rec.SessionID = uuid.NewString()
	rec.SchemaVersion = CurrentSchemaVersion
	rec.CreatedAt = now.Unix()
	rec.ExpiresAt = now.Add(ttl).Unix()

	data, err := Encode(rec)
	if err != nil {
		return "", err
	}

	initialTTL := ttl
	if s.idleTimeout > 0 && s.idleTimeout < ttl {
		initialTTL = s.idleTimeout
	}

	sessionKey := s.key(rec.SessionID)
	userKey := s.userKey(rec.Username)
	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKey, data, initialTTL)
		pipe.SAdd(ctx, userKey, rec.SessionID)
		pipe.Expire(ctx, userKey, ttl)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return rec.SessionID, nil
}

// Get loads the record for sessionID. Unknown, expired and non-UUID ids all report
// [ErrSessionNotFound].
func (s *Store) Get(ctx context.Context, sessionID string) (*Record, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, ErrSessionNotFound
	}
	key := s.key(sessionID)

	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	rec, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionCorrupt, err)
	}
	rec.SessionID = sessionID

	remaining := time.Until(time.Unix(rec.ExpiresAt, 0))
	if remaining <= 0 {
		if err := s.deleteSessionAndIndex(ctx, rec.Username, sessionID); err != nil {
			return nil, err
		}
		return nil, ErrSessionNotFound
	}

	if s.idleTimeout > 0 {
		nextTTL, err := s.nextSlidingTTL(remaining)
		if err != nil {
			return nil, err
		}
		if err := s.redis.Expire(ctx, key, nextTTL).Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
	}

	return rec, nil
}

// Delete removes a session and its index entry. Deleting an unknown session is not an
// error.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	key := s.key(sessionID)

	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	rec, err := Decode(data)
	if err != nil {
		if err := s.redis.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
		return nil
	}

	return s.deleteSessionAndIndex(ctx, rec.Username, sessionID)
}

// DeleteAllForUser removes every session indexed for username and reports how many
// existed.
//
// Not atomic: a session created between the SMEMBERS read and the delete survives until
// it expires or the next call.
func (s *Store) DeleteAllForUser(ctx context.Context, username string) (int, error) {
	ids, err := s.ActiveSessionIDs(ctx, username)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, s.key(id))
	}

	var deleted *redis.IntCmd
	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, keys...)
		pipe.Del(ctx, s.userKey(username))
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return int(deleted.Val()), nil
}

// ActiveSessionIDs lists the session ids indexed for username. Entries may include
// sessions whose keys already expired.
func (s *Store) ActiveSessionIDs(ctx context.Context, username string) ([]string, error) {
	ids, err := s.redis.SMembers(ctx, s.userKey(username)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return ids, nil
}

// Ping returns a point-in-time Redis availability check and latency.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return time.Since(start), nil
}

func (s *Store) deleteSessionAndIndex(ctx context.Context, username, sessionID string) error {
	err := deleteSessionLua.Run(ctx, s.redis, []string{s.key(sessionID), s.userKey(username)}, sessionID).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func (s *Store) nextSlidingTTL(remainingAbsolute time.Duration) (time.Duration, error) {
	nextTTL := s.idleTimeout

	if s.jitterRange > 0 {
		jitter, err := randomJitter(s.jitterRange)
		if err != nil {
			return 0, err
		}
		nextTTL += jitter
	}

	if nextTTL > remainingAbsolute {
		nextTTL = remainingAbsolute
	}

	minTTL := minSlidingTTL
	if remainingAbsolute < minTTL {
		minTTL = remainingAbsolute
	}
	if nextTTL < minTTL {
		nextTTL = minTTL
	}

	return nextTTL, nil
}

func randomJitter(jitterRange time.Duration) (time.Duration, error) {
	if jitterRange <= 0 {
		return 0, nil
	}

	max := jitterRange.Nanoseconds()
	if max > (math.MaxInt64-1)/2 {
		return 0, errors.New("jitter range too large")
	}
	span := max*2 + 1

	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return 0, err
	}

	return time.Duration(n.Int64() - max), nil
}
