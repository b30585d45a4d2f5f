package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultSequenceKey holds the last product id handed out.
const DefaultSequenceKey = "seq:products"

// seedScript raises the counter to ARGV[1] without ever lowering it.
var seedScript = redis.NewScript(`
local current = tonumber(redis.call("GET", KEYS[1]) or "0")
local floor = tonumber(ARGV[1])
if floor > current then
	redis.call("SET", KEYS[1], floor)
	return floor
end
return current
`)

// Sequence is a monotonically increasing counter shared by every API
// instance pointing at the same Redis.
type Sequence struct {
	client redis.UniversalClient
	key    string
}

func NewSequence(client redis.UniversalClient, key string) *Sequence {
	if key == "" {
		key = DefaultSequenceKey
	}
	return &Sequence{client: client, key: key}
}

func (s *Sequence) Next(ctx context.Context) (int, error) {
	n, err := s.client.Incr(ctx, s.key).Result()
	if err != nil {
		return 0, fmt.Errorf("sequence incr %s: %w", s.key, err)
	}
	return int(n), nil
}

func (s *Sequence) Seed(ctx context.Context, floor int) error {
	if err := seedScript.Run(ctx, s.client, []string{s.key}, floor).Err(); err != nil {
		return fmt.Errorf("sequence seed %s: %w", s.key, err)
	}
	return nil
}

// Current returns the last value handed out, or 0 when nothing was issued.
func (s *Sequence) Current(ctx context.Context) (int, error) {
	n, err := s.client.Get(ctx, s.key).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("sequence get %s: %w", s.key, err)
	}
	return n, nil
}
