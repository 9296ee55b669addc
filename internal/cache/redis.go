package cache

import (
	"bufio"
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Redis struct {
	rdb *redis.Client
	log logrus.FieldLogger
}

// NewRedis never fails. A bad URL yields a client with no backing store; a
// failed initial ping is only logged since go-redis reconnects on demand.
func NewRedis(url string, log logrus.FieldLogger) *Redis {
	log = log.WithField("component", "cache")

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.WithError(err).Warn("Invalid redis url, caching disabled")
		return &Redis{log: log}
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 2 * time.Second
	opts.WriteTimeout = 2 * time.Second

	c := &Redis{rdb: redis.NewClient(opts), log: log}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("Redis not reachable at startup")
	} else {
		log.WithField("addr", opts.Addr).Info("Redis connection established")
	}
	return c
}

var errNoStore = errors.New("redis client not configured")

func (c *Redis) Get(ctx context.Context, key string) (string, bool) {
	if c.rdb == nil {
		c.log.WithError(errNoStore).WithField("key", key).Warn("Cache get failed")
		return "", false
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		c.log.WithError(err).WithField("key", key).Warn("Cache get failed")
		return "", false
	}
	return val, true
}

func (c *Redis) SetEx(ctx context.Context, key string, ttl time.Duration, value string) bool {
	if c.rdb == nil {
		c.log.WithError(errNoStore).WithField("key", key).Warn("Cache set failed")
		return false
	}
	if err := c.rdb.SetEx(ctx, key, value, ttl).Err(); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("Cache set failed")
		return false
	}
	return true
}

func (c *Redis) Flush(ctx context.Context) bool {
	if c.rdb == nil {
		c.log.WithError(errNoStore).Warn("Cache flush failed")
		return false
	}
	if err := c.rdb.FlushDB(ctx).Err(); err != nil {
		c.log.WithError(err).Warn("Cache flush failed")
		return false
	}
	c.log.Info("Cache flushed")
	return true
}

func (c *Redis) Ping(ctx context.Context) bool {
	if c.rdb == nil {
		return false
	}
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		c.log.WithError(err).Warn("Cache ping failed")
		return false
	}
	return true
}

func (c *Redis) Stats(ctx context.Context) Stats {
	if c.rdb == nil {
		return Stats{Error: errNoStore.Error()}
	}
	raw, err := c.rdb.Info(ctx).Result()
	if err != nil {
		c.log.WithError(err).Warn("Cache stats failed")
		return Stats{Error: err.Error()}
	}
	return parseInfo(raw)
}

func (c *Redis) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// parseInfo reads the "key:value" lines of an INFO reply.
func parseInfo(raw string) Stats {
	fields := make(map[string]string)
	sc := bufio.NewScanner(strings.NewReader(raw))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields[k] = v
	}

	st := Stats{
		Connected:  true,
		Version:    fields["redis_version"],
		UsedMemory: fields["used_memory_human"],
	}
	st.ConnectedClients, _ = strconv.ParseInt(fields["connected_clients"], 10, 64)
	st.TotalCommandsProcessed, _ = strconv.ParseInt(fields["total_commands_processed"], 10, 64)
	return st
}
