// Package redis stores filter state in Redis, one JSON value per view.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ocp-advisor/filterstate/internal/colors"
	"github.com/ocp-advisor/filterstate/internal/filters"
	goredis "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces the keys written by this backend.
const DefaultPrefix = "filterstate:"

const scanCount = 100

// Options configures the client created by New.
type Options struct {
	Addr    string
	Prefix  string
	Timeout time.Duration
}

// Storage maps view v to the key <prefix><v>.
type Storage struct {
	client *goredis.Client
	prefix string
	owned  bool
}

// New dials Redis and verifies the connection with PING.
func New(ctx context.Context, opts Options) (*Storage, error) {
	if strings.TrimSpace(opts.Addr) == "" {
		return nil, fmt.Errorf("redis storage: address cannot be empty")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:         opts.Addr,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis storage: ping %s: %w", opts.Addr, err)
	}

	s := NewWithClient(client, opts.Prefix)
	s.owned = true
	return s, nil
}

// NewWithClient wraps an existing client. Close leaves the client open.
func NewWithClient(client *goredis.Client, prefix string) *Storage {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Storage{client: client, prefix: prefix}
}

func (s *Storage) key(view filters.View) string {
	return s.prefix + view.String()
}

// Load reads every key under the prefix.
func (s *Storage) Load(ctx context.Context) (filters.Snapshot, error) {
	keys, err := s.keys(ctx)
	if err != nil {
		return nil, err
	}

	snap := filters.Snapshot{}
	for _, key := range keys {
		name := strings.TrimPrefix(key, s.prefix)
		view, err := filters.ParseView(name)
		if err != nil {
			colors.Warning(fmt.Sprintf("redis storage: skipping unknown view %q", name))
			continue
		}

		payload, err := s.client.Get(ctx, key).Bytes()
		if errors.Is(err, goredis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("redis storage: get %s: %w", key, err)
		}

		var state filters.State
		if err := json.Unmarshal(payload, &state); err != nil {
			return nil, fmt.Errorf("redis storage: decode %s: %w", view, err)
		}
		snap[view] = state
	}
	return snap, nil
}

// Save writes the record of view without expiry.
func (s *Storage) Save(ctx context.Context, view filters.View, state filters.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("redis storage: encode %s: %w", view, err)
	}
	if err := s.client.Set(ctx, s.key(view), payload, 0).Err(); err != nil {
		return fmt.Errorf("redis storage: set %s: %w", s.key(view), err)
	}
	return nil
}

// Clear deletes every key under the prefix.
func (s *Storage) Clear(ctx context.Context) error {
	keys, err := s.keys(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil && !errors.Is(err, goredis.Nil) {
		return fmt.Errorf("redis storage: clear: %w", err)
	}
	return nil
}

// Close closes the client when it was created by New.
func (s *Storage) Close() error {
	if !s.owned {
		return nil
	}
	return s.client.Close()
}

func (s *Storage) keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis storage: scan: %w", err)
	}
	return keys, nil
}
