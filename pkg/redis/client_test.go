package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestSettingLifecycle(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	if _, err := client.GetSetting(ctx, "level_silver"); !IsMissing(err) {
		t.Fatalf("expected missing-key error, got %v", err)
	}

	if err := client.SetSetting(ctx, "level_silver", "1500"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value, err := client.GetSetting(ctx, "level_silver")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if value != "1500" {
		t.Fatalf("expected stored value, got %q", value)
	}

	if err := client.Del(ctx, client.SettingKey("level_silver")); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, err := client.GetSetting(ctx, "level_silver"); !IsMissing(err) {
		t.Fatalf("expected missing-key error after delete, got %v", err)
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.SettingKey("level_gold"); got != "ts:setting:level_gold" {
		t.Fatalf("unexpected setting key %s", got)
	}
	if got := client.CounterKey("hits"); got != "ts:counter:hits" {
		t.Fatalf("unexpected counter key %s", got)
	}
	if got := client.buildKey("a", "", "b"); got != "ts:a:b" {
		t.Fatalf("empty parts should be skipped, got %s", got)
	}
}

type mockCmdable struct {
	data map[string]string
	incr map[string]int64
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{
		data: make(map[string]string),
		incr: make(map[string]int64),
	}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Incr(ctx context.Context, key string) *redis.IntCmd {
	m.incr[key]++
	return redis.NewIntResult(m.incr[key], nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
