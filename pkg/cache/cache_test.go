package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get() = %q, %v, %v, want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get(missing) hit")
	}
	if err := c.Set(ctx, "layout:abc", []byte(`{"pages":[]}`), time.Hour); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "layout:abc")
	if err != nil || !hit || string(data) != `{"pages":[]}` {
		t.Errorf("Get() = %q, %v, %v", data, hit, err)
	}

	if err := c.Set(ctx, "expired", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "expired"); hit {
		t.Error("expired entry hit")
	}

	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Errorf("second Delete() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "layout:abc"); hit {
		t.Error("deleted entry hit")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear()")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash is not deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("different inputs share a hash")
	}
	if len(h1) != 64 {
		t.Errorf("len(Hash) = %d, want 64", len(h1))
	}

	a, err := HashJSON(map[string]int{"a": 1})
	if err != nil {
		t.Fatal(err)
	}
	if b, _ := HashJSON(map[string]int{"a": 1}); a != b {
		t.Error("HashJSON is not deterministic")
	}
	if _, err := HashJSON(func() {}); err == nil {
		t.Error("HashJSON(func) error = nil")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	tests := []struct {
		name string
		a, b string
		kind string
	}{
		{
			"layout",
			k.LayoutKey("ws", LayoutKeyOpts{HeightsHash: "h1"}),
			k.LayoutKey("ws", LayoutKeyOpts{HeightsHash: "h2"}),
			KindLayout,
		},
		{
			"composition",
			k.CompositionKey("wb", CompositionKeyOpts{PageLimit: 8}),
			k.CompositionKey("wb", CompositionKeyOpts{PageLimit: 10}),
			KindComposition,
		},
		{
			"artifact",
			k.ArtifactKey("l", ArtifactKeyOpts{Format: "svg"}),
			k.ArtifactKey("l", ArtifactKeyOpts{Format: "png"}),
			KindArtifact,
		},
		{
			"outline",
			k.OutlineKey("wb", OutlineKeyOpts{Format: "svg"}),
			k.OutlineKey("wb", OutlineKeyOpts{Format: "svg", ChapterColors: true}),
			KindOutline,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.a == tt.b {
				t.Error("different options produced the same key")
			}
			if !strings.HasPrefix(tt.a, tt.kind+":") {
				t.Errorf("key %q lacks prefix %q", tt.a, tt.kind)
			}
			if got := KindOf(tt.a); got != tt.kind {
				t.Errorf("KindOf() = %q, want %q", got, tt.kind)
			}
		})
	}
	if got := KindOf("something"); got != "unknown" {
		t.Errorf("KindOf(something) = %q, want unknown", got)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "user:123:")
	inner := NewDefaultKeyer()

	key := scoped.LayoutKey("ws", LayoutKeyOpts{})
	if key != "user:123:"+inner.LayoutKey("ws", LayoutKeyOpts{}) {
		t.Errorf("LayoutKey() = %q", key)
	}
	if got := KindOf(key); got != KindLayout {
		t.Errorf("KindOf(scoped) = %q, want %q", got, KindLayout)
	}
	for _, k := range []string{
		scoped.CompositionKey("wb", CompositionKeyOpts{}),
		scoped.ArtifactKey("l", ArtifactKeyOpts{}),
		scoped.OutlineKey("wb", OutlineKeyOpts{}),
	} {
		if !strings.HasPrefix(k, "user:123:") {
			t.Errorf("key %q is not scoped", k)
		}
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) != nil")
	}
	err := Retryable(ErrUnavailable)
	if !IsRetryable(err) {
		t.Error("IsRetryable(wrapped) = false")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Error("wrapped error lost its cause")
	}
	if IsRetryable(ErrUnavailable) {
		t.Error("IsRetryable(plain) = true")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	defer func(d time.Duration) { retryDelay = d }(retryDelay)
	retryDelay = time.Millisecond
	ctx := context.Background()

	tests := []struct {
		name      string
		failUntil int
		retryable bool
		wantCalls int
		wantErr   bool
	}{
		{"first try", 0, true, 1, false},
		{"one retry", 1, true, 2, false},
		{"exhausted", 5, true, 3, true},
		{"not retryable", 5, false, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithBackoff(ctx, func() error {
				calls++
				if calls <= tt.failUntil {
					if tt.retryable {
						return Retryable(ErrUnavailable)
					}
					return ErrUnavailable
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RetryWithBackoff(ctx, func() error { return Retryable(ErrUnavailable) })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestOpen(t *testing.T) {
	defer func(d time.Duration) { retryDelay = d }(retryDelay)
	retryDelay = time.Millisecond
	ctx := context.Background()

	c, err := Open(ctx, Options{Backend: BackendFile, Dir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*FileCache); !ok {
		t.Errorf("Open(file) = %T, want *FileCache", c)
	}

	c, err = Open(ctx, Options{Backend: BackendNone})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(NullCache); !ok {
		t.Errorf("Open(none) = %T, want NullCache", c)
	}

	if _, err := Open(ctx, Options{Backend: "memcached"}); err == nil {
		t.Error("Open(memcached) error = nil")
	}
}

func TestRedisUnreachable(t *testing.T) {
	_, err := NewRedisCache(context.Background(), RedisOptions{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
	})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
	if _, err := NewRedisCache(context.Background(), RedisOptions{}); err == nil {
		t.Error("empty address error = nil")
	}
}

func TestMongoMissingURI(t *testing.T) {
	if _, err := NewMongoCache(context.Background(), MongoOptions{}); err == nil {
		t.Error("empty uri error = nil")
	}
}

type countingHooks struct{ hits, misses, sets int }

func (h *countingHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingHooks) OnCacheSet(context.Context, string, int) { h.sets++ }
