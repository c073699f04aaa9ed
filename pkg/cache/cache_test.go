package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	c, err := NewFileCache(fs, "/cache")
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := c.Get(ctx, "graph:abc"); hit {
		t.Fatal("empty cache should miss")
	}
	if err := c.Set(ctx, "graph:abc", []byte("{}"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "graph:abc")
	if err != nil || !hit || string(data) != "{}" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "graph:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "graph:abc"); hit {
		t.Error("deleted entry should miss")
	}
	if err := c.Delete(ctx, "graph:abc"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(afero.NewMemMapFs(), "/cache")

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}

	if err := c.Set(ctx, "forever", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero ttl should never expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	c, _ := NewFileCache(fs, "/cache")

	if err := afero.WriteFile(fs, c.path("k"), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v, want miss", hit, err)
	}
	if ok, _ := afero.Exists(fs, c.path("k")); ok {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(afero.NewMemMapFs(), "/cache")
	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)

	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b"} {
		if _, hit, _ := c.Get(ctx, k); hit {
			t.Errorf("%s survived Clear", k)
		}
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	gk := k.GraphKey("abc", GraphKeyOpts{Language: "python"})
	if !strings.HasPrefix(gk, "graph:") || len(gk) != len("graph:")+64 {
		t.Errorf("GraphKey = %q", gk)
	}
	if gk != k.GraphKey("abc", GraphKeyOpts{Language: "python"}) {
		t.Error("GraphKey should be deterministic")
	}

	base := ArtifactKeyOpts{Renderer: "shapes", Format: "png", Theme: "standard", Scale: 2}
	ak := k.ArtifactKey("abc", base)
	if !strings.HasPrefix(ak, "artifact:") {
		t.Errorf("ArtifactKey = %q", ak)
	}
	for _, opts := range []ArtifactKeyOpts{
		{Renderer: "graph", Format: "png", Theme: "standard", Scale: 2},
		{Renderer: "shapes", Format: "svg", Theme: "standard", Scale: 2},
		{Renderer: "shapes", Format: "png", Theme: "dark", Scale: 2},
		{Renderer: "shapes", Format: "png", Theme: "standard", Scale: 1},
		{Renderer: "shapes", Format: "png", Theme: "standard", Scale: 2, Title: "Report"},
	} {
		if k.ArtifactKey("abc", opts) == ak {
			t.Errorf("options %+v share a key with %+v", opts, base)
		}
	}
	if k.ArtifactKey("abd", base) == ak {
		t.Error("different graph hashes should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "v1.2.0:")
	inner := NewDefaultKeyer()

	if got, want := scoped.GraphKey("abc", GraphKeyOpts{}), "v1.2.0:"+inner.GraphKey("abc", GraphKeyOpts{}); got != want {
		t.Errorf("GraphKey = %q, want %q", got, want)
	}
	opts := ArtifactKeyOpts{Format: "svg"}
	if got, want := scoped.ArtifactKey("abc", opts), "v1.2.0:"+inner.ArtifactKey("abc", opts); got != want {
		t.Errorf("ArtifactKey = %q, want %q", got, want)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	if key := scoped.GraphKey("abc", GraphKeyOpts{}); !strings.HasPrefix(key, "prefix:graph:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Error("wrapped error should unwrap to ErrNetwork")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if IsRetryable(errors.New("boom")) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestBackoff(t *testing.T) {
	ctx := context.Background()
	b := Backoff{Attempts: 3, Delay: time.Millisecond}

	permanent := errors.New("permanent")
	tests := []struct {
		name      string
		failUntil int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"success", 0, nil, 1, nil},
		{"not retryable", 99, permanent, 1, permanent},
		{"recovers", 2, Retryable(ErrNetwork), 2, nil},
		{"gives up", 99, Retryable(ErrNetwork), 3, ErrNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := b.Do(ctx, func() error {
				calls++
				if calls < tt.failUntil {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := DefaultBackoff.Do(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "http://localhost"); err == nil {
		t.Error("non-redis URL should be rejected")
	}
}

func TestClassify(t *testing.T) {
	if classify(nil) != nil {
		t.Error("nil should stay nil")
	}
	other := errors.New("WRONGTYPE")
	if IsRetryable(classify(other)) {
		t.Error("server errors are not retryable")
	}
}
