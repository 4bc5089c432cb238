package cache

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"
)

type dashboard struct {
	Bills int    `json:"bills"`
	Sales string `json:"sales"`
}

func exerciseCache(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	var got dashboard
	ok, err := c.Get(ctx, "dash:missing", &got)
	if err != nil || ok {
		t.Fatalf("Get missing = %v, %v; want false, nil", ok, err)
	}

	want := dashboard{Bills: 3, Sales: "1300.00"}
	if err := c.Set(ctx, "dash:today", want, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	ok, err = c.Get(ctx, "dash:today", &got)
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v; want true, nil", ok, err)
	}
	if got != want {
		t.Errorf("Get = %+v, want %+v", got, want)
	}

	if err := c.Delete(ctx, "dash:today"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if ok, _ := c.Get(ctx, "dash:today", &got); ok {
		t.Error("value still present after Delete")
	}
}

func exerciseLocker(t *testing.T, l Locker) {
	t.Helper()
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "customer:c1", 5*time.Second)
	if err != nil {
		t.Fatalf("Lock failed: %v", err)
	}

	t.Run("held key times out", func(t *testing.T) {
		tctx, cancel := context.WithTimeout(ctx, 150*time.Millisecond)
		defer cancel()
		if _, err := l.Lock(tctx, "customer:c1", time.Second); !errors.Is(err, ErrNotObtained) {
			t.Errorf("expected ErrNotObtained, got %v", err)
		}
	})

	t.Run("other key is free", func(t *testing.T) {
		u, err := l.Lock(ctx, "customer:c2", time.Second)
		if err != nil {
			t.Fatalf("Lock other key failed: %v", err)
		}
		u()
	})

	unlock()
	unlock() // idempotent

	u, err := l.Lock(ctx, "customer:c1", time.Second)
	if err != nil {
		t.Fatalf("Lock after unlock failed: %v", err)
	}
	u()
}

func TestMemory(t *testing.T) {
	exerciseCache(t, NewMemory())
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory()
	now := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	if err := m.Set(ctx, "k", 1, time.Minute); err != nil {
		t.Fatal(err)
	}
	var v int
	if ok, _ := m.Get(ctx, "k", &v); !ok || v != 1 {
		t.Fatalf("Get = %v, %d", ok, v)
	}
	now = now.Add(time.Minute)
	if ok, _ := m.Get(ctx, "k", &v); ok {
		t.Error("expected entry to expire")
	}
}

func TestMemoryLocker(t *testing.T) {
	exerciseLocker(t, NewMemoryLocker())
}

func TestMemoryLockerSerializes(t *testing.T) {
	l := NewMemoryLocker()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), "customer:c1", time.Second)
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()
	if maxSeen != 1 {
		t.Errorf("max concurrent holders = %d, want 1", maxSeen)
	}
}

func TestRedis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_ADDRESS not set")
	}
	client, err := Connect(context.Background(), addr)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer client.Close()

	exerciseCache(t, NewRedis(client))
	exerciseLocker(t, NewRedisLocker(client))
}
