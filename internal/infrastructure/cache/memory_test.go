package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pricegrid/backend/internal/domain"
)

func sampleTable() *domain.ComparisonTable {
	return &domain.ComparisonTable{
		Catalogs:    []string{"A", "B"},
		GeneratedAt: time.Now(),
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("set then get returns the same table", func(t *testing.T) {
		c := NewMemoryCache()
		table := sampleTable()

		if err := c.Set(ctx, "key", table, time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := c.Get(ctx, "key")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != table {
			t.Error("Get() returned a different table")
		}
	})

	t.Run("missing key is a cache miss", func(t *testing.T) {
		c := NewMemoryCache()
		_, err := c.Get(ctx, "absent")
		if !errors.Is(err, domain.ErrCacheMiss) {
			t.Errorf("Get() error = %v, want ErrCacheMiss", err)
		}
	})

	t.Run("expired entry is a cache miss", func(t *testing.T) {
		c := NewMemoryCache()
		if err := c.Set(ctx, "key", sampleTable(), -time.Second); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		_, err := c.Get(ctx, "key")
		if !errors.Is(err, domain.ErrCacheMiss) {
			t.Errorf("Get() error = %v, want ErrCacheMiss", err)
		}
	})

	t.Run("delete removes the entry", func(t *testing.T) {
		c := NewMemoryCache()
		if err := c.Set(ctx, "key", sampleTable(), time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		if err := c.Delete(ctx, "key"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := c.Get(ctx, "key"); !errors.Is(err, domain.ErrCacheMiss) {
			t.Errorf("Get() after delete error = %v, want ErrCacheMiss", err)
		}
	})

	t.Run("size and clear", func(t *testing.T) {
		c := NewMemoryCache()
		_ = c.Set(ctx, "a", sampleTable(), time.Minute)
		_ = c.Set(ctx, "b", sampleTable(), time.Minute)

		if c.Size() != 2 {
			t.Errorf("Size() = %d, want 2", c.Size())
		}
		c.Clear()
		if c.Size() != 0 {
			t.Errorf("Size() after Clear = %d, want 0", c.Size())
		}
	})
}
