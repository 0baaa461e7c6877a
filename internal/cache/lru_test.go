package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestLRU(size int, ttl time.Duration) (*LRU[int], *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRU[int](size, ttl)
	c.now = clock.now
	return c, clock
}

func TestGetSet(t *testing.T) {
	c, _ := newTestLRU(2, time.Minute)
	c.Set("a", 1)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("expected 1, got %d (hit=%v)", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newTestLRU(2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("expected a to survive")
	}
	if len(c.items) != 2 {
		t.Errorf("expected size 2, got %d", len(c.items))
	}
}

func TestExpiry(t *testing.T) {
	c, clock := newTestLRU(4, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	clock.advance(2 * time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Error("expected a to expire")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("expected b to expire")
	}
	if len(c.items) != 0 || c.order.Len() != 0 {
		t.Errorf("expected expired entries dropped on read, got %d", len(c.items))
	}
}

func TestOverwriteRefreshesTTL(t *testing.T) {
	c, clock := newTestLRU(4, time.Minute)
	c.Set("a", 1)
	clock.advance(45 * time.Second)
	c.Set("a", 2)
	clock.advance(45 * time.Second)

	if v, ok := c.Get("a"); !ok || v != 2 {
		t.Errorf("expected refreshed value 2, got %d (hit=%v)", v, ok)
	}
}

func TestDeletePrefix(t *testing.T) {
	c, _ := newTestLRU(10, time.Minute)
	c.Set("user1|x", 1)
	c.Set("user1|y", 2)
	c.Set("user2|x", 3)

	if n := c.DeletePrefix("user1|"); n != 2 {
		t.Errorf("expected 2 removed, got %d", n)
	}
	if _, ok := c.Get("user2|x"); !ok {
		t.Error("expected other user's entry to survive")
	}
	if n := c.DeletePrefix("user1|"); n != 0 {
		t.Errorf("expected nothing left under prefix, got %d", n)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := NewLRU[int](50, time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (n*j)%70)
				c.Set(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()
	if len(c.items) > 50 || c.order.Len() != len(c.items) {
		t.Errorf("size exceeded capacity: %d", len(c.items))
	}
}
