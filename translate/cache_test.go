package translate

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestGetOrComputeComputesOnce(t *testing.T) {
	c := newKeyedCache()
	var calls atomic.Int32

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, _, err := c.getOrCompute("key", func() (string, error) {
				calls.Add(1)
				return "value", nil
			})
			if err != nil || value != "value" {
				t.Errorf("getOrCompute = (%q, %v)", value, err)
			}
		}()
	}
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("compute ran %d times, want 1", got)
	}
}

func TestGetOrComputeReportsHit(t *testing.T) {
	c := newKeyedCache()

	_, hit, err := c.getOrCompute("k", func() (string, error) { return "v", nil })
	if err != nil || hit {
		t.Fatalf("first call: hit=%v err=%v, want miss", hit, err)
	}

	value, hit, err := c.getOrCompute("k", func() (string, error) {
		t.Fatal("compute must not run on a hit")
		return "", nil
	})
	if err != nil || !hit || value != "v" {
		t.Fatalf("second call = (%q, %v, %v), want cached v", value, hit, err)
	}
}

func TestGetOrComputeErrorIsNotCached(t *testing.T) {
	c := newKeyedCache()
	boom := errors.New("boom")

	if _, _, err := c.getOrCompute("k", func() (string, error) { return "", boom }); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	// A failed computation leaves the key empty so a retry can succeed.
	value, hit, err := c.getOrCompute("k", func() (string, error) { return "ok", nil })
	if err != nil || hit || value != "ok" {
		t.Fatalf("retry = (%q, %v, %v), want fresh ok", value, hit, err)
	}
}

func TestPutIsSetIfAbsent(t *testing.T) {
	c := newKeyedCache()

	c.put("k", "first")
	c.put("k", "second")

	if value, ok := c.get("k"); !ok || value != "first" {
		t.Fatalf("get = (%q, %v), want stable first value", value, ok)
	}
	if got := c.size(); got != 1 {
		t.Fatalf("size = %d, want 1", got)
	}
}

func TestGetMissingKey(t *testing.T) {
	c := newKeyedCache()
	if value, ok := c.get("missing"); ok || value != "" {
		t.Fatalf("get(missing) = (%q, %v), want empty miss", value, ok)
	}
}
