package testkit

import (
	"sync"
	"testing"
	"time"
)

var clock = func() time.Time { return time.Unix(0, 0) }

func TestSwap_RestoresAfterSubtest(t *testing.T) {
	fixed := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &clock, func() time.Time { return fixed })
		if !clock().Equal(fixed) {
			t.Fatalf("swap did not take effect: %v", clock())
		}
	})
	if clock().Unix() != 0 {
		t.Fatalf("swap not restored: %v", clock())
	}
}

func TestSerial_NoInterleaving(t *testing.T) {
	var (
		mu  sync.Mutex
		seq []string
	)
	record := func(s string) {
		mu.Lock()
		seq = append(seq, s)
		mu.Unlock()
	}

	t.Run("group", func(t *testing.T) {
		for _, name := range []string{"A", "B"} {
			name := name
			t.Run(name, func(t *testing.T) {
				t.Parallel()
				Serial(t)
				record(name + "-start")
				time.Sleep(20 * time.Millisecond)
				record(name + "-end")
			})
		}
	})

	if len(seq) != 4 {
		t.Fatalf("seq = %v", seq)
	}
	if seq[0][:1] != seq[1][:1] || seq[2][:1] != seq[3][:1] {
		t.Fatalf("subtests interleaved: %v", seq)
	}
}
