package input

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestQueue_DropsWhenFull(t *testing.T) {
	q := NewQueue(2)
	if !q.Push(Edge{Source: Confirm, At: time.Second}) {
		t.Fatal("first push should fit")
	}
	if !q.Push(Edge{Source: Reset, At: 2 * time.Second}) {
		t.Fatal("second push should fit")
	}
	if q.Push(Edge{Source: SampleAxis, At: 3 * time.Second}) {
		t.Error("third push should be dropped")
	}
	if q.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", q.Dropped())
	}

	e := <-q.Edges()
	if e.Source != Confirm || e.At != time.Second {
		t.Errorf("first edge = %+v", e)
	}
}

func TestQueue_FullPushDoesNotAllocate(t *testing.T) {
	q := NewQueue(1)
	q.Push(Edge{Source: Confirm})
	e := Edge{Source: Reset, At: time.Second}
	allocs := testing.AllocsPerRun(100, func() {
		q.Push(e)
	})
	if allocs != 0 {
		t.Errorf("Push on a full queue allocated %.1f times, want 0", allocs)
	}
	if q.Dropped() != 101 {
		t.Errorf("Dropped() = %d, want 101", q.Dropped())
	}
}

func TestQueue_DefaultSize(t *testing.T) {
	q := NewQueue(0)
	if cap(q.ch) != DefaultQueueSize {
		t.Errorf("capacity = %d, want %d", cap(q.ch), DefaultQueueSize)
	}
}

func TestKeyboard_MapsKeys(t *testing.T) {
	q := NewQueue(8)
	var now time.Duration
	clock := func() time.Duration {
		now += 100 * time.Millisecond
		return now
	}
	kb := NewKeyboard(strings.NewReader("a\nJ\n x \nb\n"), q, clock)
	if err := kb.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []Source{Confirm, SampleAxis, Reset}
	for i, src := range want {
		select {
		case e := <-q.Edges():
			if e.Source != src {
				t.Errorf("edge %d source = %s, want %s", i, e.Source, src)
			}
		default:
			t.Fatalf("expected %d edges, got %d", len(want), i)
		}
	}
	select {
	case e := <-q.Edges():
		t.Errorf("unexpected extra edge %+v", e)
	default:
	}
}

func TestKeyboard_Bind(t *testing.T) {
	q := NewQueue(8)
	var got []string
	kb := NewKeyboard(strings.NewReader("n\nx 3000\nA\nq\n"), q, SinceStart())
	kb.Bind("n", func(arg string) { got = append(got, "n:"+arg) })
	kb.Bind("X", func(arg string) { got = append(got, "x:"+arg) })
	if err := kb.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"n:", "x:3000"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("bound calls = %v, want %v", got, want)
	}
	if e := <-q.Edges(); e.Source != Confirm {
		t.Errorf("edge source = %s, want confirm", e.Source)
	}
}

func TestKeyboard_StopsOnCancel(t *testing.T) {
	q := NewQueue(8)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	kb := NewKeyboard(strings.NewReader("a\n"), q, SinceStart())
	if err := kb.Run(ctx); err != context.Canceled {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}

func TestSource_String(t *testing.T) {
	cases := map[Source]string{Confirm: "confirm", Reset: "reset", SampleAxis: "sample-axis", Source(7): "unknown"}
	for s, want := range cases {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", int(s), s.String(), want)
		}
	}
}

func TestSinceStart_Monotonic(t *testing.T) {
	c := SinceStart()
	a := c()
	b := c()
	if b < a {
		t.Errorf("clock went backwards: %v then %v", a, b)
	}
}

func TestMonotonicClock_NonDecreasing(t *testing.T) {
	c := MonotonicClock()
	a := c()
	b := c()
	if b < a {
		t.Errorf("clock went backwards: %v then %v", a, b)
	}
}
