package input

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/cjeanneret/irrigo/internal/debug"
)

// Keys maps typed lines to edge sources for the development keyboard.
var Keys = map[string]Source{
	"a": Confirm,
	"b": Reset,
	"j": SampleAxis,
}

// Keyboard simulates the three buttons from text input, one key per line.
// Used with the mock hardware on a development PC.
type Keyboard struct {
	r     io.Reader
	q     *Queue
	clock Clock
	binds map[string]func(arg string)
}

// NewKeyboard reads key lines from r and pushes edges onto q.
func NewKeyboard(r io.Reader, q *Queue, clock Clock) *Keyboard {
	return &Keyboard{r: r, q: q, clock: clock, binds: make(map[string]func(string))}
}

// Bind runs fn for lines starting with key. The rest of the line is passed
// as arg. Button keys in Keys take precedence.
func (k *Keyboard) Bind(key string, fn func(arg string)) {
	k.binds[strings.ToLower(key)] = fn
}

// Run reads until r is exhausted or ctx is cancelled. Unknown keys are
// ignored.
func (k *Keyboard) Run(ctx context.Context) error {
	debug.Info("Keyboard input: a=confirm b=reset j=sample")
	sc := bufio.NewScanner(k.r)
	for sc.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fields := strings.Fields(strings.ToLower(sc.Text()))
		if len(fields) == 0 {
			continue
		}
		key := fields[0]
		if src, ok := Keys[key]; ok {
			k.q.Push(Edge{Source: src, At: k.clock()})
			continue
		}
		if fn, ok := k.binds[key]; ok {
			fn(strings.Join(fields[1:], " "))
			continue
		}
		debug.Verbose("Keyboard: ignoring %q", key)
	}
	return sc.Err()
}
