package terminal

import (
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"
)

func TestTTY_RawAndAltScreen(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	require.NoError(t, pty.Setsize(ptmx, &pty.Winsize{Rows: 30, Cols: 100}))

	got := make(chan string, 1)
	go func() {
		var b strings.Builder
		buf := make([]byte, 256)
		for !strings.Contains(b.String(), "\x1b[?1049l") {
			n, err := ptmx.Read(buf)
			if err != nil {
				break
			}
			b.Write(buf[:n])
		}
		got <- b.String()
	}()

	tt, err := New(tty, tty)
	require.NoError(t, err)

	cols, rows, err := tt.Size()
	require.NoError(t, err)
	assert.Equal(t, 100, cols)
	assert.Equal(t, 30, rows)

	before, err := term.GetState(int(tty.Fd()))
	require.NoError(t, err)

	require.NoError(t, tt.EnableRaw())
	require.NoError(t, tt.EnableRaw(), "enabling twice is a no-op")
	require.NoError(t, tt.EnterAltScreen())
	require.NoError(t, tt.ExitAltScreen())
	require.NoError(t, tt.ExitAltScreen(), "exiting twice is a no-op")
	require.NoError(t, tt.DisableRaw())
	require.NoError(t, tt.DisableRaw())

	after, err := term.GetState(int(tty.Fd()))
	require.NoError(t, err)
	assert.Equal(t, *before, *after, "terminal mode restored")

	select {
	case out := <-got:
		assert.Equal(t, 1, strings.Count(out, "\x1b[?1049h"))
		assert.Contains(t, out, "\x1b[?25l")
		assert.Contains(t, out, "\x1b[?25h")
	case <-time.After(2 * time.Second):
		t.Fatal("no output on the pty")
	}
}

func TestNew_RejectsNonTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()
	_, err = New(r, w)
	assert.ErrorIs(t, err, ErrNotTerminal)
}

func TestFake(t *testing.T) {
	f := NewFake(80, 24)
	defer f.Close()

	require.NoError(t, f.Type("ab"))
	require.NoError(t, f.CloseInput())
	in, err := io.ReadAll(f.Input())
	require.NoError(t, err)
	assert.Equal(t, "ab", string(in))

	require.NoError(t, f.EnableRaw())
	require.NoError(t, f.EnterAltScreen())
	require.NoError(t, f.EnterAltScreen())
	_, _ = io.WriteString(f, "\x1b[Hfirst\x1b[Hsecond")
	assert.Equal(t, "second", f.LastFrame())
	require.NoError(t, f.ExitAltScreen())
	require.NoError(t, f.DisableRaw())
	assert.Equal(t, []string{"raw", "alt", "main", "cooked"}, f.Toggles())

	f.SetSize(120, 40)
	cols, rows, _ := f.Size()
	assert.Equal(t, [2]int{120, 40}, [2]int{cols, rows})
}

func TestPump_ChunksAndStop(t *testing.T) {
	f := NewFake(80, 24)
	defer f.Close()

	p, err := StartPump(f.Input())
	require.NoError(t, err)
	require.NoError(t, f.Type("\x1b[A"))
	select {
	case c := <-p.Chunks():
		assert.Equal(t, "\x1b[A", string(c))
	case <-time.After(2 * time.Second):
		t.Fatal("no chunk")
	}

	stopped := make(chan struct{})
	go func() {
		p.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("stop did not interrupt the blocked read")
	}
	_, open := <-p.Chunks()
	assert.False(t, open)
	assert.NoError(t, p.Err())
	p.Stop()

	// A new pump picks up input typed after the stop.
	p2, err := StartPump(f.Input())
	require.NoError(t, err)
	defer p2.Stop()
	require.NoError(t, f.Type("q"))
	assert.Equal(t, "q", string(<-p2.Chunks()))
}

func TestPump_EndOfInput(t *testing.T) {
	f := NewFake(80, 24)
	defer f.Close()
	p, err := StartPump(f.Input())
	require.NoError(t, err)
	require.NoError(t, f.CloseInput())
	_, open := <-p.Chunks()
	assert.False(t, open)
	assert.NoError(t, p.Err())
}

func TestPump_StopKeepsTypeAhead(t *testing.T) {
	f := NewFake(80, 24)
	defer f.Close()

	require.NoError(t, f.Type("typed-ahead"))
	p, err := StartPump(f.Input())
	require.NoError(t, err)
	// Give the pump time to read the chunk it cannot hand over.
	time.Sleep(50 * time.Millisecond)
	left := p.Stop()

	p2, err := ResumePump(f.Input(), left)
	require.NoError(t, err)
	defer p2.Stop()

	var got []byte
	deadline := time.After(2 * time.Second)
	for string(got) != "typed-ahead" {
		select {
		case c := <-p2.Chunks():
			got = append(got, c...)
		case <-deadline:
			t.Fatalf("type-ahead lost across stop, got %q", got)
		}
	}
}

func TestPump_StopReturnsUndeliveredChunk(t *testing.T) {
	f := NewFake(80, 24)
	defer f.Close()

	p, err := ResumePump(f.Input(), []byte("jk"))
	require.NoError(t, err)
	assert.Equal(t, []byte("jk"), p.Stop(), "carry not yet consumed is handed back")
	assert.Nil(t, p.Stop())
}
