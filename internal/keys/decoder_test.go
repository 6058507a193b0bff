package keys

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(events []Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.String())
	}
	return out
}

func TestDecoder_ArrowSequences(t *testing.T) {
	tests := []struct {
		seq  string
		want string
	}{
		{"\x1b[A", "up"},
		{"\x1b[B", "down"},
		{"\x1b[C", "right"},
		{"\x1b[D", "left"},
		{"\x1bOA", "up"},
		{"\x1b[H", "home"},
		{"\x1b[F", "end"},
		{"\x1b[Z", "shift+tab"},
	}
	for _, tt := range tests {
		t.Run(tt.want+"/whole", func(t *testing.T) {
			d := NewDecoder(time.Second)
			got := d.Feed([]byte(tt.seq))
			assert.Equal(t, []string{tt.want}, names(got))
			assert.False(t, d.Pending())
			assert.Nil(t, d.Expired())
		})
		t.Run(tt.want+"/bytewise", func(t *testing.T) {
			d := NewDecoder(time.Second)
			var got []Event
			for i := 0; i < len(tt.seq); i++ {
				got = append(got, d.Feed([]byte{tt.seq[i]})...)
			}
			assert.Equal(t, []string{tt.want}, names(got))
			assert.Nil(t, d.Flush(), "nothing left to flush")
		})
	}
}

func TestDecoder_SplitSequenceUnderTimeout(t *testing.T) {
	d := NewDecoder(100 * time.Millisecond)
	var got []Event
	for _, b := range []byte{0x1b, '[', 'A'} {
		got = append(got, d.Feed([]byte{b})...)
		select {
		case <-d.Expired():
			got = append(got, d.Flush()...)
		default:
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.Len(t, got, 1)
	assert.Equal(t, tea.KeyUp, got[0].Type)
	assert.Equal(t, KindDirection, got[0].Kind())
}

func TestDecoder_LoneEscapeTimesOut(t *testing.T) {
	d := NewDecoder(20 * time.Millisecond)
	assert.Empty(t, d.Feed([]byte{0x1b}))
	require.True(t, d.Pending())

	select {
	case <-d.Expired():
	case <-time.After(time.Second):
		t.Fatal("escape timer never fired")
	}
	got := d.Flush()
	assert.Equal(t, []string{"esc"}, names(got))
	assert.Empty(t, d.Flush(), "escape must be flushed exactly once")
	assert.Nil(t, d.Expired())
}

func TestDecoder_TimeoutFlushKeepsTrailingBytes(t *testing.T) {
	d := NewDecoder(time.Second)
	assert.Empty(t, d.Feed([]byte("\x1b[")))
	got := d.Flush()
	assert.Equal(t, []string{"esc", "["}, names(got))
}

func TestDecoder_UnknownSequenceFlushesLeadingEscape(t *testing.T) {
	d := NewDecoder(time.Second)
	got := d.Feed([]byte("\x1b[1;5A"))
	assert.Equal(t, []string{"esc", "[1;5A"}, names(got))
	assert.False(t, d.Pending())

	got = d.Feed([]byte("\x1bx"))
	assert.Equal(t, []string{"esc", "x"}, names(got))
}

func TestDecoder_DoubleEscape(t *testing.T) {
	d := NewDecoder(time.Second)
	got := d.Feed([]byte{0x1b, 0x1b})
	assert.Equal(t, []string{"esc"}, names(got))
	assert.True(t, d.Pending())
	assert.Equal(t, []string{"esc"}, names(d.Flush()))
}

func TestDecoder_DeleteIsEraseBackward(t *testing.T) {
	d := NewDecoder(0)
	for _, b := range []byte{0x7f, 0x08} {
		got := d.Feed([]byte{b})
		require.Len(t, got, 1)
		assert.Equal(t, tea.KeyBackspace, got[0].Type)
		assert.Equal(t, "backspace", got[0].String())
		assert.Equal(t, KindControl, got[0].Kind())
	}
}

func TestDecoder_ControlAndPrintable(t *testing.T) {
	d := NewDecoder(0)
	got := d.Feed([]byte("ab\rc\x03"))
	assert.Equal(t, []string{"ab", "enter", "c", "ctrl+c"}, names(got))
	assert.Equal(t, KindRune, got[0].Kind())
	assert.Equal(t, "ab", got[0].Text())

	got = d.Feed([]byte(" "))
	require.Len(t, got, 1)
	assert.Equal(t, tea.KeySpace, got[0].Type)
	assert.Equal(t, " ", got[0].Text())

	got = d.Feed([]byte("é"))
	assert.Equal(t, []string{"é"}, names(got))
}

func TestDecoder_TextBeforeArrow(t *testing.T) {
	d := NewDecoder(time.Second)
	got := d.Feed([]byte("q\x1b[B"))
	assert.Equal(t, []string{"q", "down"}, names(got))
}

func TestDecoder_InvalidUTF8IsRaw(t *testing.T) {
	d := NewDecoder(0)
	got := d.Feed([]byte{0xff, 0xfe})
	require.Len(t, got, 1)
	assert.Equal(t, KindRaw, got[0].Kind())
	assert.Equal(t, []byte{0xff, 0xfe}, got[0].Raw)
}

func TestDecoder_Reset(t *testing.T) {
	d := NewDecoder(time.Second)
	d.Feed([]byte{0x1b})
	d.Reset()
	assert.False(t, d.Pending())
	assert.Nil(t, d.Expired())
	assert.Empty(t, d.Flush())
}

func TestEvent_Msg(t *testing.T) {
	msg := New(tea.KeyDown).Msg()
	assert.Equal(t, "down", msg.String())
	assert.Equal(t, "q", Runes("q").Msg().String())
}
