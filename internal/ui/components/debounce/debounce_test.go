package debounce

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typeahead/internal/ui/components/debounce/debouncetest"
)

type harness struct {
	t       *testing.T
	clock   *debouncetest.Clock
	input   *Model
	queries []string
}

func newHarness(t *testing.T, cfg Config) *harness {
	h := &harness{t: t, clock: &debouncetest.Clock{}}
	cfg.Scheduler = h.clock.Schedule
	h.input = New(cfg)
	h.input.OnQueryChanged = func(q string) tea.Cmd {
		h.queries = append(h.queries, q)
		return nil
	}
	h.input.Focus()
	return h
}

func (h *harness) typeAt(at time.Duration, s string) {
	h.advance(at)
	for _, r := range s {
		h.input.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h *harness) advance(to time.Duration) {
	for _, msg := range h.clock.Advance(to) {
		h.input.Update(msg)
	}
}

func TestBurstCoalescesToLastValue(t *testing.T) {
	h := newHarness(t, Config{Interval: 300 * time.Millisecond})

	h.typeAt(0, "a")
	h.typeAt(100*time.Millisecond, "b")
	h.typeAt(250*time.Millisecond, "c")

	h.advance(549 * time.Millisecond)
	assert.Empty(t, h.queries)

	h.advance(550 * time.Millisecond)
	assert.Equal(t, []string{"abc"}, h.queries)

	h.advance(5 * time.Second)
	assert.Equal(t, []string{"abc"}, h.queries)
}

func TestSpacedKeystrokesDispatchEach(t *testing.T) {
	h := newHarness(t, Config{Interval: 300 * time.Millisecond})

	h.typeAt(0, "a")
	h.typeAt(400*time.Millisecond, "b")
	h.typeAt(800*time.Millisecond, "c")
	h.advance(2 * time.Second)

	assert.Equal(t, []string{"a", "ab", "abc"}, h.queries)
}

func TestDefaultInterval(t *testing.T) {
	h := newHarness(t, Config{})
	assert.Equal(t, DefaultInterval, h.input.Interval())

	h.typeAt(0, "x")
	h.advance(299 * time.Millisecond)
	assert.Empty(t, h.queries)
	h.advance(300 * time.Millisecond)
	assert.Equal(t, []string{"x"}, h.queries)
}

func TestDisableCancelsPending(t *testing.T) {
	h := newHarness(t, Config{})

	h.typeAt(0, "a")
	require.True(t, h.input.Pending())
	h.input.SetDisabled(true)
	assert.False(t, h.input.Pending())

	h.advance(time.Second)
	assert.Empty(t, h.queries)

	// keys are ignored while disabled
	h.typeAt(time.Second, "z")
	assert.Equal(t, "a", h.input.Buffer())

	h.input.SetDisabled(false)
	h.input.Focus()
	h.typeAt(2*time.Second, "b")
	h.advance(3 * time.Second)
	assert.Equal(t, []string{"ab"}, h.queries)
}

func TestUnmountCancelsPending(t *testing.T) {
	h := newHarness(t, Config{})

	h.typeAt(0, "a")
	h.input.Unmount()
	h.advance(time.Second)

	assert.Empty(t, h.queries)
	assert.False(t, h.input.Pending())
}

func TestSetValueOverwritesBufferAndCancels(t *testing.T) {
	h := newHarness(t, Config{Value: "start"})
	assert.Equal(t, "start", h.input.Buffer())

	h.typeAt(0, "x")
	assert.Equal(t, "startx", h.input.Buffer())

	h.input.SetValue("other")
	assert.Equal(t, "other", h.input.Buffer())
	assert.False(t, h.input.Pending())

	h.advance(time.Second)
	assert.Empty(t, h.queries)
}

func TestSameValueKeepsTypedText(t *testing.T) {
	h := newHarness(t, Config{Value: "start"})

	h.typeAt(0, "x")
	h.input.SetValue("start")

	assert.Equal(t, "startx", h.input.Buffer())
	assert.True(t, h.input.Pending())
}

func TestReturningToAuthoritativeValueDoesNotDispatch(t *testing.T) {
	h := newHarness(t, Config{Value: "abc"})

	h.typeAt(0, "d")
	require.True(t, h.input.Pending())

	h.input.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "abc", h.input.Buffer())
	assert.False(t, h.input.Pending())

	h.advance(time.Second)
	assert.Empty(t, h.queries)
}

func TestKeyDownMayConsume(t *testing.T) {
	h := newHarness(t, Config{})
	var seen []string
	h.input.OnKeyDown = func(msg tea.KeyMsg) (tea.Cmd, bool) {
		seen = append(seen, msg.String())
		return nil, msg.Type == tea.KeyDown
	}

	h.input.Update(tea.KeyMsg{Type: tea.KeyDown})
	h.typeAt(0, "q")

	assert.Equal(t, []string{"down", "q"}, seen)
	assert.Equal(t, "q", h.input.Buffer())
}

func TestEnterSubmits(t *testing.T) {
	h := newHarness(t, Config{})
	h.typeAt(0, "go")

	cmd := h.input.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, SubmitMsg{ID: h.input.ID(), Value: "go"}, cmd())
	assert.Equal(t, "go", h.input.Buffer())
}

func TestQueryChangedMsgWithoutCallback(t *testing.T) {
	clock := &debouncetest.Clock{}
	input := New(Config{Scheduler: clock.Schedule})
	input.Focus()

	input.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	msgs := clock.Advance(time.Second)
	require.Len(t, msgs, 1)

	cmd := input.Update(msgs[0])
	require.NotNil(t, cmd)
	assert.Equal(t, QueryChangedMsg{ID: input.ID(), Query: "k"}, cmd())
}

func TestTickFromOtherInputIgnored(t *testing.T) {
	a := newHarness(t, Config{})
	b := newHarness(t, Config{})

	b.typeAt(0, "b")
	for _, msg := range b.clock.Advance(time.Second) {
		a.input.Update(msg)
	}

	assert.Empty(t, a.queries)
	assert.True(t, b.input.Pending())
}

func TestUnfocusedIgnoresKeys(t *testing.T) {
	h := newHarness(t, Config{})
	h.input.Blur()

	h.typeAt(0, "a")
	assert.Equal(t, "", h.input.Buffer())
	assert.False(t, h.input.Pending())
}

func TestFocusAndBlurCallbacks(t *testing.T) {
	input := New(Config{})
	var events []string
	input.OnFocus = func() tea.Cmd { events = append(events, "focus"); return nil }
	input.OnBlur = func() tea.Cmd { events = append(events, "blur"); return nil }

	input.Focus()
	input.Focus()
	input.Blur()
	input.Blur()
	assert.Equal(t, []string{"focus", "blur"}, events)

	input.SetDisabled(true)
	input.Focus()
	assert.False(t, input.Focused())
	assert.Equal(t, []string{"focus", "blur"}, events)
}

func TestDisableDropsFocusWithoutBlurCallback(t *testing.T) {
	input := New(Config{})
	blurs := 0
	input.OnBlur = func() tea.Cmd { blurs++; return nil }

	input.Focus()
	input.SetDisabled(true)

	assert.False(t, input.Focused())
	assert.Equal(t, 0, blurs)
}

func TestClickInsideRefocuses(t *testing.T) {
	input := New(Config{Prompt: "> ", Width: 10})
	input.SetPosition(2, 4)

	_, consumed := input.HandleMouse(tea.MouseMsg{X: 5, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.True(t, consumed)
	assert.True(t, input.Focused())

	_, consumed = input.HandleMouse(tea.MouseMsg{X: 5, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, consumed)
	_, consumed = input.HandleMouse(tea.MouseMsg{X: 1, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, consumed)
}

func TestClickInsideDisabledIsConsumedButDoesNotFocus(t *testing.T) {
	input := New(Config{Prompt: "> ", Width: 10, Disabled: true})
	input.SetPosition(0, 0)

	_, consumed := input.HandleMouse(tea.MouseMsg{X: 3, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.True(t, consumed)
	assert.False(t, input.Focused())
}
