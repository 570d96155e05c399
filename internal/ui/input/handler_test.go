package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelf/internal/browser"
	"shelf/internal/domain"
	"shelf/internal/ui/input/types"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedContext(page, totalPages int, status browser.Status) *ModelContext {
	s := browser.New(30)
	s.Page = page
	s.TotalPages = totalPages
	s.Status = status
	s.Query = "phone"
	s.Products = []domain.Product{{ID: 1}, {ID: 2}}
	return &ModelContext{State: s, Cursor: 1}
}

func TestSearchModeRoundTrip(t *testing.T) {
	h := New(types.DefaultKeyMap())
	ctx := loadedContext(1, 3, browser.StatusResolved)

	actions, cmd := h.HandleKey(runes("/"), ctx)
	assert.Empty(t, actions)
	assert.NotNil(t, cmd, "entering search starts the cursor blink")
	require.Equal(t, types.ModeSearch, h.CurrentMode())
	require.NotNil(t, h.TextInput())
	assert.Equal(t, "phone", h.TextInput().Value(), "search box starts with the committed query")
	assert.Equal(t, "Search: ", h.Prompt())

	actions, _ = h.HandleKey(runes("s"), ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.UpdateTextAction{Text: "phones"}, actions[0])

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.SubmitTextAction{Text: "phones", Mode: types.ModeSearch}, actions[0])
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.Nil(t, h.TextInput())
}

func TestSearchModeEscapeCancels(t *testing.T) {
	h := New(types.DefaultKeyMap())
	ctx := loadedContext(1, 3, browser.StatusResolved)

	h.HandleKey(runes("/"), ctx)
	h.HandleKey(runes("x"), ctx)
	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)

	require.Len(t, actions, 1)
	assert.Equal(t, types.CancelTextAction{}, actions[0])
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestSearchModeTypingQIsText(t *testing.T) {
	h := New(types.DefaultKeyMap())
	ctx := loadedContext(1, 3, browser.StatusResolved)
	ctx.State.Query = ""

	h.HandleKey(runes("/"), ctx)
	actions, _ := h.HandleKey(runes("q"), ctx)

	require.Len(t, actions, 1)
	assert.Equal(t, types.UpdateTextAction{Text: "q"}, actions[0])
}

func TestLoadMoreFollowsButtonState(t *testing.T) {
	h := New(types.DefaultKeyMap())

	actions, _ := h.HandleKey(runes("m"), loadedContext(1, 3, browser.StatusResolved))
	assert.Equal(t, []types.Action{types.LoadMoreAction{}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, loadedContext(1, 3, browser.StatusResolved))
	assert.Equal(t, []types.Action{types.LoadMoreAction{}}, actions)

	actions, _ = h.HandleKey(runes("m"), loadedContext(2, 3, browser.StatusPending))
	assert.Empty(t, actions, "disabled while pending")

	actions, _ = h.HandleKey(runes("m"), loadedContext(3, 3, browser.StatusResolved))
	assert.Empty(t, actions, "no more pages")
}

func TestNormalModeActions(t *testing.T) {
	h := New(types.DefaultKeyMap())
	ctx := loadedContext(1, 3, browser.StatusResolved)

	tests := []struct {
		key  tea.KeyMsg
		want types.Action
	}{
		{runes("j"), types.NavigateAction{Direction: "down"}},
		{tea.KeyMsg{Type: tea.KeyUp}, types.NavigateAction{Direction: "up"}},
		{runes("G"), types.NavigateAction{Direction: "end"}},
		{runes("r"), types.ReloadAction{}},
		{tea.KeyMsg{Type: tea.KeyEnter}, types.OpenDetailsAction{Index: 1}},
		{tea.KeyMsg{Type: tea.KeyEsc}, types.ClearQueryAction{}},
		{runes("?"), types.ToggleHelpAction{}},
		{runes("q"), types.QuitAction{Force: false}},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, types.QuitAction{Force: true}},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			actions, _ := h.HandleKey(tt.key, ctx)
			require.Len(t, actions, 1)
			assert.Equal(t, tt.want, actions[0])
		})
	}
}

func TestEscWithoutQueryIsIgnored(t *testing.T) {
	h := New(types.DefaultKeyMap())
	ctx := loadedContext(1, 3, browser.StatusResolved)
	ctx.State.Query = ""

	actions, cmd := h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	assert.Empty(t, actions)
	assert.Nil(t, cmd)
}
