package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"shelf/internal/ui/input/types"
)

// SearchMode edits the product query. Every edit is reported so the model
// can debounce it.
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Search: ", ti),
	}
}
