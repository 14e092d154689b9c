package poller

import (
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

const esc = 0x1b

// DecodeKey decodes the first key press in b. It returns the key, how many
// bytes it used, and whether the bytes formed a key the UI understands.
// n is 0 when b only holds the start of a sequence.
func DecodeKey(b []byte) (key tea.Key, n int, ok bool) {
	if len(b) == 0 {
		return tea.Key{}, 0, false
	}

	switch c := b[0]; {
	case c == esc:
		return decodeEscape(b)
	case c == '\r' || c == '\n':
		return tea.Key{Type: tea.KeyEnter}, 1, true
	case c == '\t':
		return tea.Key{Type: tea.KeyTab}, 1, true
	case c == 0x7f || c == 0x08:
		return tea.Key{Type: tea.KeyBackspace}, 1, true
	case c < 0x20:
		// Control keys share their ASCII code with bubbletea's key types.
		return tea.Key{Type: tea.KeyType(c)}, 1, true
	case c == ' ':
		return tea.Key{Type: tea.KeySpace, Runes: []rune{' '}}, 1, true
	}

	r, size := utf8.DecodeRune(b)
	if r == utf8.RuneError && size <= 1 {
		if !utf8.FullRune(b) {
			return tea.Key{}, 0, false
		}
		return tea.Key{}, 1, false
	}
	return tea.Key{Type: tea.KeyRunes, Runes: []rune{r}}, size, true
}

var arrowKeys = map[byte]tea.KeyType{
	'A': tea.KeyUp,
	'B': tea.KeyDown,
	'C': tea.KeyRight,
	'D': tea.KeyLeft,
	'H': tea.KeyHome,
	'F': tea.KeyEnd,
}

func decodeEscape(b []byte) (tea.Key, int, bool) {
	if len(b) == 1 {
		return tea.Key{Type: tea.KeyEsc}, 1, true
	}

	switch b[1] {
	case '[', 'O':
		if len(b) == 2 {
			return tea.Key{}, 0, false
		}
		if t, ok := arrowKeys[b[2]]; ok {
			return tea.Key{Type: t}, 3, true
		}
		// Skip any other CSI sequence up to its final byte.
		for i := 2; i < len(b); i++ {
			if b[i] >= 0x40 && b[i] <= 0x7e {
				return tea.Key{}, i + 1, false
			}
		}
		return tea.Key{}, 0, false
	case esc:
		return tea.Key{Type: tea.KeyEsc}, 1, true
	}

	key, n, ok := DecodeKey(b[1:])
	if n == 0 {
		return tea.Key{}, 0, false
	}
	key.Alt = true
	return key, n + 1, ok
}
