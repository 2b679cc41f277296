package tuitest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	in := "\x1b[1mbold\x1b[0m   \n\x1b[31mred\x1b[0m\n\n"
	assert.Equal(t, "bold\nred", StripANSI(in))
}

func TestKeyMessages(t *testing.T) {
	assert.Equal(t, "d", Runes("d").String())
	assert.Equal(t, "down", Key(tea.KeyDown).String())
	assert.Equal(t, " ", Space().String())
	assert.Equal(t, tea.WindowSizeMsg{Width: 80, Height: 24}, WindowSize(80, 24))
}
