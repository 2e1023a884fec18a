package tui

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/postboard/internal/fixture"
	"github.com/studiowebux/postboard/internal/types"
)

// StubSource serves a fixed collection without a network
type StubSource struct {
	Posts   []types.Post
	ListErr error
	GetErr  error

	// Detail overrides what Get returns, keyed by id
	Detail map[int]types.Post
}

func (s *StubSource) List(ctx context.Context) ([]types.Post, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	return s.Posts, nil
}

func (s *StubSource) Get(ctx context.Context, id int) (types.Post, error) {
	if s.GetErr != nil {
		return types.Post{}, s.GetErr
	}
	if p, ok := s.Detail[id]; ok {
		return p, nil
	}
	for _, p := range s.Posts {
		if p.ID == id {
			return p, nil
		}
	}
	return types.Post{}, fmt.Errorf("post %d not found", id)
}

// CreateTestModel creates a Model over five generated posts, already loaded
func CreateTestModel(t *testing.T) (*Model, *StubSource) {
	t.Helper()
	return CreateTestModelWithOptions(t, Options{})
}

// CreateTestModelWithOptions is CreateTestModel with extra options; Source is
// replaced by a stub when unset
func CreateTestModelWithOptions(t *testing.T, opts Options) (*Model, *StubSource) {
	t.Helper()

	src, ok := opts.Source.(*StubSource)
	if !ok {
		src = &StubSource{Posts: fixture.Generate(5)}
		opts.Source = src
	}

	m := New(opts)
	t.Cleanup(m.Cleanup)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	posts, err := src.List(context.Background())
	m.Update(postsLoadedMsg{posts: posts, err: err})

	return &m, src
}

// Key builds a key message from its string form ("enter", "ctrl+s", "a")
func Key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+v":
		return tea.KeyMsg{Type: tea.KeyCtrlV}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// PressKeys sends each key through Update and returns the last command
func PressKeys(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(Key(k))
	}
	return cmd
}

// TypeText sends text one rune at a time
func TypeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

// AssertNoError verifies that an error is nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

// AssertError verifies that an error occurred
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Error("Expected error but got nil")
	}
}
