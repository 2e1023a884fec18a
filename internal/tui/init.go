package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/postboard/internal/board"
	"github.com/studiowebux/postboard/internal/history"
	"github.com/studiowebux/postboard/internal/keybinds"
)

// Options wires the TUI to its collaborators
type Options struct {
	Source         board.Source
	History        *history.Manager // nil disables the fetch log modal
	Keybinds       *keybinds.Registry
	Version        string
	RequestTimeout time.Duration
	MessageTimeout time.Duration
	CheckUpdates   bool
}

// New creates a new TUI model
func New(opts Options) Model {
	registry := opts.Keybinds
	if registry == nil {
		registry = keybinds.NewDefaultRegistry()
	}

	ctx, cancel := context.WithCancel(context.Background())

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "post id"
	search.CharLimit = 20

	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = TitleCharLimit
	title.Width = FormWidth - ViewportPaddingHorizontal

	body := textarea.New()
	body.Placeholder = "Body"
	body.ShowLineNumbers = false
	body.CharLimit = 0
	body.SetWidth(FormWidth - ViewportPaddingHorizontal)
	body.SetHeight(FormBodyHeight)

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = styleWarning

	m := Model{
		ctrl:           board.New(),
		source:         opts.Source,
		historyManager: opts.History,
		keybinds:       registry,
		mode:           ModeNormal,
		version:        opts.Version,
		ctx:            ctx,
		cancel:         cancel,
		requestTimeout: opts.RequestTimeout,
		messageTimeout: opts.MessageTimeout,
		checkUpdates:   opts.CheckUpdates,
		loading:        true,
		searchInput:    search,
		titleInput:     title,
		bodyInput:      body,
		modalView:      viewport.New(80, 20),
		helpView:       viewport.New(80, 20),
		spinner:        spin,
		history:        newHistoryState(),
		copyText:       clipboard.WriteAll,
		readClipboard:  clipboard.ReadAll,
	}
	m.updateHelpView()

	return m
}

// Run starts the TUI
func Run(opts Options) error {
	m := New(opts)
	defer m.Cleanup()

	// Start TUI (pass pointer since Update uses pointer receiver)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}
