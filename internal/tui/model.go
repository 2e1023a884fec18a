package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog/log"
	"github.com/studiowebux/postboard/internal/board"
	"github.com/studiowebux/postboard/internal/history"
	"github.com/studiowebux/postboard/internal/keybinds"
	"github.com/studiowebux/postboard/internal/types"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeAdd
	ModeDetail
	ModeEdit
	ModeDeleteConfirm
	ModeHistory
	ModeHistoryClearConfirm
	ModeHelp
)

// Form fields of the add and edit forms
const (
	fieldTitle = iota
	fieldBody
)

// Model represents the TUI state
type Model struct {
	// Core state
	ctrl           *board.Controller
	source         board.Source
	historyManager *history.Manager
	keybinds       *keybinds.Registry
	mode           Mode
	version        string

	ctx    context.Context
	cancel context.CancelFunc

	requestTimeout time.Duration
	messageTimeout time.Duration
	checkUpdates   bool

	// Update notice
	updateAvailable bool
	latestVersion   string
	updateURL       string

	// Post list
	cursor int // Index into the filtered view
	offset int // Scroll offset of the list
	loading bool

	// Search, add and edit inputs
	searchInput textinput.Model
	titleInput  textinput.Model
	bodyInput   textarea.Model
	formField   int

	// Modals
	modalView      viewport.Model
	helpView       viewport.Model
	spinner        spinner.Model
	deleteTargetID int

	// Fetch log
	history historyState

	// UI state
	width        int
	height       int
	statusMsg    string
	errorMsg     string // Truncated error for footer
	fullErrorMsg string

	copyText      func(string) error
	readClipboard func() (string, error)
}

// Init initializes the TUI
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadPosts(), m.spinner.Tick}
	if m.checkUpdates {
		cmds = append(cmds, m.checkVersion())
	}
	return tea.Batch(cmds...)
}

// Cleanup cancels outstanding reads and closes the fetch log
func (m *Model) Cleanup() {
	if m.cancel != nil {
		m.cancel()
	}
	if m.historyManager != nil {
		if err := m.historyManager.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close history database")
		}
		m.historyManager = nil
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewport()

	case postsLoadedMsg:
		m.loading = false
		if err := m.ctrl.CompleteLoad(msg.posts, msg.err); err != nil {
			cmd = m.setErrorMessage(fmt.Sprintf("Failed to load posts: %v", err))
			break
		}
		m.searchInput.SetValue("")
		m.cursor, m.offset = 0, 0
		cmd = m.setStatusMessage(fmt.Sprintf("Loaded %d posts", len(m.ctrl.Collection())))

	case detailLoadedMsg:
		cmd = m.handleDetailLoaded(msg)

	case historyLoadedMsg:
		m.history.setEntries(msg.entries)
		m.updateHistoryView()

	case historyClearedMsg:
		m.history.setEntries(nil)
		m.mode = ModeHistory
		m.updateHistoryView()
		cmd = m.setStatusMessage(fmt.Sprintf("Cleared %d fetch log entries", msg.count))

	case clipboardMsg:
		cmd = m.setStatusMessage("Body copied to clipboard")

	case clipboardPasteMsg:
		m.pasteIntoHistoryFilter(msg.text)

	case versionCheckMsg:
		if msg.err == nil && msg.available {
			m.updateAvailable = true
			m.latestVersion = msg.latestVersion
			m.updateURL = msg.url
			m.updateHelpView()
		}

	case spinner.TickMsg:
		if m.loading || m.ctrl.DetailPending() {
			m.spinner, cmd = m.spinner.Update(msg)
		}

	case clearStatusMsg:
		m.statusMsg = ""

	case clearErrorMsg:
		m.errorMsg = ""
		m.fullErrorMsg = ""

	case errorMsg:
		m.loading = false
		cmd = m.setErrorMessage(string(msg))
	}

	return m, cmd
}

// handleDetailLoaded applies a detail response unless it was superseded
func (m *Model) handleDetailLoaded(msg detailLoadedMsg) tea.Cmd {
	err := m.ctrl.ResolveDetail(msg.token, msg.post, msg.err)
	if errors.Is(err, board.ErrStaleResponse) {
		return nil
	}
	if err != nil {
		return m.setErrorMessage(fmt.Sprintf("Failed to load post %d: %v", msg.id, err))
	}

	m.mode = ModeDetail
	m.modalView.GotoTop()
	m.updateDetailView()
	return nil
}

// View renders the TUI
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ModeHelp:
		return m.renderHelp()
	case ModeDetail:
		return m.renderDetailModal()
	case ModeEdit:
		return m.renderEditModal()
	case ModeAdd:
		return m.renderAddModal()
	case ModeDeleteConfirm:
		return m.renderDeleteConfirmModal()
	case ModeHistory:
		return m.renderHistory()
	case ModeHistoryClearConfirm:
		return m.renderHistoryClearConfirmation()
	default:
		return m.renderMain()
	}
}

// Custom message types
type postsLoadedMsg struct {
	posts []types.Post
	err   error
}

type detailLoadedMsg struct {
	token board.Token
	id    int
	post  types.Post
	err   error
}

type historyLoadedMsg struct {
	entries []types.HistoryEntry
}

type historyClearedMsg struct {
	count int
}

type clipboardMsg struct{}

type clipboardPasteMsg struct {
	text string
}

type versionCheckMsg struct {
	available     bool
	latestVersion string
	url           string
	err           error
}

type clearStatusMsg struct{}
type clearErrorMsg struct{}

type errorMsg string

// Helper methods for setting messages with optional timeout
func (m *Model) setStatusMessage(msg string) tea.Cmd {
	m.statusMsg = truncateMessage(msg)

	if m.messageTimeout > 0 {
		return tea.Tick(m.messageTimeout, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})
	}
	return nil
}

func (m *Model) setErrorMessage(msg string) tea.Cmd {
	m.fullErrorMsg = msg
	m.errorMsg = truncateMessage(msg)

	if m.messageTimeout > 0 {
		return tea.Tick(m.messageTimeout, func(time.Time) tea.Msg {
			return clearErrorMsg{}
		})
	}
	return nil
}

func truncateMessage(msg string) string {
	return ansi.Truncate(msg, StatusMaxLength, "...")
}
