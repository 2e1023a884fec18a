package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
	"github.com/studiowebux/postboard/internal/executor"
	"github.com/studiowebux/postboard/internal/keybinds"
	"github.com/studiowebux/postboard/internal/types"
)

// historyState holds the fetch log browser state
type historyState struct {
	entries     []types.HistoryEntry
	filtered    []int // Indexes into entries, in display order
	index       int   // Index into filtered
	filterInput textinput.Model
	filtering   bool
}

func newHistoryState() historyState {
	input := textinput.New()
	input.Prompt = "Filter: "
	input.Placeholder = "method, url or status"
	input.CharLimit = 100

	return historyState{filterInput: input}
}

// setEntries replaces the entries and reapplies the filter
func (h *historyState) setEntries(entries []types.HistoryEntry) {
	h.entries = entries
	h.applyFilter()
}

// historySource adapts the entries to fuzzy.Source
type historySource []types.HistoryEntry

func (s historySource) String(i int) string {
	e := s[i]
	return fmt.Sprintf("%s %s %d", e.Method, e.URL, e.ResponseStatus)
}

func (s historySource) Len() int { return len(s) }

// applyFilter ranks the entries against the filter text; an empty filter keeps the load order
func (h *historyState) applyFilter() {
	query := strings.TrimSpace(h.filterInput.Value())
	h.filtered = h.filtered[:0]

	if query == "" {
		for i := range h.entries {
			h.filtered = append(h.filtered, i)
		}
	} else {
		for _, match := range fuzzy.FindFrom(query, historySource(h.entries)) {
			h.filtered = append(h.filtered, match.Index)
		}
	}

	if h.index >= len(h.filtered) {
		h.index = len(h.filtered) - 1
	}
	if h.index < 0 {
		h.index = 0
	}
}

// visible returns the entries that pass the filter
func (h *historyState) visible() []types.HistoryEntry {
	out := make([]types.HistoryEntry, 0, len(h.filtered))
	for _, i := range h.filtered {
		out = append(out, h.entries[i])
	}
	return out
}

func (h *historyState) move(delta int) {
	h.index += delta
	if h.index >= len(h.filtered) {
		h.index = len(h.filtered) - 1
	}
	if h.index < 0 {
		h.index = 0
	}
}

// openHistory shows the fetch log browser
func (m *Model) openHistory() tea.Cmd {
	if m.historyManager == nil {
		return m.setStatusMessage("Fetch log disabled")
	}
	m.enterMode(ModeHistory)
	m.history.index = 0
	m.modalView.GotoTop()
	return m.loadHistory()
}

// loadHistory reads the newest fetch log entries
func (m *Model) loadHistory() tea.Cmd {
	mgr := m.historyManager
	return func() tea.Msg {
		entries, err := mgr.Load(HistoryLoadLimit)
		if err != nil {
			return errorMsg(fmt.Sprintf("Failed to load fetch log: %v", err))
		}
		return historyLoadedMsg{entries: entries}
	}
}

// clearHistory deletes every fetch log entry
func (m *Model) clearHistory() tea.Cmd {
	mgr := m.historyManager
	return func() tea.Msg {
		count, err := mgr.GetCount()
		if err != nil {
			return errorMsg(fmt.Sprintf("Failed to count fetch log entries: %v", err))
		}
		if err := mgr.Clear(); err != nil {
			return errorMsg(fmt.Sprintf("Failed to clear fetch log: %v", err))
		}
		return historyClearedMsg{count: count}
	}
}

// handleHistoryKeys handles the fetch log browser
func (m *Model) handleHistoryKeys(msg tea.KeyMsg) tea.Cmd {
	if m.history.filtering {
		return m.handleHistoryFilterKeys(msg)
	}

	action, ok := m.keybinds.Match(keybinds.ContextHistory, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal:
		m.mode = ModeNormal
	case keybinds.ActionNavigateUp:
		m.history.move(-1)
		m.updateHistoryView()
	case keybinds.ActionNavigateDown:
		m.history.move(1)
		m.updateHistoryView()
	case keybinds.ActionHistoryFilter:
		m.history.filtering = true
		return m.history.filterInput.Focus()
	case keybinds.ActionHistoryClear:
		if len(m.history.entries) > 0 {
			m.mode = ModeHistoryClearConfirm
		}
	}
	return nil
}

// handleHistoryFilterKeys edits the fuzzy filter; enter keeps it, esc drops it
func (m *Model) handleHistoryFilterKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextTextInput, msg.String()); ok {
		switch action {
		case keybinds.ActionTextSubmit:
			m.history.filtering = false
			m.history.filterInput.Blur()
			return nil
		case keybinds.ActionTextCancel:
			m.history.filtering = false
			m.history.filterInput.Blur()
			m.history.filterInput.SetValue("")
			m.history.applyFilter()
			m.updateHistoryView()
			return nil
		case keybinds.ActionTextPaste:
			return m.pasteClipboard()
		}
	}

	var cmd tea.Cmd
	m.history.filterInput, cmd = m.history.filterInput.Update(msg)
	m.history.index = 0
	m.history.applyFilter()
	m.updateHistoryView()
	return cmd
}

// pasteClipboard reads the clipboard off the update loop
func (m *Model) pasteClipboard() tea.Cmd {
	read := m.readClipboard
	return func() tea.Msg {
		text, err := read()
		if err != nil {
			return errorMsg(fmt.Sprintf("Failed to paste from clipboard: %v", err))
		}
		return clipboardPasteMsg{text: text}
	}
}

// pasteIntoHistoryFilter inserts text at the filter cursor. Line breaks are
// dropped since the filter is a single line. A paste that lands after the
// filter was closed is ignored.
func (m *Model) pasteIntoHistoryFilter(text string) {
	if m.mode != ModeHistory || !m.history.filtering {
		return
	}
	text = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(text)
	if text == "" {
		return
	}

	value := []rune(m.history.filterInput.Value())
	pos := m.history.filterInput.Position()
	if pos > len(value) {
		pos = len(value)
	}
	pasted := []rune(text)
	merged := make([]rune, 0, len(value)+len(pasted))
	merged = append(merged, value[:pos]...)
	merged = append(merged, pasted...)
	merged = append(merged, value[pos:]...)

	m.history.filterInput.SetValue(string(merged))
	m.history.filterInput.SetCursor(pos + len(pasted))
	m.history.index = 0
	m.history.applyFilter()
	m.updateHistoryView()
}

// handleHistoryClearConfirmKeys handles the clear confirmation
func (m *Model) handleHistoryClearConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextConfirm, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionConfirm:
		return m.clearHistory()
	case keybinds.ActionCancel:
		m.mode = ModeHistory
	}
	return nil
}

// historyContent renders one line per visible entry
func (m *Model) historyContent() string {
	visible := m.history.visible()
	if len(visible) == 0 {
		if len(m.history.entries) > 0 {
			return styleSubtle.Render("No entries match the filter")
		}
		return styleSubtle.Render("No fetch log entries")
	}

	var b strings.Builder
	for i, entry := range visible {
		statusStyle := styleSuccess
		if !executor.IsSuccessStatus(entry.ResponseStatus) {
			statusStyle = styleError
		}
		status := fmt.Sprintf("%d", entry.ResponseStatus)
		if entry.ResponseStatus == 0 {
			status = "ERR"
		}

		timestamp := entry.Timestamp
		if len(timestamp) > 19 {
			timestamp = timestamp[:19]
		}

		line := fmt.Sprintf("%s %-4s %s %s %s",
			timestamp,
			entry.Method,
			statusStyle.Render(status),
			styleSubtle.Render(executor.FormatDuration(entry.Duration)),
			entry.URL)

		if i == m.history.index {
			line = styleSelected.Render(line)
		}
		b.WriteString(line + "\n")
	}

	if e := visible[m.history.index]; e.Error != "" {
		b.WriteString("\n" + styleError.Render(e.Error))
	}

	return b.String()
}

// updateHistoryView refreshes the fetch log content
func (m *Model) updateHistoryView() {
	m.modalView.SetContent(m.historyContent())
}

// renderHistory renders the fetch log browser
func (m *Model) renderHistory() string {
	modalWidth := m.width - ModalWidthMargin
	modalHeight := m.height - ModalHeightMargin

	var footer string
	if m.history.filtering {
		footer = m.history.filterInput.View() + fmt.Sprintf(" [%d results]", len(m.history.filtered))
	} else {
		footer = "/: Filter | ↑/↓ j/k: Navigate | C: Clear All | ESC/H/q: Close"
		if n := len(m.history.filtered); n > 0 {
			footer += fmt.Sprintf(" [%d/%d]", m.history.index+1, n)
		}
	}

	title := fmt.Sprintf("Fetch Log (%d)", len(m.history.entries))
	return m.renderModalWithFooterAndScroll(title, m.historyContent(), footer, modalWidth, modalHeight, m.history.index)
}

// renderHistoryClearConfirmation renders the clear confirmation dialog
func (m *Model) renderHistoryClearConfirmation() string {
	content := fmt.Sprintf("Delete all %d fetch log entries?\n\n%s",
		len(m.history.entries),
		styleWarning.Render("This cannot be undone."))
	return m.renderModalWithFooter("Clear Fetch Log", content, "y: Clear | n/ESC: Cancel", 60, 12)
}
