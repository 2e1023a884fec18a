package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/postboard/internal/keybinds"
)

// handleKeyPress routes a key to the handler of the current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// Global keys (work in all modes)
	if action, ok := m.keybinds.Match(keybinds.ContextGlobal, msg.String()); ok && action == keybinds.ActionQuitForce {
		m.Cleanup()
		return tea.Quit
	}

	switch m.mode {
	case ModeNormal:
		return m.handleNormalKeys(msg)
	case ModeSearch:
		return m.handleSearchKeys(msg)
	case ModeAdd:
		return m.handleAddKeys(msg)
	case ModeDetail:
		return m.handleDetailKeys(msg)
	case ModeEdit:
		return m.handleEditKeys(msg)
	case ModeDeleteConfirm:
		return m.handleDeleteConfirmKeys(msg)
	case ModeHistory:
		return m.handleHistoryKeys(msg)
	case ModeHistoryClearConfirm:
		return m.handleHistoryClearConfirmKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	}

	return nil
}

// handleNormalKeys handles keyboard input on the post list
func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok, partial := m.keybinds.MatchMultiKey(keybinds.ContextNormal, msg.String())
	if partial || !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuit:
		m.Cleanup()
		return tea.Quit

	case keybinds.ActionNavigateUp:
		m.navigate(-1)
	case keybinds.ActionNavigateDown:
		m.navigate(1)
	case keybinds.ActionPageUp:
		m.navigate(-ListPageSize)
	case keybinds.ActionPageDown:
		m.navigate(ListPageSize)
	case keybinds.ActionGoToTop:
		m.cursor = 0
		m.clampCursor()
	case keybinds.ActionGoToBottom:
		m.cursor = len(m.ctrl.Filtered()) - 1
		m.clampCursor()

	case keybinds.ActionViewDetail:
		return m.viewDetail()

	case keybinds.ActionEditPost:
		if post, ok := m.selectedPost(); ok {
			return m.openEdit(post)
		}

	case keybinds.ActionDeletePost:
		m.confirmDelete()

	case keybinds.ActionAddPost:
		return m.openAddForm()

	case keybinds.ActionReload:
		if !m.loading {
			return m.reloadPosts()
		}

	case keybinds.ActionOpenSearch:
		m.enterMode(ModeSearch)
		m.searchInput.CursorEnd()
		return m.searchInput.Focus()

	case keybinds.ActionSearchClear:
		// A pending detail read is cancelled first, the filter on the next press
		if m.ctrl.DetailPending() {
			m.ctrl.CloseModal()
			return m.setStatusMessage("Cancelled")
		}
		if m.ctrl.Filter().IsActive() {
			m.clearSearch()
		}

	case keybinds.ActionOpenHistory:
		return m.openHistory()

	case keybinds.ActionOpenHelp:
		m.enterMode(ModeHelp)
		m.helpView.GotoTop()
	}

	return nil
}

// handleSearchKeys handles the id search input; the list filters as you type
func (m *Model) handleSearchKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextSearch, msg.String()); ok {
		switch action {
		case keybinds.ActionTextSubmit:
			m.searchInput.Blur()
			m.mode = ModeNormal
			return nil
		case keybinds.ActionTextCancel:
			m.searchInput.Blur()
			m.clearSearch()
			m.mode = ModeNormal
			return nil
		}
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.applySearch()
	return cmd
}

// handleAddKeys handles the add form. Leaving with esc keeps the draft.
func (m *Model) handleAddKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextForm, msg.String()); ok {
		switch action {
		case keybinds.ActionTextSubmit:
			return m.submitAddForm()
		case keybinds.ActionTextCancel:
			m.syncDraft()
			m.titleInput.Blur()
			m.bodyInput.Blur()
			m.mode = ModeNormal
			return nil
		case keybinds.ActionSwitchField, keybinds.ActionSwitchFieldUp:
			return m.switchField()
		}
	}

	return m.updateFormInput(msg)
}

// handleDetailKeys handles the detail modal in view mode
func (m *Model) handleDetailKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextDetail, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal:
		m.closeModal()
	case keybinds.ActionEditPost:
		post, ok := m.ctrl.Detail()
		if !ok {
			return nil
		}
		m.ctrl.CloseModal()
		return m.openEdit(post)
	case keybinds.ActionCopyToClipboard:
		return m.copyBody()
	case keybinds.ActionNavigateUp:
		m.modalView.LineUp(1)
	case keybinds.ActionNavigateDown:
		m.modalView.LineDown(1)
	}

	return nil
}

// handleEditKeys handles the detail modal in edit mode
func (m *Model) handleEditKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextEdit, msg.String()); ok {
		switch action {
		case keybinds.ActionSaveEdit:
			m.syncDraft()
			return m.saveEdit()
		case keybinds.ActionCloseModal:
			m.closeModal()
			return m.setStatusMessage("Edit discarded")
		case keybinds.ActionSwitchField, keybinds.ActionSwitchFieldUp:
			return m.switchField()
		}
	}

	return m.updateFormInput(msg)
}

// updateFormInput forwards a key to the focused form field and mirrors the draft
func (m *Model) updateFormInput(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	if m.formField == fieldTitle {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.bodyInput, cmd = m.bodyInput.Update(msg)
	}
	m.syncDraft()
	return cmd
}

// handleDeleteConfirmKeys handles the delete confirmation
func (m *Model) handleDeleteConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextConfirm, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionConfirm:
		return m.deletePost()
	case keybinds.ActionCancel:
		m.deleteTargetID = 0
		m.mode = ModeNormal
	}
	return nil
}

// handleHelpKeys handles the help viewer
func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextHelp, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal:
		m.mode = ModeNormal
	case keybinds.ActionNavigateUp:
		m.helpView.LineUp(1)
	case keybinds.ActionNavigateDown:
		m.helpView.LineDown(1)
	}
	return nil
}
