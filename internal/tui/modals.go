package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/postboard/internal/keybinds"
)

// renderModalWithFooter renders a modal dialog with scrollable content and a fixed footer
func (m *Model) renderModalWithFooter(title, content, footer string, width, height int) string {
	return m.renderModalWithFooterAndScroll(title, content, footer, width, height, -1)
}

// renderModalWithFooterAndScroll renders a modal with footer and auto-scrolls to keep selectedLine visible
// Pass selectedLine=-1 to preserve existing scroll position
func (m *Model) renderModalWithFooterAndScroll(title, content, footer string, width, height, selectedLine int) string {
	maxWidth := m.width - ViewportPaddingHorizontal
	maxHeight := m.height - ModalHeightMarginSmall

	if width > maxWidth {
		width = maxWidth
	}
	if height > maxHeight {
		height = maxHeight
	}
	if width < 30 && m.width >= 30 {
		width = 30
	}
	if height < 8 && m.height >= 8 {
		height = 8
	}

	// Title (2 lines), padding (2) and border (2), plus 2 lines for a footer
	footerLines := 0
	if footer != "" {
		footerLines = 2
	}
	contentHeight := height - ModalOverheadLines - footerLines
	if contentHeight < 1 {
		contentHeight = height - ModalOverheadMinimal - footerLines
		if contentHeight < 1 {
			contentHeight = 1
		}
	}

	m.modalView.Width = width - ViewportPaddingHorizontal
	if m.modalView.Width < 10 {
		m.modalView.Width = 10
	}
	m.modalView.Height = contentHeight

	// Save scroll before SetContent resets it
	savedOffset := m.modalView.YOffset
	m.modalView.SetContent(content)

	if selectedLine >= 0 && m.modalView.Height > 0 {
		topVisible := savedOffset
		bottomVisible := savedOffset + m.modalView.Height - 1

		if selectedLine < topVisible {
			m.modalView.SetYOffset(selectedLine)
		} else if selectedLine > bottomVisible {
			m.modalView.SetYOffset(selectedLine - m.modalView.Height + 1)
		} else {
			m.modalView.SetYOffset(savedOffset)
		}
	} else {
		m.modalView.SetYOffset(savedOffset)
	}

	fullContent := styleTitle.Render(title) + "\n\n" + m.modalView.View()
	if footer != "" {
		fullContent += "\n\n" + styleSubtle.Render(footer)
	}

	modalBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(fullContent)

	// Nearly full screen, nothing to center
	if width >= m.width-2 || height >= m.height-1 {
		return modalBox
	}

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modalBox,
	)
}

// detailContent renders the post held by the controller snapshot
func (m *Model) detailContent(width int) string {
	post, ok := m.ctrl.Detail()
	if !ok {
		return styleSubtle.Render("No post selected")
	}

	var b strings.Builder
	b.WriteString(styleSubtle.Render(fmt.Sprintf("id %d", post.ID)))
	if post.UserID != 0 {
		b.WriteString(styleSubtle.Render(fmt.Sprintf(" | user %d", post.UserID)))
	}
	b.WriteString("\n\n")

	title := post.Title
	if title == "" {
		title = "(untitled)"
	}
	b.WriteString(styleWarning.Render(wrapText(title, width)))
	b.WriteString("\n\n")
	b.WriteString(wrapText(post.Body, width))

	return b.String()
}

// updateDetailView refreshes the detail modal content
func (m *Model) updateDetailView() {
	width := m.modalView.Width
	if width <= 0 {
		width = FormWidth - ViewportPaddingHorizontal
	}
	m.modalView.SetContent(m.detailContent(width))
}

// renderDetailModal renders the read-only post detail
func (m *Model) renderDetailModal() string {
	width := min(m.width-ModalWidthMargin, FormWidth+ViewportPaddingHorizontal)
	height := m.height - ModalHeightMargin

	footer := fmt.Sprintf("%s: Edit | %s: Copy body | ↑/↓: Scroll | %s: Close",
		m.keybinds.GetBindingString(keybinds.ContextDetail, keybinds.ActionEditPost),
		m.keybinds.GetBindingString(keybinds.ContextDetail, keybinds.ActionCopyToClipboard),
		m.keybinds.GetBindingString(keybinds.ContextDetail, keybinds.ActionCloseModal))

	post, _ := m.ctrl.Detail()
	content := m.detailContent(width - ViewportPaddingHorizontal*2)
	return m.renderModalWithFooter(fmt.Sprintf("Post %d", post.ID), content, footer, width, height)
}

// formContent renders the title input and body textarea with the focused field highlighted
func (m *Model) formContent() string {
	titleLabel := styleSubtle.Render("Title")
	bodyLabel := styleSubtle.Render("Body")
	if m.formField == fieldTitle {
		titleLabel = styleWarning.Render("Title")
	} else {
		bodyLabel = styleWarning.Render("Body")
	}

	return titleLabel + "\n" + m.titleInput.View() + "\n\n" + bodyLabel + "\n" + m.bodyInput.View()
}

// renderFormModal renders a form without the viewport so the inputs keep their cursors
func (m *Model) renderFormModal(title, footer string) string {
	width := min(m.width-ModalWidthMargin, FormWidth+ViewportPaddingHorizontal)

	fullContent := styleTitle.Render(title) + "\n\n" + m.formContent() + "\n\n" + styleSubtle.Render(footer)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGreen).
		Width(width).
		Padding(1, 2).
		Render(fullContent)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}

// renderEditModal renders the detail modal in edit mode
func (m *Model) renderEditModal() string {
	post, _ := m.ctrl.Detail()
	footer := fmt.Sprintf("%s: Switch field | %s: Save | %s: Discard",
		m.keybinds.GetBindingString(keybinds.ContextEdit, keybinds.ActionSwitchField),
		m.keybinds.GetBindingString(keybinds.ContextEdit, keybinds.ActionSaveEdit),
		m.keybinds.GetBindingString(keybinds.ContextEdit, keybinds.ActionCloseModal))
	return m.renderFormModal(fmt.Sprintf("Edit post %d", post.ID), footer)
}

// renderAddModal renders the add form
func (m *Model) renderAddModal() string {
	footer := fmt.Sprintf("%s: Switch field | %s: Create | %s: Back (keeps draft)",
		m.keybinds.GetBindingString(keybinds.ContextForm, keybinds.ActionSwitchField),
		m.keybinds.GetBindingString(keybinds.ContextForm, keybinds.ActionTextSubmit),
		m.keybinds.GetBindingString(keybinds.ContextForm, keybinds.ActionTextCancel))
	return m.renderFormModal("New post", footer)
}

// renderDeleteConfirmModal renders the delete confirmation dialog
func (m *Model) renderDeleteConfirmModal() string {
	title := "(untitled)"
	if post, ok := m.ctrl.Find(m.deleteTargetID); ok && post.Title != "" {
		title = post.Title
	}

	content := fmt.Sprintf("Delete post %d?\n\n%s\n\n%s",
		m.deleteTargetID,
		styleSubtle.Render(wrapText(title, 50)),
		styleWarning.Render("The post is removed from this session only."))

	return m.renderModalWithFooter("Confirm Delete", content, "y: Delete | n/ESC: Cancel", 60, 14)
}

// renderHelp renders the help screen
func (m *Model) renderHelp() string {
	title := styleTitle.Render("Keyboard Shortcuts")
	footer := "↑/↓ j/k: scroll | ESC/?: close"

	fullContent := title + "\n\n" + m.helpView.View() + "\n\n" + styleSubtle.Render(footer)

	helpView := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(m.width - ModalWidthMarginNarrow).
		Height(m.height - ModalHeightMargin).
		Padding(1, 2).
		Render(fullContent)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		helpView,
	)
}

// helpSections lists the help entries per context, read from the active registry
var helpSections = []struct {
	name    string
	context keybinds.Context
	actions []keybinds.Action
}{
	{"POSTS", keybinds.ContextNormal, []keybinds.Action{
		keybinds.ActionNavigateUp, keybinds.ActionNavigateDown,
		keybinds.ActionPageUp, keybinds.ActionPageDown,
		keybinds.ActionGoToTop, keybinds.ActionGoToBottom,
		keybinds.ActionViewDetail, keybinds.ActionEditPost,
		keybinds.ActionDeletePost, keybinds.ActionAddPost,
		keybinds.ActionReload, keybinds.ActionOpenHistory,
		keybinds.ActionOpenHelp, keybinds.ActionQuit,
	}},
	{"SEARCH", keybinds.ContextNormal, []keybinds.Action{
		keybinds.ActionOpenSearch, keybinds.ActionSearchClear,
	}},
	{"DETAIL", keybinds.ContextDetail, []keybinds.Action{
		keybinds.ActionEditPost, keybinds.ActionCopyToClipboard, keybinds.ActionCloseModal,
	}},
	{"ADD / EDIT", keybinds.ContextEdit, []keybinds.Action{
		keybinds.ActionSwitchField, keybinds.ActionSaveEdit, keybinds.ActionCloseModal,
	}},
	{"FETCH LOG", keybinds.ContextHistory, []keybinds.Action{
		keybinds.ActionHistoryFilter, keybinds.ActionHistoryClear, keybinds.ActionCloseModal,
	}},
}

// updateHelpView rebuilds the help text from the active keybindings
func (m *Model) updateHelpView() {
	var b strings.Builder

	b.WriteString("postboard - Keyboard Shortcuts\n")
	if m.version != "" {
		b.WriteString(styleSubtle.Render("version "+m.version) + "\n")
	}
	if m.updateAvailable {
		b.WriteString(styleSuccess.Render(fmt.Sprintf("Update available: %s (%s)", m.latestVersion, m.updateURL)) + "\n")
	}

	for _, section := range helpSections {
		b.WriteString("\n" + section.name + "\n")
		for _, action := range section.actions {
			keys := m.keybinds.GetBindingString(section.context, action)
			info := keybinds.GetActionInfo(action)
			b.WriteString(fmt.Sprintf("  %-16s %s\n", keys, info.Description))
		}
	}

	b.WriteString("\nNOTES\n")
	b.WriteString("  Search matches the exact post id; anything else shows no posts.\n")
	b.WriteString("  Adding or saving a post clears the search so the change is visible.\n")
	b.WriteString("  Changes stay in this session; nothing is written to the server.\n")

	m.helpView.SetContent(b.String())
}
