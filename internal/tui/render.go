package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"} // Dark green / Bright green
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"} // Dark red / Bright red
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"} // Dark goldenrod / Yellow
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#0000ff"} // Dark blue / Blue
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"} // Dark gray / Light gray
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"} // Dark cyan / Cyan
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// renderMain renders the post list and the status bar
func (m *Model) renderMain() string {
	listWidth := m.width - 2

	header := styleTitle.Render("Posts")
	if m.ctrl.Filter().IsActive() {
		header += styleSubtle.Render(fmt.Sprintf("  filtered by id %q", m.ctrl.Query()))
	}

	body := m.renderPostList(listWidth-2, m.listHeight())
	listBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(listWidth).
		Height(m.listHeight() + 1).
		Render(header + "\n" + body)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		listBox,
		m.renderStatusBar(),
	)
}

// renderPostList renders the visible window of the filtered view
func (m *Model) renderPostList(width, height int) string {
	if empty := m.emptyListMessage(); empty != "" {
		return empty
	}

	visible := m.ctrl.Filtered()
	end := m.offset + height
	if end > len(visible) {
		end = len(visible)
	}

	var lines []string
	for i := m.offset; i < end; i++ {
		p := visible[i]
		id := fmt.Sprintf("#%-*d", IDColumnWidth-1, p.ID)
		title := p.Title
		if title == "" {
			title = styleSubtle.Render("(untitled)")
		}
		line := ansi.Truncate(id+title, width, "…")

		if i == m.cursor {
			pad := width - lipgloss.Width(line)
			if pad > 0 {
				line += strings.Repeat(" ", pad)
			}
			line = styleSelected.Render(line)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// emptyListMessage explains an empty filtered view; it is empty when there are rows
func (m *Model) emptyListMessage() string {
	switch {
	case m.loading:
		return m.spinner.View() + " Loading posts..."
	case m.ctrl.LoadError() != nil:
		return styleError.Render(fmt.Sprintf("Failed to load posts: %v", m.ctrl.LoadError())) +
			"\n\n" + styleSubtle.Render("Press r to retry")
	case len(m.ctrl.Filtered()) > 0:
		return ""
	case !m.ctrl.Filter().IsValid():
		return styleWarning.Render(fmt.Sprintf("Not a valid id: %q", m.ctrl.Query()))
	case m.ctrl.Filter().IsActive():
		return styleSubtle.Render(fmt.Sprintf("No post with id %s", strings.TrimSpace(m.ctrl.Query())))
	default:
		return styleSubtle.Render("No posts. Press a to add one")
	}
}

// renderStatusBar renders the status bar at the bottom
func (m *Model) renderStatusBar() string {
	total := len(m.ctrl.Collection())
	shown := len(m.ctrl.Filtered())

	// Left side - counts
	left := fmt.Sprintf("Posts: %d", total)
	if m.ctrl.Filter().IsActive() {
		left = fmt.Sprintf("Posts: %d/%d", shown, total)
	}
	if m.ctrl.DetailPending() {
		left += " " + m.spinner.View()
	}

	// Right side - messages or input
	right := ""
	switch m.mode {
	case ModeSearch:
		right = m.searchInput.View()
	default:
		if m.errorMsg != "" {
			right = styleError.Render(m.errorMsg)
		} else if m.statusMsg != "" {
			right = m.statusMsg
			if isSuccessMessage(m.statusMsg) {
				right = styleSuccess.Render(m.statusMsg)
			}
		} else {
			right = styleSubtle.Render("Press / to search | ? for help | q to quit")
		}
	}

	// Center spacing
	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}

	return left + strings.Repeat(" ", spacing) + right
}

func isSuccessMessage(msg string) bool {
	for _, word := range []string{"Created", "updated", "Deleted", "copied", "Loaded", "Cleared"} {
		if strings.Contains(msg, word) {
			return true
		}
	}
	return false
}

// listHeight calculates the rows available for the post list
func (m *Model) listHeight() int {
	h := m.height - MainViewHeightOffset
	if h < 1 {
		return 1
	}
	return h
}

// updateViewport resizes the viewports after a terminal resize
func (m *Model) updateViewport() {
	m.helpView.Width = m.width - ModalWidthMarginNarrow - ViewportPaddingHorizontal
	m.helpView.Height = m.height - ModalHeightMargin - ModalOverheadLines - 2
	if m.helpView.Height < 1 {
		m.helpView.Height = 1
	}

	formWidth := min(FormWidth, m.width-ModalWidthMarginNarrow) - ViewportPaddingHorizontal
	if formWidth > 10 {
		m.titleInput.Width = formWidth
		m.bodyInput.SetWidth(formWidth)
	}

	m.adjustScrollOffset()

	switch m.mode {
	case ModeDetail:
		m.updateDetailView()
	case ModeHistory:
		m.updateHistoryView()
	}
}

// wrapText wraps text to width cells, breaking at spaces when possible and
// inside words otherwise. Widths are measured in cells, not bytes.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Wrap(text, width, "")
}
