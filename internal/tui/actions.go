package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/postboard/internal/board"
	"github.com/studiowebux/postboard/internal/types"
	"github.com/studiowebux/postboard/internal/version"
)

// requestContext derives a per-read context that also ends when the TUI quits
func (m *Model) requestContext() (context.Context, context.CancelFunc) {
	if m.requestTimeout > 0 {
		return context.WithTimeout(m.ctx, m.requestTimeout)
	}
	return context.WithCancel(m.ctx)
}

// loadPosts reads the whole collection in the background
func (m *Model) loadPosts() tea.Cmd {
	src := m.source
	ctx, cancel := m.requestContext()
	return func() tea.Msg {
		defer cancel()
		if src == nil {
			return postsLoadedMsg{err: fmt.Errorf("no posts source configured")}
		}
		posts, err := src.List(ctx)
		return postsLoadedMsg{posts: posts, err: err}
	}
}

// reloadPosts discards the session changes and reads the collection again
func (m *Model) reloadPosts() tea.Cmd {
	m.loading = true
	m.statusMsg = "Reloading posts..."
	return tea.Batch(m.loadPosts(), m.spinner.Tick)
}

// fetchDetail reads one post and tags the response with tok
func (m *Model) fetchDetail(tok board.Token, id int) tea.Cmd {
	src := m.source
	ctx, cancel := m.requestContext()
	return func() tea.Msg {
		defer cancel()
		if src == nil {
			return detailLoadedMsg{token: tok, id: id, err: fmt.Errorf("no posts source configured")}
		}
		post, err := src.Get(ctx, id)
		return detailLoadedMsg{token: tok, id: id, post: post, err: err}
	}
}

// viewDetail starts a detail read of the selected post
func (m *Model) viewDetail() tea.Cmd {
	post, ok := m.selectedPost()
	if !ok {
		return nil
	}

	tok := m.ctrl.BeginDetail(post.ID)
	m.statusMsg = fmt.Sprintf("Loading post %d...", post.ID)
	return tea.Batch(m.fetchDetail(tok, post.ID), m.spinner.Tick)
}

// enterMode leaves the list for mode. A detail read still in flight is
// dropped so its response cannot replace the new mode.
func (m *Model) enterMode(mode Mode) {
	if m.ctrl.CancelDetail() {
		m.statusMsg = ""
	}
	m.mode = mode
}

// openEdit opens post in the edit modal
func (m *Model) openEdit(post types.Post) tea.Cmd {
	m.ctrl.OpenEdit(post)
	m.mode = ModeEdit
	return m.loadDraftIntoForm()
}

// saveEdit writes the edit form back into the collection
func (m *Model) saveEdit() tea.Cmd {
	detail, _ := m.ctrl.Detail()
	updated, err := m.ctrl.SaveEdit()
	m.resetForm()
	m.mode = ModeNormal
	if err != nil {
		return m.setErrorMessage(err.Error())
	}

	m.searchInput.SetValue("")
	if !updated {
		return m.setErrorMessage(fmt.Sprintf("Post %d no longer exists", detail.ID))
	}
	m.selectPost(detail.ID)
	return m.setStatusMessage(fmt.Sprintf("Post %d updated", detail.ID))
}

// closeModal discards the modal and any unsaved edit
func (m *Model) closeModal() {
	m.ctrl.CloseModal()
	m.resetForm()
	m.mode = ModeNormal
}

// openAddForm shows the add form with the current draft
func (m *Model) openAddForm() tea.Cmd {
	m.enterMode(ModeAdd)
	return m.loadDraftIntoForm()
}

// submitAddForm appends the draft as a new post
func (m *Model) submitAddForm() tea.Cmd {
	m.syncDraft()
	post := m.ctrl.AddPost(m.ctrl.Draft())
	m.resetForm()
	m.mode = ModeNormal
	m.searchInput.SetValue("")
	m.selectPost(post.ID)
	return m.setStatusMessage(fmt.Sprintf("Created post %d", post.ID))
}

// confirmDelete asks before deleting the selected post
func (m *Model) confirmDelete() {
	post, ok := m.selectedPost()
	if !ok {
		return
	}
	m.deleteTargetID = post.ID
	m.enterMode(ModeDeleteConfirm)
}

func (m *Model) deletePost() tea.Cmd {
	id := m.deleteTargetID
	m.deleteTargetID = 0
	m.mode = ModeNormal

	if !m.ctrl.DeletePost(id) {
		return m.setErrorMessage(fmt.Sprintf("Post %d not found", id))
	}
	m.clampCursor()
	return m.setStatusMessage(fmt.Sprintf("Deleted post %d", id))
}

// applySearch filters the list with the search input
func (m *Model) applySearch() {
	m.ctrl.Search(m.searchInput.Value())
	m.cursor, m.offset = 0, 0
}

// clearSearch drops the filter
func (m *Model) clearSearch() {
	m.searchInput.SetValue("")
	m.applySearch()
}

// copyBody copies the body of the post in the modal
func (m *Model) copyBody() tea.Cmd {
	post, ok := m.ctrl.Detail()
	if !ok {
		return nil
	}
	copyText := m.copyText
	return func() tea.Msg {
		if err := copyText(post.Body); err != nil {
			return errorMsg(fmt.Sprintf("Failed to copy to clipboard: %v", err))
		}
		return clipboardMsg{}
	}
}

// checkVersion asks the release feed for a newer version
func (m *Model) checkVersion() tea.Cmd {
	ctx := m.ctx
	current := m.version
	return func() tea.Msg {
		update, err := version.CheckForUpdate(ctx, version.ReleasesURL, current)
		if err != nil {
			return versionCheckMsg{err: err}
		}
		return versionCheckMsg{
			available:     update.Available,
			latestVersion: update.Latest,
			url:           update.URL,
		}
	}
}

// selectedPost returns the post under the cursor in the filtered view
func (m *Model) selectedPost() (types.Post, bool) {
	visible := m.ctrl.Filtered()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return types.Post{}, false
	}
	return visible[m.cursor], true
}

// selectPost moves the cursor to id if it is visible
func (m *Model) selectPost(id int) {
	for i, p := range m.ctrl.Filtered() {
		if p.ID == id {
			m.cursor = i
			m.adjustScrollOffset()
			return
		}
	}
	m.clampCursor()
}

func (m *Model) navigate(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.Filtered())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.adjustScrollOffset()
}

// adjustScrollOffset keeps the cursor inside the visible window
func (m *Model) adjustScrollOffset() {
	height := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+height {
		m.offset = m.cursor - height + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// loadDraftIntoForm copies the controller draft into the inputs and focuses the title
func (m *Model) loadDraftIntoForm() tea.Cmd {
	draft := m.ctrl.Draft()
	m.titleInput.SetValue(draft.Title)
	m.bodyInput.SetValue(draft.Body)
	m.formField = fieldTitle
	m.bodyInput.Blur()
	return m.titleInput.Focus()
}

// syncDraft mirrors the inputs into the controller draft
func (m *Model) syncDraft() {
	m.ctrl.SetDraft(types.Draft{
		Title: m.titleInput.Value(),
		Body:  m.bodyInput.Value(),
	})
}

func (m *Model) resetForm() {
	m.titleInput.Reset()
	m.bodyInput.Reset()
	m.titleInput.Blur()
	m.bodyInput.Blur()
	m.formField = fieldTitle
}

// switchField moves focus between the title and body inputs
func (m *Model) switchField() tea.Cmd {
	if m.formField == fieldTitle {
		m.formField = fieldBody
		m.titleInput.Blur()
		return m.bodyInput.Focus()
	}
	m.formField = fieldTitle
	m.bodyInput.Blur()
	return m.titleInput.Focus()
}
