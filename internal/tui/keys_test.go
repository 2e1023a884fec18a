package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/postboard/internal/board"
	"github.com/studiowebux/postboard/internal/history"
	"github.com/studiowebux/postboard/internal/types"
)

// detailFromCmd runs the batch returned by viewDetail and picks the detail response
func detailFromCmd(t *testing.T, cmd tea.Cmd) detailLoadedMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}

	cmds := []tea.Cmd{cmd}
	if batch, ok := cmd().(tea.BatchMsg); ok {
		cmds = batch
	}
	for _, c := range cmds {
		if c == nil {
			continue
		}
		if msg, ok := c().(detailLoadedMsg); ok {
			return msg
		}
	}
	t.Fatal("no detail read in the command")
	return detailLoadedMsg{}
}

func visibleIDs(m *Model) []int {
	var out []int
	for _, p := range m.ctrl.Filtered() {
		out = append(out, p.ID)
	}
	return out
}

func TestKeys_Navigation(t *testing.T) {
	m, _ := CreateTestModel(t)

	PressKeys(m, "j", "j")
	AssertModelField(t, "cursor after jj", m.cursor, 2)

	PressKeys(m, "k")
	AssertModelField(t, "cursor after k", m.cursor, 1)

	PressKeys(m, "G")
	AssertModelField(t, "cursor after G", m.cursor, 4)

	PressKeys(m, "down")
	AssertModelField(t, "cursor clamped", m.cursor, 4)

	PressKeys(m, "g", "g")
	AssertModelField(t, "cursor after gg", m.cursor, 0)
}

func TestKeys_Quit(t *testing.T) {
	m, _ := CreateTestModel(t)

	cmd := PressKeys(m, "q")
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestKeys_ForceQuitFromForm(t *testing.T) {
	m, _ := CreateTestModel(t)
	PressKeys(m, "a")

	cmd := PressKeys(m, "ctrl+c")
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should return tea.Quit")
	}
}

func TestKeys_SearchFiltersWhileTyping(t *testing.T) {
	m, _ := CreateTestModel(t)

	PressKeys(m, "/")
	AssertModelField(t, "mode", m.mode, ModeSearch)

	TypeText(m, "3")
	ids := visibleIDs(m)
	if len(ids) != 1 || ids[0] != 3 {
		t.Fatalf("visible ids = %v, want [3]", ids)
	}

	PressKeys(m, "enter")
	AssertModelField(t, "mode after enter", m.mode, ModeNormal)
	AssertModelField(t, "query kept", m.ctrl.Query(), "3")

	// esc on the list clears the filter
	PressKeys(m, "esc")
	AssertModelField(t, "query cleared", m.ctrl.Query(), "")
	AssertModelField(t, "visible", len(visibleIDs(m)), 5)
}

func TestKeys_SearchCancel(t *testing.T) {
	m, _ := CreateTestModel(t)

	PressKeys(m, "/")
	TypeText(m, "2")
	PressKeys(m, "esc")

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "filter active", m.ctrl.Filter().IsActive(), false)
	AssertModelField(t, "input", m.searchInput.Value(), "")
}

func TestKeys_SearchNonInteger(t *testing.T) {
	m, _ := CreateTestModel(t)

	PressKeys(m, "/")
	TypeText(m, "x1")

	AssertModelField(t, "visible", len(visibleIDs(m)), 0)
	AssertModelField(t, "valid", m.ctrl.Filter().IsValid(), false)
	AssertModelField(t, "collection untouched", len(m.ctrl.Collection()), 5)
}

func TestKeys_AddPost(t *testing.T) {
	m, _ := CreateTestModel(t)

	PressKeys(m, "a")
	AssertModelField(t, "mode", m.mode, ModeAdd)

	TypeText(m, "hello")
	PressKeys(m, "tab")
	AssertModelField(t, "formField", m.formField, fieldBody)
	TypeText(m, "world")
	PressKeys(m, "ctrl+s")

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "collection size", len(m.ctrl.Collection()), 6)

	post, ok := m.ctrl.Find(6)
	if !ok {
		t.Fatal("post 6 should exist")
	}
	AssertModelField(t, "title", post.Title, "hello")
	AssertModelField(t, "body", post.Body, "world")
	AssertModelField(t, "cursor on new post", m.cursor, 5)
	AssertModelField(t, "draft reset", m.ctrl.Draft().IsEmpty(), true)
	AssertModelField(t, "statusMsg", m.statusMsg, "Created post 6")
}

func TestKeys_AddPostClearsFilter(t *testing.T) {
	m, _ := CreateTestModel(t)

	PressKeys(m, "/")
	TypeText(m, "2")
	PressKeys(m, "enter", "a")
	TypeText(m, "new")
	PressKeys(m, "ctrl+s")

	AssertModelField(t, "filter active", m.ctrl.Filter().IsActive(), false)
	AssertModelField(t, "search input", m.searchInput.Value(), "")
	AssertModelField(t, "visible", len(visibleIDs(m)), 6)
}

func TestKeys_AddPostEmptyAllowed(t *testing.T) {
	m, _ := CreateTestModel(t)

	PressKeys(m, "a", "ctrl+s")

	post, ok := m.ctrl.Find(6)
	if !ok {
		t.Fatal("an empty post should still be created")
	}
	AssertModelField(t, "title", post.Title, "")
	AssertModelField(t, "body", post.Body, "")
}

func TestKeys_AddFormEscKeepsDraft(t *testing.T) {
	m, _ := CreateTestModel(t)

	PressKeys(m, "a")
	TypeText(m, "dr")
	PressKeys(m, "esc")

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "collection size", len(m.ctrl.Collection()), 5)
	AssertModelField(t, "draft title", m.ctrl.Draft().Title, "dr")

	PressKeys(m, "a")
	AssertModelField(t, "form restored", m.titleInput.Value(), "dr")
}

func TestKeys_DeleteConfirm(t *testing.T) {
	m, _ := CreateTestModel(t)

	PressKeys(m, "j", "d")
	AssertModelField(t, "mode", m.mode, ModeDeleteConfirm)
	AssertModelField(t, "deleteTargetID", m.deleteTargetID, 2)
	if !strings.Contains(m.View(), "Delete post 2?") {
		t.Error("confirmation should name the post")
	}

	PressKeys(m, "n")
	AssertModelField(t, "mode after cancel", m.mode, ModeNormal)
	AssertModelField(t, "collection after cancel", len(m.ctrl.Collection()), 5)

	PressKeys(m, "d", "y")
	AssertModelField(t, "collection after delete", len(m.ctrl.Collection()), 4)
	if _, ok := m.ctrl.Find(2); ok {
		t.Error("post 2 should be gone")
	}
	AssertModelField(t, "statusMsg", m.statusMsg, "Deleted post 2")
}

func TestKeys_DeleteKeepsFilter(t *testing.T) {
	m, _ := CreateTestModel(t)

	PressKeys(m, "/")
	TypeText(m, "3")
	PressKeys(m, "enter", "d", "y")

	AssertModelField(t, "query", m.ctrl.Query(), "3")
	AssertModelField(t, "visible", len(visibleIDs(m)), 0)
	AssertModelField(t, "collection", len(m.ctrl.Collection()), 4)
}

func TestKeys_DeleteLastPostClampsCursor(t *testing.T) {
	m, _ := CreateTestModel(t)

	PressKeys(m, "G", "d", "y")
	AssertModelField(t, "cursor", m.cursor, 3)
}

func TestKeys_EditAndSave(t *testing.T) {
	m, _ := CreateTestModel(t)

	PressKeys(m, "e")
	AssertModelField(t, "mode", m.mode, ModeEdit)
	AssertModelField(t, "edit mode", m.ctrl.EditMode(), true)
	AssertModelField(t, "title loaded", m.titleInput.Value(), "post 1")
	AssertModelField(t, "body loaded", m.bodyInput.Value(), "body of post 1")

	m.titleInput.SetValue("renamed")
	PressKeys(m, "ctrl+s")

	post, _ := m.ctrl.Find(1)
	AssertModelField(t, "title", post.Title, "renamed")
	AssertModelField(t, "body", post.Body, "body of post 1")
	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "modal", m.ctrl.Modal(), board.ModalClosed)
	AssertModelField(t, "draft reset", m.ctrl.Draft().IsEmpty(), true)
}

func TestKeys_EditSaveClearsFilter(t *testing.T) {
	m, _ := CreateTestModel(t)

	PressKeys(m, "/")
	TypeText(m, "2")
	PressKeys(m, "enter", "e", "ctrl+s")

	AssertModelField(t, "filter active", m.ctrl.Filter().IsActive(), false)
	AssertModelField(t, "visible", len(visibleIDs(m)), 5)
	AssertModelField(t, "cursor on edited post", m.cursor, 1)
}

func TestKeys_EditDiscard(t *testing.T) {
	m, _ := CreateTestModel(t)

	PressKeys(m, "e")
	m.titleInput.SetValue("nope")
	PressKeys(m, "esc")

	post, _ := m.ctrl.Find(1)
	AssertModelField(t, "title", post.Title, "post 1")
	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "draft reset", m.ctrl.Draft().IsEmpty(), true)
	AssertModelField(t, "statusMsg", m.statusMsg, "Edit discarded")
}

func TestKeys_ViewDetail(t *testing.T) {
	m, src := CreateTestModel(t)
	src.Detail = map[int]types.Post{2: {ID: 2, Title: "from server", Body: "fresh"}}

	cmd := PressKeys(m, "j", "enter")
	AssertModelField(t, "pending", m.ctrl.DetailPending(), true)
	AssertModelField(t, "statusMsg", m.statusMsg, "Loading post 2...")

	m.Update(detailFromCmd(t, cmd))

	AssertModelField(t, "mode", m.mode, ModeDetail)
	post, _ := m.ctrl.Detail()
	AssertModelField(t, "detail title", post.Title, "from server")

	PressKeys(m, "esc")
	AssertModelField(t, "mode after close", m.mode, ModeNormal)
	AssertModelField(t, "modal after close", m.ctrl.Modal(), board.ModalClosed)
}

func TestKeys_ViewDetailCancelledBeforeResponse(t *testing.T) {
	m, _ := CreateTestModel(t)

	cmd := PressKeys(m, "enter")
	msg := detailFromCmd(t, cmd)

	PressKeys(m, "esc")
	AssertModelField(t, "pending", m.ctrl.DetailPending(), false)

	// The late response must not reopen the modal
	m.Update(msg)
	AssertModelField(t, "mode", m.mode, ModeNormal)
	if _, ok := m.ctrl.Detail(); ok {
		t.Error("stale response should be dropped")
	}
}

func TestKeys_AddFormSurvivesLateDetail(t *testing.T) {
	m, _ := CreateTestModel(t)

	msg := detailFromCmd(t, PressKeys(m, "enter"))
	PressKeys(m, "a")
	TypeText(m, "my draft")

	m.Update(msg)
	AssertModelField(t, "mode after response", m.mode, ModeAdd)
	AssertModelField(t, "modal after response", m.ctrl.Modal(), board.ModalClosed)

	PressKeys(m, "esc")
	AssertModelField(t, "mode after esc", m.mode, ModeNormal)
	AssertModelField(t, "draft kept", m.ctrl.Draft().Title, "my draft")
}

func TestKeys_LeavingListDropsPendingDetail(t *testing.T) {
	tests := []struct {
		name string
		key  string
		mode Mode
	}{
		{"search", "/", ModeSearch},
		{"help", "?", ModeHelp},
		{"delete confirm", "d", ModeDeleteConfirm},
		{"add form", "a", ModeAdd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := CreateTestModel(t)

			msg := detailFromCmd(t, PressKeys(m, "enter"))
			PressKeys(m, tt.key)
			AssertModelField(t, "pending", m.ctrl.DetailPending(), false)

			m.Update(msg)
			AssertModelField(t, "mode", m.mode, tt.mode)
			if _, ok := m.ctrl.Detail(); ok {
				t.Error("late response should be dropped")
			}
		})
	}
}

func TestKeys_ViewDetailOnEmptyView(t *testing.T) {
	m, _ := CreateTestModel(t)
	m.ctrl.Search("99")

	if cmd := PressKeys(m, "enter"); cmd != nil {
		t.Error("nothing to view on an empty list")
	}
	AssertModelField(t, "pending", m.ctrl.DetailPending(), false)
}

func TestKeys_EditFromDetail(t *testing.T) {
	m, src := CreateTestModel(t)
	src.Detail = map[int]types.Post{1: {ID: 1, Title: "server", Body: "server body"}}

	m.Update(detailFromCmd(t, PressKeys(m, "enter")))
	PressKeys(m, "e")

	AssertModelField(t, "mode", m.mode, ModeEdit)
	AssertModelField(t, "title", m.titleInput.Value(), "server")

	PressKeys(m, "ctrl+s")
	post, _ := m.ctrl.Find(1)
	AssertModelField(t, "saved title", post.Title, "server")
	AssertModelField(t, "saved body", post.Body, "server body")
}

func TestKeys_CopyBody(t *testing.T) {
	m, _ := CreateTestModel(t)

	var copied string
	m.copyText = func(s string) error {
		copied = s
		return nil
	}

	m.Update(detailFromCmd(t, PressKeys(m, "enter")))
	cmd := PressKeys(m, "c")
	if cmd == nil {
		t.Fatal("c should return a command")
	}
	m.Update(cmd())

	AssertModelField(t, "copied", copied, "body of post 1")
	AssertModelField(t, "statusMsg", m.statusMsg, "Body copied to clipboard")
}

func TestKeys_CopyBodyFailure(t *testing.T) {
	m, _ := CreateTestModel(t)
	m.copyText = func(string) error { return errors.New("no clipboard") }

	m.Update(detailFromCmd(t, PressKeys(m, "enter")))
	m.Update(PressKeys(m, "c")())

	if !strings.Contains(m.errorMsg, "no clipboard") {
		t.Errorf("errorMsg = %q", m.errorMsg)
	}
}

func TestKeys_Help(t *testing.T) {
	m, _ := CreateTestModel(t)

	PressKeys(m, "?")
	AssertModelField(t, "mode", m.mode, ModeHelp)
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help view should render")
	}

	PressKeys(m, "esc")
	AssertModelField(t, "mode after close", m.mode, ModeNormal)
}

func TestKeys_HistoryDisabled(t *testing.T) {
	m, _ := CreateTestModel(t)

	PressKeys(m, "H")
	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "statusMsg", m.statusMsg, "Fetch log disabled")
}

func TestKeys_History(t *testing.T) {
	mgr, err := history.NewManager(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	AssertNoError(t, mgr.Save(&types.FetchRequest{Method: "GET", URL: "http://x/posts"}, &types.FetchResult{Status: 200}))
	AssertNoError(t, mgr.Save(&types.FetchRequest{Method: "GET", URL: "http://x/posts/7"}, &types.FetchResult{Status: 404}))

	m, _ := CreateTestModelWithOptions(t, Options{History: mgr})

	cmd := PressKeys(m, "H")
	AssertModelField(t, "mode", m.mode, ModeHistory)
	m.Update(cmd())
	AssertModelField(t, "entries", len(m.history.entries), 2)
	if !strings.Contains(m.View(), "Fetch Log (2)") {
		t.Error("history modal should render")
	}

	// Fuzzy filter narrows the entries
	PressKeys(m, "/")
	TypeText(m, "posts/7")
	AssertModelField(t, "filtered", len(m.history.filtered), 1)

	PressKeys(m, "esc")
	AssertModelField(t, "filter cleared", len(m.history.filtered), 2)
	AssertModelField(t, "filtering", m.history.filtering, false)

	PressKeys(m, "C")
	AssertModelField(t, "mode", m.mode, ModeHistoryClearConfirm)
	cmd = PressKeys(m, "y")
	m.Update(cmd())

	AssertModelField(t, "mode after clear", m.mode, ModeHistory)
	AssertModelField(t, "entries after clear", len(m.history.entries), 0)
	AssertModelField(t, "statusMsg", m.statusMsg, "Cleared 2 fetch log entries")

	PressKeys(m, "esc")
	AssertModelField(t, "mode after close", m.mode, ModeNormal)
}

func historyModel(t *testing.T) *Model {
	t.Helper()
	mgr, err := history.NewManager(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	AssertNoError(t, mgr.Save(&types.FetchRequest{Method: "GET", URL: "http://x/posts"}, &types.FetchResult{Status: 200}))
	AssertNoError(t, mgr.Save(&types.FetchRequest{Method: "GET", URL: "http://x/posts/7"}, &types.FetchResult{Status: 404}))

	m, _ := CreateTestModelWithOptions(t, Options{History: mgr})
	m.Update(PressKeys(m, "H")())
	return m
}

func TestKeys_HistoryFilterPaste(t *testing.T) {
	m := historyModel(t)
	m.readClipboard = func() (string, error) { return "posts/7\n", nil }

	PressKeys(m, "/")
	cmd := PressKeys(m, "ctrl+v")
	if cmd == nil {
		t.Fatal("ctrl+v should return a command")
	}
	m.Update(cmd())

	AssertModelField(t, "filter", m.history.filterInput.Value(), "posts/7 ")
	AssertModelField(t, "filtered", len(m.history.filtered), 1)
	AssertModelField(t, "filtering", m.history.filtering, true)
}

func TestKeys_HistoryFilterPasteAtCursor(t *testing.T) {
	m := historyModel(t)
	m.readClipboard = func() (string, error) { return "/7", nil }

	PressKeys(m, "/")
	TypeText(m, "posts")
	m.Update(PressKeys(m, "ctrl+v")())

	AssertModelField(t, "filter", m.history.filterInput.Value(), "posts/7")
	AssertModelField(t, "cursor", m.history.filterInput.Position(), 7)
}

func TestKeys_HistoryFilterPasteAfterClose(t *testing.T) {
	m := historyModel(t)
	m.readClipboard = func() (string, error) { return "posts/7", nil }

	PressKeys(m, "/")
	cmd := PressKeys(m, "ctrl+v")
	PressKeys(m, "esc")
	m.Update(cmd())

	AssertModelField(t, "filter", m.history.filterInput.Value(), "")
	AssertModelField(t, "filtered", len(m.history.filtered), 2)
}

func TestKeys_HistoryFilterPasteFailure(t *testing.T) {
	m := historyModel(t)
	m.readClipboard = func() (string, error) { return "", errors.New("no clipboard") }

	PressKeys(m, "/")
	m.Update(PressKeys(m, "ctrl+v")())

	if !strings.Contains(m.errorMsg, "no clipboard") {
		t.Errorf("errorMsg = %q", m.errorMsg)
	}
	AssertModelField(t, "filter", m.history.filterInput.Value(), "")
}

func TestInit_ReturnsCommands(t *testing.T) {
	m := New(Options{Source: &StubSource{}})
	t.Cleanup(m.Cleanup)

	if m.Init() == nil {
		t.Error("Init should start loading posts")
	}
}
