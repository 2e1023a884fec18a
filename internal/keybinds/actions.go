package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal    Context = "global"     // Available everywhere
	ContextNormal    Context = "normal"     // Post list
	ContextSearch    Context = "search"     // Id search input
	ContextForm      Context = "form"       // Add post form
	ContextDetail    Context = "detail"     // Detail modal, view mode
	ContextEdit      Context = "edit"       // Detail modal, edit mode
	ContextHistory   Context = "history"    // Fetch log browser
	ContextHelp      Context = "help"       // Help viewer
	ContextTextInput Context = "text_input" // Text input (applies to all text inputs)
	ContextConfirm   Context = "confirm"    // Confirmation dialogs
)

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)

	// Navigation actions
	ActionNavigateUp     Action = "navigate_up"       // Move up one item
	ActionNavigateDown   Action = "navigate_down"     // Move down one item
	ActionPageUp         Action = "page_up"           // Move up one page
	ActionPageDown       Action = "page_down"         // Move down one page
	ActionGoToTop        Action = "go_to_top"         // Go to top
	ActionGoToBottom     Action = "go_to_bottom"      // Go to bottom
	ActionGoToTopPrepare Action = "go_to_top_prepare" // First 'g' in 'gg' sequence

	// Post list actions
	ActionViewDetail Action = "view_detail" // Fetch and show the selected post
	ActionEditPost   Action = "edit_post"   // Edit the selected post in place
	ActionDeletePost Action = "delete_post" // Delete the selected post (with confirm)
	ActionAddPost    Action = "add_post"    // Open the add form
	ActionReload     Action = "reload"      // Read the collection again

	// Search actions
	ActionOpenSearch  Action = "open_search"  // Open search input
	ActionSearchClear Action = "search_clear" // Clear search

	// Text input actions
	ActionTextSubmit    Action = "text_submit"     // Submit text input
	ActionTextCancel    Action = "text_cancel"     // Cancel text input
	ActionTextPaste     Action = "text_paste"      // Paste from clipboard
	ActionSwitchField   Action = "switch_field"    // Next form field
	ActionSwitchFieldUp Action = "switch_field_up" // Previous form field

	// Modal actions
	ActionCloseModal      Action = "close_modal"       // Close current modal
	ActionSaveEdit        Action = "save_edit"         // Save the edited post
	ActionCopyToClipboard Action = "copy_to_clipboard" // Copy post body
	ActionConfirm         Action = "confirm"           // Confirm action (y/Y)
	ActionCancel          Action = "cancel"            // Cancel action (n/N)

	// Modal launchers (Normal mode)
	ActionOpenHistory Action = "open_history" // Open fetch log browser
	ActionOpenHelp    Action = "open_help"    // Open help viewer

	// History actions
	ActionHistoryFilter Action = "history_filter" // Fuzzy filter entries
	ActionHistoryClear  Action = "history_clear"  // Clear the fetch log

	// Other actions
	ActionNoOp Action = "noop" // No operation (ignore key)
)

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

var actionInfos = map[Action]ActionInfo{
	ActionQuit:            {ActionQuit, "Quit application", "Global"},
	ActionQuitForce:       {ActionQuitForce, "Force quit", "Global"},
	ActionNavigateUp:      {ActionNavigateUp, "Move up", "Navigation"},
	ActionNavigateDown:    {ActionNavigateDown, "Move down", "Navigation"},
	ActionPageUp:          {ActionPageUp, "Page up", "Navigation"},
	ActionPageDown:        {ActionPageDown, "Page down", "Navigation"},
	ActionGoToTop:         {ActionGoToTop, "Go to top", "Navigation"},
	ActionGoToBottom:      {ActionGoToBottom, "Go to bottom", "Navigation"},
	ActionViewDetail:      {ActionViewDetail, "View post", "Posts"},
	ActionEditPost:        {ActionEditPost, "Edit post", "Posts"},
	ActionDeletePost:      {ActionDeletePost, "Delete post", "Posts"},
	ActionAddPost:         {ActionAddPost, "Add post", "Posts"},
	ActionReload:          {ActionReload, "Reload posts", "Posts"},
	ActionOpenSearch:      {ActionOpenSearch, "Search by id", "Posts"},
	ActionSearchClear:     {ActionSearchClear, "Clear search", "Posts"},
	ActionSaveEdit:        {ActionSaveEdit, "Save changes", "Detail"},
	ActionSwitchField:     {ActionSwitchField, "Next field", "Detail"},
	ActionCopyToClipboard: {ActionCopyToClipboard, "Copy body", "Detail"},
	ActionCloseModal:      {ActionCloseModal, "Close", "Detail"},
	ActionOpenHistory:     {ActionOpenHistory, "Fetch log", "Information"},
	ActionOpenHelp:        {ActionOpenHelp, "Help", "Information"},
	ActionHistoryFilter:   {ActionHistoryFilter, "Filter fetch log", "Information"},
	ActionHistoryClear:    {ActionHistoryClear, "Clear fetch log", "Information"},
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	if info, ok := actionInfos[action]; ok {
		return info
	}

	return ActionInfo{action, string(action), "Unknown"}
}

// IsKnownAction reports whether action is one the application handles
func IsKnownAction(action Action) bool {
	if _, ok := actionInfos[action]; ok {
		return true
	}
	switch action {
	case ActionGoToTopPrepare, ActionTextSubmit, ActionTextCancel, ActionTextPaste,
		ActionSwitchField, ActionSwitchFieldUp, ActionConfirm, ActionCancel, ActionNoOp:
		return true
	}
	return false
}

// IsGlobalAction returns true if the action is available in all contexts
func IsGlobalAction(action Action) bool {
	return action == ActionQuitForce
}
