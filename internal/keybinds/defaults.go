package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerNormalModeBindings(r)
	registerTextInputBindings(r)
	registerSearchBindings(r)
	registerFormBindings(r)
	registerDetailBindings(r)
	registerEditBindings(r)
	registerHistoryBindings(r)
	registerHelpBindings(r)
	registerConfirmBindings(r)

	return r
}

func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

func registerNormalModeBindings(r *Registry) {
	r.Register(ContextNormal, "q", ActionQuit)

	r.RegisterMultiple(ContextNormal, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextNormal, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextNormal, "pgup", ActionPageUp)
	r.Register(ContextNormal, "pgdown", ActionPageDown)
	r.Register(ContextNormal, "g", ActionGoToTopPrepare)
	r.RegisterMultiple(ContextNormal, []string{"gg", "home"}, ActionGoToTop)
	r.RegisterMultiple(ContextNormal, []string{"G", "end"}, ActionGoToBottom)

	r.Register(ContextNormal, "enter", ActionViewDetail)
	r.Register(ContextNormal, "e", ActionEditPost)
	r.Register(ContextNormal, "d", ActionDeletePost)
	r.Register(ContextNormal, "a", ActionAddPost)
	r.Register(ContextNormal, "r", ActionReload)
	r.Register(ContextNormal, "/", ActionOpenSearch)
	r.Register(ContextNormal, "esc", ActionSearchClear)

	r.Register(ContextNormal, "H", ActionOpenHistory)
	r.Register(ContextNormal, "?", ActionOpenHelp)
}

func registerTextInputBindings(r *Registry) {
	r.Register(ContextTextInput, "enter", ActionTextSubmit)
	r.Register(ContextTextInput, "esc", ActionTextCancel)
	r.RegisterMultiple(ContextTextInput, []string{"ctrl+v", "shift+insert"}, ActionTextPaste)
}

func registerSearchBindings(r *Registry) {
	r.Register(ContextSearch, "enter", ActionTextSubmit)
	r.Register(ContextSearch, "esc", ActionTextCancel)
}

func registerFormBindings(r *Registry) {
	r.Register(ContextForm, "tab", ActionSwitchField)
	r.Register(ContextForm, "shift+tab", ActionSwitchFieldUp)
	r.Register(ContextForm, "ctrl+s", ActionTextSubmit)
	r.Register(ContextForm, "esc", ActionTextCancel)
}

func registerDetailBindings(r *Registry) {
	r.RegisterMultiple(ContextDetail, []string{"esc", "q"}, ActionCloseModal)
	r.Register(ContextDetail, "e", ActionEditPost)
	r.Register(ContextDetail, "c", ActionCopyToClipboard)
	r.RegisterMultiple(ContextDetail, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextDetail, []string{"down", "j"}, ActionNavigateDown)
}

func registerEditBindings(r *Registry) {
	r.Register(ContextEdit, "esc", ActionCloseModal)
	r.Register(ContextEdit, "ctrl+s", ActionSaveEdit)
	r.Register(ContextEdit, "tab", ActionSwitchField)
	r.Register(ContextEdit, "shift+tab", ActionSwitchFieldUp)
}

func registerHistoryBindings(r *Registry) {
	r.RegisterMultiple(ContextHistory, []string{"esc", "q", "H"}, ActionCloseModal)
	r.RegisterMultiple(ContextHistory, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextHistory, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextHistory, "/", ActionHistoryFilter)
	r.Register(ContextHistory, "C", ActionHistoryClear)
}

func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"esc", "?", "q"}, ActionCloseModal)
	r.RegisterMultiple(ContextHelp, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextHelp, []string{"down", "j"}, ActionNavigateDown)
}

func registerConfirmBindings(r *Registry) {
	r.RegisterMultiple(ContextConfirm, []string{"y", "Y"}, ActionConfirm)
	r.RegisterMultiple(ContextConfirm, []string{"n", "N", "esc"}, ActionCancel)
}
