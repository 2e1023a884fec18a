package keybinds

import (
	"reflect"
	"testing"
)

func TestRegistry_Match(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		name    string
		context Context
		key     string
		want    Action
		found   bool
	}{
		{"normal enter views", ContextNormal, "enter", ActionViewDetail, true},
		{"normal delete", ContextNormal, "d", ActionDeletePost, true},
		{"detail edit", ContextDetail, "e", ActionEditPost, true},
		{"edit save", ContextEdit, "ctrl+s", ActionSaveEdit, true},
		{"global fallback", ContextEdit, "ctrl+c", ActionQuitForce, true},
		{"unbound", ContextNormal, "z", "", false},
		{"q closes help", ContextHelp, "q", ActionCloseModal, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Match(tt.context, tt.key)
			if got != tt.want || ok != tt.found {
				t.Errorf("Match(%s, %q) = %q, %v; want %q, %v", tt.context, tt.key, got, ok, tt.want, tt.found)
			}
		})
	}
}

func TestRegistry_MatchMultiKey(t *testing.T) {
	r := NewDefaultRegistry()

	action, complete, partial := r.MatchMultiKey(ContextNormal, "g")
	if action != "" || complete || !partial {
		t.Fatalf("first g = %q, %v, %v; want partial", action, complete, partial)
	}

	action, complete, partial = r.MatchMultiKey(ContextNormal, "g")
	if action != ActionGoToTop || !complete || partial {
		t.Fatalf("second g = %q, %v, %v; want go_to_top", action, complete, partial)
	}

	// A broken sequence matches nothing and resets
	r.MatchMultiKey(ContextNormal, "g")
	if action, complete, _ = r.MatchMultiKey(ContextNormal, "x"); complete || action != "" {
		t.Errorf("g x = %q, %v; want no match", action, complete)
	}
	if action, complete, _ = r.MatchMultiKey(ContextNormal, "j"); action != ActionNavigateDown || !complete {
		t.Errorf("j = %q, %v; want navigate_down", action, complete)
	}
}

func TestRegistry_ClearMultiKeyState(t *testing.T) {
	r := NewDefaultRegistry()
	r.MatchMultiKey(ContextNormal, "g")
	r.ClearMultiKeyState(ContextNormal)

	_, _, partial := r.MatchMultiKey(ContextNormal, "g")
	if !partial {
		t.Error("g after clear should start a new sequence")
	}
}

func TestRegistry_GetBindingString(t *testing.T) {
	r := NewDefaultRegistry()

	if got := r.GetBindingString(ContextNormal, ActionNavigateDown); got != "down, j" {
		t.Errorf("GetBindingString() = %q, want %q", got, "down, j")
	}
	if got := r.GetBindingString(ContextNormal, ActionSaveEdit); got != "unbound" {
		t.Errorf("GetBindingString() = %q, want unbound", got)
	}
	if got := r.GetBindingString(ContextDetail, ActionQuitForce); got != "ctrl+c" {
		t.Errorf("global fallback = %q, want ctrl+c", got)
	}
}

func TestRegistry_UnbindAndHasBinding(t *testing.T) {
	r := NewDefaultRegistry()
	r.Unbind(ContextNormal, ActionDeletePost)

	if r.HasBinding(ContextNormal, "d") {
		t.Error("d should be unbound")
	}
	if !r.HasBinding(ContextNormal, "ctrl+c") {
		t.Error("ctrl+c should resolve through global")
	}
}

func TestRegistry_ListBindings(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.Register(ContextConfirm, "y", ActionConfirm)
	r.Register(ContextConfirm, "n", ActionCancel)

	want := []Binding{
		{Key: "n", Action: ActionCancel, Context: ContextConfirm},
		{Key: "y", Action: ActionConfirm, Context: ContextConfirm},
		{Key: "ctrl+c", Action: ActionQuitForce, Context: ContextGlobal},
	}
	if got := r.ListBindings(ContextConfirm); !reflect.DeepEqual(got, want) {
		t.Errorf("ListBindings() = %v, want %v", got, want)
	}
}

func TestRegistry_CloneIsIndependent(t *testing.T) {
	r := NewDefaultRegistry()
	clone := r.Clone()
	clone.Register(ContextNormal, "d", ActionNoOp)

	if action, _ := r.Match(ContextNormal, "d"); action != ActionDeletePost {
		t.Errorf("original changed: %q", action)
	}
}

func TestDefaultRegistry_IsValid(t *testing.T) {
	result := NewValidator().ValidateRegistry(NewDefaultRegistry())
	if result.HasErrors() || result.HasWarnings() {
		t.Errorf("default registry has issues:\n%s", result.String())
	}
}

func TestGetActionInfo(t *testing.T) {
	if info := GetActionInfo(ActionViewDetail); info.Category != "Posts" {
		t.Errorf("category = %q, want Posts", info.Category)
	}
	if info := GetActionInfo(Action("nope")); info.Category != "Unknown" {
		t.Errorf("category = %q, want Unknown", info.Category)
	}
}
