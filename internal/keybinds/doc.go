/*
Package keybinds provides customizable keyboard binding management.

# Key Concepts

Context Hierarchy:
  - Global: Bindings available everywhere (ctrl+c)
  - Normal: The post list
  - Search, Form: The id search input and the add form
  - Detail, Edit: The post modal in view and edit mode
  - History, Help, Confirm: Secondary modals

Keys shadow from specific context to global. If a key is bound in a
specific context, it overrides the global binding.

Action System:
  - Actions are constants (ActionQuit, ActionViewDetail, etc.)
  - Keys map to actions within contexts
  - Same action can have different keys in different contexts

# Configuration File Format

Overrides live in ~/.postboard/keybinds.json. Comments are allowed:

	{
	  "version": "1.0",
	  "normal": {
	    // open the detail with space as well as enter
	    "space": "view_detail",
	    "x": "delete_post"
	  },
	  "edit": {
	    "ctrl+w": "save_edit"
	  }
	}

# Multi-Key Sequences

A key bound to go_to_top_prepare starts a two-key sequence; "gg" goes
to the top of the list.

# Validation

The validator reports unknown action names, keys bound twice in one
section, rebinding of ctrl+c, and shadowing of global bindings
(warnings, not errors).

# Thread Safety

The Registry is not synchronized. Build it before the TUI starts and
only read from it afterwards.
*/
package keybinds
