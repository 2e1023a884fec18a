/*
Package tui implements the terminal user interface for postboard.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: Holds the board.Controller plus view state (cursor, inputs, modals)
  - Update: Processes messages and returns commands
  - View: Renders the current state to the terminal

# Key Components

  - model.go: Model struct, modes, message types, Update and View
  - keys.go: Keyboard input handling and keybind routing
  - actions.go: Side effects (remote reads, clipboard, fetch log)
  - render.go: Post list and status bar
  - modals.go: Detail, edit, add, delete and help modals
  - history_modal.go: Fetch log browser with fuzzy filter

# State Management

Post state lives in board.Controller. The model never keeps its own copy
of the visible posts; it asks the controller for Filtered() on every
render. Text inputs mirror into the controller draft on each keystroke.

# Threading Model

Update runs on Bubble Tea's event loop and is the only code touching the
controller. Remote reads run in tea.Cmd goroutines and come back as
postsLoadedMsg and detailLoadedMsg. A detail response carries the token
returned by BeginDetail, so a response that arrives after the user closed
or replaced the modal is dropped.
*/
package tui
