package tui

// UI Layout Constants
// These constants define spacing, margins, and dimensions for the TUI layout

const (
	// Modal Dimensions - Standard margins for modal dialogs
	ModalWidthMargin       = 6  // Standard horizontal margin (m.width - 6)
	ModalHeightMargin      = 3  // Standard vertical margin (m.height - 3)
	ModalWidthMarginNarrow = 10 // Narrow horizontal margin for focused modals (m.width - 10)
	ModalHeightMarginSmall = 2  // Small vertical margin (m.height - 2)

	// Viewport Padding and Borders
	ViewportPaddingHorizontal = 4 // Horizontal padding (left + right)

	// Main view
	MainViewHeightOffset = 5 // title + header + borders + status bar
	IDColumnWidth        = 6 // "#1234 "
	ListPageSize         = 10

	// Modal Content Calculations
	ModalOverheadLines   = 6 // Title (2) + padding (2) + border (2)
	ModalOverheadMinimal = 4 // Border + title for minimal modals

	// Forms
	FormWidth       = 70 // Preferred width of the add/edit forms
	FormBodyHeight  = 8  // Lines of the body textarea
	TitleCharLimit  = 200
	StatusMaxLength = 100 // Footer messages longer than this are truncated

	// History
	HistoryLoadLimit = 200 // Newest entries shown in the fetch log modal
)
