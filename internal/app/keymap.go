package app

// Key binding constants used in handleKey.
const (
	KeyQuit      = "q"
	KeyCtrlC     = "ctrl+c"
	KeyEnter     = "enter"
	KeyEscape    = "esc"
	KeySpace     = " "
	KeyImport    = "i"
	KeyMode      = "m"
	KeySignOut   = "s"
	KeyPlay      = "p"
	KeyDiscard   = "d"
	KeyRetry     = "r"
	KeyBack      = "b"
	KeyNew       = "n"
	KeyExportTXT = "e"
	KeyExportRpt = "x"
	KeyTab       = "tab"
)
