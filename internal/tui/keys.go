package tui

// Key bindings of the accounts screen.
const (
	keyQuit    = "q"
	keyCtrlC   = "ctrl+c"
	keyEnter   = "enter"
	keyEsc     = "esc"
	keyTab     = "tab"
	keySlash   = "/"
	keySpace   = " "
	keyS       = "s"
	keyR       = "r"
	keyN       = "n"
	keyP       = "p"
	keyRight   = "right"
	keyLeft    = "left"
	keyU       = "u"
	keyA       = "a"
	keyRefresh = "ctrl+r"
)

// helpLine is the key legend of the list view.
const helpLine = "space select · a select page · u update · s sort · r reverse · n/p page · / filter · tab switch · ctrl+r refresh · q quit"
