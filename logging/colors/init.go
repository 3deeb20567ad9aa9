package colors

// init enables ANSI coloring. Unix terminals support it out of the box, Windows needs a console mode check.
func init() {
	EnableColor()
}
