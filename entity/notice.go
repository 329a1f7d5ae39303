package entity

// Notice is a short private message shown to the member who ran a command.
type Notice struct {
	Title       string
	Description string
	Color       int
}

// RGB packs a colour the way chat embeds expect it.
func RGB(r, g, b int) int {
	return r<<16 | g<<8 | b
}
