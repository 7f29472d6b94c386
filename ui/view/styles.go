package view

import (
	"github.com/soocke/focus-meter-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// InitStyles activates the base theme and the application background.
func InitStyles() {
	_ = ActivateTheme("azure light")
	App.Configure(Background(theme.ColorBg))
}
