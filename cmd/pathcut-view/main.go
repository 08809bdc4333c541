// pathcut-view — desktop toolpath viewer for generated G-code.
//
// Renders the XY plan view of a G-code program with a simulation slider:
// cuts in blue, rapids in red, plunges and retracts as markers.
//
// Build:
//
//	go build -o pathcut-view ./cmd/pathcut-view
//
// Usage:
//
//	pathcut-view part.nc
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/pathcut/internal/ui/widgets"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: pathcut-view <file.nc>")
		os.Exit(2)
	}
	path := os.Args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pathcut-view:", err)
		os.Exit(1)
	}

	application := app.NewWithID("com.piwi3910.pathcut")
	window := application.NewWindow("PathCut — " + filepath.Base(path))
	window.SetContent(widgets.RenderSimulation(string(data)))
	window.Resize(fyne.NewSize(760, 560))
	window.CenterOnScreen()
	window.ShowAndRun()
}
