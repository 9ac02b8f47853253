// Package main provides the entry point for the CPW Router application.
package main

import (
	"log"
	"os"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"cpw-router/internal/app"
	"cpw-router/internal/version"
	"cpw-router/ui/mainwindow"
	"cpw-router/ui/prefs"
)

const appTitle = "CPW Router"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	fyneApp := fyneapp.NewWithID("cpw-router")

	appState := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)

	// Open a project given on the command line.
	if len(os.Args) > 1 {
		projectPath := os.Args[1]
		if err := appState.LoadProject(projectPath); err != nil {
			log.Printf("Failed to load project %s: %v", projectPath, err)
		}
	}

	setupHotReload(win)

	win.ShowAndRun()
}

// setupHotReload prompts for a restart when the binary is recompiled.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	reloader.OnNewBinary(func() {
		dialog.ShowConfirm("New Build",
			"A newer binary was found. Restart now?",
			func(restart bool) {
				if !restart {
					reloader.ResetBaseline()
					reloader.Start()
					return
				}
				if err := reloader.Restart(); err != nil {
					log.Printf("Restart failed: %v", err)
				}
			}, win.Window)
	})
	reloader.Start()
}
