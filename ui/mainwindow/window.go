// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"cpw-router/internal/app"
	"cpw-router/internal/chip"
	"cpw-router/internal/layout"
	"cpw-router/internal/version"
	"cpw-router/pkg/colorutil"
	"cpw-router/pkg/geometry"
	"cpw-router/ui/canvas"
	"cpw-router/ui/panels"
	"cpw-router/ui/prefs"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.FloorplanCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("CPW Router")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.syncScene()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewFloorplanCanvas()
	mw.canvas.SetShowGroundCut(mw.prefs.Bool(prefs.KeyShowGroundCut, true))

	mw.sidePanel = panels.NewSidePanel(mw.state, mw.canvas)
	mw.sidePanel.SetWindow(mw.Window)

	mw.statusBar = widget.NewLabel("Ready")

	mw.canvas.OnLeftClick(func(p geometry.Point2D) {
		mw.updateStatus(fmt.Sprintf("(%.3f, %.3f) mm", p.X, p.Y))
	})

	toolbar := container.NewHBox(
		widget.NewLabel("Zoom:"),
		widget.NewButton("-", mw.canvas.ZoomOut),
		widget.NewButton("+", mw.canvas.ZoomIn),
		widget.NewButton("Fit", mw.canvas.FitToWindow),
	)

	canvasArea := container.NewBorder(toolbar, nil, nil, nil, mw.canvas.Container())

	split := container.NewHSplit(mw.sidePanel.Container(), canvasArea)
	split.SetOffset(0.25)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil, nil,
		split,
	)

	mw.SetContent(content)
	mw.Resize(fyne.NewSize(
		float32(mw.prefs.Float(prefs.KeyWindowWidth, 1200)),
		float32(mw.prefs.Float(prefs.KeyWindowHeight, 800)),
	))
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", mw.onNewProject),
		fyne.NewMenuItem("Open Project...", mw.onOpenProject),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Floorplan Scan...", mw.onImportScan),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Project", mw.onSaveProject),
		fyne.NewMenuItem("Save Project As...", mw.onSaveProjectAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut),
		fyne.NewMenuItem("Fit to Window", mw.canvas.FitToWindow),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Toggle Ground Cutouts", mw.onToggleGroundCut),
	)

	routesMenu := fyne.NewMenu("Routes",
		fyne.NewMenuItem("Build All", mw.onBuildAll),
	)

	var dieItems []*fyne.MenuItem
	for _, name := range chip.ListSpecs() {
		specName := name
		dieItems = append(dieItems, fyne.NewMenuItem(specName, func() {
			mw.onSelectDie(specName)
		}))
	}
	dieMenu := fyne.NewMenu("Die", dieItems...)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, routesMenu, dieMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventProjectLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("CPW Router - " + filepath.Base(path))
			mw.updateStatus("Project loaded: " + path)
		}
		mw.sidePanel.Reload()
		mw.syncScene()
	})

	mw.state.On(app.EventProjectSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("CPW Router - " + filepath.Base(path))
			mw.updateStatus("Saved: " + path)
		}
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})

	mw.state.On(app.EventRouteBuilt, func(interface{}) { mw.syncScene() })
	mw.state.On(app.EventRoutesChanged, func(interface{}) { mw.syncScene() })
	mw.state.On(app.EventLayoutChanged, func(interface{}) { mw.syncScene() })
	mw.state.On(app.EventFloorplanImported, func(data interface{}) {
		if n, ok := data.(int); ok {
			mw.updateStatus(fmt.Sprintf("Imported %d components", n))
		}
		mw.sidePanel.Reload()
		mw.syncScene()
	})
}

// syncScene rebuilds the floorplan scene from application state.
func (mw *MainWindow) syncScene() {
	scene := &canvas.Scene{
		DieOutline: mw.state.ChipSpec.Outline(),
		Fiducials:  mw.state.ChipSpec.Fiducials,
	}

	for _, comp := range mw.state.Layout.Components {
		sc := canvas.SceneComponent{
			ID:        comp.ID,
			Bounds:    comp.Bounds,
			Footprint: comp.Footprint,
			Imported:  comp.Imported,
		}
		for _, pin := range comp.Pins {
			sc.Pins = append(sc.Pins, canvas.ScenePin{
				Name:     pin.Name,
				Position: pin.Position,
				Normal:   pin.Normal,
			})
		}
		scene.Components = append(scene.Components, sc)
	}

	for i, def := range mw.state.Routes {
		built := mw.state.Built[def.ID]
		if built == nil {
			for _, a := range def.Options.Anchors {
				scene.Anchors = append(scene.Anchors, a.Position)
			}
			continue
		}
		scene.Routes = append(scene.Routes, canvas.SceneRoute{
			ID:       def.ID,
			Path:     built.Path,
			Elements: built.Elements,
			Color:    colorutil.RouteColor(i),
		})
	}

	mw.canvas.SetScene(scene)
}

func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) lastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastProject)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(filepath.Dir(path)))
	if err != nil {
		return nil
	}
	return listable
}

// Menu action handlers

func (mw *MainWindow) onNewProject() {
	mw.state.Layout = layout.NewRegistry()
	mw.state.Routes = nil
	mw.state.Built = map[string]*app.BuiltRoute{}
	mw.state.ProjectPath = ""
	mw.state.SetModified(false)
	mw.SetTitle("CPW Router - New Project")
	mw.sidePanel.Reload()
	mw.syncScene()
}

func (mw *MainWindow) onOpenProject() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		if err := mw.state.LoadProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefs.KeyLastProject, path)
		_ = mw.prefs.Save()
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".chipproj"}))
	if loc := mw.lastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onImportScan() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.updateStatus("Importing " + filepath.Base(path) + "...")
		if err := mw.state.ImportFloorplan(path); err != nil {
			dialog.ShowError(err, mw.Window)
			mw.updateStatus("Import failed")
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".tif", ".tiff", ".jpg", ".jpeg"}))
	fd.Show()
}

func (mw *MainWindow) onSaveProject() {
	if mw.state.ProjectPath == "" {
		mw.onSaveProjectAs()
		return
	}
	if err := mw.state.SaveProject(mw.state.ProjectPath); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveProjectAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".chipproj" {
			path += ".chipproj"
		}
		if err := mw.state.SaveProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefs.KeyLastProject, path)
		_ = mw.prefs.Save()
	}, mw.Window)
	fd.Show()
}

func (mw *MainWindow) onBuildAll() {
	errs := mw.state.BuildAllRoutes()
	if len(errs) == 0 {
		mw.updateStatus(fmt.Sprintf("Built %d routes", len(mw.state.Routes)))
		return
	}
	mw.updateStatus(fmt.Sprintf("%d routes failed; see Routes panel", len(errs)))
}

func (mw *MainWindow) onToggleGroundCut() {
	show := !mw.prefs.Bool(prefs.KeyShowGroundCut, true)
	mw.prefs.SetBool(prefs.KeyShowGroundCut, show)
	_ = mw.prefs.Save()
	mw.canvas.SetShowGroundCut(show)
}

func (mw *MainWindow) onSelectDie(name string) {
	spec := chip.GetSpec(name)
	if spec == nil {
		return
	}
	mw.state.ChipSpec = spec
	mw.state.Project.DieSpec = name
	mw.prefs.SetString(prefs.KeyRecentDieSpec, name)
	_ = mw.prefs.Save()
	mw.state.SetModified(true)
	mw.syncScene()
	mw.updateStatus("Die: " + name)
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About",
		fmt.Sprintf("CPW Router %s\nBuilt %s (%s)",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
