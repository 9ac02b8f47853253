package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"cpw-router/internal/app"
	"cpw-router/ui/canvas"
	"cpw-router/ui/dialogs"
)

// RoutesPanel lists route definitions and builds them.
type RoutesPanel struct {
	state  *app.State
	canvas *canvas.FloorplanCanvas
	window fyne.Window

	list      *widget.List
	status    *widget.Label
	selected  int
	container fyne.CanvasObject
}

// NewRoutesPanel creates the routes panel.
func NewRoutesPanel(state *app.State, fc *canvas.FloorplanCanvas) *RoutesPanel {
	rp := &RoutesPanel{
		state:    state,
		canvas:   fc,
		selected: -1,
	}

	rp.list = widget.NewList(
		func() int {
			return len(rp.state.Routes)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("route")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			def := rp.state.Routes[id]
			label := obj.(*widget.Label)
			mark := " "
			if rp.state.Built[def.ID] != nil {
				mark = "*"
			}
			label.SetText(fmt.Sprintf("%s %s: %s -> %s", mark, def.ID, def.StartPin, def.EndPin))
		},
	)
	rp.list.OnSelected = func(id widget.ListItemID) {
		rp.selected = id
		rp.state.Emit(app.EventSelectionChanged, rp.state.Routes[id].ID)
	}

	rp.status = widget.NewLabel("")
	rp.status.Wrapping = fyne.TextWrapWord

	addBtn := widget.NewButton("Add...", rp.onAdd)
	removeBtn := widget.NewButton("Remove", rp.onRemove)
	buildBtn := widget.NewButton("Build", rp.onBuild)
	buildAllBtn := widget.NewButton("Build All", rp.onBuildAll)

	buttons := container.NewHBox(addBtn, removeBtn, buildBtn, buildAllBtn)
	rp.container = container.NewBorder(buttons, rp.status, nil, nil, rp.list)

	state.On(app.EventRoutesChanged, func(interface{}) { rp.Reload() })
	state.On(app.EventRouteBuilt, func(interface{}) { rp.list.Refresh() })

	return rp
}

// SetWindow sets the parent window for dialogs.
func (rp *RoutesPanel) SetWindow(win fyne.Window) {
	rp.window = win
}

// Container returns the panel container.
func (rp *RoutesPanel) Container() fyne.CanvasObject {
	return rp.container
}

// Reload refreshes the list from state.
func (rp *RoutesPanel) Reload() {
	rp.selected = -1
	rp.list.UnselectAll()
	rp.list.Refresh()
}

func (rp *RoutesPanel) onAdd() {
	if rp.window == nil {
		return
	}
	dialogs.ShowRouteDialog(rp.window, rp.state, func(def *app.RouteDef) {
		if err := rp.state.AddRoute(def); err != nil {
			dialog.ShowError(err, rp.window)
			return
		}
		rp.status.SetText("Added " + def.ID)
	})
}

func (rp *RoutesPanel) onRemove() {
	if rp.selected < 0 || rp.selected >= len(rp.state.Routes) {
		return
	}
	rp.state.RemoveRoute(rp.state.Routes[rp.selected].ID)
}

func (rp *RoutesPanel) onBuild() {
	if rp.selected < 0 || rp.selected >= len(rp.state.Routes) {
		return
	}
	id := rp.state.Routes[rp.selected].ID
	if _, err := rp.state.BuildRoute(id); err != nil {
		rp.status.SetText(err.Error())
		return
	}
	rp.status.SetText("Built " + id)
}

func (rp *RoutesPanel) onBuildAll() {
	errs := rp.state.BuildAllRoutes()
	if len(errs) == 0 {
		rp.status.SetText(fmt.Sprintf("Built %d routes", len(rp.state.Routes)))
		return
	}
	text := fmt.Sprintf("%d of %d failed:", len(errs), len(rp.state.Routes))
	for _, err := range errs {
		text += "\n" + err.Error()
	}
	rp.status.SetText(text)
}
