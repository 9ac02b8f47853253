// Package panels provides UI panels for the application.
package panels

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"cpw-router/internal/app"
	"cpw-router/ui/canvas"
)

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	state     *app.State
	canvas    *canvas.FloorplanCanvas
	container *container.AppTabs

	routesPanel     *RoutesPanel
	componentsPanel *ComponentsPanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State, fc *canvas.FloorplanCanvas) *SidePanel {
	sp := &SidePanel{
		state:  state,
		canvas: fc,
	}

	sp.routesPanel = NewRoutesPanel(state, fc)
	sp.componentsPanel = NewComponentsPanel(state)

	sp.container = container.NewAppTabs(
		container.NewTabItem("Routes", sp.routesPanel.Container()),
		container.NewTabItem("Components", sp.componentsPanel.Container()),
	)

	return sp
}

// SetWindow passes the parent window to panels that open dialogs.
func (sp *SidePanel) SetWindow(win fyne.Window) {
	sp.routesPanel.SetWindow(win)
}

// Container returns the side panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// Reload refreshes all panels from the current state.
func (sp *SidePanel) Reload() {
	sp.routesPanel.Reload()
	sp.componentsPanel.Reload()
}
