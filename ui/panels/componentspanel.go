package panels

import (
	"fmt"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"cpw-router/internal/app"
	"cpw-router/internal/layout"
)

// ComponentsPanel shows the die layout as a tree of components and pins.
type ComponentsPanel struct {
	state *app.State

	tree      *widget.Tree
	container fyne.CanvasObject
}

// NewComponentsPanel creates the components panel.
func NewComponentsPanel(state *app.State) *ComponentsPanel {
	cp := &ComponentsPanel{state: state}

	cp.tree = widget.NewTree(
		cp.childIDs,
		cp.isBranch,
		func(branch bool) fyne.CanvasObject {
			return widget.NewLabel("item")
		},
		cp.updateNode,
	)

	cp.container = container.NewBorder(
		widget.NewLabel("Die layout"), nil, nil, nil,
		cp.tree,
	)

	state.On(app.EventLayoutChanged, func(interface{}) { cp.Reload() })
	state.On(app.EventFloorplanImported, func(interface{}) { cp.Reload() })
	state.On(app.EventProjectLoaded, func(interface{}) { cp.Reload() })

	return cp
}

// Container returns the panel container.
func (cp *ComponentsPanel) Container() fyne.CanvasObject {
	return cp.container
}

// Reload refreshes the tree from state.
func (cp *ComponentsPanel) Reload() {
	cp.tree.Refresh()
}

func (cp *ComponentsPanel) childIDs(uid widget.TreeNodeID) []widget.TreeNodeID {
	if uid == "" {
		ids := make([]string, 0, len(cp.state.Layout.Components))
		for _, c := range cp.state.Layout.Components {
			ids = append(ids, c.ID)
		}
		sort.Strings(ids)
		return ids
	}

	comp := cp.state.Layout.Get(uid)
	if comp == nil {
		return nil
	}
	ids := make([]string, 0, len(comp.Pins))
	for _, pin := range comp.Pins {
		ids = append(ids, comp.ID+"."+pin.Name)
	}
	sort.Strings(ids)
	return ids
}

func (cp *ComponentsPanel) isBranch(uid widget.TreeNodeID) bool {
	if uid == "" {
		return true
	}
	return cp.state.Layout.Get(uid) != nil
}

func (cp *ComponentsPanel) updateNode(uid widget.TreeNodeID, branch bool, obj fyne.CanvasObject) {
	label := obj.(*widget.Label)

	if comp := cp.state.Layout.Get(uid); comp != nil {
		kind := comp.Kind
		if comp.Imported {
			kind += ", imported"
		}
		label.SetText(fmt.Sprintf("%s (%s)", comp.ID, kind))
		return
	}

	compID := layout.PinComponent(uid)
	if comp := cp.state.Layout.Get(compID); comp != nil {
		if pin := comp.Pin(uid[len(compID)+1:]); pin != nil {
			label.SetText(fmt.Sprintf("%s (%.3f, %.3f)", pin.Name, pin.Position.X, pin.Position.Y))
			return
		}
	}
	label.SetText(uid)
}
