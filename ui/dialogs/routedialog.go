// Package dialogs provides application dialogs.
package dialogs

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"cpw-router/internal/app"
	"cpw-router/internal/route"
	"cpw-router/pkg/geometry"
)

// ShowRouteDialog asks for a new route definition and passes it to
// onDone when the user confirms.
func ShowRouteDialog(window fyne.Window, state *app.State, onDone func(*app.RouteDef)) {
	pins := allPinRefs(state)

	idEntry := widget.NewEntry()
	idEntry.SetPlaceHolder("bus1")

	startSelect := widget.NewSelectEntry(pins)
	endSelect := widget.NewSelectEntry(pins)

	anchorsEntry := widget.NewEntry()
	anchorsEntry.SetPlaceHolder("x,y; x,y; ...")

	leadInEntry := widget.NewEntry()
	leadInEntry.SetText(fmt.Sprintf("%g", state.Project.Settings.LeadLengthMM))
	leadOutEntry := widget.NewEntry()
	leadOutEntry.SetText(fmt.Sprintf("%g", state.Project.Settings.LeadLengthMM))

	avoidCheck := widget.NewCheck("Avoid collisions", nil)
	avoidCheck.SetChecked(state.Project.Settings.AvoidCollision)

	items := []*widget.FormItem{
		widget.NewFormItem("Route ID", idEntry),
		widget.NewFormItem("Start pin", startSelect),
		widget.NewFormItem("End pin", endSelect),
		widget.NewFormItem("Anchors (mm)", anchorsEntry),
		widget.NewFormItem("Lead-in (mm)", leadInEntry),
		widget.NewFormItem("Lead-out (mm)", leadOutEntry),
		widget.NewFormItem("", avoidCheck),
	}

	dialog.ShowForm("New Route", "Add", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}

		anchors, err := parseAnchors(anchorsEntry.Text)
		if err != nil {
			dialog.ShowError(err, window)
			return
		}
		leadIn, _ := strconv.ParseFloat(strings.TrimSpace(leadInEntry.Text), 64)
		leadOut, _ := strconv.ParseFloat(strings.TrimSpace(leadOutEntry.Text), 64)

		onDone(&app.RouteDef{
			ID:       strings.TrimSpace(idEntry.Text),
			StartPin: strings.TrimSpace(startSelect.Text),
			EndPin:   strings.TrimSpace(endSelect.Text),
			Options: route.Options{
				Anchors:        anchors,
				LeadIn:         leadIn,
				LeadOut:        leadOut,
				AvoidCollision: avoidCheck.Checked,
			},
		})
	}, window)
}

// parseAnchors reads "x,y; x,y" into ordered anchors.
func parseAnchors(text string) ([]route.Anchor, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	var anchors []route.Anchor
	for i, part := range strings.Split(text, ";") {
		coords := strings.Split(strings.TrimSpace(part), ",")
		if len(coords) != 2 {
			return nil, fmt.Errorf("anchor %d: expected x,y", i)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(coords[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("anchor %d: bad x: %w", i, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(coords[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("anchor %d: bad y: %w", i, err)
		}
		anchors = append(anchors, route.Anchor{
			Key:      strconv.Itoa(i),
			Position: geometry.Point2D{X: x, Y: y},
		})
	}
	return anchors, nil
}

func allPinRefs(state *app.State) []string {
	var refs []string
	for _, comp := range state.Layout.Components {
		for _, pin := range comp.Pins {
			refs = append(refs, comp.ID+"."+pin.Name)
		}
	}
	sort.Strings(refs)
	return refs
}
