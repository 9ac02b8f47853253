// Command routetest plans a route between two pins of a layout file
// and prints the resulting path.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"cpw-router/internal/layout"
	"cpw-router/internal/render"
	"cpw-router/internal/route"
	"cpw-router/pkg/geometry"
)

func main() {
	layoutPath := flag.String("layout", "", "Path to layout JSON file")
	startPin := flag.String("from", "", "Start pin reference (comp.pin)")
	endPin := flag.String("to", "", "End pin reference (comp.pin)")
	anchorsArg := flag.String("anchors", "", "Anchors as x,y;x,y in mm")
	leadIn := flag.Float64("lead-in", 0, "Lead-in length in mm")
	leadOut := flag.Float64("lead-out", 0, "Lead-out length in mm")
	avoid := flag.Bool("avoid", false, "Avoid component bounding boxes")
	traceWidth := flag.Float64("width", 0.010, "Trace width in mm")
	traceGap := flag.Float64("gap", 0.006, "Ground gap in mm")
	flag.Parse()

	if *layoutPath == "" || *startPin == "" || *endPin == "" {
		fmt.Println("Usage: routetest -layout <path> -from <comp.pin> -to <comp.pin> [-anchors x,y;x,y] [-avoid]")
		os.Exit(1)
	}

	reg, err := layout.LoadRegistry(*layoutPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load layout: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded layout: %d components\n", len(reg.Components))

	anchors, err := parseAnchors(*anchorsArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad anchors: %v\n", err)
		os.Exit(1)
	}

	obs := route.NewObstacles(reg.Boxes(
		layout.PinComponent(*startPin),
		layout.PinComponent(*endPin),
	))
	fmt.Printf("Obstacles: %d boxes (avoid=%v)\n", obs.Len(), *avoid)

	renderer := render.NewCPWRenderer(render.Params{
		TraceWidth: *traceWidth,
		Gap:        *traceGap,
	})
	router := &route.AnchoredRouter{Pins: reg, Renderer: renderer}

	built, err := router.Build(*startPin, *endPin, route.Options{
		Anchors:        anchors,
		LeadIn:         *leadIn,
		LeadOut:        *leadOut,
		AvoidCollision: *avoid,
	}, obs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Routing failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nRoute %s -> %s: %d points\n", *startPin, *endPin, len(built.Points))
	total := 0.0
	for i, p := range built.Points {
		fmt.Printf("  %2d: (%9.4f, %9.4f)\n", i, p.X, p.Y)
		if i > 0 {
			total += p.Distance(built.Points[i-1])
		}
	}
	fmt.Printf("Length: %.4f mm\n", total)

	elems := renderer.Elements[0]
	fmt.Printf("CPW: %d trace strips (%.3f mm), %d ground cuts (%.3f mm)\n",
		len(elems.Trace), *traceWidth, len(elems.GroundCut), *traceWidth+2**traceGap)
}

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
			return nil, err
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(coords[1]), 64)
		if err != nil {
			return nil, err
		}
		anchors = append(anchors, route.Anchor{
			Key:      strconv.Itoa(i),
			Position: geometry.Point2D{X: x, Y: y},
		})
	}
	return anchors, nil
}
