// Package canvas provides a vector floorplan canvas with pan and zoom.
package canvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"cpw-router/pkg/geometry"
)

const (
	// Zoom is in screen pixels per chip millimeter.
	minZoom  = 10.0
	maxZoom  = 2000.0
	zoomStep = 1.25

	// margin keeps the die from touching the canvas edge, in mm.
	margin = 0.5
)

// FloorplanCanvas draws a chip floorplan and its routes, with wheel
// zoom and drag pan. All callback coordinates are chip millimeters.
type FloorplanCanvas struct {
	widget.BaseWidget

	scene *Scene

	raster *fynecanvas.Raster
	zoom   float64

	showGroundCut bool

	scroll  *zoomScroll
	content *draggableContent
	imgSize fyne.Size

	fitToWindow    bool
	lastScrollSize fyne.Size

	onZoomChange func(zoom float64)
	onLeftClick  func(p geometry.Point2D)
	onRightClick func(p geometry.Point2D)
}

// zoomScroll wraps a scroll container but routes the wheel to zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *FloorplanCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *FloorplanCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

// draggableContent receives drag and tap events for the raster.
type draggableContent struct {
	widget.BaseWidget
	canvas *FloorplanCanvas
	raster *fynecanvas.Raster
}

func newDraggableContent(fc *FloorplanCanvas, raster *fynecanvas.Raster) *draggableContent {
	dc := &draggableContent{canvas: fc, raster: raster}
	dc.ExtendBaseWidget(dc)
	return dc
}

func (dc *draggableContent) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(dc.raster)
}

func (dc *draggableContent) MinSize() fyne.Size {
	return dc.canvas.imgSize
}

func (dc *draggableContent) Dragged(ev *fyne.DragEvent) {
	sc := dc.canvas.scroll.scroll
	sc.Offset = fyne.NewPos(
		sc.Offset.X-ev.Dragged.DX,
		sc.Offset.Y-ev.Dragged.DY,
	)
	sc.Refresh()
}

func (dc *draggableContent) DragEnd() {}

func (dc *draggableContent) Tapped(ev *fyne.PointEvent) {
	if dc.canvas.onLeftClick != nil {
		dc.canvas.onLeftClick(dc.canvas.toChip(ev.Position))
	}
}

func (dc *draggableContent) TappedSecondary(ev *fyne.PointEvent) {
	if dc.canvas.onRightClick != nil {
		dc.canvas.onRightClick(dc.canvas.toChip(ev.Position))
	}
}

// NewFloorplanCanvas creates an empty floorplan canvas.
func NewFloorplanCanvas() *FloorplanCanvas {
	fc := &FloorplanCanvas{
		scene:         &Scene{},
		zoom:          100.0,
		imgSize:       fyne.NewSize(400, 300),
		showGroundCut: true,
		fitToWindow:   true,
	}

	fc.raster = fynecanvas.NewRaster(fc.draw)
	fc.raster.ScaleMode = fynecanvas.ImageScalePixels
	fc.raster.SetMinSize(fc.imgSize)

	fc.content = newDraggableContent(fc, fc.raster)
	fc.scroll = newZoomScroll(fc.content, fc)

	fc.ExtendBaseWidget(fc)
	return fc
}

// Container returns the canvas container for embedding in layouts.
func (fc *FloorplanCanvas) Container() fyne.CanvasObject {
	return fc.scroll
}

// SetScene replaces the drawn scene.
func (fc *FloorplanCanvas) SetScene(scene *Scene) {
	if scene == nil {
		scene = &Scene{}
	}
	fc.scene = scene
	fc.updateContentSize()
	fc.Refresh()
}

// SetShowGroundCut toggles drawing of the ground plane cutout strips.
func (fc *FloorplanCanvas) SetShowGroundCut(show bool) {
	fc.showGroundCut = show
	fc.Refresh()
}

// SetZoom sets the scale in pixels per millimeter, clamped to limits.
func (fc *FloorplanCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	fc.zoom = zoom
	fc.fitToWindow = false
	fc.updateContentSize()
	if fc.onZoomChange != nil {
		fc.onZoomChange(zoom)
	}
	fc.Refresh()
}

// Zoom returns the current scale in pixels per millimeter.
func (fc *FloorplanCanvas) Zoom() float64 {
	return fc.zoom
}

// ZoomIn increases the zoom by one step.
func (fc *FloorplanCanvas) ZoomIn() {
	fc.SetZoom(fc.zoom * zoomStep)
}

// ZoomOut decreases the zoom by one step.
func (fc *FloorplanCanvas) ZoomOut() {
	fc.SetZoom(fc.zoom / zoomStep)
}

// FitToWindow scales the scene to fill the visible area.
func (fc *FloorplanCanvas) FitToWindow() {
	size := fc.scroll.scroll.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return
	}
	bounds := fc.viewBounds()
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}

	zx := float64(size.Width) / bounds.Width
	zy := float64(size.Height) / bounds.Height
	zoom := zx
	if zy < zx {
		zoom = zy
	}
	fc.SetZoom(zoom)
	fc.fitToWindow = true
}

// OnZoomChange registers a zoom change callback.
func (fc *FloorplanCanvas) OnZoomChange(callback func(zoom float64)) {
	fc.onZoomChange = callback
}

// OnLeftClick registers a left click callback in chip coordinates.
func (fc *FloorplanCanvas) OnLeftClick(callback func(p geometry.Point2D)) {
	fc.onLeftClick = callback
}

// OnRightClick registers a right click callback in chip coordinates.
func (fc *FloorplanCanvas) OnRightClick(callback func(p geometry.Point2D)) {
	fc.onRightClick = callback
}

// Refresh redraws the canvas.
func (fc *FloorplanCanvas) Refresh() {
	fc.raster.Refresh()
	fc.BaseWidget.Refresh()
}

// viewBounds is the drawn region in mm, scene bounds plus margin.
func (fc *FloorplanCanvas) viewBounds() geometry.Rect {
	b := fc.scene.Bounds()
	return geometry.NewRect(b.X-margin, b.Y-margin, b.Width+2*margin, b.Height+2*margin)
}

func (fc *FloorplanCanvas) updateContentSize() {
	bounds := fc.viewBounds()
	fc.imgSize = fyne.NewSize(
		float32(bounds.Width*fc.zoom),
		float32(bounds.Height*fc.zoom),
	)
	fc.raster.SetMinSize(fc.imgSize)
	fc.content.Refresh()
}

// toScreen converts chip mm to raster pixels. The chip Y axis points
// up, the raster Y axis points down.
func (fc *FloorplanCanvas) toScreen(p geometry.Point2D) (int, int) {
	bounds := fc.viewBounds()
	x := (p.X - bounds.X) * fc.zoom
	y := (bounds.Y + bounds.Height - p.Y) * fc.zoom
	return int(x), int(y)
}

// toChip converts a widget position to chip mm.
func (fc *FloorplanCanvas) toChip(pos fyne.Position) geometry.Point2D {
	bounds := fc.viewBounds()
	return geometry.Point2D{
		X: bounds.X + float64(pos.X)/fc.zoom,
		Y: bounds.Y + bounds.Height - float64(pos.Y)/fc.zoom,
	}
}

// draw is the raster drawing function.
func (fc *FloorplanCanvas) draw(w, h int) image.Image {
	currentSize := fyne.NewSize(float32(w), float32(h))
	if fc.fitToWindow && currentSize != fc.lastScrollSize && w > 0 && h > 0 {
		fc.lastScrollSize = currentSize
	}

	output := image.NewRGBA(image.Rect(0, 0, w, h))
	fillBackground(output)

	fc.drawDie(output)
	for _, comp := range fc.scene.Components {
		fc.drawComponent(output, comp)
	}
	for _, r := range fc.scene.Routes {
		fc.drawRoute(output, r)
	}
	for _, a := range fc.scene.Anchors {
		fc.drawAnchor(output, a)
	}

	return output
}
