package render

import "math"

// Camera maps lane coordinates onto the screen. The lane axis runs
// horizontally; the lateral offset is drawn as a small vertical shift.
type Camera struct {
	X       float64 // lane coordinate at the screen centre
	Zoom    float64 // zoom level (1.0 = default)
	MinZoom float64
	MaxZoom float64
	ScreenW int // viewport width in pixels
	ScreenH int // viewport height in pixels
	Speed   float64 // pan speed (pixels per second)

	PixelsPerUnit float64 // screen pixels per lane unit at zoom 1
	LaneY         float64 // screen row of the lane centre line
	LateralScale  float64 // pixels per lateral unit at zoom 1
}

// NewCamera creates a camera with default settings
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Zoom:          1.0,
		MinZoom:       0.25,
		MaxZoom:       4.0,
		ScreenW:       screenW,
		ScreenH:       screenH,
		Speed:         500,
		PixelsPerUnit: 2,
		LaneY:         float64(screenH) * 0.6,
		LateralScale:  6,
	}
}

// Pan moves the camera by a pixel delta along the lane
func (c *Camera) Pan(dx float64) {
	c.X += dx / (c.PixelsPerUnit * c.Zoom)
}

// SetZoom sets zoom level with clamping
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
}

// ZoomAt zooms toward a screen column, keeping the lane point under it fixed
func (c *Camera) ZoomAt(delta float64, screenX int) {
	wx, _ := c.ScreenToWorld(screenX, int(c.LaneY))
	c.SetZoom(c.Zoom + delta)
	wx2, _ := c.ScreenToWorld(screenX, int(c.LaneY))
	c.X += wx - wx2
}

// CenterOn centres the camera on a lane coordinate
func (c *Camera) CenterOn(wx float64) {
	c.X = wx
}

// FitLane centres on [minX, maxX] and zooms so it fills the screen width
// with a margin in pixels on either side.
func (c *Camera) FitLane(minX, maxX float64, margin int) {
	c.CenterOn((minX + maxX) / 2)
	span := maxX - minX
	avail := float64(c.ScreenW - 2*margin)
	if span <= 0 || avail <= 0 {
		return
	}
	c.SetZoom(avail / (span * c.PixelsPerUnit))
}

// WorldToScreen converts a lane position to screen pixels
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	sx := (wx-c.X)*c.PixelsPerUnit*c.Zoom + float64(c.ScreenW)/2
	sy := c.LaneY + wy*c.LateralScale*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen pixels to a lane position
func (c *Camera) ScreenToWorld(sx, sy int) (float64, float64) {
	wx := (float64(sx)-float64(c.ScreenW)/2)/(c.PixelsPerUnit*c.Zoom) + c.X
	wy := (float64(sy) - c.LaneY) / (c.LateralScale * c.Zoom)
	return wx, wy
}

// VisibleRange returns the lane interval shown on screen
func (c *Camera) VisibleRange() (minX, maxX float64) {
	minX, _ = c.ScreenToWorld(0, 0)
	maxX, _ = c.ScreenToWorld(c.ScreenW, 0)
	return minX, maxX
}
