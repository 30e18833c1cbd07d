// Package scale maps between the millisecond timeline and the pixel canvas.
package scale

// Scale is the linear time↔pixel mapping for one canvas. The caller must
// keep CanvasTimeEnd > CanvasTimeStart and CanvasWidth > 0; degenerate
// geometry yields non-finite results rather than errors, matching the rest
// of the layout hot path.
type Scale struct {
	CanvasTimeStart int64
	CanvasTimeEnd   int64
	CanvasWidth     float64
}

// PixelsPerMillisecond reports how many pixels one millisecond occupies.
func (s Scale) PixelsPerMillisecond() float64 {
	return s.CanvasWidth / float64(s.CanvasTimeEnd-s.CanvasTimeStart)
}

// MillisecondsPerPixel reports how many milliseconds one pixel covers.
func (s Scale) MillisecondsPerPixel() float64 {
	return float64(s.CanvasTimeEnd-s.CanvasTimeStart) / s.CanvasWidth
}

// TimeToX converts a time to an x position relative to the canvas left edge.
func (s Scale) TimeToX(t int64) float64 {
	return float64(t-s.CanvasTimeStart) * s.PixelsPerMillisecond()
}

// XToTime converts a canvas-relative x position back to a time. It is the
// inverse of TimeToX up to floating-point error.
func (s Scale) XToTime(x float64) float64 {
	return float64(s.CanvasTimeStart) + x*s.MillisecondsPerPixel()
}
