// Package ui2d is a small immediate-mode 2D UI. Drawing goes through a
// Painter; glrenderer provides the OpenGL one.
package ui2d

// Painter is the drawing surface used by Context.
type Painter interface {
	DrawRect(x, y, width, height float32, color Color)
	DrawRectOutline(x, y, width, height, thickness float32, color Color)
	DrawText(x, y float32, text string, scale float32, color Color)
	MeasureText(text string, scale float32) (float32, float32)
}
