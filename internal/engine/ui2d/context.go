package ui2d

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	textScale     = float32(1)
	padding       = float32(8)
	spacing       = float32(4)
	titleBarH     = float32(22)
	defaultRowH   = float32(24)
	textAreaInset = float32(4)
)

// Context is the main UI context that manages rendering and input.
type Context struct {
	painter Painter
	input   *InputState

	hotWidget    string
	activeWidget string
	focusWidget  string

	currentWindow *WindowState

	cursorX float32
	cursorY float32
	rowH    float32
}

// WindowState is the placement of a fixed panel.
type WindowState struct {
	ID   string
	X, Y float32
	W, H float32
}

// NewContext creates a UI context drawing through p.
func NewContext(p Painter) *Context {
	return &Context{
		painter: p,
		input:   &InputState{},
	}
}

// Input returns the input state for modification.
func (c *Context) Input() *InputState {
	return c.input
}

// Begin starts a new UI frame.
func (c *Context) Begin() {
	c.input.Update()
	c.hotWidget = ""
}

// End finishes the UI frame.
func (c *Context) End() {
	// A click that no widget consumed drops keyboard focus.
	if c.input.clickedThisFrame() {
		c.focusWidget = ""
	}
	if c.input.MouseLeftReleased {
		c.activeWidget = ""
	}
	c.input.EndFrame()
}

// HasFocus reports whether a text widget holds keyboard focus.
func (c *Context) HasFocus() bool {
	return c.focusWidget != ""
}

// Hovering reports whether the mouse is over any widget drawn this frame.
func (c *Context) Hovering() bool {
	return c.hotWidget != ""
}

// BeginWindow starts a fixed panel with a title bar.
func (c *Context) BeginWindow(id string, x, y, w, h float32, title string) {
	ws := &WindowState{ID: id, X: x, Y: y, W: w, H: h}
	c.currentWindow = ws

	if c.input.IsMouseInRect(x, y, w, h) {
		c.hotWidget = id
	}

	c.painter.DrawRect(x, y, w, h, ColorPanelBg)
	c.painter.DrawRectOutline(x, y, w, h, 1, ColorPanelBorder)
	c.painter.DrawRect(x+1, y+1, w-2, titleBarH-1, ColorTitleBg)

	_, textH := c.painter.MeasureText(title, textScale)
	c.painter.DrawText(x+padding, y+(titleBarH-textH)/2, title, textScale, ColorText)

	c.cursorX = x + padding
	c.cursorY = y + titleBarH + padding
	c.rowH = 0
}

// EndWindow ends the current panel.
func (c *Context) EndWindow() {
	c.currentWindow = nil
}

// Row starts a new row with the given height.
func (c *Context) Row(height float32) {
	if c.currentWindow == nil {
		return
	}
	c.cursorX = c.currentWindow.X + padding
	if c.rowH > 0 {
		c.cursorY += c.rowH + spacing
	}
	c.rowH = height
}

// Spacer adds vertical space.
func (c *Context) Spacer(height float32) {
	c.Row(0)
	c.cursorY += height
}

// ContentWidth returns the usable width of the current panel.
func (c *Context) ContentWidth() float32 {
	if c.currentWindow == nil {
		return 0
	}
	return c.currentWindow.W - 2*padding
}

// place reserves a widget rectangle in the current row.
func (c *Context) place(width float32) Rect {
	h := c.rowH
	if h == 0 {
		h = defaultRowH
		c.rowH = h
	}
	if width == 0 {
		width = c.currentWindow.X + c.currentWindow.W - padding - c.cursorX
	}
	r := Rect{c.cursorX, c.cursorY, width, h}
	c.cursorX += width + spacing
	return r
}

// pressed handles hover and click for a widget rectangle.
func (c *Context) pressed(fullID string, rect Rect) (hovered, clicked bool) {
	hovered = rect.Contains(c.input.MouseX, c.input.MouseY)
	if !hovered {
		return false, false
	}
	c.hotWidget = fullID
	if c.input.clickedThisFrame() {
		if c.focusWidget != fullID {
			c.focusWidget = ""
		}
		c.activeWidget = fullID
		c.input.consumeClick()
		return true, true
	}
	return true, false
}

func (c *Context) drawCenteredLabel(rect Rect, label string, color Color) {
	textW, textH := c.painter.MeasureText(label, textScale)
	c.painter.DrawText(rect.X+(rect.W-textW)/2, rect.Y+(rect.H-textH)/2, label, textScale, color)
}

// Button draws a button and returns true if clicked.
func (c *Context) Button(id string, width float32, label string) bool {
	return c.button(id, width, label, false)
}

// Toggle draws a button that shows a selected state.
func (c *Context) Toggle(id string, width float32, label string, selected bool) bool {
	return c.button(id, width, label, selected)
}

func (c *Context) button(id string, width float32, label string, selected bool) bool {
	if c.currentWindow == nil {
		return false
	}
	fullID := c.currentWindow.ID + "_" + id
	rect := c.place(width)
	hovered, clicked := c.pressed(fullID, rect)

	bg := ColorButtonNormal
	switch {
	case selected || c.activeWidget == fullID:
		bg = ColorButtonActive
	case hovered:
		bg = ColorButtonHover
	}
	c.painter.DrawRect(rect.X, rect.Y, rect.W, rect.H, bg)
	c.painter.DrawRectOutline(rect.X, rect.Y, rect.W, rect.H, 1, ColorPanelBorder)
	c.drawCenteredLabel(rect, label, ColorText)

	return clicked
}

// ButtonEnabled draws a button that can be disabled. A disabled button
// never reports a click and does not consume it.
func (c *Context) ButtonEnabled(id string, width float32, label string, enabled bool) bool {
	if enabled {
		return c.Button(id, width, label)
	}
	c.ButtonDisabled(id, width, label)
	return false
}

// ButtonDisabled draws a greyed-out button.
func (c *Context) ButtonDisabled(id string, width float32, label string) {
	if c.currentWindow == nil {
		return
	}
	rect := c.place(width)
	c.painter.DrawRect(rect.X, rect.Y, rect.W, rect.H, ColorButtonDisabled)
	c.painter.DrawRectOutline(rect.X, rect.Y, rect.W, rect.H, 1, ColorPanelBorder.Darken(0.3))
	c.drawCenteredLabel(rect, label, ColorTextDim)
}

// Label draws a text label in the current row.
func (c *Context) Label(text string) {
	c.LabelColored(text, ColorText)
}

// LabelColored draws a text label with a custom color.
func (c *Context) LabelColored(text string, color Color) {
	if c.currentWindow == nil {
		return
	}
	textW, textH := c.painter.MeasureText(text, textScale)
	rect := c.place(textW)
	c.painter.DrawText(rect.X, rect.Y+(rect.H-textH)/2, text, textScale, color)
}

// LabelWrapped draws text wrapped to the panel width on as many rows as
// it needs.
func (c *Context) LabelWrapped(text string, color Color) {
	if c.currentWindow == nil || text == "" {
		return
	}
	lines := wrapText(text, c.columns(c.ContentWidth()))
	_, lineH := c.painter.MeasureText("M", textScale)
	c.Row(lineH * float32(len(lines)))
	c.painter.DrawText(c.cursorX, c.cursorY, strings.Join(lines, "\n"), textScale, color)
}

// Separator draws a horizontal line across the panel.
func (c *Context) Separator() {
	if c.currentWindow == nil {
		return
	}
	c.Row(1)
	c.painter.DrawRect(c.cursorX, c.cursorY, c.ContentWidth(), 1, ColorPanelBorder)
}

// TextArea draws a multi-line text box holding at most maxRunes runes.
// Clicking it takes keyboard focus; Escape or a click elsewhere drops it.
// Returns the new value and whether it changed.
func (c *Context) TextArea(id string, value string, height float32, maxRunes int) (string, bool) {
	if c.currentWindow == nil {
		return value, false
	}
	fullID := c.currentWindow.ID + "_" + id
	c.Row(height)
	rect := c.place(0)

	if _, clicked := c.pressed(fullID, rect); clicked {
		c.focusWidget = fullID
	}

	focused := c.focusWidget == fullID
	changed := false
	if focused {
		var edited string
		edited, changed = editText(value, c.input, maxRunes)
		value = edited
		if c.input.KeyEscapePressed {
			c.focusWidget = ""
			c.input.KeyEscapePressed = false
		}
	}

	border := ColorInputBorder
	if focused {
		border = ColorInputFocus
	}
	c.painter.DrawRect(rect.X, rect.Y, rect.W, rect.H, ColorInputBg)
	c.painter.DrawRectOutline(rect.X, rect.Y, rect.W, rect.H, 1, border)

	// Show the tail of the text when it overflows.
	lines := wrapText(value, c.columns(rect.W-2*textAreaInset))
	_, lineH := c.painter.MeasureText("M", textScale)
	if lineH > 0 {
		if visible := int((rect.H - 2*textAreaInset) / lineH); visible > 0 && len(lines) > visible {
			lines = lines[len(lines)-visible:]
		}
	}
	text := strings.Join(lines, "\n")
	c.painter.DrawText(rect.X+textAreaInset, rect.Y+textAreaInset, text, textScale, ColorText)

	if focused && len(lines) > 0 {
		last := lines[len(lines)-1]
		w, _ := c.painter.MeasureText(last, textScale)
		cx := rect.X + textAreaInset + w
		cy := rect.Y + textAreaInset + lineH*float32(len(lines)-1)
		c.painter.DrawRect(cx, cy, 1, lineH, ColorText)
	}

	return value, changed
}

// editText applies one frame of keyboard input to value.
func editText(value string, in *InputState, maxRunes int) (string, bool) {
	orig := value
	if in.KeyBackspacePressed && value != "" {
		_, size := utf8.DecodeLastRuneInString(value)
		value = value[:len(value)-size]
	}

	typed := in.TextInput
	if in.KeyEnterPressed {
		typed += "\n"
	}
	if typed != "" {
		room := maxRunes - utf8.RuneCountInString(value)
		var b strings.Builder
		b.WriteString(value)
		for _, r := range typed {
			if room <= 0 {
				break
			}
			if r != '\n' && unicode.IsControl(r) {
				continue
			}
			b.WriteRune(r)
			room--
		}
		value = b.String()
	}
	return value, value != orig
}

// columns returns how many glyphs fit in width.
func (c *Context) columns(width float32) int {
	charW, _ := c.painter.MeasureText("M", textScale)
	if charW <= 0 {
		return 1
	}
	n := int(width / charW)
	if n < 1 {
		n = 1
	}
	return n
}

// wrapText breaks text into lines of at most cols runes, preferring
// spaces. Explicit newlines are kept. An empty text is one empty line.
func wrapText(text string, cols int) []string {
	if cols < 1 {
		cols = 1
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		runes := []rune(para)
		for len(runes) > cols {
			cut := cols
			for i := cols; i > 0; i-- {
				if runes[i] == ' ' {
					cut = i
					break
				}
			}
			out = append(out, string(runes[:cut]))
			runes = runes[cut:]
			if len(runes) > 0 && runes[0] == ' ' {
				runes = runes[1:]
			}
		}
		out = append(out, string(runes))
	}
	return out
}

// Rect is a simple rectangle struct.
type Rect struct {
	X, Y, W, H float32
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
