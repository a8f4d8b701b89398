package ui2d

// InputState holds the current input state for the UI.
//
// Raw fields (mouse position, button down state, key presses, typed text)
// are written by the application between frames. Update derives the edges.
type InputState struct {
	MouseX      float32
	MouseY      float32
	MouseDeltaX float32
	MouseDeltaY float32

	MouseLeftDown bool

	// Edges computed by Update.
	MouseLeftPressed  bool
	MouseLeftReleased bool

	// MouseLeftClicked is set by the application when a full click arrived
	// within one frame, which the down/up polling would miss.
	MouseLeftClicked bool

	ScrollY float32

	// TextInput is the UTF-8 text typed this frame.
	TextInput string

	// Key presses this frame, including key repeat.
	KeyBackspacePressed bool
	KeyEnterPressed     bool
	KeyEscapePressed    bool

	prevMouseLeft bool
	prevMouseX    float32
	prevMouseY    float32
}

// Update prepares input state for a new frame.
// Call this at the start of each frame after updating raw input values.
func (i *InputState) Update() {
	i.MouseDeltaX = i.MouseX - i.prevMouseX
	i.MouseDeltaY = i.MouseY - i.prevMouseY

	i.MouseLeftPressed = i.MouseLeftDown && !i.prevMouseLeft
	i.MouseLeftReleased = !i.MouseLeftDown && i.prevMouseLeft

	i.prevMouseLeft = i.MouseLeftDown
	i.prevMouseX = i.MouseX
	i.prevMouseY = i.MouseY
}

// EndFrame clears per-frame input state.
func (i *InputState) EndFrame() {
	i.TextInput = ""
	i.ScrollY = 0
	i.MouseLeftClicked = false
	i.KeyBackspacePressed = false
	i.KeyEnterPressed = false
	i.KeyEscapePressed = false
}

// clickedThisFrame reports a press edge or an event-level click.
func (i *InputState) clickedThisFrame() bool {
	return i.MouseLeftPressed || i.MouseLeftClicked
}

// consumeClick prevents a second widget from reacting to the same click.
func (i *InputState) consumeClick() {
	i.MouseLeftPressed = false
	i.MouseLeftClicked = false
}

// IsMouseInRect checks if the mouse is within a rectangle.
func (i *InputState) IsMouseInRect(x, y, w, h float32) bool {
	return i.MouseX >= x && i.MouseX < x+w &&
		i.MouseY >= y && i.MouseY < y+h
}
