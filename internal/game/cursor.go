package game

import "image"

// Cursor is the pointer as the command interpreter sees it.
type Cursor struct {
	At      image.Point
	Visible bool

	down bool
}

// MouseDown records a press.
func (c *Cursor) MouseDown(button int, at image.Point) {
	c.At = at
	if button == 0 {
		c.down = true
	}
}

// MouseUp records a release.
func (c *Cursor) MouseUp(button int, at image.Point) {
	c.At = at
	if button == 0 {
		c.down = false
	}
}

// Move records pointer motion and shows the cursor.
func (c *Cursor) Move(at image.Point) {
	c.At = at
	c.Visible = true
}

// Active reports whether the primary button is held. Target keys are
// ignored while it is.
func (c *Cursor) Active() bool { return c.down }
