// Package carousel tracks the scroll position and arrow visibility of a horizontally scrolling row.
//
// One [Controller] exists per rendered row. Arrow state is recomputed on mount, on every scroll
// and on every viewport resize. Prev and Next request a smooth scroll of a fraction of the
// viewport width; [Controller.Step] advances the animation one frame at a time.
package carousel

const (
	DefaultThreshold = 10
	DefaultStepRatio = 0.8
)

// State is the geometry of a row. Widths and offsets share one unit (terminal columns in the TUI).
type State struct {
	ScrollOffset  int
	ViewportWidth int
	ContentWidth  int
	Threshold     int
}

// CanScrollPrev reports whether the row is scrolled past the threshold.
func (s State) CanScrollPrev() bool {
	return s.ScrollOffset > s.Threshold
}

// CanScrollNext reports whether more than the threshold of content lies past the viewport.
func (s State) CanScrollNext() bool {
	return s.ScrollOffset+s.ViewportWidth < s.ContentWidth-s.Threshold
}

// MaxOffset is the largest offset that still fills the viewport.
func (s State) MaxOffset() int {
	return max(0, s.ContentWidth-s.ViewportWidth)
}

func (s State) clamp(offset int) int {
	return min(max(0, offset), s.MaxOffset())
}

// Controller manages one row.
type Controller struct {
	state     State
	stepRatio float64
	target    int
	showPrev  bool
	showNext  bool
}

// New creates a controller. Non-positive arguments fall back to [DefaultThreshold] and
// [DefaultStepRatio].
func New(threshold int, stepRatio float64) *Controller {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if stepRatio <= 0 || stepRatio > 1 {
		stepRatio = DefaultStepRatio
	}
	return &Controller{state: State{Threshold: threshold}, stepRatio: stepRatio}
}

// Mount sets the geometry after the row has been rendered.
func (c *Controller) Mount(viewportWidth, contentWidth int) {
	c.state.ViewportWidth = max(0, viewportWidth)
	c.state.ContentWidth = max(0, contentWidth)
	c.state.ScrollOffset = c.state.clamp(c.state.ScrollOffset)
	c.target = c.state.ScrollOffset
	c.update()
}

// OnScroll moves the row to offset immediately, cancelling any animation.
func (c *Controller) OnScroll(offset int) {
	c.state.ScrollOffset = c.state.clamp(offset)
	c.target = c.state.ScrollOffset
	c.update()
}

// OnResize records a new viewport width.
func (c *Controller) OnResize(viewportWidth int) {
	c.state.ViewportWidth = max(0, viewportWidth)
	c.state.ScrollOffset = c.state.clamp(c.state.ScrollOffset)
	c.target = c.state.clamp(c.target)
	c.update()
}

// Prev requests a smooth scroll back by the step.
func (c *Controller) Prev() { c.scrollBy(-c.step()) }

// Next requests a smooth scroll forward by the step.
func (c *Controller) Next() { c.scrollBy(c.step()) }

func (c *Controller) step() int {
	return max(1, int(float64(c.state.ViewportWidth)*c.stepRatio))
}

func (c *Controller) scrollBy(delta int) {
	c.target = c.state.clamp(c.target + delta)
}

// Animating reports whether a smooth scroll is in progress.
func (c *Controller) Animating() bool {
	return c.state.ScrollOffset != c.target
}

// Step advances a smooth scroll by one frame, covering a third of the remaining distance.
// It reports whether the animation continues.
func (c *Controller) Step() bool {
	if !c.Animating() {
		return false
	}

	remaining := c.target - c.state.ScrollOffset
	delta := remaining / 3
	if delta == 0 {
		delta = remaining
	}
	c.OnScrollAnimated(c.state.ScrollOffset + delta)
	return c.Animating()
}

// OnScrollAnimated moves the offset without cancelling the pending target.
func (c *Controller) OnScrollAnimated(offset int) {
	c.state.ScrollOffset = c.state.clamp(offset)
	c.update()
}

// Settle jumps straight to the pending target.
func (c *Controller) Settle() {
	c.OnScrollAnimated(c.target)
}

func (c *Controller) update() {
	c.showPrev = c.state.CanScrollPrev()
	c.showNext = c.state.CanScrollNext()
}

func (c *Controller) State() State   { return c.state }
func (c *Controller) Target() int    { return c.target }
func (c *Controller) ShowPrev() bool { return c.showPrev }
func (c *Controller) ShowNext() bool { return c.showNext }
