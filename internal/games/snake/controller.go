package snake

import "github.com/vovakirdan/term-snake/internal/core"

// Controller turns semantic key actions into direction and lifecycle changes.
// It runs on the control goroutine; all writes go through the engine lock.
type Controller struct {
	engine *Engine
}

// NewController creates a controller bound to an engine.
func NewController(e *Engine) *Controller {
	return &Controller{engine: e}
}

// Handle applies one action and reports whether it was a quit request.
func (c *Controller) Handle(a core.Action) (quit bool) {
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown:
		v, _ := a.Vector()
		c.engine.Steer(func(s *Snake) {
			// Turning back along the current axis would run into the neck.
			if v.Horizontal() && s.MovesHorizontally() {
				return
			}
			if v.Vertical() && s.MovesVertically() {
				return
			}
			s.SetDirection(v)
		})
	case core.ActionResume:
		c.engine.SetLifecycle(Playing)
	case core.ActionPause:
		c.engine.TogglePause()
	case core.ActionQuit:
		return true
	}
	return false
}
