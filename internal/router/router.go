package router

import (
	"log/slog"
	"sync"

	"github.com/abhisek/mcqtrainer/internal/screen"

	tea "charm.land/bubbletea/v2"
)

// PushScreenMsg requests the router to push a new screen onto the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg requests the router to pop the current screen off the stack.
type PopScreenMsg struct{}

// ReplaceScreenMsg requests the router to swap the top screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// PopToRootMsg requests the router to unwind to the first screen.
type PopToRootMsg struct{}

// ScreenClosedMsg reports that a screen which left the stack finished
// releasing its resources.
type ScreenClosedMsg struct {
	Title string
	Err   error
}

// Router manages a stack of screens.
type Router struct {
	stack   []screen.Screen
	logger  *slog.Logger
	closing sync.WaitGroup
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger that receives screen close failures.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a new Router with the given initial screen.
func New(initial screen.Screen, opts ...Option) *Router {
	r := &Router{
		stack:  []screen.Screen{initial},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Push adds a screen on top of the stack and calls its Init().
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top screen. No-op if stack depth would become 0. The
// popped screen is closed in the background; the exposed screen refreshes
// once that close has finished.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	closed := r.closeAsync(r.stack[len(r.stack)-1])
	r.stack = r.stack[:len(r.stack)-1]
	return tea.Sequence(closed, r.refresh())
}

// Replace swaps the top screen for s and calls its Init().
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	closed := r.closeAsync(r.stack[len(r.stack)-1])
	r.stack[len(r.stack)-1] = s
	return tea.Batch(closed, s.Init())
}

// PopToRoot removes every screen but the first.
func (r *Router) PopToRoot() tea.Cmd {
	var closed []tea.Cmd
	for len(r.stack) > 1 {
		closed = append(closed, r.closeAsync(r.stack[len(r.stack)-1]))
		r.stack = r.stack[:len(r.stack)-1]
	}
	return tea.Sequence(tea.Batch(closed...), r.refresh())
}

// CloseAll releases every screen on the stack and waits for screens that
// are still closing in the background.
func (r *Router) CloseAll() {
	for i := len(r.stack) - 1; i >= 0; i-- {
		if err := closeScreen(r.stack[i]); err != nil {
			r.logClose(r.stack[i].Title(), err)
		}
	}
	r.closing.Wait()
}

// closeAsync starts closing s right away and returns a command that reports
// the outcome as a ScreenClosedMsg. Close runs even if the command is never
// executed, so CloseAll can wait for it.
func (r *Router) closeAsync(s screen.Screen) tea.Cmd {
	if _, ok := s.(screen.Closer); !ok {
		return nil
	}
	title := s.Title()
	done := make(chan error, 1)
	r.closing.Add(1)
	go func() {
		defer r.closing.Done()
		err := closeScreen(s)
		if err != nil {
			r.logClose(title, err)
		}
		done <- err
	}()
	return func() tea.Msg {
		return ScreenClosedMsg{Title: title, Err: <-done}
	}
}

func (r *Router) logClose(title string, err error) {
	r.logger.Warn("screen close failed", "screen", title, "error", err)
}

// refresh re-runs Init on the newly exposed screen so it can reload data.
func (r *Router) refresh() tea.Cmd {
	if rs, ok := r.Active().(Refresher); ok {
		return rs.Refresh()
	}
	return nil
}

// Refresher is implemented by screens that reload data when they become
// active again.
type Refresher interface {
	Refresh() tea.Cmd
}

func closeScreen(s screen.Screen) error {
	if c, ok := s.(screen.Closer); ok {
		return c.Close()
	}
	return nil
}

// Active returns the top screen on the stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update forwards a message to the active screen and handles navigation messages.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopToRootMsg:
		return r.PopToRoot()
	case ScreenClosedMsg:
		// Already logged; the screen is no longer on the stack.
		return nil
	}

	active := r.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
