package tcellview

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// The minimum time between two consecutive redraws.
const redrawPause = 50 * time.Millisecond

// App owns the screen and the event loop for a full-screen List. Engine
// callbacks arrive on the coordinator goroutine; Redraw serializes them into
// the loop instead of letting them touch the screen directly.
type App struct {
	mu     sync.Mutex
	screen tcell.Screen
	root   *List

	redrawc  chan struct{}
	quitc    chan struct{}
	stopOnce sync.Once
}

// NewApp returns an app displaying root.
func NewApp(root *List) *App {
	return &App{
		root:    root,
		redrawc: make(chan struct{}, 1),
		quitc:   make(chan struct{}),
	}
}

// SetScreen sets the screen to run on. Without one, Run creates a real
// terminal screen.
func (a *App) SetScreen(screen tcell.Screen) *App {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.screen = screen
	return a
}

// Run starts the event loop and blocks until Stop or a quit key (q, Escape,
// Ctrl-C).
func (a *App) Run() error {
	a.mu.Lock()
	screen := a.screen
	a.mu.Unlock()
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return err
		}
		if err = screen.Init(); err != nil {
			return err
		}
		a.mu.Lock()
		a.screen = screen
		a.mu.Unlock()
	}
	defer screen.Fini()

	// Clean the terminal up if a draw panics.
	defer func() {
		if p := recover(); p != nil {
			screen.Fini()
			panic(p)
		}
	}()

	screen.EnableMouse()
	width, height := screen.Size()
	a.root.SetRect(0, 0, width, height)
	a.draw(screen)

	events := make(chan tcell.Event, 16)
	go screen.ChannelEvents(events, a.quitc)

	var (
		lastRedraw  time.Time
		redrawTimer *time.Timer
	)
	requestRedraw := func() {
		// Leading-edge redraw with a trailing one deferred while bursts of
		// engine updates arrive inside the pause.
		if since := time.Since(lastRedraw); since >= redrawPause {
			lastRedraw = time.Now()
			a.draw(screen)
			return
		}
		if redrawTimer == nil {
			redrawTimer = time.AfterFunc(redrawPause, func() {
				a.Redraw()
			})
		}
	}

	for {
		select {
		case <-a.quitc:
			if redrawTimer != nil {
				redrawTimer.Stop()
			}
			return nil
		case event, ok := <-events:
			if !ok || event == nil {
				return nil
			}
			switch event := event.(type) {
			case *tcell.EventKey:
				if a.isQuitKey(event) {
					a.Stop()
					continue
				}
				if a.root.HandleEvent(event) {
					requestRedraw()
				}
			case *tcell.EventMouse:
				if a.root.HandleEvent(event) {
					requestRedraw()
				}
			case *tcell.EventResize:
				width, height := event.Size()
				a.root.SetRect(0, 0, width, height)
				screen.Sync()
				a.draw(screen)
			}
		case <-a.redrawc:
			redrawTimer = nil
			requestRedraw()
		}
	}
}

func (a *App) isQuitKey(event *tcell.EventKey) bool {
	return event.Key() == tcell.KeyEscape ||
		event.Key() == tcell.KeyCtrlC ||
		(event.Key() == tcell.KeyRune && event.Rune() == 'q')
}

// Redraw requests a redraw from any goroutine.
func (a *App) Redraw() {
	select {
	case a.redrawc <- struct{}{}:
	default:
	}
}

// Stop ends the event loop.
func (a *App) Stop() {
	a.stopOnce.Do(func() {
		close(a.quitc)
	})
}

func (a *App) draw(screen tcell.Screen) {
	a.root.Draw(screen)
	screen.Show()
}
