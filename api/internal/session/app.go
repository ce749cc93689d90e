package session

import "sync"

// Tool identifies one of the application's surfaces.
type Tool string

const (
	ToolDetector Tool = "detector"
	ToolAPI      Tool = "api"
	ToolTools    Tool = "tools"
	ToolChat     Tool = "chat"
)

// App is the explicit application-level store: which tool is active. It is
// created once at startup and passed to whoever needs it; there is no
// package-level mutable state.
type App struct {
	mu     sync.Mutex
	active Tool
}

func NewApp() *App {
	return &App{active: ToolDetector}
}

func (a *App) Active() Tool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

// SetActive switches the surface; unknown names fall back to the detector.
func (a *App) SetActive(t Tool) {
	switch t {
	case ToolDetector, ToolAPI, ToolTools, ToolChat:
	default:
		t = ToolDetector
	}
	a.mu.Lock()
	a.active = t
	a.mu.Unlock()
}
