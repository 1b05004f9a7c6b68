package presentation

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/securedevx/Bitecraft-footweb/internal/cart"
)

//go:embed templates/*.html
var templateFS embed.FS

var ErrUnknownFragment = errors.New("unknown fragment")

// Fragments lists the names Render accepts.
var Fragments = []string{"badge", "total", "items"}

// Sync mirrors the cart engine into a View. Register Observe with
// cart.Engine.Subscribe; readers always see the newest snapshot version
// observed, whatever order notifications arrive in.
type Sync struct {
	tmpl   *template.Template
	logger *zap.Logger

	mu      sync.RWMutex
	view    View
	version uint64
	renders int
}

func NewSync(logger *zap.Logger) (*Sync, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Sync{
		tmpl:   tmpl,
		logger: logger,
		view:   NewView(cart.Snapshot{}),
	}, nil
}

// Observe is the cart observer. Snapshots older than the current view
// are dropped.
func (s *Sync) Observe(snap cart.Snapshot) {
	v := NewView(snap)

	s.mu.Lock()
	if snap.Version < s.version {
		current := s.version
		s.mu.Unlock()
		s.logger.Debug("stale cart snapshot dropped", zap.Uint64("version", snap.Version), zap.Uint64("current", current))
		return
	}
	s.view = v
	s.version = snap.Version
	s.renders++
	s.mu.Unlock()

	s.logger.Debug("cart view refreshed", zap.Int("count", v.Count), zap.String("total", v.Total))
}

func (s *Sync) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := s.view
	v.Lines = slices.Clone(v.Lines)
	return v
}

// Renders counts observed notifications.
func (s *Sync) Renders() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.renders
}

func (s *Sync) Render(w io.Writer, fragment string) error {
	if !slices.Contains(Fragments, fragment) {
		return fmt.Errorf("%w: %s", ErrUnknownFragment, fragment)
	}
	return s.tmpl.ExecuteTemplate(w, fragment, s.View())
}
