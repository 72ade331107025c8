package board_test

import (
	"sync"

	"taskboard/internal/board"
)

// recordingSurface captures everything the engine hands to the render surface.
type recordingSurface struct {
	mu      sync.Mutex
	views   []board.View
	notices []board.Notice
	closed  int
}

func (s *recordingSurface) Render(v board.View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views = append(s.views, v)
}

func (s *recordingSurface) Notify(n board.Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, n)
}

func (s *recordingSurface) CloseModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
}

func (s *recordingSurface) lastView() board.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.views) == 0 {
		return board.View{}
	}
	return s.views[len(s.views)-1]
}

func (s *recordingSurface) lastNotice() board.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.notices) == 0 {
		return board.Notice{}
	}
	return s.notices[len(s.notices)-1]
}

func ids(v board.View) []string {
	out := make([]string, len(v.Tasks))
	for i, t := range v.Tasks {
		out[i] = t.ID
	}
	return out
}
