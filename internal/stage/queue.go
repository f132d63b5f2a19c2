package stage

import "sync"

// Queue hands a file path from any goroutine (file dialog, drop handler)
// to the render thread. Only the most recent path is kept.
type Queue struct {
	mu      sync.Mutex
	pending string
	set     bool
}

// Push replaces the pending path.
func (q *Queue) Push(path string) {
	q.mu.Lock()
	q.pending, q.set = path, true
	q.mu.Unlock()
}

// Pop takes the pending path, if any.
func (q *Queue) Pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	path, ok := q.pending, q.set
	q.pending, q.set = "", false
	return path, ok
}
