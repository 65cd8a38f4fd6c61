package services

import "sync"

// FormGuard is the in-flight flag of a form: while a submission for a key
// is running, further submissions for that key are refused.
type FormGuard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewFormGuard() *FormGuard {
	return &FormGuard{inFlight: make(map[string]struct{})}
}

// Begin marks key as submitting. The returned release must be called once
// the submission finishes, whatever its outcome.
func (g *FormGuard) Begin(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inFlight[key]; busy {
		return func() {}, false
	}
	g.inFlight[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.inFlight, key)
			g.mu.Unlock()
		})
	}, true
}

func (g *FormGuard) Submitting(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.inFlight[key]
	return busy
}
