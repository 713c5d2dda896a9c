package internal

import (
	"net/http"
	"sync"
)

// ResponseWriter wraps http.ResponseWriter and records whether the response
// has started. Hooks registered with OnBeforeWrite run once, right before the
// status line goes out, so they can still set headers.
type ResponseWriter struct {
	http.ResponseWriter

	mu      sync.Mutex
	started bool
	status  int
	size    int64
	hooks   []func()
}

// NewResponseWriter wraps w. The status defaults to 200.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// OnBeforeWrite registers fn to run before the first WriteHeader or Write.
// Hooks run in registration order. Hooks added after the response started
// never run.
func (w *ResponseWriter) OnBeforeWrite(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		w.hooks = append(w.hooks, fn)
	}
}

// WriteHeader sends the status line. Only the first call has an effect.
func (w *ResponseWriter) WriteHeader(code int) {
	w.start(code)
}

// Write starts the response with the recorded status if needed.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	w.start(0)
	n, err := w.ResponseWriter.Write(b)

	w.mu.Lock()
	w.size += int64(n)
	w.mu.Unlock()
	return n, err
}

// start runs the hooks and writes the header once. A zero code keeps the
// recorded status.
func (w *ResponseWriter) start(code int) {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return
	}
	w.started = true
	if code != 0 {
		w.status = code
	}
	hooks := w.hooks
	w.hooks = nil
	status := w.status
	w.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	w.ResponseWriter.WriteHeader(status)
}

// Status returns the response status code.
func (w *ResponseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Size returns the number of body bytes written.
func (w *ResponseWriter) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// Written reports whether the response has started.
func (w *ResponseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.started
}

// Flush implements http.Flusher.
func (w *ResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		w.start(0)
		f.Flush()
	}
}

// Unwrap returns the underlying writer for http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
