package response

import "net/http"

// Writer wraps an http.ResponseWriter and records the status and the number
// of body bytes written. Only the first WriteHeader call reaches the
// underlying writer.
type Writer struct {
	http.ResponseWriter
	status  int
	size    int64
	written bool
}

// NewWriter wraps w. Wrapping a *Writer returns it unchanged.
func NewWriter(w http.ResponseWriter) *Writer {
	if rw, ok := w.(*Writer); ok {
		return rw
	}
	return &Writer{ResponseWriter: w}
}

func (w *Writer) WriteHeader(status int) {
	if !w.written {
		w.status = status
		w.written = true
		w.ResponseWriter.WriteHeader(status)
	}
}

func (w *Writer) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}

// Written reports whether the header has been written.
func (w *Writer) Written() bool {
	return w.written
}

// Status returns the written status, or 0.
func (w *Writer) Status() int {
	return w.status
}

// Size returns the number of body bytes written.
func (w *Writer) Size() int64 {
	return w.size
}

// Flush implements http.Flusher if the underlying ResponseWriter supports it.
func (w *Writer) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap returns the underlying writer for http.ResponseController.
func (w *Writer) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
