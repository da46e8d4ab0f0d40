package middleware

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/autoassistgroup-dev/AutoAssist--portal/utils"

	"github.com/google/uuid"
)

// responseRecorder captures the status code and body size for the access log
// while delegating everything else to the wrapped writer.
type responseRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

func (r *responseRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack must pass through so the websocket upgrade keeps working behind the
// logging wrapper.
func (r *responseRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("responseRecorder: underlying ResponseWriter does not support hijacking")
	}
	return h.Hijack()
}

func (r *responseRecorder) Push(target string, opts *http.PushOptions) error {
	if p, ok := r.ResponseWriter.(http.Pusher); ok {
		return p.Push(target, opts)
	}
	return http.ErrNotSupported
}

// LogEntry is one access-log line, emitted as JSON.
type LogEntry struct {
	Time      string `json:"time"`
	Method    string `json:"method"`
	URI       string `json:"uri"`
	Status    int    `json:"status"`
	Size      int    `json:"size"`
	Duration  string `json:"duration"`
	ClientIP  string `json:"client_ip"`
	UserAgent string `json:"user_agent"`
	Referer   string `json:"referer"`
	RequestID string `json:"request_id"`
}

// Logging emits one JSON access-log line per request. The request id is taken
// from X-Request-ID when the caller supplied one, generated otherwise, and
// echoed back on the response either way.
func Logging() Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get("X-Request-ID")
			if reqID == "" {
				reqID = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", reqID)

			rec := &responseRecorder{ResponseWriter: w}
			start := time.Now()
			next(rec, r)

			emitAccessLog(r, rec, start, reqID)
		}
	}
}

func emitAccessLog(r *http.Request, rec *responseRecorder, start time.Time, reqID string) {
	entry := LogEntry{
		Time:      start.Format(time.RFC3339),
		Method:    r.Method,
		URI:       r.URL.RequestURI(),
		Status:    rec.status,
		Size:      rec.size,
		Duration:  time.Since(start).String(),
		ClientIP:  utils.RealClientIP(r),
		UserAgent: r.UserAgent(),
		Referer:   r.Referer(),
		RequestID: reqID,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Printf("error marshaling log entry: %v", err)
		return
	}
	log.Println(string(data))
}
