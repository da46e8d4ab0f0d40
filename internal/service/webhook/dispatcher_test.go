package webhook

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/queue"
)

// scriptedTransport answers each POST with the next scripted status code,
// repeating the last one once the script runs out.
type scriptedTransport struct {
	mu       sync.Mutex
	statuses []int
	bodies   [][]byte
	calls    int
	gate     chan struct{}
}

func (t *scriptedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.gate != nil {
		<-t.gate
	}

	body, _ := io.ReadAll(req.Body)

	t.mu.Lock()
	idx := t.calls
	t.calls++
	t.bodies = append(t.bodies, body)
	t.mu.Unlock()

	status := t.statuses[len(t.statuses)-1]
	if idx < len(t.statuses) {
		status = t.statuses[idx]
	}

	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader("upstream response")),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func (t *scriptedTransport) callCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

type timeoutTransport struct{}

func (timeoutTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, timeoutError{}
}

func fixedNow() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func newTestDispatcher(t *testing.T, transport http.RoundTripper) (*Dispatcher, *StatusStore) {
	t.Helper()

	store := NewStatusStore()
	d := NewWithOptions(
		"http://automation.test/hook",
		store,
		queue.NewRequestQueueManager(2, 2),
		&http.Client{Transport: transport},
		fixedNow,
		func(time.Duration) {},
	)
	return d, store
}

func waitForFinal(t *testing.T, store *StatusStore, ticketCode string) StatusEntry {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		entry, ok := store.Get(ticketCode)
		if ok && entry.Status != StatusPending {
			return entry
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatal("delivery did not reach a final status in time")
	return StatusEntry{}
}

func TestDispatchRetriesThreeTimesThenFails(t *testing.T) {
	transport := &scriptedTransport{statuses: []int{http.StatusInternalServerError}}
	d, store := newTestDispatcher(t, transport)

	d.Dispatch("M1234", map[string]string{"subject": "test"}, "referral", "Alex Agent")

	entry := waitForFinal(t, store, "M1234")
	if entry.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", entry.Status)
	}

	if transport.callCount() != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", transport.callCount())
	}
}

func TestDispatchStopsOnFirstSuccess(t *testing.T) {
	transport := &scriptedTransport{statuses: []int{http.StatusBadGateway, http.StatusOK}}
	d, store := newTestDispatcher(t, transport)

	d.Dispatch("M1234", nil, "referral", "Alex Agent")

	entry := waitForFinal(t, store, "M1234")
	if entry.Status != StatusSuccess {
		t.Fatalf("expected success, got %s", entry.Status)
	}

	if transport.callCount() != 2 {
		t.Fatalf("expected exactly 2 attempts, got %d", transport.callCount())
	}
}

func TestDispatchTreatsNon200AsFailure(t *testing.T) {
	// 201 and 204 would pass a >=200 check; only exactly 200 counts.
	transport := &scriptedTransport{statuses: []int{http.StatusCreated, http.StatusNoContent, http.StatusAccepted}}
	d, store := newTestDispatcher(t, transport)

	d.Dispatch("M1234", nil, "referral", "Alex Agent")

	entry := waitForFinal(t, store, "M1234")
	if entry.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", entry.Status)
	}
}

func TestDispatchWritesPendingBeforeDelivery(t *testing.T) {
	gate := make(chan struct{})
	transport := &scriptedTransport{statuses: []int{http.StatusOK}, gate: gate}
	d, store := newTestDispatcher(t, transport)

	d.Dispatch("M1234", nil, "referral", "Alex Agent")

	entry, ok := store.Get("M1234")
	if !ok {
		t.Fatal("expected a status entry immediately after dispatch")
	}
	if entry.Status != StatusPending {
		t.Fatalf("expected pending, got %s", entry.Status)
	}

	close(gate)

	final := waitForFinal(t, store, "M1234")
	if final.Status != StatusSuccess {
		t.Fatalf("expected success, got %s", final.Status)
	}
}

func TestDispatchSendsWireBody(t *testing.T) {
	transport := &scriptedTransport{statuses: []int{http.StatusOK}}
	d, store := newTestDispatcher(t, transport)

	d.Dispatch("M1234", map[string]string{"subject": "Gearbox fault"}, "reply_email", "Alex Agent")
	waitForFinal(t, store, "M1234")

	transport.mu.Lock()
	body := transport.bodies[0]
	transport.mu.Unlock()

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal wire body: %v", err)
	}

	if payload["ticket_id"] != "M1234" {
		t.Fatalf("expected ticket_id M1234, got %v", payload["ticket_id"])
	}
	if payload["assignment_method"] != "reply_email" {
		t.Fatalf("expected assignment_method reply_email, got %v", payload["assignment_method"])
	}
	if payload["referred_by"] != "Alex Agent" {
		t.Fatalf("expected referred_by, got %v", payload["referred_by"])
	}
	if payload["timestamp"] != "2024-01-01T12:00:00Z" {
		t.Fatalf("expected fixed timestamp, got %v", payload["timestamp"])
	}

	data, ok := payload["ticket_data"].(map[string]interface{})
	if !ok || data["subject"] != "Gearbox fault" {
		t.Fatalf("expected snapshot in ticket_data, got %v", payload["ticket_data"])
	}
}

func TestRetriesResendTheSameSnapshot(t *testing.T) {
	transport := &scriptedTransport{statuses: []int{http.StatusBadGateway, http.StatusOK}}
	d, store := newTestDispatcher(t, transport)

	d.Dispatch("M1234", map[string]string{"status": "Open"}, "referral", "Alex Agent")
	waitForFinal(t, store, "M1234")

	transport.mu.Lock()
	defer transport.mu.Unlock()

	if len(transport.bodies) != 2 {
		t.Fatalf("expected 2 recorded bodies, got %d", len(transport.bodies))
	}
	if string(transport.bodies[0]) != string(transport.bodies[1]) {
		t.Fatal("expected the retry to resend the identical body")
	}
}

func TestTestDeliveryReturnsStatusAndBody(t *testing.T) {
	transport := &scriptedTransport{statuses: []int{http.StatusTeapot}}
	d, _ := newTestDispatcher(t, transport)

	result, err := d.TestDelivery(map[string]bool{"test": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.StatusCode != http.StatusTeapot {
		t.Fatalf("expected upstream status passed through, got %d", result.StatusCode)
	}
	if result.Body != "upstream response" {
		t.Fatalf("unexpected body %q", result.Body)
	}
}

func TestTestDeliveryTruncatesLongBodies(t *testing.T) {
	long := strings.Repeat("x", 2000)
	transport := &scriptedTransport{statuses: []int{http.StatusOK}}
	d, _ := newTestDispatcher(t, transport)
	d.testClient.Transport = roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(long)),
			Header:     make(http.Header),
			Request:    req,
		}, nil
	})

	result, err := d.TestDelivery(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Body) != maxTestBody {
		t.Fatalf("expected body truncated to %d bytes, got %d", maxTestBody, len(result.Body))
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestTestDeliveryTimeout(t *testing.T) {
	d, _ := newTestDispatcher(t, timeoutTransport{})

	_, err := d.TestDelivery(nil)
	if !errors.Is(err, ErrTestTimeout) {
		t.Fatalf("expected ErrTestTimeout, got %v", err)
	}
}

func TestCleanupClearsStoreAndReportsCount(t *testing.T) {
	store := NewStatusStore()
	store.Set("M1", StatusSuccess, "2024-01-01T12:00:00Z")
	store.Set("M2", StatusFailed, "2024-01-01T12:00:00Z")
	store.Set("M3", StatusPending, "2024-01-01T12:00:00Z")

	d := NewWithOptions("http://automation.test/hook", store, queue.NewRequestQueueManager(1, 1), nil, fixedNow, func(time.Duration) {})

	if cleared := d.Cleanup(); cleared != 3 {
		t.Fatalf("expected 3 cleared entries, got %d", cleared)
	}

	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d entries", store.Len())
	}

	if _, ok := store.Get("M1"); ok {
		t.Fatal("expected entry gone after cleanup")
	}
}

func TestHealthTruncatesLongURL(t *testing.T) {
	longURL := "http://automation.test/" + strings.Repeat("segment/", 10)
	store := NewStatusStore()
	store.Set("M1", StatusPending, "2024-01-01T12:00:00Z")

	d := NewWithOptions(longURL, store, queue.NewRequestQueueManager(1, 1), nil, fixedNow, func(time.Duration) {})

	health := d.Health()
	if !strings.HasSuffix(health.URL, "...") || len(health.URL) != 53 {
		t.Fatalf("expected truncated url, got %q", health.URL)
	}
	if health.Tracked != 1 {
		t.Fatalf("expected 1 tracked entry, got %d", health.Tracked)
	}
}
