package webhook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/env"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/queue"
	"github.com/autoassistgroup-dev/AutoAssist--portal/utils"
)

const (
	maxAttempts    = 3
	attemptTimeout = 30 * time.Second
	retryBackoff   = 2 * time.Second
	testTimeout    = 10 * time.Second
	maxTestBody    = 500
)

// ErrTestTimeout marks a diagnostic probe that hit the short test timeout;
// the endpoint maps it to 504.
var ErrTestTimeout = errors.New("webhook test: upstream timeout")

// Payload is the wire body POSTed to the automation platform. TicketData is
// serialized once at dispatch time, so retries resend the same snapshot even
// if the ticket mutates while the delivery is in flight.
type Payload struct {
	TicketID         string      `json:"ticket_id"`
	TicketData       interface{} `json:"ticket_data"`
	AssignmentMethod string      `json:"assignment_method"`
	ReferredBy       string      `json:"referred_by"`
	Timestamp        string      `json:"timestamp"`
}

type TestResult struct {
	StatusCode int
	Body       string
	Duration   time.Duration
}

type HealthInfo struct {
	URL     string
	Tracked int
}

// Dispatcher delivers notification payloads to the automation platform with
// retry, off the request path. Callers fire and forget: delivery outcome is
// recorded in the status store, never returned.
type Dispatcher struct {
	url        string
	store      *StatusStore
	jobs       *queue.RequestQueueManager
	client     *http.Client
	testClient *http.Client
	now        func() time.Time
	sleep      func(time.Duration)
}

func New(store *StatusStore) *Dispatcher {
	return NewWithOptions(env.Get(env.AutomationWebhookURL), store, nil, nil, nil, nil)
}

var (
	defaultDispatcher     *Dispatcher
	defaultDispatcherOnce sync.Once
)

// Default returns the process-wide dispatcher. The reply path and the webhook
// endpoints must see one status store, so both resolve the same instance.
func Default() *Dispatcher {
	defaultDispatcherOnce.Do(func() {
		defaultDispatcher = New(NewStatusStore())
	})
	return defaultDispatcher
}

// NewWithOptions wires explicit collaborators; tests use it to script
// upstream responses, pin the clock, and skip real backoff waits.
func NewWithOptions(url string, store *StatusStore, jobs *queue.RequestQueueManager, client *http.Client, now func() time.Time, sleep func(time.Duration)) *Dispatcher {
	if store == nil {
		store = NewStatusStore()
	}
	if jobs == nil {
		jobs = queue.NewRequestQueueManager(10, 10)
	}
	if client == nil {
		client = &http.Client{Timeout: attemptTimeout}
	}
	if now == nil {
		now = time.Now
	}
	if sleep == nil {
		sleep = time.Sleep
	}

	return &Dispatcher{
		url:        url,
		store:      store,
		jobs:       jobs,
		client:     client,
		testClient: &http.Client{Timeout: testTimeout, Transport: client.Transport},
		now:        now,
		sleep:      sleep,
	}
}

// Dispatch hands the payload to a background worker and returns at once.
// The pending entry is written before the job is queued, so a status poll
// issued straight after the triggering request never sees unknown.
func (d *Dispatcher) Dispatch(ticketCode string, snapshot interface{}, methodTag, actorName string) {
	payload := Payload{
		TicketID:         ticketCode,
		TicketData:       snapshot,
		AssignmentMethod: methodTag,
		ReferredBy:       actorName,
		Timestamp:        d.timestamp(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("webhook dispatch %s: marshal payload: %v", ticketCode, err)
		d.store.Set(ticketCode, StatusFailed, d.timestamp())
		dispatchesTotal.WithLabelValues(string(StatusFailed)).Inc()
		return
	}

	d.store.Set(ticketCode, StatusPending, d.timestamp())

	d.jobs.EnqueueJob(queue.Job{
		Fn: func() error {
			d.deliver(ticketCode, body)
			return nil
		},
	})
}

func (d *Dispatcher) deliver(ticketCode string, body []byte) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		attemptsTotal.Inc()

		if d.post(ticketCode, attempt, body) {
			d.store.Set(ticketCode, StatusSuccess, d.timestamp())
			dispatchesTotal.WithLabelValues(string(StatusSuccess)).Inc()
			log.Printf("webhook delivered for ticket %s on attempt %d", ticketCode, attempt)
			return
		}

		if attempt < maxAttempts {
			d.sleep(retryBackoff)
		}
	}

	d.store.Set(ticketCode, StatusFailed, d.timestamp())
	dispatchesTotal.WithLabelValues(string(StatusFailed)).Inc()
	log.Printf("webhook delivery failed for ticket %s after %d attempts", ticketCode, maxAttempts)
}

func (d *Dispatcher) post(ticketCode string, attempt int, body []byte) bool {
	resp, err := d.client.Post(d.url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("webhook attempt %d for ticket %s failed: %v", attempt, ticketCode, err)
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		log.Printf("webhook attempt %d for ticket %s returned status %d", attempt, ticketCode, resp.StatusCode)
		return false
	}

	return true
}

// TestDelivery makes one direct POST with a short timeout so an operator can
// probe the automation endpoint without queueing a job or touching the
// status store.
func (d *Dispatcher) TestDelivery(payload interface{}) (TestResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return TestResult{}, fmt.Errorf("webhook test: marshal payload: %w", err)
	}

	start := d.now()
	resp, err := d.testClient.Post(d.url, "application/json", bytes.NewReader(body))
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return TestResult{}, ErrTestTimeout
		}
		return TestResult{}, fmt.Errorf("webhook test: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxTestBody))
	if err != nil {
		return TestResult{}, fmt.Errorf("webhook test: read response: %w", err)
	}

	return TestResult{
		StatusCode: resp.StatusCode,
		Body:       string(raw),
		Duration:   d.now().Sub(start),
	}, nil
}

func (d *Dispatcher) Status(ticketCode string) (StatusEntry, bool) {
	return d.store.Get(ticketCode)
}

func (d *Dispatcher) Health() HealthInfo {
	return HealthInfo{
		URL:     utils.Truncate(d.url, 50),
		Tracked: d.store.Len(),
	}
}

// Cleanup clears the status store and reports how many entries were dropped.
func (d *Dispatcher) Cleanup() int {
	return d.store.Clear()
}

func (d *Dispatcher) timestamp() string {
	return d.now().UTC().Format(time.RFC3339)
}
