package queue

import (
	"log"
	"sync"
)

// Job is a unit of work for the pool. When Errc is nil the job is detached:
// no caller is waiting on the result and the worker drops the error after
// running Fn.
type Job struct {
	Fn   func() error
	Errc chan error
}

// RequestQueueManager is a fixed-size worker pool fed by a buffered channel.
// Each server owns one for its request path; the webhook dispatcher owns a
// separate one so slow deliveries never starve request handling.
type RequestQueueManager struct {
	JobQueue   chan Job
	MaxWorkers int
	wg         sync.WaitGroup
}

func NewRequestQueueManager(queueSize int, maxWorkers int) *RequestQueueManager {
	rqm := &RequestQueueManager{
		JobQueue:   make(chan Job, queueSize),
		MaxWorkers: maxWorkers,
	}
	for i := 0; i < maxWorkers; i++ {
		rqm.wg.Add(1)
		go rqm.worker(i)
	}
	return rqm
}

func (rqm *RequestQueueManager) worker(id int) {
	defer rqm.wg.Done()
	log.Printf("queue: worker %d started", id)
	for job := range rqm.JobQueue {
		err := job.Fn()
		if job.Errc != nil {
			job.Errc <- err
		}
	}
	log.Printf("queue: worker %d stopped", id)
}

// EnqueueJob blocks when the queue is full; backpressure is intentional.
func (rqm *RequestQueueManager) EnqueueJob(job Job) {
	rqm.JobQueue <- job
}

// Shutdown stops accepting work and waits for in-flight jobs to finish.
// Detached jobs already enqueued still run to completion.
func (rqm *RequestQueueManager) Shutdown() {
	close(rqm.JobQueue)
	rqm.wg.Wait()
}
