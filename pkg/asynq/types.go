package asynq

import "errors"

// Payload describes one job to enqueue
type Payload struct {
	TaskId   string      // Asynq TaskID metadata
	TaskType string      // Asynq TaskType metadata
	Data     interface{} // The Task Payload (JSON)
}

// ErrDisabled is returned by DispatchJob when the queue is switched off or not initialized
var ErrDisabled = errors.New("queue client not available")

// Dispatcher enqueues a job; services depend on this instead of the package function
type Dispatcher func(payload *Payload) error
