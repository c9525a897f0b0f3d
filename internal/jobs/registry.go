package jobs

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/benedict-erwin/blog-service/internal/constants"
	"github.com/benedict-erwin/blog-service/internal/jobs/articlepublished"
	"github.com/benedict-erwin/blog-service/internal/jobs/welcome"
)

// JobRegistration holds job metadata for registration and worker generation
type JobRegistration struct {
	TaskType string                                   `json:"task_type"`
	Handler  func(context.Context, *asynq.Task) error `json:"-"`
	Queue    string                                   `json:"queue"`
}

// RegisterHandlers registers all job handlers with the asynq server mux and returns job metadata
func RegisterHandlers(mux *asynq.ServeMux) ([]JobRegistration, error) {
	jobs := []JobRegistration{
		// Default
		{
			TaskType: welcome.TypeUserWelcome,
			Handler:  welcome.HandleUserWelcome,
			Queue:    constants.QueueDefault,
		},

		// Low
		{
			TaskType: articlepublished.TypeArticlePublished,
			Handler:  articlepublished.HandleArticlePublished,
			Queue:    constants.QueueLow,
		},
	}

	for _, job := range jobs {
		if !constants.IsValidQueue(job.Queue) {
			return nil, fmt.Errorf("invalid queue '%s' for job '%s'. Valid queues: %v",
				job.Queue, job.TaskType, constants.GetAllQueues())
		}
	}

	if mux != nil {
		for _, job := range jobs {
			mux.HandleFunc(job.TaskType, job.Handler)
		}
	}

	return jobs, nil
}

// GetRegisteredJobs returns job metadata without registering handlers
func GetRegisteredJobs() ([]JobRegistration, error) {
	return RegisterHandlers(nil)
}

// QueueFor returns the registered queue of taskType, default when unknown
func QueueFor(taskType string) string {
	registered, err := GetRegisteredJobs()
	if err != nil {
		return constants.QueueDefault
	}
	for _, job := range registered {
		if job.TaskType == taskType {
			return job.Queue
		}
	}
	return constants.QueueDefault
}
