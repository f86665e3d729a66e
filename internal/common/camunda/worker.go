// internal/common/camunda/worker.go
package camunda

import (
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.uber.org/zap"
)

// HandlerFunc is the job callback shape every task handler exposes.
type HandlerFunc func(client worker.JobClient, job entities.Job)

// Worker is one open job subscription on the broker.
type Worker struct {
	jobWorker worker.JobWorker
	logger    *zap.Logger
	taskType  string
}

// StartWorker opens a job subscription for taskType and begins polling.
func StartWorker(client *Client, taskType string, maxJobsActive int, timeout time.Duration, handler HandlerFunc, logger *zap.Logger) *Worker {
	jobWorker := client.GetClient().NewJobWorker().
		JobType(taskType).
		Handler(worker.JobHandler(handler)).
		MaxJobsActive(maxJobsActive).
		Timeout(timeout).
		Open()

	logger.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", maxJobsActive),
		zap.Duration("timeout", timeout),
	)

	return &Worker{
		jobWorker: jobWorker,
		logger:    logger,
		taskType:  taskType,
	}
}

// Close drains in-flight jobs and closes the subscription.
func (w *Worker) Close() {
	w.logger.Info("stopping worker", zap.String("taskType", w.taskType))
	w.jobWorker.Close()
}
