package services

import (
	"fmt"

	"github.com/diewo77/glasspro/internal/models"
)

// Roster is the workshop crew in insertion order.
type Roster struct {
	workers []models.Worker
}

// NewRoster wraps workers.
func NewRoster(workers []models.Worker) *Roster {
	return &Roster{workers: workers}
}

// List returns a copy of the crew.
func (r *Roster) List() []models.Worker {
	return append([]models.Worker{}, r.workers...)
}

func (r *Roster) index(id string) int {
	for i := range r.workers {
		if r.workers[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns the worker with id.
func (r *Roster) Get(id string) (models.Worker, error) {
	i := r.index(id)
	if i < 0 {
		return models.Worker{}, fmt.Errorf("%w: %s", ErrWorkerNotFound, id)
	}
	return r.workers[i], nil
}

func (r *Roster) add(w models.Worker) {
	r.workers = append(r.workers, w)
}

func (r *Roster) replace(w models.Worker) error {
	i := r.index(w.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrWorkerNotFound, w.ID)
	}
	r.workers[i] = w
	return nil
}

// remove deletes the worker. Documents keep any reference to it.
func (r *Roster) remove(id string) error {
	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrWorkerNotFound, id)
	}
	r.workers = append(r.workers[:i], r.workers[i+1:]...)
	return nil
}

// ActiveJobs returns the documents assigned to workerID that are not paid yet.
func ActiveJobs(docs []models.Document, workerID string) []models.Document {
	var out []models.Document
	for _, d := range docs {
		if d.AssignedWorkerID == workerID && d.Status != models.DocumentStatusPaid {
			out = append(out, d)
		}
	}
	return out
}

// Coordinator links documents to workers.
type Coordinator struct {
	docs   *DocumentRepository
	roster *Roster
}

// NewCoordinator returns a coordinator over docs and roster.
func NewCoordinator(docs *DocumentRepository, roster *Roster) *Coordinator {
	return &Coordinator{docs: docs, roster: roster}
}

// Assign records workerID on the document and puts the worker On Duty.
// An empty workerID unassigns. The previous worker's status is left as is
// and a worker may hold several jobs at once.
func (c *Coordinator) Assign(documentID, workerID string) (models.Document, error) {
	if _, err := c.docs.Get(documentID); err != nil {
		return models.Document{}, err
	}
	wi := -1
	if workerID != "" {
		if wi = c.roster.index(workerID); wi < 0 {
			return models.Document{}, fmt.Errorf("%w: %s", ErrWorkerNotFound, workerID)
		}
	}
	doc, err := c.docs.assign(documentID, workerID)
	if err != nil {
		return models.Document{}, err
	}
	if wi >= 0 {
		c.roster.workers[wi].Status = models.WorkerOnDuty
	}
	return doc, nil
}
