package handlers

import (
	"net/http"

	"github.com/diewo77/glasspro/httpx"
	"github.com/diewo77/glasspro/internal/models"
	"github.com/diewo77/glasspro/internal/services"
	"github.com/sirupsen/logrus"
)

type WorkerHandler struct {
	shop *services.Shop
	log  logrus.FieldLogger
}

func NewWorkerHandler(shop *services.Shop, log logrus.FieldLogger) *WorkerHandler {
	return &WorkerHandler{shop: shop, log: log}
}

func (h *WorkerHandler) List(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.shop.Workers())
}

func (h *WorkerHandler) View(w http.ResponseWriter, r *http.Request) {
	worker, err := h.shop.Worker(r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, worker)
}

// Jobs lists the worker's assigned documents that are not paid yet.
func (h *WorkerHandler) Jobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.shop.WorkerJobs(r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if jobs == nil {
		jobs = []models.Document{}
	}
	httpx.JSON(w, http.StatusOK, jobs)
}

func (h *WorkerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var worker models.Worker
	if !decode(w, r, &worker) {
		return
	}
	created, err := h.shop.AddWorker(r.Context(), worker)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *WorkerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var worker models.Worker
	if !decode(w, r, &worker) {
		return
	}
	worker.ID = r.PathValue("id")
	updated, err := h.shop.UpdateWorker(r.Context(), worker)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *WorkerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.shop.DeleteWorker(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
