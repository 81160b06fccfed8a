package handlers

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/contact-album/internal/config"
	"github.com/kozaktomas/contact-album/internal/run"
)

// MatchHandler starts resolution runs and reports their results. This is
// the web replacement for picking folders and clicking "process" in a
// desktop window: the run happens on a background goroutine so the UI can
// poll instead of freezing.
type MatchHandler struct {
	cfg  *config.Config
	jobs *JobManager
}

func NewMatchHandler(cfg *config.Config, jobs *JobManager) *MatchHandler {
	return &MatchHandler{cfg: cfg, jobs: jobs}
}

type matchRequest struct {
	Mode     string `json:"mode"` // "folders" or "photos"
	Contacts string `json:"contacts"`
	Base     string `json:"base"`
	Output   string `json:"output"`
	DryRun   bool   `json:"dry_run"`
	Workers  int    `json:"workers"`
}

// Start launches a resolution job and returns its ID immediately.
func (h *MatchHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.Mode != "folders" && req.Mode != "photos" {
		respondError(w, http.StatusBadRequest, "mode must be \"folders\" or \"photos\"")
		return
	}
	if req.Contacts == "" || req.Base == "" {
		respondError(w, http.StatusBadRequest, "contacts and base are required")
		return
	}
	if req.Output == "" && !req.DryRun {
		respondError(w, http.StatusBadRequest, "output is required unless dry_run is set")
		return
	}
	if _, err := os.Stat(req.Contacts); err != nil {
		respondError(w, http.StatusBadRequest, "contacts file not found")
		return
	}

	jobID := h.jobs.Create(req.Mode, req.Output)
	go h.runJob(jobID, req)

	respondJSON(w, http.StatusAccepted, map[string]string{"id": jobID})
}

func (h *MatchHandler) runJob(jobID string, req matchRequest) {
	h.jobs.SetRunning(jobID)

	opts := run.Options{
		Contacts: req.Contacts,
		Base:     req.Base,
		Output:   req.Output,
		Workers:  req.Workers,
		DryRun:   req.DryRun,
	}

	switch req.Mode {
	case "folders":
		result, err := run.Folders(h.cfg, opts)
		if err != nil {
			h.jobs.Fail(jobID, err)
			return
		}
		h.jobs.Complete(jobID, result, nil)
	case "photos":
		summary, err := run.Photos(h.cfg, opts)
		if err != nil {
			h.jobs.Fail(jobID, err)
			return
		}
		h.jobs.Complete(jobID, nil, summary)
	}
}

// Status reports one job, including its full result once completed.
func (h *MatchHandler) Status(w http.ResponseWriter, r *http.Request) {
	job, ok := h.jobs.Get(chi.URLParam(r, "jobID"))
	if !ok {
		respondError(w, http.StatusNotFound, "job not found")
		return
	}
	respondJSON(w, http.StatusOK, job)
}

// Album serves a completed photo-mode job's generated album directory.
func (h *MatchHandler) Album(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job, ok := h.jobs.Get(jobID)
	if !ok {
		respondError(w, http.StatusNotFound, "job not found")
		return
	}
	if job.Status != JobStatusCompleted || job.PhotoSummary == nil || job.Output == "" {
		respondError(w, http.StatusConflict, "job has no album to serve")
		return
	}

	prefix := "/album/" + jobID + "/"
	http.StripPrefix(prefix, http.FileServer(http.Dir(job.Output))).ServeHTTP(w, r)
}
