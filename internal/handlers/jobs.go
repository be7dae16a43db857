package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Kamaljaya32/Laundry/internal/middleware"
	"github.com/Kamaljaya32/Laundry/internal/models"
	"github.com/Kamaljaya32/Laundry/internal/websocket"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// listJobs returns the owner's active jobs in dashboard order. Optional
// query params: status (a job status or "unpaid") and q (free text over
// customer name or order number).
func (r *Router) listJobs(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)

	var jobs []models.Job
	if err := r.db.Where("owner_id = ?", owner).Find(&jobs).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch jobs")
		return
	}

	models.SortJobs(jobs)
	jobs = models.FilterJobs(jobs, req.URL.Query().Get("status"), req.URL.Query().Get("q"))

	respondJSON(w, http.StatusOK, jobs)
}

// JobStatusRequest is the payload for a status transition
type JobStatusRequest struct {
	Status models.JobStatus `json:"status"`
}

// updateJobStatus applies a status transition picked on the dashboard.
// The new status is mirrored onto the order for history; picking
// "picked_up" deletes the job while the order lives on.
func (r *Router) updateJobStatus(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)

	job, ok := r.findJob(w, req, owner)
	if !ok {
		return
	}

	var sr JobStatusRequest
	if err := json.NewDecoder(req.Body).Decode(&sr); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !sr.Status.Valid() {
		respondError(w, http.StatusBadRequest, "Unknown status")
		return
	}
	if sr.Status == job.Status {
		respondJSON(w, http.StatusOK, job)
		return
	}

	pickedUp := sr.Status == models.StatusPickedUp
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).
			Where("owner_id = ? AND order_number = ?", owner, job.OrderNumber).
			Update("status", sr.Status).Error; err != nil {
			return err
		}
		if pickedUp {
			return tx.Delete(job).Error
		}
		job.Status = sr.Status
		return tx.Save(job).Error
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update status")
		return
	}

	if pickedUp {
		r.hub.Publish(owner, websocket.Event{Type: "job.deleted", Data: map[string]interface{}{
			"id":          job.ID,
			"orderNumber": job.OrderNumber,
		}})
		respondJSON(w, http.StatusOK, map[string]string{
			"message": "Job completed and removed from dashboard",
		})
		return
	}

	r.hub.Publish(owner, websocket.Event{Type: "job.updated", Data: job})
	respondJSON(w, http.StatusOK, job)
}

// JobPaymentRequest is the payload for settling a job's payment
type JobPaymentRequest struct {
	Payment models.PaymentMethod `json:"payment"`
}

// updateJobPayment settles an unpaid job with a concrete payment method.
// The transition is one-way: paid jobs cannot revert to unpaid.
func (r *Router) updateJobPayment(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)

	job, ok := r.findJob(w, req, owner)
	if !ok {
		return
	}

	var pr JobPaymentRequest
	if err := json.NewDecoder(req.Body).Decode(&pr); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !pr.Payment.Paid() {
		respondError(w, http.StatusBadRequest, "Payment must be cash, qris or transfer")
		return
	}
	if job.Payment != models.PaymentUnpaid {
		respondError(w, http.StatusConflict, "Job is already paid")
		return
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).
			Where("owner_id = ? AND order_number = ?", owner, job.OrderNumber).
			Update("payment", pr.Payment).Error; err != nil {
			return err
		}
		job.Payment = pr.Payment
		return tx.Save(job).Error
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update payment")
		return
	}

	r.hub.Publish(owner, websocket.Event{Type: "job.updated", Data: job})
	respondJSON(w, http.StatusOK, job)
}

// findJob loads the job in the {id} path variable, responding with the
// appropriate error itself when it cannot
func (r *Router) findJob(w http.ResponseWriter, req *http.Request, owner string) (*models.Job, bool) {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid job ID")
		return nil, false
	}

	var job models.Job
	if err := r.db.Where("id = ? AND owner_id = ?", id, owner).First(&job).Error; err != nil {
		respondError(w, http.StatusNotFound, "Job not found")
		return nil, false
	}
	return &job, true
}
