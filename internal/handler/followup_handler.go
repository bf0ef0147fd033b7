package handler

import (
	"net/http"
	"strconv"

	"github.com/Raymond9734/smallbiz-crm/internal/export"
	"github.com/Raymond9734/smallbiz-crm/internal/service"
	"github.com/Raymond9734/smallbiz-crm/internal/validation"
)

// FollowupHandler handles followup HTTP requests, including the customer
// spreadsheet export that the client reaches under /followups
type FollowupHandler struct {
	followupService service.FollowupService
	customerService service.CustomerService
	errors          *ErrorHandler
}

// NewFollowupHandler creates a new followup handler
func NewFollowupHandler(
	followupService service.FollowupService,
	customerService service.CustomerService,
	errors *ErrorHandler,
) *FollowupHandler {
	return &FollowupHandler{
		followupService: followupService,
		customerService: customerService,
		errors:          errors,
	}
}

// ListFollowups handles GET /followups
func (h *FollowupHandler) ListFollowups(w http.ResponseWriter, r *http.Request) {
	followups, err := h.followupService.ListPending(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondSuccess(w, followups)
}

// CreateFollowup handles POST /followups
func (h *FollowupHandler) CreateFollowup(w http.ResponseWriter, r *http.Request) {
	p, err := bind(w, r, validation.Followup)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	followup, err := h.followupService.Create(r.Context(), followupInput(p))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondCreated(w, followup)
}

// CompleteFollowup handles PATCH /followups/{id}/complete
func (h *FollowupHandler) CompleteFollowup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", invalidIDMessage)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	followup, err := h.followupService.Complete(r.Context(), id)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondSuccess(w, followup)
}

// ExportCustomers handles GET /followups/export
func (h *FollowupHandler) ExportCustomers(w http.ResponseWriter, r *http.Request) {
	data, err := h.customerService.Export(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+export.FileName)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
