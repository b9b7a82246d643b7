package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/adscalemedia/adsite-backend/internal/models"
	"github.com/adscalemedia/adsite-backend/internal/ratelimit"
	"github.com/adscalemedia/adsite-backend/internal/schema"
	"github.com/adscalemedia/adsite-backend/internal/storage"
	"github.com/adscalemedia/adsite-backend/internal/util"
)

// InquiryHandler handles the public submission endpoint and the protected
// admin endpoints over inquiries.
type InquiryHandler struct {
	store   storage.Storage
	limiter *ratelimit.Limiter
}

// NewInquiryHandler constructs an InquiryHandler.
func NewInquiryHandler(store storage.Storage, limiter *ratelimit.Limiter) *InquiryHandler {
	return &InquiryHandler{store: store, limiter: limiter}
}

// Create validates a public form submission, applies the per-IP rate limit,
// and persists the inquiry.
func (h *InquiryHandler) Create(c *gin.Context) {
	var form schema.InquiryForm
	if errBind := c.ShouldBindJSON(&form); errBind != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	form.Normalize()
	if errs := form.Validate(); len(errs) > 0 {
		respondValidationError(c, errs)
		return
	}

	ip := c.ClientIP()
	allowed, policy, errLimit := h.limiter.Allow(c.Request.Context(), ip)
	if errLimit != nil {
		log.WithError(errLimit).Error("inquiry: rate limit check failed")
		respondError(c, http.StatusInternalServerError, "Failed to submit inquiry")
		return
	}
	if !allowed {
		log.WithField("ip", ip).Info("inquiry submission rate limited")
		respondError(c, http.StatusTooManyRequests, policy.Message())
		return
	}

	inquiry := models.Inquiry{
		Name:      form.Name,
		Phone:     form.Phone,
		Email:     form.Email,
		Country:   form.Country,
		Message:   form.Message,
		Platform:  form.Platform,
		IPAddress: ip,
	}
	if errCreate := h.store.CreateInquiry(c.Request.Context(), &inquiry); errCreate != nil {
		log.WithError(errCreate).Error("inquiry: create failed")
		respondError(c, http.StatusInternalServerError, "Failed to submit inquiry")
		return
	}

	log.WithFields(log.Fields{
		"id":       inquiry.ID,
		"platform": inquiry.Platform,
		"email":    util.MaskEmail(inquiry.Email),
		"phone":    util.MaskPhone(inquiry.Phone),
	}).Info("inquiry submitted")
	respondOK(c, http.StatusOK, gin.H{"inquiry": inquiry})
}

// List returns all inquiries, newest first.
func (h *InquiryHandler) List(c *gin.Context) {
	inquiries, err := h.store.GetInquiries(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("inquiry: list failed")
		respondError(c, http.StatusInternalServerError, "Failed to fetch inquiries")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"inquiries": inquiries})
}

// ListByPlatform returns the inquiries for one platform, newest first.
func (h *InquiryHandler) ListByPlatform(c *gin.Context) {
	platform := c.Param("platform")
	if !schema.ValidPlatform(platform) {
		respondError(c, http.StatusBadRequest, "Invalid platform")
		return
	}

	inquiries, err := h.store.GetInquiriesByPlatform(c.Request.Context(), platform)
	if err != nil {
		log.WithError(err).Error("inquiry: list by platform failed")
		respondError(c, http.StatusInternalServerError, "Failed to fetch inquiries")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"inquiries": inquiries})
}

// remarkRequest defines the request body for remark updates. A pointer
// distinguishes a missing field from an explicit empty string, which clears
// the remark.
type remarkRequest struct {
	Remarks *string `json:"remarks"`
}

// UpdateRemark sets or clears the admin remark on an inquiry.
func (h *InquiryHandler) UpdateRemark(c *gin.Context) {
	var body remarkRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil || body.Remarks == nil {
		respondError(c, http.StatusBadRequest, "Remarks field is required")
		return
	}

	inquiry, err := h.store.UpdateInquiryRemark(c.Request.Context(), c.Param("id"), *body.Remarks)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Inquiry not found")
			return
		}
		log.WithError(err).Error("inquiry: update remark failed")
		respondError(c, http.StatusInternalServerError, "Failed to update inquiry")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"inquiry": inquiry})
}

// Delete removes an inquiry.
func (h *InquiryHandler) Delete(c *gin.Context) {
	deleted, err := h.store.DeleteInquiry(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.WithError(err).Error("inquiry: delete failed")
		respondError(c, http.StatusInternalServerError, "Failed to delete inquiry")
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, "Inquiry not found")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "Inquiry deleted"})
}
