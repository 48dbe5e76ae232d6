package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/icloudnotebook/notebook-backend/internal/common"
	"github.com/icloudnotebook/notebook-backend/internal/domain"
	"github.com/icloudnotebook/notebook-backend/internal/middleware"
	"github.com/icloudnotebook/notebook-backend/internal/service"
)

// NoteHandler handles note CRUD requests
type NoteHandler struct {
	service *service.NoteService
}

// NewNoteHandler creates a new NoteHandler
func NewNoteHandler(service *service.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

// ListNotes handles GET /api/notes
// @Summary List notes
// @Description Returns every note owned by the caller, pinned first, most recently modified first
// @Tags notes
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]domain.Note}
// @Failure 401 {object} common.APIResponse
// @Security BearerAuth
// @Router /notes [get]
func (h *NoteHandler) ListNotes(c *gin.Context) {
	userID := middleware.GetUserID(c)

	notes, err := h.service.List(userID)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	common.SuccessResponse(c, notes)
}

// GetNote handles GET /api/notes/:id
// @Summary Get a note
// @Tags notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} common.APIResponse{data=domain.Note}
// @Failure 401 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /notes/{id} [get]
func (h *NoteHandler) GetNote(c *gin.Context) {
	userID := middleware.GetUserID(c)

	note, err := h.service.Get(userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrNoteNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Note not found", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	common.SuccessResponse(c, note)
}

// CreateNote handles POST /api/notes
// @Summary Create a note
// @Tags notes
// @Accept json
// @Produce json
// @Param request body domain.CreateNoteRequest true "Note fields"
// @Success 201 {object} common.APIResponse{data=domain.Note}
// @Failure 400 {object} common.APIResponse
// @Failure 401 {object} common.APIResponse
// @Security BearerAuth
// @Router /notes [post]
func (h *NoteHandler) CreateNote(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req domain.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	note, err := h.service.Create(userID, &req)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			common.ValidationErrorResponse(c, vErr.Fields)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	common.CreatedResponse(c, note)
}

// UpdateNote handles PUT /api/notes/:id
// @Summary Update a note
// @Description Applies a partial update; fields absent from the body are left unchanged
// @Tags notes
// @Accept json
// @Produce json
// @Param id path string true "Note ID"
// @Param request body domain.UpdateNoteRequest true "Fields to change"
// @Success 200 {object} common.APIResponse{data=domain.Note}
// @Failure 400 {object} common.APIResponse
// @Failure 401 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /notes/{id} [put]
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req domain.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	note, err := h.service.Update(userID, c.Param("id"), &req)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			common.ValidationErrorResponse(c, vErr.Fields)
		case errors.Is(err, common.ErrNoteNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "Note not found", nil)
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "Server error", err)
		}
		return
	}

	common.SuccessResponse(c, note)
}

// DeleteNote handles DELETE /api/notes/:id
// @Summary Delete a note
// @Tags notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} common.APIResponse
// @Failure 401 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /notes/{id} [delete]
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.service.Delete(userID, c.Param("id")); err != nil {
		if errors.Is(err, common.ErrNoteNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Note not found", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	common.SuccessResponse(c, gin.H{"message": "Note deleted successfully"})
}
