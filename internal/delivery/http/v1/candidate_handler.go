package v1

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"candidate-tracker-backend/internal/delivery/http/response"
	"candidate-tracker-backend/internal/domain"
	"candidate-tracker-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

func NewCandidateHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	candidates := r.Group("/candidates")
	{
		candidates.GET("", handler.List)
		candidates.POST("", handler.Create)
		candidates.GET("/:id", handler.Get)
		candidates.PUT("/:id", handler.Update)
		candidates.PATCH("/:id", handler.Patch)
		candidates.DELETE("/:id", handler.Delete)
		candidates.PATCH("/:id/status", handler.UpdateStatus)
	}
}

func candidateID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.Error(apperror.BadRequest("Invalid candidate ID"))
		return 0, false
	}
	return id, true
}

// List godoc
// @Summary      List candidates
// @Description  Paginated candidate list with optional status filter, name/email search and ordering.
// @Tags         candidates
// @Produce      json
// @Param        page       query  int     false  "Page number"
// @Param        page_size  query  int     false  "Page size (max 100)"
// @Param        search     query  string  false  "Case-insensitive substring match on name or email"
// @Param        status     query  string  false  "Filter by status"  Enums(Applied, Interview, Selected, Rejected)
// @Param        ordering   query  string  false  "Order by created_at or name, prefix with - for descending"
// @Success      200  {object}  response.Response{data=domain.CandidatePage}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /candidates [get]
// @Security     BearerAuth
func (h *CandidateHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))

	filter := domain.CandidateFilter{
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}

	// DRF-style ordering param: "name", "-name", "created_at", "-created_at"
	if ordering := c.Query("ordering"); ordering != "" {
		filter.Descending = strings.HasPrefix(ordering, "-")
		filter.OrderBy = strings.TrimPrefix(ordering, "-")
	}

	result, err := h.candidateUC.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidates retrieved", result)
}

// Create godoc
// @Summary      Create candidate
// @Description  Create a new candidate. Name and position are trimmed, email is stored lowercased.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        candidate  body      domain.CandidateInput  true  "Candidate fields"
// @Success      201  {object}  response.Response{data=domain.Candidate}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /candidates [post]
// @Security     BearerAuth
func (h *CandidateHandler) Create(c *gin.Context) {
	var req domain.CandidateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	candidate, err := h.candidateUC.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Candidate created successfully", candidate)
}

// Get godoc
// @Summary      Get candidate
// @Tags         candidates
// @Produce      json
// @Param        id   path      int  true  "Candidate ID"
// @Success      200  {object}  response.Response{data=domain.Candidate}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [get]
// @Security     BearerAuth
func (h *CandidateHandler) Get(c *gin.Context) {
	id, ok := candidateID(c)
	if !ok {
		return
	}

	candidate, err := h.candidateUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate retrieved", candidate)
}

// Update godoc
// @Summary      Update candidate (full replace)
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id         path      int                    true  "Candidate ID"
// @Param        candidate  body      domain.CandidateInput  true  "Candidate fields"
// @Success      200  {object}  response.Response{data=domain.Candidate}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [put]
// @Security     BearerAuth
func (h *CandidateHandler) Update(c *gin.Context) {
	id, ok := candidateID(c)
	if !ok {
		return
	}

	var req domain.CandidateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	candidate, err := h.candidateUC.Update(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate updated successfully", candidate)
}

// Patch godoc
// @Summary      Update candidate (partial)
// @Description  Only fields present in the body are validated and applied.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id         path      int                    true  "Candidate ID"
// @Param        candidate  body      domain.CandidatePatch  true  "Fields to change"
// @Success      200  {object}  response.Response{data=domain.Candidate}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [patch]
// @Security     BearerAuth
func (h *CandidateHandler) Patch(c *gin.Context) {
	id, ok := candidateID(c)
	if !ok {
		return
	}

	var req domain.CandidatePatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	candidate, err := h.candidateUC.Patch(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate updated successfully", candidate)
}

// Delete godoc
// @Summary      Delete candidate
// @Tags         candidates
// @Produce      json
// @Param        id   path      int  true  "Candidate ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [delete]
// @Security     BearerAuth
func (h *CandidateHandler) Delete(c *gin.Context) {
	id, ok := candidateID(c)
	if !ok {
		return
	}

	name, err := h.candidateUC.Delete(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, fmt.Sprintf("Candidate %q deleted successfully", name), nil)
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus godoc
// @Summary      Update candidate status
// @Description  Move the candidate to another pipeline stage. Any status may transition to any other.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id      path      int                  true  "Candidate ID"
// @Param        status  body      UpdateStatusRequest  true  "Target status"
// @Success      200  {object}  response.Response{data=domain.Candidate}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id}/status [patch]
// @Security     BearerAuth
func (h *CandidateHandler) UpdateStatus(c *gin.Context) {
	id, ok := candidateID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	candidate, err := h.candidateUC.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, fmt.Sprintf("Status updated to %s", candidate.Status), candidate)
}
