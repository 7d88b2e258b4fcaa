package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dealerdesk/internal/domain/worksheet"
	"dealerdesk/internal/infrastructure/http/v1/dto"
)

// WorksheetHandler exposes the worksheet session endpoints. Every operation
// returns the full form state so the client never assembles it from deltas.
type WorksheetHandler struct {
	*BaseHandler
	manager *worksheet.Manager
}

// NewWorksheetHandler creates a worksheet handler.
func NewWorksheetHandler(base *BaseHandler, manager *worksheet.Manager) *WorksheetHandler {
	return &WorksheetHandler{BaseHandler: base, manager: manager}
}

// Open handles POST /worksheets - open a new worksheet session.
func (h *WorksheetHandler) Open(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.OpenWorksheetRequest
	if !h.BindJSON(c, &req) {
		return
	}

	state, opts, err := h.manager.Open(ctx, worksheet.Kind(req.Kind), req.RecordID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromWorksheet(state, opts))
}

// Get handles GET /worksheets/:id - current state and option lists.
func (h *WorksheetHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	state, opts, err := h.manager.Get(ctx, c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromWorksheet(state, opts))
}

// Apply handles POST /worksheets/:id/mutations - one field transition.
func (h *WorksheetHandler) Apply(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.MutationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	state, opts, err := h.manager.Apply(ctx, c.Param("id"), worksheet.Mutation{
		Field:  req.Field,
		Value:  req.Value,
		Volume: req.Volume,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromWorksheet(state, opts))
}

// Save handles POST /worksheets/:id/save - persist the worksheet as a sale
// record or objective.
func (h *WorksheetHandler) Save(c *gin.Context) {
	ctx := c.Request.Context()

	recordID, err := h.manager.Save(ctx, c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.IDResponse{ID: recordID})
}

// Close handles DELETE /worksheets/:id - discard the session.
func (h *WorksheetHandler) Close(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.manager.Close(ctx, c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
