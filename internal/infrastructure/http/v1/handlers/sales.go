package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dealerdesk/internal/core/apperror"
	"dealerdesk/internal/core/id"
	"dealerdesk/internal/domain/pricing"
	"dealerdesk/internal/domain/sales"
	"dealerdesk/internal/infrastructure/http/v1/dto"
)

// SalesHandler exposes read and delete endpoints for saved sale records and
// objectives. Creation and editing go through worksheets; the only direct
// mutation is moving an objective to another year.
type SalesHandler struct {
	*BaseHandler
	records    *sales.RecordService
	objectives *sales.ObjectiveService
}

// NewSalesHandler creates a sales handler.
func NewSalesHandler(
	base *BaseHandler,
	records *sales.RecordService,
	objectives *sales.ObjectiveService,
) *SalesHandler {
	return &SalesHandler{
		BaseHandler: base,
		records:     records,
		objectives:  objectives,
	}
}

// documentFilter parses the list query shared by records and objectives.
func (h *SalesHandler) documentFilter(c *gin.Context) (sales.DocumentFilter, bool) {
	filter := sales.DefaultDocumentFilter()
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "-created_at")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	if brandID := c.Query("brandId"); brandID != "" {
		parsed, err := id.Parse(brandID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid brandId format"))
			return filter, false
		}
		filter.BrandID = &parsed
	}

	if target := c.Query("target"); target != "" {
		t := pricing.Target(target)
		if !t.Valid() {
			h.Error(c, apperror.NewValidation("unknown target level").
				WithDetail("value", target))
			return filter, false
		}
		filter.Target = &t
	}

	if year := h.ParseIntQuery(c, "year", 0); year != 0 {
		filter.Year = &year
	}

	return filter, true
}

// ListRecords handles GET /sales/records.
func (h *SalesHandler) ListRecords(c *gin.Context) {
	ctx := c.Request.Context()

	filter, ok := h.documentFilter(c)
	if !ok {
		return
	}

	result, err := h.records.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, rec := range result.Items {
		items[i] = dto.FromSaleRecord(rec)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// GetRecord handles GET /sales/records/:id.
func (h *SalesHandler) GetRecord(c *gin.Context) {
	ctx := c.Request.Context()

	recordID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	rec, err := h.records.GetByID(ctx, recordID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSaleRecord(rec))
}

// DeleteRecord handles DELETE /sales/records/:id.
func (h *SalesHandler) DeleteRecord(c *gin.Context) {
	ctx := c.Request.Context()

	recordID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.records.Delete(ctx, recordID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// ListObjectives handles GET /sales/objectives.
func (h *SalesHandler) ListObjectives(c *gin.Context) {
	ctx := c.Request.Context()

	filter, ok := h.documentFilter(c)
	if !ok {
		return
	}

	result, err := h.objectives.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, obj := range result.Items {
		items[i] = dto.FromObjective(obj)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// GetObjective handles GET /sales/objectives/:id.
func (h *SalesHandler) GetObjective(c *gin.Context) {
	ctx := c.Request.Context()

	objectiveID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	obj, err := h.objectives.GetByID(ctx, objectiveID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromObjective(obj))
}

// UpdateObjectiveYear handles PUT /sales/objectives/:id/year. Worksheet
// saves land on the current year; this moves the objective afterwards.
func (h *SalesHandler) UpdateObjectiveYear(c *gin.Context) {
	ctx := c.Request.Context()

	objectiveID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateObjectiveYearRequest
	if !h.BindJSON(c, &req) {
		return
	}

	obj, err := h.objectives.UpdateYear(ctx, objectiveID, req.Year)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromObjective(obj))
}

// DeleteObjective handles DELETE /sales/objectives/:id.
func (h *SalesHandler) DeleteObjective(c *gin.Context) {
	ctx := c.Request.Context()

	objectiveID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.objectives.Delete(ctx, objectiveID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
