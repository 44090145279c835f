package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scrapehub/listings-api/internal/api/domain"
	"github.com/scrapehub/listings-api/internal/api/dto"
)

// ListingsHandler handles generic table reads and the admin bulk delete
type ListingsHandler struct {
	logger        *slog.Logger
	store         ListingStore
	adminUsername string
}

// NewListingsHandler creates a new ListingsHandler instance
func NewListingsHandler(logger *slog.Logger, store ListingStore, adminUsername string) *ListingsHandler {
	return &ListingsHandler{
		logger:        logger,
		store:         store,
		adminUsername: adminUsername,
	}
}

// GetTableData handles GET /api/data/:tableName
// Returns every row of a registered table as a JSON array.
func (h *ListingsHandler) GetTableData(c *gin.Context) {
	name := c.Param("tableName")

	table, ok := domain.LookupTable(name)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Unknown table"})
		return
	}

	rows, err := h.store.SelectAll(c.Request.Context(), table)
	if err != nil {
		h.logger.Error("Failed to fetch table data",
			slog.String("table", table.Name),
			slog.Any("error", err),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// DeleteListings handles POST /api/delete-listings
// Runs an admin-only batch delete, keyed or date-based, all-or-nothing.
func (h *ListingsHandler) DeleteListings(c *gin.Context) {
	var req dto.DeleteListingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.UserName != h.adminUsername {
		h.logger.Warn("Rejected bulk delete from non-admin",
			slog.String("username", req.UserName),
		)
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized: Only admin can perform deletions"})
		return
	}

	if req.TableName == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Table name is required"})
		return
	}

	// A present-but-empty array is a malformed request, not a request to
	// fall back on the date; absent fields decode as nil.
	if req.RecordsToDelete != nil && len(req.RecordsToDelete) == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid input"})
		return
	}

	if req.RecordsToDelete == nil && req.SelectedDate == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Either recordsToDelete or selectedDate is required"})
		return
	}

	table, ok := domain.LookupTable(req.TableName)
	if !ok || !table.Deletable() {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Unknown table"})
		return
	}

	var err error
	if len(req.RecordsToDelete) > 0 {
		err = h.store.DeleteRecords(c.Request.Context(), table, req.RecordsToDelete)
	} else {
		err = h.store.DeleteByDate(c.Request.Context(), table, table.DateValue(req.SelectedDate))
	}
	if err != nil {
		h.logger.Error("Failed to delete records",
			slog.String("table", table.Name),
			slog.Any("error", err),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Records deleted successfully"})
}
