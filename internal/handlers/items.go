package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"home_inventory/internal/repository"
	"home_inventory/internal/service"
)

const (
	errInternal    = "Internal Server Error"
	errStorage     = "storage unavailable"
	errNotFound    = "item not found"
	errNoIdentity  = "missing authenticated user"
	msgItemDeleted = "Item deleted successfully"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// itemError maps service/repository failures onto response codes. Not-found is
// identical whether the item is absent or owned by another user.
func (h *Handler) itemError(c *gin.Context, logKey string, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errNotFound})
	case errors.Is(err, repository.ErrStorageUnavailable):
		h.logAndJSONError(c, http.StatusInternalServerError, errStorage, logKey, err)
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, logKey, err)
	}
}

// Request DTO for creating an item. Quantity is a pointer: nil means omitted
// (defaults to 1), while an explicit 0 is kept as 0.
type createItemRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location" binding:"required"`
	Quantity *int   `json:"quantity"`
}

// Request DTO for partial item updates; absent fields stay unchanged.
type updateItemRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Quantity *int    `json:"quantity"`
}

// @Summary      List own items
// @Tags         items
// @Produce      json
// @Success      200  {array}   models.Item
// @Failure      401  {object}  map[string]string
// @Router       /items [get]
// @Security     BearerAuth
func (h *Handler) listItems(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errNoIdentity})
		return
	}

	items, err := h.services.ListItems(c.Request.Context(), owner)
	if err != nil {
		h.itemError(c, "items_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Create an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body      createItemRequest  true  "Item payload"
// @Success      201   {object}  models.Item
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /items [post]
// @Security     BearerAuth
func (h *Handler) createItem(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errNoIdentity})
		return
	}

	var req createItemRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	item, err := h.services.CreateItem(c.Request.Context(), owner, service.CreateItemParams{
		Name:     req.Name,
		Location: req.Location,
		Quantity: req.Quantity,
	})
	if err != nil {
		h.itemError(c, "items_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// @Summary      Update an owned item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Item id"
// @Param        body  body      updateItemRequest  true  "Fields to change"
// @Success      200   {object}  models.Item
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /items/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateItem(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errNoIdentity})
		return
	}

	var req updateItemRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	item, err := h.services.UpdateItem(c.Request.Context(), c.Param("id"), owner, service.UpdateItemParams{
		Name:     req.Name,
		Location: req.Location,
		Quantity: req.Quantity,
	})
	if err != nil {
		h.itemError(c, "items_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// @Summary      Delete an owned item
// @Tags         items
// @Produce      json
// @Param        id  path      string  true  "Item id"
// @Success      200 {object}  map[string]string
// @Failure      401 {object}  map[string]string
// @Failure      404 {object}  map[string]string
// @Router       /items/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteItem(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errNoIdentity})
		return
	}

	if err := h.services.DeleteItem(c.Request.Context(), c.Param("id"), owner); err != nil {
		h.itemError(c, "items_delete_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgItemDeleted})
}
