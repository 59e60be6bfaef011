package api

import (
	"net/http"
	"strconv"

	reqdto "slotbook/internal/handler/dto/request"
	resdto "slotbook/internal/handler/dto/response"
	"slotbook/internal/handler/httperr"
	"slotbook/internal/usecase/commands"
	"slotbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const serviceNotFound = "Service not found"

type ServiceHandler struct {
	cmds commands.ServiceCommands
	q    queries.ServiceQueries
}

func NewServiceHandler(cmds commands.ServiceCommands, q queries.ServiceQueries) *ServiceHandler {
	return &ServiceHandler{cmds: cmds, q: q}
}

// @Summary List services
// @Tags services
// @Security BearerAuth
// @Produce json
// @Param include_inactive query bool false "Include soft-deleted services"
// @Success 200 {object} resdto.ServiceListResponse
// @Router /services [get]
func (h *ServiceHandler) List(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	includeInactive, _ := strconv.ParseBool(c.Query("include_inactive"))
	views, err := h.q.ListServices(c.Request.Context(), principal.UserID, includeInactive)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewServiceList(views))
}

// @Summary Get service
// @Tags services
// @Security BearerAuth
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} resdto.ServiceResponse
// @Failure 404 {object} httperr.Response
// @Router /services/{id} [get]
func (h *ServiceHandler) Get(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "service")
	if !ok {
		return
	}
	view, err := h.q.GetService(c.Request.Context(), principal.UserID, id)
	if err != nil {
		httperr.Respond(c, err, serviceNotFound)
		return
	}
	c.JSON(http.StatusOK, resdto.ServiceResponse{Service: view})
}

// @Summary Create service
// @Tags services
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateServiceRequest true "Service"
// @Success 201 {object} resdto.ServiceResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /services [post]
func (h *ServiceHandler) Create(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var req reqdto.CreateServiceRequest
	if !bindStrict(c, &req) {
		return
	}
	view, err := h.cmds.CreateService(c.Request.Context(), principal.UserID, req.ToFields())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.ServiceResponse{Message: "Service created successfully", Service: view})
}

// @Summary Update service
// @Description Unknown keys are rejected
// @Tags services
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param request body reqdto.UpdateServiceRequest true "Patch"
// @Success 200 {object} resdto.ServiceResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /services/{id} [put]
func (h *ServiceHandler) Update(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "service")
	if !ok {
		return
	}
	var req reqdto.UpdateServiceRequest
	if !bindStrict(c, &req) {
		return
	}
	view, err := h.cmds.UpdateService(c.Request.Context(), principal.UserID, id, req.ToPatch())
	if err != nil {
		httperr.Respond(c, err, serviceNotFound)
		return
	}
	c.JSON(http.StatusOK, resdto.ServiceResponse{Message: "Service updated successfully", Service: view})
}

// @Summary Delete service
// @Description Soft delete: the service is hidden from public listings
// @Tags services
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Success 200 {object} resdto.MessageResponse
// @Failure 404 {object} httperr.Response
// @Router /services/{id} [delete]
func (h *ServiceHandler) Delete(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "service")
	if !ok {
		return
	}
	if err := h.cmds.DeleteService(c.Request.Context(), principal.UserID, id); err != nil {
		httperr.Respond(c, err, serviceNotFound)
		return
	}
	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Service deleted successfully"})
}

// @Summary Bulk update services
// @Description Each item succeeds or fails on its own
// @Tags services
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.BulkUpdateRequest true "Items"
// @Success 200 {object} resdto.BulkUpdateResponse
// @Router /services/bulk [put]
func (h *ServiceHandler) BulkUpdate(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var req reqdto.BulkUpdateRequest
	if !bindStrict(c, &req) {
		return
	}
	results := h.cmds.BulkUpdate(c.Request.Context(), principal.UserID, req.ToItems())
	c.JSON(http.StatusOK, resdto.BulkUpdateResponse{Message: "Bulk update completed", Results: results})
}

// @Summary Service categories
// @Tags services
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.CategoriesResponse
// @Router /services/categories [get]
func (h *ServiceHandler) Categories(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	categories, err := h.q.Categories(c.Request.Context(), principal.UserID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	c.JSON(http.StatusOK, resdto.CategoriesResponse{Categories: categories})
}

// @Summary Services in a category
// @Tags services
// @Security BearerAuth
// @Produce json
// @Param category path string true "Category"
// @Success 200 {object} resdto.ServiceListResponse
// @Router /services/category/{category} [get]
func (h *ServiceHandler) ByCategory(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	views, err := h.q.ServicesByCategory(c.Request.Context(), principal.UserID, c.Param("category"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewServiceList(views))
}

// @Summary Search services
// @Tags services
// @Security BearerAuth
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} resdto.ServiceListResponse
// @Router /services/search [get]
func (h *ServiceHandler) Search(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	views, err := h.q.SearchServices(c.Request.Context(), principal.UserID, c.Query("q"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewServiceList(views))
}

// @Summary Service statistics
// @Tags services
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.ServiceStatsResponse
// @Router /services/stats [get]
func (h *ServiceHandler) Stats(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	stats, err := h.q.Stats(c.Request.Context(), principal.UserID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.ServiceStatsResponse{Stats: stats})
}

// @Summary Popular services
// @Description The newest active services
// @Tags services
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.ServiceListResponse
// @Router /services/popular [get]
func (h *ServiceHandler) Popular(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	views, err := h.q.Popular(c.Request.Context(), principal.UserID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewServiceList(views))
}
