package controller

import (
	"peerscore/app_error"
	"peerscore/repository"
	"peerscore/service"
	"peerscore/utils"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CriterionController struct {
	criterionService *service.CriterionService
	userService      *service.UserService
}

func NewCriterionController(db *gorm.DB) *CriterionController {
	return &CriterionController{
		criterionService: service.NewCriterionService(db),
		userService:      service.NewUserService(db),
	}
}

func setupCriterionController(db *gorm.DB) []RouteInfo {
	e := NewCriterionController(db)
	basePath := ""
	routes := []RouteInfo{
		{Method: "GET", Path: "/events/:event_id/criteria", HandlerFunc: e.getCriteriaHandler(), Authenticated: true},
		{Method: "POST", Path: "/events/:event_id/criteria", HandlerFunc: e.createCriterionHandler(), Authenticated: true, RequiredRoles: []repository.Permission{repository.PermissionAdmin}},
		{Method: "PATCH", Path: "/criteria/:criterion_id", HandlerFunc: e.updateCriterionHandler(), Authenticated: true, RequiredRoles: []repository.Permission{repository.PermissionAdmin}},
		{Method: "DELETE", Path: "/criteria/:criterion_id", HandlerFunc: e.deleteCriterionHandler(), Authenticated: true, RequiredRoles: []repository.Permission{repository.PermissionAdmin}},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @id GetCriteria
// @Description Fetches an event's criteria, optionally only the active ones
// @Tags criterion
// @Produce json
// @Param event_id path int true "Event Id"
// @Param active_only query bool false "Only return active criteria"
// @Success 200 {array} Criterion
// @Security BearerAuth
// @Router /events/{event_id}/criteria [get]
func (e *CriterionController) getCriteriaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		criteria, err := e.criterionService.GetCriteriaForEvent(eventId, c.Query("active_only") == "true")
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, utils.Map(criteria, toCriterionResponse))
	}
}

// @id CreateCriterion
// @Description Adds a criterion to an event
// @Tags criterion
// @Accept json
// @Produce json
// @Param event_id path int true "Event Id"
// @Param criterion body CriterionCreate true "Criterion"
// @Success 201 {object} Criterion
// @Security BearerAuth
// @Router /events/{event_id}/criteria [post]
func (e *CriterionController) createCriterionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := e.userService.GetUserFromAuthHeader(c)
		if err != nil {
			c.JSON(401, gin.H{"error": "Not authenticated"})
			return
		}
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var request CriterionCreate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		criterion, err := e.criterionService.CreateCriterion(eventId, request.Name, request.Description, request.MaxScore, admin, c.ClientIP())
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(201, toCriterionResponse(criterion))
	}
}

// @id UpdateCriterion
// @Description Updates a criterion's name, description, maximum score or active flag
// @Tags criterion
// @Accept json
// @Produce json
// @Param criterion_id path int true "Criterion Id"
// @Param criterion body CriterionPatch true "Criterion"
// @Success 200 {object} Criterion
// @Security BearerAuth
// @Router /criteria/{criterion_id} [patch]
func (e *CriterionController) updateCriterionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := e.userService.GetUserFromAuthHeader(c)
		if err != nil {
			c.JSON(401, gin.H{"error": "Not authenticated"})
			return
		}
		criterionId, err := strconv.Atoi(c.Param("criterion_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var request CriterionPatch
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		criterion, err := e.criterionService.UpdateCriterion(criterionId, service.CriterionUpdate{
			Name:        request.Name,
			Description: request.Description,
			MaxScore:    request.MaxScore,
			Active:      request.Active,
		}, admin, c.ClientIP())
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toCriterionResponse(criterion))
	}
}

// @id DeleteCriterion
// @Description Deletes a criterion and reports how many scores went with it
// @Tags criterion
// @Produce json
// @Param criterion_id path int true "Criterion Id"
// @Success 200 {object} CriterionDeleteResponse
// @Security BearerAuth
// @Router /criteria/{criterion_id} [delete]
func (e *CriterionController) deleteCriterionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := e.userService.GetUserFromAuthHeader(c)
		if err != nil {
			c.JSON(401, gin.H{"error": "Not authenticated"})
			return
		}
		criterionId, err := strconv.Atoi(c.Param("criterion_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		deletedScores, err := e.criterionService.DeleteCriterion(criterionId, admin, c.ClientIP())
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, CriterionDeleteResponse{DeletedScores: deletedScores})
	}
}

type CriterionCreate struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	MaxScore    float64 `json:"max_score" binding:"required"`
}

type CriterionPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	MaxScore    *float64 `json:"max_score"`
	Active      *bool    `json:"active"`
}

type Criterion struct {
	Id          int     `json:"id" binding:"required"`
	EventId     int     `json:"event_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	MaxScore    float64 `json:"max_score" binding:"required"`
	Active      bool    `json:"active" binding:"required"`
}

type CriterionDeleteResponse struct {
	DeletedScores int64 `json:"deleted_scores" binding:"required"`
}

func toCriterionResponse(criterion *repository.Criterion) *Criterion {
	return &Criterion{
		Id:          criterion.Id,
		EventId:     criterion.EventId,
		Name:        criterion.Name,
		Description: criterion.Description,
		MaxScore:    criterion.MaxScore,
		Active:      criterion.Active,
	}
}
