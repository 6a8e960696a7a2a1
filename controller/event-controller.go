package controller

import (
	"peerscore/app_error"
	"peerscore/repository"
	"peerscore/service"
	"peerscore/utils"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type EventController struct {
	eventService *service.EventService
	userService  *service.UserService
}

func NewEventController(db *gorm.DB) *EventController {
	return &EventController{
		eventService: service.NewEventService(db),
		userService:  service.NewUserService(db),
	}
}

func setupEventController(db *gorm.DB) []RouteInfo {
	e := NewEventController(db)
	basePath := "/events"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getEventsHandler(), Authenticated: true},
		{Method: "POST", Path: "", HandlerFunc: e.createEventHandler(), Authenticated: true, RequiredRoles: []repository.Permission{repository.PermissionAdmin}},
		{Method: "GET", Path: "/:event_id", HandlerFunc: e.getEventHandler(), Authenticated: true},
		{Method: "PATCH", Path: "/:event_id", HandlerFunc: e.updateEventHandler(), Authenticated: true, RequiredRoles: []repository.Permission{repository.PermissionAdmin}},
		{Method: "DELETE", Path: "/:event_id", HandlerFunc: e.deleteEventHandler(), Authenticated: true, RequiredRoles: []repository.Permission{repository.PermissionAdmin}},
		{Method: "POST", Path: "/:event_id/join", HandlerFunc: e.joinEventHandler(), Authenticated: true},
		{Method: "POST", Path: "/:event_id/leave", HandlerFunc: e.leaveEventHandler(), Authenticated: true},
		{Method: "GET", Path: "/:event_id/participants", HandlerFunc: e.getParticipantsHandler(), Authenticated: true},
		{Method: "DELETE", Path: "/:event_id/participants/:user_id", HandlerFunc: e.removeParticipantHandler(), Authenticated: true, RequiredRoles: []repository.Permission{repository.PermissionAdmin}},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @id GetEvents
// @Description Fetches all events, newest first
// @Tags event
// @Produce json
// @Success 200 {array} Event
// @Security BearerAuth
// @Router /events [get]
func (e *EventController) getEventsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := e.eventService.GetAllEvents()
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, utils.Map(events, toEventResponse))
	}
}

// @id CreateEvent
// @Description Creates an event
// @Tags event
// @Accept json
// @Produce json
// @Param event body EventCreate true "Event"
// @Success 201 {object} Event
// @Security BearerAuth
// @Router /events [post]
func (e *EventController) createEventHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := e.userService.GetUserFromAuthHeader(c)
		if err != nil {
			c.JSON(401, gin.H{"error": "Not authenticated"})
			return
		}
		var request EventCreate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		event, err := e.eventService.CreateEvent(request.Name, request.Description, admin, c.ClientIP())
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(201, toEventResponse(event))
	}
}

// @id GetEvent
// @Description Fetches an event by id
// @Tags event
// @Produce json
// @Param event_id path int true "Event Id"
// @Success 200 {object} Event
// @Security BearerAuth
// @Router /events/{event_id} [get]
func (e *EventController) getEventHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		event, err := e.eventService.GetEventById(eventId)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toEventResponse(event))
	}
}

// @id UpdateEvent
// @Description Updates an event's name, description or active flag
// @Tags event
// @Accept json
// @Produce json
// @Param event_id path int true "Event Id"
// @Param event body EventPatch true "Event"
// @Success 200 {object} Event
// @Security BearerAuth
// @Router /events/{event_id} [patch]
func (e *EventController) updateEventHandler() gin.HandlerFunc {
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
		var request EventPatch
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		event, err := e.eventService.UpdateEvent(eventId, service.EventUpdate{
			Name:        request.Name,
			Description: request.Description,
			Active:      request.Active,
		}, admin, c.ClientIP())
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toEventResponse(event))
	}
}

// @id DeleteEvent
// @Description Deletes an event with all its criteria, participants and evaluations
// @Tags event
// @Param event_id path int true "Event Id"
// @Success 204
// @Security BearerAuth
// @Router /events/{event_id} [delete]
func (e *EventController) deleteEventHandler() gin.HandlerFunc {
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
		if err := e.eventService.DeleteEvent(eventId, admin, c.ClientIP()); err != nil {
			app_error.Respond(c, err)
			return
		}
		c.Status(204)
	}
}

// @id JoinEvent
// @Description Adds the authenticated user to an event's participants
// @Tags event
// @Param event_id path int true "Event Id"
// @Success 204
// @Security BearerAuth
// @Router /events/{event_id}/join [post]
func (e *EventController) joinEventHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := e.userService.GetUserFromAuthHeader(c)
		if err != nil {
			c.JSON(401, gin.H{"error": "Not authenticated"})
			return
		}
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.eventService.JoinEvent(eventId, user, c.ClientIP()); err != nil {
			app_error.Respond(c, err)
			return
		}
		c.Status(204)
	}
}

// @id LeaveEvent
// @Description Removes the authenticated user from an event's participants
// @Tags event
// @Param event_id path int true "Event Id"
// @Success 204
// @Security BearerAuth
// @Router /events/{event_id}/leave [post]
func (e *EventController) leaveEventHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := e.userService.GetUserFromAuthHeader(c)
		if err != nil {
			c.JSON(401, gin.H{"error": "Not authenticated"})
			return
		}
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.eventService.LeaveEvent(eventId, user, c.ClientIP()); err != nil {
			app_error.Respond(c, err)
			return
		}
		c.Status(204)
	}
}

// @id GetParticipants
// @Description Fetches an event's participants in join order
// @Tags event
// @Produce json
// @Param event_id path int true "Event Id"
// @Success 200 {array} Participant
// @Security BearerAuth
// @Router /events/{event_id}/participants [get]
func (e *EventController) getParticipantsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		participants, err := e.eventService.GetParticipants(eventId)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, utils.Map(participants, toParticipantResponse))
	}
}

// @id RemoveParticipant
// @Description Removes a participant from an event
// @Tags event
// @Param event_id path int true "Event Id"
// @Param user_id path int true "User Id"
// @Success 204
// @Security BearerAuth
// @Router /events/{event_id}/participants/{user_id} [delete]
func (e *EventController) removeParticipantHandler() gin.HandlerFunc {
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
		userId, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.eventService.RemoveParticipant(eventId, userId, admin, c.ClientIP()); err != nil {
			app_error.Respond(c, err)
			return
		}
		c.Status(204)
	}
}

type EventCreate struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type EventPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

type Event struct {
	Id          int       `json:"id" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Active      bool      `json:"active" binding:"required"`
	CreatedAt   time.Time `json:"created_at" binding:"required"`
	UpdatedAt   time.Time `json:"updated_at" binding:"required"`
}

type Participant struct {
	UserId    int       `json:"user_id" binding:"required"`
	Nickname  string    `json:"nickname" binding:"required"`
	FullName  string    `json:"full_name" binding:"required"`
	GroupName string    `json:"group_name"`
	JoinedAt  time.Time `json:"joined_at" binding:"required"`
}

func toEventResponse(event *repository.Event) *Event {
	return &Event{
		Id:          event.Id,
		Name:        event.Name,
		Description: event.Description,
		Active:      event.Active,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
}

func toParticipantResponse(participant *repository.EventParticipant) *Participant {
	response := &Participant{
		UserId:   participant.UserId,
		JoinedAt: participant.JoinedAt,
	}
	if participant.User != nil {
		response.Nickname = participant.User.Nickname
		response.FullName = participant.User.FullName
		response.GroupName = participant.User.GroupName
	}
	return response
}
