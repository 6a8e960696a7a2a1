package service

import (
	"strings"

	"peerscore/app_error"
	"peerscore/repository"

	"gorm.io/gorm"
)

type EventService struct {
	event_repository *repository.EventRepository
	audit_service    *AuditService
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{
		event_repository: repository.NewEventRepository(db),
		audit_service:    NewAuditService(db),
	}
}

type EventUpdate struct {
	Name        *string
	Description *string
	Active      *bool
}

func (e *EventService) GetAllEvents(preloads ...string) ([]*repository.Event, error) {
	return e.event_repository.FindAll(preloads...)
}

func (e *EventService) GetEventById(eventId int, preloads ...string) (*repository.Event, error) {
	return e.event_repository.GetEventById(eventId, preloads...)
}

func (e *EventService) CreateEvent(name string, description string, admin *repository.User, ip string) (*repository.Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, app_error.NewValidation("name", "event name must not be empty")
	}
	event, err := e.event_repository.Save(&repository.Event{
		Name:        name,
		Description: strings.TrimSpace(description),
		Active:      true,
	})
	if err != nil {
		return nil, err
	}
	e.audit_service.Record(AdminActor(admin, ip), "event.create", "event", &event.Id, nil, eventSnapshot(event))
	return event, nil
}

func (e *EventService) UpdateEvent(eventId int, update EventUpdate, admin *repository.User, ip string) (*repository.Event, error) {
	event, err := e.event_repository.GetEventById(eventId)
	if err != nil {
		return nil, err
	}
	before := eventSnapshot(event)
	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return nil, app_error.NewValidation("name", "event name must not be empty")
		}
		event.Name = strings.TrimSpace(*update.Name)
	}
	if update.Description != nil {
		event.Description = strings.TrimSpace(*update.Description)
	}
	if update.Active != nil {
		event.Active = *update.Active
	}
	event, err = e.event_repository.Save(event)
	if err != nil {
		return nil, err
	}
	e.audit_service.Record(AdminActor(admin, ip), "event.update", "event", &event.Id, before, eventSnapshot(event))
	return event, nil
}

// DeleteEvent removes the event and cascades to criteria, participants and
// evaluations.
func (e *EventService) DeleteEvent(eventId int, admin *repository.User, ip string) error {
	event, err := e.event_repository.GetEventById(eventId)
	if err != nil {
		return err
	}
	if err := e.event_repository.Delete(eventId); err != nil {
		return err
	}
	e.audit_service.Record(AdminActor(admin, ip), "event.delete", "event", &eventId, eventSnapshot(event), nil)
	return nil
}

func (e *EventService) JoinEvent(eventId int, user *repository.User, ip string) error {
	event, err := e.event_repository.GetEventById(eventId)
	if err != nil {
		return err
	}
	if !event.Active {
		return app_error.NewValidation("event_id", "event %q is not active", event.Name)
	}
	if err := e.event_repository.AddParticipant(eventId, user.Id); err != nil {
		return err
	}
	e.audit_service.Record(UserActor(user, ip), "event.join", "event", &eventId, nil, nil)
	return nil
}

func (e *EventService) LeaveEvent(eventId int, user *repository.User, ip string) error {
	if _, err := e.event_repository.GetEventById(eventId); err != nil {
		return err
	}
	if err := e.event_repository.RemoveParticipant(eventId, user.Id); err != nil {
		return err
	}
	e.audit_service.Record(UserActor(user, ip), "event.leave", "event", &eventId, nil, nil)
	return nil
}

func (e *EventService) GetParticipants(eventId int) ([]*repository.EventParticipant, error) {
	if _, err := e.event_repository.GetEventById(eventId); err != nil {
		return nil, err
	}
	return e.event_repository.GetParticipants(eventId)
}

func (e *EventService) IsParticipant(eventId int, userId int) (bool, error) {
	return e.event_repository.IsParticipant(eventId, userId)
}

func (e *EventService) RemoveParticipant(eventId int, userId int, admin *repository.User, ip string) error {
	if _, err := e.event_repository.GetEventById(eventId); err != nil {
		return err
	}
	if err := e.event_repository.RemoveParticipant(eventId, userId); err != nil {
		return err
	}
	e.audit_service.Record(AdminActor(admin, ip), "participant.remove", "event", &eventId, map[string]any{"user_id": userId}, nil)
	return nil
}

func eventSnapshot(event *repository.Event) map[string]any {
	return map[string]any{
		"name":        event.Name,
		"description": event.Description,
		"active":      event.Active,
	}
}
