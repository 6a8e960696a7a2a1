package repository

import (
	"errors"
	"peerscore/app_error"
	"time"

	"gorm.io/gorm"
)

type Event struct {
	Id          int       `gorm:"primaryKey"`
	Name        string    `gorm:"not null"`
	Description string    `gorm:"null"`
	Active      bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`

	Criteria     []*Criterion        `gorm:"foreignKey:EventId;constraint:OnDelete:CASCADE"`
	Participants []*EventParticipant `gorm:"foreignKey:EventId;constraint:OnDelete:CASCADE"`
}

type EventParticipant struct {
	EventId  int       `gorm:"primaryKey"`
	UserId   int       `gorm:"primaryKey"`
	JoinedAt time.Time `gorm:"not null"`

	User *User `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) GetEventById(eventId int, preloads ...string) (*Event, error) {
	var event Event
	query := r.DB
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	result := query.First(&event, eventId)
	if result.Error != nil {
		return nil, app_error.NewNotFound("event with id %d not found", eventId)
	}
	return &event, nil
}

func (r *EventRepository) FindAll(preloads ...string) ([]*Event, error) {
	var events []*Event
	query := r.DB
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	result := query.Order("created_at DESC").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}
	return events, nil
}

func (r *EventRepository) Save(event *Event) (*Event, error) {
	result := r.DB.Save(event)
	if result.Error != nil {
		return nil, result.Error
	}
	return event, nil
}

// Delete cascades to criteria, participants, evaluations and scores, so it
// counts as an evaluation mutation.
func (r *EventRepository) Delete(eventId int) error {
	result := r.DB.Delete(&Event{}, eventId)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return app_error.NewNotFound("event with id %d not found", eventId)
	}
	bumpWriteSeq()
	return nil
}

func (r *EventRepository) AddParticipant(eventId int, userId int) error {
	participant := &EventParticipant{EventId: eventId, UserId: userId, JoinedAt: time.Now()}
	err := r.DB.Create(participant).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return app_error.NewConflict("user %d already joined event %d", userId, eventId)
	}
	return err
}

func (r *EventRepository) RemoveParticipant(eventId int, userId int) error {
	result := r.DB.Delete(&EventParticipant{}, "event_id = ? AND user_id = ?", eventId, userId)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return app_error.NewNotFound("user %d is not a participant of event %d", userId, eventId)
	}
	return nil
}

func (r *EventRepository) GetParticipants(eventId int) ([]*EventParticipant, error) {
	var participants []*EventParticipant
	result := r.DB.Preload("User").Order("joined_at").Find(&participants, "event_id = ?", eventId)
	if result.Error != nil {
		return nil, result.Error
	}
	return participants, nil
}

func (r *EventRepository) IsParticipant(eventId int, userId int) (bool, error) {
	var count int64
	result := r.DB.Model(&EventParticipant{}).Where("event_id = ? AND user_id = ?", eventId, userId).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func (r *EventRepository) CountParticipants(eventId int) (int64, error) {
	var count int64
	result := r.DB.Model(&EventParticipant{}).Where("event_id = ?", eventId).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
