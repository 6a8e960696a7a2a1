package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"peerscore/config"
	"peerscore/metrics"
	"peerscore/repository"

	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"
)

// Actor identifies who performed an audited mutation and from where.
type Actor struct {
	Type   repository.ActorType
	UserId *int
	Ip     string
}

func UserActor(user *repository.User, ip string) Actor {
	return Actor{Type: repository.ActorUser, UserId: &user.Id, Ip: ip}
}

func AdminActor(user *repository.User, ip string) Actor {
	return Actor{Type: repository.ActorAdmin, UserId: &user.Id, Ip: ip}
}

type AuditService struct {
	audit_repository *repository.AuditLogRepository
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{
		audit_repository: repository.NewAuditLogRepository(db),
	}
}

// Record writes an audit row and publishes the same envelope on the audit
// topic. Auditing is best effort: the mutation it describes has already
// been committed, so failures are logged and never returned.
func (s *AuditService) Record(actor Actor, action string, entityType string, entityId *int, before any, after any) {
	entry := &repository.AuditLog{
		ActorType:   actor.Type,
		ActorUserId: actor.UserId,
		Action:      action,
		EntityType:  entityType,
		EntityId:    entityId,
		BeforeJson:  marshalSnapshot(before),
		AfterJson:   marshalSnapshot(after),
		Ip:          actor.Ip,
		CreatedAt:   time.Now(),
	}
	if err := s.audit_repository.Create(entry); err != nil {
		log.Printf("Failed to write audit entry for %s: %v", action, err)
		return
	}
	s.publish(entry)
}

func (s *AuditService) GetAuditLogs(limit int, offset int) ([]*repository.AuditLog, int64, error) {
	return s.audit_repository.GetAuditLogs(limit, offset)
}

func (s *AuditService) publish(entry *repository.AuditLog) {
	writer, err := config.GetAuditWriter()
	if err != nil {
		// no broker configured, the table is the only consumer
		return
	}
	message, err := json.Marshal(entry)
	if err != nil {
		log.Printf("Failed to marshal audit entry %d: %v", entry.Id, err)
		return
	}
	key := entry.EntityType
	if entry.EntityId != nil {
		key = fmt.Sprintf("%s:%d", entry.EntityType, *entry.EntityId)
	}
	err = writer.WriteMessages(context.Background(), kafka.Message{Key: []byte(key), Value: message})
	if err != nil {
		metrics.AuditPublishErrorsCounter.Inc()
		log.Printf("Failed to publish audit entry %d: %v", entry.Id, err)
	}
}

func marshalSnapshot(snapshot any) string {
	if snapshot == nil {
		return ""
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Sprintf("%v", snapshot)
	}
	// typed nils marshal to "null", treat them as absent
	if string(data) == "null" {
		return ""
	}
	return string(data)
}
