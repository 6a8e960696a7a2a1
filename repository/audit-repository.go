package repository

import (
	"time"

	"gorm.io/gorm"
)

type ActorType = string

const (
	ActorUser   ActorType = "user"
	ActorAdmin  ActorType = "admin"
	ActorSystem ActorType = "system"
)

type AuditLog struct {
	Id          int       `gorm:"primaryKey"`
	ActorType   ActorType `gorm:"not null"`
	ActorUserId *int      `gorm:"null"`
	Action      string    `gorm:"not null"`
	EntityType  string    `gorm:"not null"`
	EntityId    *int      `gorm:"null"`
	BeforeJson  string    `gorm:"null"`
	AfterJson   string    `gorm:"null"`
	Ip          string    `gorm:"null"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

type AuditLogRepository struct {
	DB *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{DB: db}
}

func (r *AuditLogRepository) Create(entry *AuditLog) error {
	return r.DB.Create(entry).Error
}

func (r *AuditLogRepository) GetAuditLogs(limit int, offset int) ([]*AuditLog, int64, error) {
	var total int64
	if err := r.DB.Model(&AuditLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var entries []*AuditLog
	result := r.DB.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&entries)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return entries, total, nil
}
