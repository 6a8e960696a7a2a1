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

type AuditLogController struct {
	auditService *service.AuditService
}

func NewAuditLogController(db *gorm.DB) *AuditLogController {
	return &AuditLogController{
		auditService: service.NewAuditService(db),
	}
}

func setupAuditLogController(db *gorm.DB) []RouteInfo {
	e := NewAuditLogController(db)
	return []RouteInfo{
		{Method: "GET", Path: "/audit-logs", HandlerFunc: e.getAuditLogsHandler(), Authenticated: true, RequiredRoles: []repository.Permission{repository.PermissionAdmin}},
	}
}

// @id GetAuditLogs
// @Description Fetches audit log entries, newest first
// @Tags audit
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} AuditLogList
// @Security BearerAuth
// @Router /audit-logs [get]
func (e *AuditLogController) getAuditLogsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		entries, total, err := e.auditService.GetAuditLogs(limit, offset)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, AuditLogList{Entries: utils.Map(entries, toAuditLogResponse), Total: total})
	}
}

type AuditLog struct {
	Id          int       `json:"id" binding:"required"`
	ActorType   string    `json:"actor_type" binding:"required"`
	ActorUserId *int      `json:"actor_user_id"`
	Action      string    `json:"action" binding:"required"`
	EntityType  string    `json:"entity_type" binding:"required"`
	EntityId    *int      `json:"entity_id"`
	Before      string    `json:"before"`
	After       string    `json:"after"`
	Ip          string    `json:"ip"`
	CreatedAt   time.Time `json:"created_at" binding:"required"`
}

type AuditLogList struct {
	Entries []*AuditLog `json:"entries" binding:"required"`
	Total   int64       `json:"total" binding:"required"`
}

func toAuditLogResponse(entry *repository.AuditLog) *AuditLog {
	return &AuditLog{
		Id:          entry.Id,
		ActorType:   entry.ActorType,
		ActorUserId: entry.ActorUserId,
		Action:      entry.Action,
		EntityType:  entry.EntityType,
		EntityId:    entry.EntityId,
		Before:      entry.BeforeJson,
		After:       entry.AfterJson,
		Ip:          entry.Ip,
		CreatedAt:   entry.CreatedAt,
	}
}
