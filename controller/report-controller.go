package controller

import (
	"peerscore/app_error"
	"peerscore/scoring"
	"peerscore/service"
	"peerscore/utils"
	"sort"
	"strconv"
	"time"

	"peerscore/repository"

	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReportController struct {
	reportService    *service.ReportService
	criterionService *service.CriterionService
}

func NewReportController(db *gorm.DB, cacheStore persistence.CacheStore) *ReportController {
	return &ReportController{
		reportService:    service.NewReportService(db, cacheStore),
		criterionService: service.NewCriterionService(db),
	}
}

func setupReportController(db *gorm.DB, cacheStore persistence.CacheStore) []RouteInfo {
	e := NewReportController(db, cacheStore)
	basePath := "/events/:event_id"
	routes := []RouteInfo{
		{Method: "GET", Path: "/report", HandlerFunc: e.getReportHandler(), Authenticated: true},
		{Method: "GET", Path: "/evaluations", HandlerFunc: e.getEvaluationsHandler(), Authenticated: true, RequiredRoles: []repository.Permission{repository.PermissionAdmin}},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @id GetReport
// @Description Fetches the ranked aggregate report for an event
// @Tags report
// @Produce json
// @Param event_id path int true "Event Id"
// @Param target_user_id query int false "Only the row for this registered target"
// @Param target_name query string false "Only the row for this external target"
// @Param rater_id query int false "Only targets this rater evaluated"
// @Param criterion_id query int false "Only targets with scores for this criterion"
// @Param anomaly_only query bool false "Only targets with flagged scores"
// @Success 200 {object} Report
// @Security BearerAuth
// @Router /events/{event_id}/report [get]
func (e *ReportController) getReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		filter, err := parseEvaluationFilter(c)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		rows, err := e.reportService.AggregateReport(eventId, filter)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		criteria, err := e.criterionService.GetCriteriaForEvent(eventId, false)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, Report{
			EventId:  eventId,
			Criteria: utils.Map(criteria, toCriterionResponse),
			Rows:     utils.Map(rows, toReportRow),
		})
	}
}

// @id GetEvaluations
// @Description Fetches an event's evaluations as submitted, with per-score consensus annotations
// @Tags report
// @Produce json
// @Param event_id path int true "Event Id"
// @Param target_user_id query int false "Only evaluations of this registered target"
// @Param target_name query string false "Only evaluations of this external target"
// @Param rater_id query int false "Only evaluations by this rater"
// @Param criterion_id query int false "Only score lines for this criterion"
// @Param anomaly_only query bool false "Only evaluations with flagged scores"
// @Success 200 {array} EvaluationDetail
// @Security BearerAuth
// @Router /events/{event_id}/evaluations [get]
func (e *ReportController) getEvaluationsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		filter, err := parseEvaluationFilter(c)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		rows, err := e.reportService.DetailReport(eventId, filter)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, utils.Map(rows, toEvaluationDetail))
	}
}

func parseEvaluationFilter(c *gin.Context) (scoring.EvaluationFilter, error) {
	filter := scoring.EvaluationFilter{
		TargetName:  c.Query("target_name"),
		AnomalyOnly: c.Query("anomaly_only") == "true",
	}
	if value := c.Query("target_user_id"); value != "" {
		id, err := strconv.Atoi(value)
		if err != nil {
			return filter, err
		}
		filter.TargetUserId = &id
	}
	if value := c.Query("rater_id"); value != "" {
		id, err := strconv.Atoi(value)
		if err != nil {
			return filter, err
		}
		filter.RaterId = &id
	}
	if value := c.Query("criterion_id"); value != "" {
		id, err := strconv.Atoi(value)
		if err != nil {
			return filter, err
		}
		filter.CriterionId = &id
	}
	return filter, nil
}

type CriterionAggregateEntry struct {
	CriterionId int     `json:"criterion_id" binding:"required"`
	Count       int     `json:"count" binding:"required"`
	Mean        float64 `json:"mean" binding:"required"`
}

type ReportRow struct {
	Rank         int                        `json:"rank" binding:"required"`
	TargetKey    string                     `json:"target_key" binding:"required"`
	DisplayName  string                     `json:"display_name" binding:"required"`
	UserId       *int                       `json:"user_id"`
	GroupName    string                     `json:"group_name"`
	RaterCount   int                        `json:"rater_count" binding:"required"`
	Overall      float64                    `json:"overall" binding:"required"`
	AnomalyCount int                        `json:"anomaly_count"`
	Criteria     []*CriterionAggregateEntry `json:"criteria" binding:"required"`
}

type Report struct {
	EventId  int          `json:"event_id" binding:"required"`
	Criteria []*Criterion `json:"criteria" binding:"required"`
	Rows     []*ReportRow `json:"rows" binding:"required"`
}

type ScoreDetail struct {
	ScoreId       int      `json:"score_id" binding:"required"`
	CriterionId   int      `json:"criterion_id" binding:"required"`
	CriterionName string   `json:"criterion_name" binding:"required"`
	MaxScore      float64  `json:"max_score" binding:"required"`
	Value         float64  `json:"value" binding:"required"`
	PeerCount     int      `json:"peer_count"`
	PeerMean      *float64 `json:"peer_mean"`
	PeerStdev     *float64 `json:"peer_stdev"`
	Delta         *float64 `json:"delta"`
	Z             *float64 `json:"z"`
	IsAnomaly     bool     `json:"is_anomaly"`
}

type EvaluationDetail struct {
	EvaluationId int            `json:"evaluation_id" binding:"required"`
	RaterId      int            `json:"rater_id" binding:"required"`
	RaterName    string         `json:"rater_name" binding:"required"`
	TargetKey    string         `json:"target_key" binding:"required"`
	TargetName   string         `json:"target_name" binding:"required"`
	TargetUserId *int           `json:"target_user_id"`
	Comment      string         `json:"comment"`
	CreatedAt    time.Time      `json:"created_at" binding:"required"`
	UpdatedAt    time.Time      `json:"updated_at" binding:"required"`
	Scores       []*ScoreDetail `json:"scores" binding:"required"`
}

func toReportRow(row *scoring.TargetRow) *ReportRow {
	criteria := make([]*CriterionAggregateEntry, 0, len(row.Criteria))
	for _, aggregate := range row.Criteria {
		criteria = append(criteria, &CriterionAggregateEntry{
			CriterionId: aggregate.CriterionId,
			Count:       aggregate.Count,
			Mean:        aggregate.Mean,
		})
	}
	sort.Slice(criteria, func(i, j int) bool { return criteria[i].CriterionId < criteria[j].CriterionId })
	return &ReportRow{
		Rank:         row.Rank,
		TargetKey:    row.Key,
		DisplayName:  row.DisplayName,
		UserId:       row.UserId,
		GroupName:    row.GroupName,
		RaterCount:   row.RaterCount,
		Overall:      row.Overall,
		AnomalyCount: row.AnomalyCount,
		Criteria:     criteria,
	}
}

func toScoreDetail(line *scoring.ScoreLine) *ScoreDetail {
	return &ScoreDetail{
		ScoreId:       line.ScoreId,
		CriterionId:   line.CriterionId,
		CriterionName: line.CriterionName,
		MaxScore:      line.MaxScore,
		Value:         line.Value,
		PeerCount:     line.PeerCount,
		PeerMean:      line.PeerMean,
		PeerStdev:     line.PeerStdev,
		Delta:         line.Delta,
		Z:             line.Z,
		IsAnomaly:     line.IsAnomaly,
	}
}

func toEvaluationDetail(row *scoring.DetailRow) *EvaluationDetail {
	return &EvaluationDetail{
		EvaluationId: row.EvaluationId,
		RaterId:      row.RaterId,
		RaterName:    row.RaterName,
		TargetKey:    row.TargetKey,
		TargetName:   row.TargetName,
		TargetUserId: row.TargetUserId,
		Comment:      row.Comment,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		Scores:       utils.Map(row.Scores, toScoreDetail),
	}
}
