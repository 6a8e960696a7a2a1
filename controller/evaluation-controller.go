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

type EvaluationController struct {
	evaluationService *service.EvaluationService
	userService       *service.UserService
}

func NewEvaluationController(db *gorm.DB) *EvaluationController {
	return &EvaluationController{
		evaluationService: service.NewEvaluationService(db),
		userService:       service.NewUserService(db),
	}
}

func setupEvaluationController(db *gorm.DB) []RouteInfo {
	e := NewEvaluationController(db)
	basePath := ""
	routes := []RouteInfo{
		{Method: "PUT", Path: "/events/:event_id/evaluations", HandlerFunc: e.submitHandler(), Authenticated: true},
		{Method: "DELETE", Path: "/evaluations/:evaluation_id", HandlerFunc: e.deleteEvaluationHandler(), Authenticated: true, RequiredRoles: []repository.Permission{repository.PermissionAdmin}},
		{Method: "DELETE", Path: "/scores/:score_id", HandlerFunc: e.deleteScoreHandler(), Authenticated: true, RequiredRoles: []repository.Permission{repository.PermissionAdmin}},
		{Method: "DELETE", Path: "/evaluations", HandlerFunc: e.purgeHandler(), Authenticated: true, RequiredRoles: []repository.Permission{repository.PermissionAdmin}},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @id SubmitEvaluation
// @Description Submits the authenticated user's evaluation of a target, replacing any previous one
// @Tags evaluation
// @Accept json
// @Produce json
// @Param event_id path int true "Event Id"
// @Param evaluation body EvaluationSubmit true "Evaluation"
// @Success 200 {object} Evaluation
// @Security BearerAuth
// @Router /events/{event_id}/evaluations [put]
func (e *EvaluationController) submitHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		rater, err := e.userService.GetUserFromAuthHeader(c)
		if err != nil {
			c.JSON(401, gin.H{"error": "Not authenticated"})
			return
		}
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var request EvaluationSubmit
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		evaluation, err := e.evaluationService.Submit(eventId, rater, service.SubmitRequest{
			TargetUserId: request.TargetUserId,
			TargetName:   request.TargetName,
			Comment:      request.Comment,
			Scores: utils.Map(request.Scores, func(score ScoreSubmit) service.ScoreInput {
				return service.ScoreInput{CriterionId: score.CriterionId, Value: score.Value}
			}),
		}, c.ClientIP())
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toEvaluationResponse(evaluation))
	}
}

// @id DeleteEvaluation
// @Description Deletes a single evaluation with all its scores
// @Tags evaluation
// @Param evaluation_id path int true "Evaluation Id"
// @Success 204
// @Security BearerAuth
// @Router /evaluations/{evaluation_id} [delete]
func (e *EvaluationController) deleteEvaluationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := e.userService.GetUserFromAuthHeader(c)
		if err != nil {
			c.JSON(401, gin.H{"error": "Not authenticated"})
			return
		}
		evaluationId, err := strconv.Atoi(c.Param("evaluation_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.evaluationService.DeleteEvaluation(evaluationId, admin, c.ClientIP()); err != nil {
			app_error.Respond(c, err)
			return
		}
		c.Status(204)
	}
}

// @id DeleteScore
// @Description Deletes a single score line, leaving the rest of its evaluation intact
// @Tags evaluation
// @Param score_id path int true "Score Id"
// @Success 204
// @Security BearerAuth
// @Router /scores/{score_id} [delete]
func (e *EvaluationController) deleteScoreHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := e.userService.GetUserFromAuthHeader(c)
		if err != nil {
			c.JSON(401, gin.H{"error": "Not authenticated"})
			return
		}
		scoreId, err := strconv.Atoi(c.Param("score_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.evaluationService.DeleteScore(scoreId, admin, c.ClientIP()); err != nil {
			app_error.Respond(c, err)
			return
		}
		c.Status(204)
	}
}

// @id PurgeEvaluations
// @Description Deletes every evaluation of one event, or of all events when no event_id is given
// @Tags evaluation
// @Produce json
// @Param event_id query int false "Event Id"
// @Success 200 {object} PurgeResponse
// @Security BearerAuth
// @Router /evaluations [delete]
func (e *EvaluationController) purgeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := e.userService.GetUserFromAuthHeader(c)
		if err != nil {
			c.JSON(401, gin.H{"error": "Not authenticated"})
			return
		}
		var eventId *int
		if value := c.Query("event_id"); value != "" {
			id, err := strconv.Atoi(value)
			if err != nil {
				c.JSON(400, gin.H{"error": err.Error()})
				return
			}
			eventId = &id
		}
		result, err := e.evaluationService.Purge(eventId, admin, c.ClientIP())
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, PurgeResponse{EvaluationsDeleted: result.Evaluations, ScoresDeleted: result.Scores})
	}
}

type ScoreSubmit struct {
	CriterionId int     `json:"criterion_id" binding:"required"`
	Value       float64 `json:"value"`
}

type EvaluationSubmit struct {
	TargetUserId *int          `json:"target_user_id"`
	TargetName   string        `json:"target_name"`
	Comment      string        `json:"comment"`
	Scores       []ScoreSubmit `json:"scores" binding:"required"`
}

type Score struct {
	Id          int     `json:"id" binding:"required"`
	CriterionId int     `json:"criterion_id" binding:"required"`
	Value       float64 `json:"value" binding:"required"`
}

type Evaluation struct {
	Id           int       `json:"id" binding:"required"`
	EventId      int       `json:"event_id" binding:"required"`
	RaterId      int       `json:"rater_id" binding:"required"`
	TargetUserId *int      `json:"target_user_id"`
	TargetName   string    `json:"target_name" binding:"required"`
	TargetKey    string    `json:"target_key" binding:"required"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at" binding:"required"`
	UpdatedAt    time.Time `json:"updated_at" binding:"required"`
	Scores       []*Score  `json:"scores" binding:"required"`
}

type PurgeResponse struct {
	EvaluationsDeleted int64 `json:"evaluations_deleted" binding:"required"`
	ScoresDeleted      int64 `json:"scores_deleted" binding:"required"`
}

func toScoreResponse(score *repository.Score) *Score {
	return &Score{
		Id:          score.Id,
		CriterionId: score.CriterionId,
		Value:       score.Value,
	}
}

func toEvaluationResponse(evaluation *repository.Evaluation) *Evaluation {
	return &Evaluation{
		Id:           evaluation.Id,
		EventId:      evaluation.EventId,
		RaterId:      evaluation.RaterId,
		TargetUserId: evaluation.TargetUserId,
		TargetName:   evaluation.TargetName,
		TargetKey:    evaluation.TargetKey,
		Comment:      evaluation.Comment,
		CreatedAt:    evaluation.CreatedAt,
		UpdatedAt:    evaluation.UpdatedAt,
		Scores:       utils.Map(evaluation.Scores, toScoreResponse),
	}
}
