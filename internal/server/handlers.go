package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/alexanderramin/mindweave/internal/contract"
	"github.com/alexanderramin/mindweave/internal/repository"
	"github.com/alexanderramin/mindweave/internal/scheduler"
	"github.com/alexanderramin/mindweave/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type handler struct {
	plans   service.PlanService
	logger  *zap.Logger
	version string
	now     func() time.Time
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version,omitempty"`
}

// savePlanRequest is a plan request plus the name to store it under.
type savePlanRequest struct {
	Name string `json:"name"`
	contract.PlanRequest
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: h.now().UTC(),
		Version:   h.version,
	})
}

// planner answers the plan request contract. Infeasible plans are a 200
// with success false; malformed requests are a 400 with the same shape.
func (h *handler) planner(c *gin.Context) {
	var req contract.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, contract.Failure(errors.New("invalid JSON body: "+err.Error())))
		return
	}

	genReq, err := h.toGenerateRequest(req)
	if err != nil {
		c.JSON(statusFor(err), contract.Failure(err))
		return
	}

	out, err := h.plans.Generate(c.Request.Context(), genReq)
	if err != nil {
		h.fail(c, err, func(msg string) any { return contract.Failure(errors.New(msg)) })
		return
	}
	c.JSON(http.StatusOK, contract.FromResult(out.Result))
}

func (h *handler) savePlan(c *gin.Context) {
	var req savePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body: " + err.Error()})
		return
	}

	genReq, err := h.toGenerateRequest(req.PlanRequest)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	plan, err := h.plans.Save(c.Request.Context(), service.SaveRequest{GenerateRequest: genReq, Name: req.Name})
	if err != nil {
		h.fail(c, err, errorBody)
		return
	}
	c.JSON(http.StatusCreated, contract.FromStoredPlan(plan))
}

func (h *handler) listPlans(c *gin.Context) {
	summaries, err := h.plans.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, errorBody)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": contract.FromSummaries(summaries)})
}

func (h *handler) getPlan(c *gin.Context) {
	plan, err := h.plans.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, errorBody)
		return
	}
	c.JSON(http.StatusOK, contract.FromStoredPlan(plan))
}

func (h *handler) deletePlan(c *gin.Context) {
	if err := h.plans.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, errorBody)
		return
	}
	c.Status(http.StatusNoContent)
}

// toGenerateRequest validates the wire request and parses its subjects.
func (h *handler) toGenerateRequest(req contract.PlanRequest) (service.GenerateRequest, error) {
	in, err := req.ToInput(h.now())
	if err != nil {
		return service.GenerateRequest{}, err
	}
	subjects, err := scheduler.ParseSubjects(in.Subjects)
	if err != nil {
		return service.GenerateRequest{}, err
	}
	return service.GenerateRequest{
		Subjects:  subjects,
		Capacity:  in.Capacity,
		StartDate: in.StartDate,
		Policy:    req.PolicyName(),
	}, nil
}

// fail writes err with its mapped status. Internal errors are logged and
// replaced by a generic message.
func (h *handler) fail(c *gin.Context, err error, body func(string) any) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		msg = "internal error"
	}
	_ = c.Error(err)
	c.JSON(status, body(msg))
}

func errorBody(msg string) any {
	return gin.H{"error": msg}
}

func statusFor(err error) int {
	var planErr *scheduler.PlanError
	switch {
	case errors.As(err, &planErr):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrAmbiguous):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
