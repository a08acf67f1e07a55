package contract

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/mindweave/internal/domain"
)

// PlanResponse is the body returned by POST /api/planner. A failed response
// carries Error and Details for the first subject, in priority order, that
// cannot meet its deadline.
type PlanResponse struct {
	Success        bool               `json:"success"`
	Plan           string             `json:"plan,omitempty"`
	BaseAllocation BaseAllocation     `json:"base_allocation,omitempty"`
	Unscheduled    []UnscheduledHours `json:"unscheduled,omitempty"`
	Error          string             `json:"error,omitempty"`
	Details        *ShortageDetails   `json:"details,omitempty"`
}

type ShortageDetails struct {
	Subject        string  `json:"subject"`
	RequiredHours  float64 `json:"required_hours"`
	AvailableHours float64 `json:"available_hours"`
	Shortage       float64 `json:"shortage"`
}

// UnscheduledHours reports hours a feasible plan still could not place.
type UnscheduledHours struct {
	Subject        string  `json:"subject"`
	RemainingHours float64 `json:"remaining_hours"`
	Reason         string  `json:"reason"`
}

// MarshalJSON always emits base_allocation on success, even when empty.
func (r PlanResponse) MarshalJSON() ([]byte, error) {
	type wire PlanResponse
	if !r.Success {
		return json.Marshal(wire(r))
	}
	allocation := r.BaseAllocation
	if allocation == nil {
		allocation = BaseAllocation{}
	}
	return json.Marshal(struct {
		wire
		BaseAllocation BaseAllocation `json:"base_allocation"`
	}{wire(r), allocation})
}

// FromResult renders an engine result.
func FromResult(result *domain.Result) PlanResponse {
	if len(result.Shortages) > 0 {
		return Infeasible(result.Shortages[0])
	}

	resp := PlanResponse{
		Success:        true,
		BaseAllocation: FromSchedule(result.Schedule),
	}
	for _, r := range result.Residuals {
		resp.Unscheduled = append(resp.Unscheduled, UnscheduledHours{
			Subject:        r.Subject,
			RemainingHours: r.RemainingHours,
			Reason:         string(r.Reason),
		})
	}
	return resp
}

// Infeasible builds the failure response for one shortage.
func Infeasible(s domain.Shortage) PlanResponse {
	return PlanResponse{
		Success: false,
		Error:   fmt.Sprintf("Insufficient time for subject %s", s.Subject),
		Details: &ShortageDetails{
			Subject:        s.Subject,
			RequiredHours:  s.RequiredHours,
			AvailableHours: s.AvailableHours,
			Shortage:       s.Shortage,
		},
	}
}

// Failure builds a failure response for a rejected request.
func Failure(err error) PlanResponse {
	return PlanResponse{Success: false, Error: err.Error()}
}

// Shortage converts failure details back into a domain shortage. It returns
// false when the response carries none.
func (r PlanResponse) Shortage() (domain.Shortage, bool) {
	if r.Details == nil {
		return domain.Shortage{}, false
	}
	return domain.Shortage{
		Subject:        r.Details.Subject,
		RequiredHours:  r.Details.RequiredHours,
		AvailableHours: r.Details.AvailableHours,
		Shortage:       r.Details.Shortage,
	}, true
}
