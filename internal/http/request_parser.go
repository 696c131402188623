// Request payload parsing and conversion to domain inputs. Handlers decode
// into the request structs here and never touch raw JSON themselves.
package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"financas/internal/core"
	"financas/internal/engine"
	"financas/internal/services"
)

const maxBodySize = 1 << 20 // 1 MiB

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

type operationRequest struct {
	UserID             string `json:"user_id"`
	Nature             string `json:"nature"`
	State              string `json:"state"`
	PaymentMethod      string `json:"payment_method"`
	SourceAccount      string `json:"source_account"`
	DestinationAccount string `json:"destination_account"`
	Date               string `json:"date"`
	Value              string `json:"value"`
	Category           string `json:"category"`
	Details            string `json:"details"`
	Project            string `json:"project"`
	GoalID             string `json:"goal_id"`
}

func (req operationRequest) toIntent() (engine.Intent, error) {
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return engine.Intent{}, err
	}
	value, err := core.ParseAmount(req.Value)
	if err != nil {
		return engine.Intent{}, err
	}
	return engine.Intent{
		UserID:             sanitizeInput(req.UserID),
		Nature:             core.Nature(req.Nature),
		State:              core.State(req.State),
		PaymentMethod:      sanitizeInput(req.PaymentMethod),
		SourceAccount:      sanitizeInput(req.SourceAccount),
		DestinationAccount: sanitizeInput(req.DestinationAccount),
		Date:               date,
		Value:              value,
		Category:           sanitizeInput(req.Category),
		Details:            sanitizeInput(req.Details),
		Project:            sanitizeInput(req.Project),
		GoalID:             sanitizeInput(req.GoalID),
	}, nil
}

// toOperation builds the full record for an edit; id comes from the path.
func (req operationRequest) toOperation(id string) (core.Operation, error) {
	in, err := req.toIntent()
	if err != nil {
		return core.Operation{}, err
	}
	op := core.Operation{
		ID:                 id,
		UserID:             in.UserID,
		Nature:             in.Nature,
		State:              in.State,
		PaymentMethod:      in.PaymentMethod,
		SourceAccount:      in.SourceAccount,
		DestinationAccount: in.DestinationAccount,
		Date:               in.Date,
		Value:              in.Value,
		Category:           in.Category,
		Details:            in.Details,
		Project:            in.Project,
		GoalID:             in.GoalID,
	}
	return op, nil
}

type stateRequest struct {
	State string `json:"state"`
}

type budgetItemRequest struct {
	Category string `json:"category"`
	Type     string `json:"type"`
	Planned  string `json:"planned"`
}

type budgetRequest struct {
	UserID    string              `json:"user_id"`
	Name      string              `json:"name"`
	Start     string              `json:"start"`
	End       string              `json:"end"`
	Type      string              `json:"type"`
	BaseMonth string              `json:"base_month"`
	Items     []budgetItemRequest `json:"items"`
}

func (req budgetRequest) toDraft() (services.BudgetDraft, error) {
	start, err := core.ParseDate(req.Start)
	if err != nil {
		return services.BudgetDraft{}, err
	}
	end, err := core.ParseDate(req.End)
	if err != nil {
		return services.BudgetDraft{}, err
	}

	draft := services.BudgetDraft{
		UserID: sanitizeInput(req.UserID),
		Name:   sanitizeInput(req.Name),
		Start:  start,
		End:    end,
		Type:   core.BudgetType(req.Type),
	}
	if req.BaseMonth != "" {
		month, err := core.ParseMonth(req.BaseMonth)
		if err != nil {
			return services.BudgetDraft{}, err
		}
		draft.BaseMonth = &month
	}

	for _, item := range req.Items {
		planned, err := decimal.NewFromString(item.Planned)
		if err != nil {
			return services.BudgetDraft{}, fmt.Errorf("%w: planned %q", core.ErrInvalidAmount, item.Planned)
		}
		draft.Items = append(draft.Items, core.BudgetItem{
			Category: sanitizeInput(item.Category),
			Type:     core.Nature(item.Type),
			Planned:  planned,
		})
	}
	return draft, nil
}

type goalRequest struct {
	UserID      string `json:"user_id"`
	Description string `json:"description"`
	Type        string `json:"type"`
	TargetValue string `json:"target_value"`
	Start       string `json:"start"`
	Importance  string `json:"importance"`
	Priority    int    `json:"priority"`
	Strategy    string `json:"strategy"`
	Parcels     int    `json:"parcels"`
}

func (req goalRequest) toDraft() (services.GoalDraft, error) {
	start, err := core.ParseDate(req.Start)
	if err != nil {
		return services.GoalDraft{}, err
	}
	target, err := core.ParseAmount(req.TargetValue)
	if err != nil {
		return services.GoalDraft{}, err
	}
	return services.GoalDraft{
		UserID:      sanitizeInput(req.UserID),
		Description: sanitizeInput(req.Description),
		Type:        core.GoalType(req.Type),
		TargetValue: target,
		Start:       start,
		Importance:  sanitizeInput(req.Importance),
		Priority:    req.Priority,
		Strategy:    sanitizeInput(req.Strategy),
		Parcels:     req.Parcels,
	}, nil
}

type goalStatusRequest struct {
	Status string `json:"status"`
}

type suggestRequest struct {
	UserID      string `json:"user_id"`
	Month       string `json:"month"`
	TargetValue string `json:"target_value"`
}

type ceilingRequest struct {
	UserID string `json:"user_id"`
	Month  string `json:"month"`
	Value  string `json:"value"`
}

type variableIncomeRequest struct {
	UserID  string `json:"user_id"`
	Month   string `json:"month"`
	Include bool   `json:"include"`
}
