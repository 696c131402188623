// JSON projections of the domain types. Decimals serialize as strings to
// keep exact values on the wire.
package http

import (
	"time"

	"financas/internal/core"
	"financas/internal/engine"
)

type operationView struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	Nature             string    `json:"nature"`
	State              string    `json:"state"`
	PaymentMethod      string    `json:"payment_method,omitempty"`
	SourceAccount      string    `json:"source_account"`
	DestinationAccount string    `json:"destination_account,omitempty"`
	Date               string    `json:"date"`
	Value              string    `json:"value"`
	Category           string    `json:"category"`
	Details            string    `json:"details,omitempty"`
	Project            string    `json:"project,omitempty"`
	GoalID             string    `json:"goal_id,omitempty"`
	PairID             string    `json:"pair_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func viewOperation(op core.Operation) operationView {
	return operationView{
		ID:                 op.ID,
		UserID:             op.UserID,
		Nature:             string(op.Nature),
		State:              string(op.State),
		PaymentMethod:      op.PaymentMethod,
		SourceAccount:      op.SourceAccount,
		DestinationAccount: op.DestinationAccount,
		Date:               op.Date.String(),
		Value:              op.Value.String(),
		Category:           op.Category,
		Details:            op.Details,
		Project:            op.Project,
		GoalID:             op.GoalID,
		PairID:             op.PairID,
		CreatedAt:          op.CreatedAt,
		UpdatedAt:          op.UpdatedAt,
	}
}

func viewOperations(ops []core.Operation) []operationView {
	views := make([]operationView, len(ops))
	for i, op := range ops {
		views[i] = viewOperation(op)
	}
	return views
}

type budgetItemView struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Type     string `json:"type"`
	Planned  string `json:"planned"`
	Actual   string `json:"actual,omitempty"`
	Position int    `json:"position"`
}

type budgetView struct {
	ID           string           `json:"id"`
	UserID       string           `json:"user_id"`
	Name         string           `json:"name"`
	Start        string           `json:"start"`
	End          string           `json:"end"`
	Type         string           `json:"type"`
	BaseMonth    string           `json:"base_month,omitempty"`
	TotalPlanned string           `json:"total_planned"`
	TotalActual  string           `json:"total_actual"`
	Items        []budgetItemView `json:"items"`
}

func viewBudget(b core.Budget, items []core.BudgetItem) budgetView {
	view := budgetView{
		ID:           b.ID,
		UserID:       b.UserID,
		Name:         b.Name,
		Start:        b.Start.String(),
		End:          b.End.String(),
		Type:         string(b.Type),
		TotalPlanned: b.TotalPlanned.String(),
		TotalActual:  b.TotalActual.String(),
		Items:        make([]budgetItemView, len(items)),
	}
	if b.BaseMonth != nil {
		view.BaseMonth = b.BaseMonth.String()
	}
	for i, item := range items {
		iv := budgetItemView{
			ID:       item.ID,
			Category: item.Category,
			Type:     string(item.Type),
			Planned:  item.Planned.String(),
			Position: item.Position,
		}
		if item.Actual != nil {
			iv.Actual = item.Actual.String()
		}
		view.Items[i] = iv
	}
	return view
}

type goalView struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"user_id"`
	Description         string    `json:"description"`
	Type                string    `json:"type"`
	TargetValue         string    `json:"target_value"`
	Start               string    `json:"start"`
	End                 string    `json:"end"`
	MonthlyIncome       string    `json:"monthly_income"`
	FixedExpenses       string    `json:"fixed_expenses"`
	AvailablePerMonth   string    `json:"available_per_month"`
	Importance          string    `json:"importance,omitempty"`
	Priority            int       `json:"priority"`
	Strategy            string    `json:"strategy,omitempty"`
	MonthlyContribution string    `json:"monthly_contribution"`
	Parcels             int       `json:"parcels"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func viewGoal(g core.Goal) goalView {
	return goalView{
		ID:                  g.ID,
		UserID:              g.UserID,
		Description:         g.Description,
		Type:                string(g.Type),
		TargetValue:         g.TargetValue.String(),
		Start:               g.Start.String(),
		End:                 g.End.String(),
		MonthlyIncome:       g.MonthlyIncome.String(),
		FixedExpenses:       g.FixedExpenses.String(),
		AvailablePerMonth:   g.AvailablePerMonth.String(),
		Importance:          g.Importance,
		Priority:            g.Priority,
		Strategy:            g.Strategy,
		MonthlyContribution: g.MonthlyContribution.String(),
		Parcels:             g.Parcels,
		Status:              string(g.Status),
		CreatedAt:           g.CreatedAt,
		UpdatedAt:           g.UpdatedAt,
	}
}

type summaryView struct {
	ID                    string    `json:"id"`
	UserID                string    `json:"user_id"`
	Month                 string    `json:"month"`
	MonthStart            string    `json:"month_start"`
	MonthEnd              string    `json:"month_end"`
	TotalIncome           string    `json:"total_income"`
	TotalExpense          string    `json:"total_expense"`
	VariableCeiling       string    `json:"variable_ceiling"`
	VariableUsed          string    `json:"variable_used"`
	TotalAvailable        string    `json:"total_available"`
	GoalContributions     string    `json:"goal_contributions"`
	IncludeVariableIncome bool      `json:"include_variable_income"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func viewSummary(s core.MonthlyFinanceSummary) summaryView {
	return summaryView{
		ID:                    s.ID,
		UserID:                s.UserID,
		Month:                 s.Month().String(),
		MonthStart:            s.MonthStart.String(),
		MonthEnd:              s.MonthEnd.String(),
		TotalIncome:           s.TotalIncome.String(),
		TotalExpense:          s.TotalExpense.String(),
		VariableCeiling:       s.VariableCeiling.String(),
		VariableUsed:          s.VariableUsed.String(),
		TotalAvailable:        s.TotalAvailable.String(),
		GoalContributions:     s.GoalContributions.String(),
		IncludeVariableIncome: s.IncludeVariableIncome,
		UpdatedAt:             s.UpdatedAt,
	}
}

type itemPerformanceView struct {
	Category       string `json:"category"`
	Type           string `json:"type"`
	Planned        string `json:"planned"`
	Actual         string `json:"actual"`
	PercentageUsed string `json:"percentage_used"`
	Status         string `json:"status"`
}

func viewItemPerformances(items []engine.ItemPerformance) []itemPerformanceView {
	views := make([]itemPerformanceView, len(items))
	for i, item := range items {
		views[i] = itemPerformanceView{
			Category:       item.Category,
			Type:           string(item.Type),
			Planned:        item.Planned.String(),
			Actual:         item.Actual.String(),
			PercentageUsed: item.PercentageUsed.String(),
			Status:         string(item.Status),
		}
	}
	return views
}

type budgetPerformanceView struct {
	BudgetID       string                `json:"budget_id"`
	Start          string                `json:"start"`
	End            string                `json:"end"`
	Items          []itemPerformanceView `json:"items"`
	PlannedExpense string                `json:"planned_expense"`
	ActualExpense  string                `json:"actual_expense"`
	Status         string                `json:"status"`
}

func viewBudgetPerformance(p engine.BudgetPerformance) budgetPerformanceView {
	return budgetPerformanceView{
		BudgetID:       p.BudgetID,
		Start:          p.Start.String(),
		End:            p.End.String(),
		Items:          viewItemPerformances(p.Items),
		PlannedExpense: p.PlannedExpense.String(),
		ActualExpense:  p.ActualExpense.String(),
		Status:         string(p.Status),
	}
}

type monthlyPerformanceView struct {
	Month         string                `json:"month"`
	Items         []itemPerformanceView `json:"items"`
	IncomeActual  string                `json:"income_actual"`
	ExpenseActual string                `json:"expense_actual"`
	Balance       string                `json:"balance"`
	Status        string                `json:"status"`
}

func viewMonthlyPerformance(p engine.MonthlyPerformance) monthlyPerformanceView {
	return monthlyPerformanceView{
		Month:         p.Month.String(),
		Items:         viewItemPerformances(p.Items),
		IncomeActual:  p.IncomeActual.String(),
		ExpenseActual: p.ExpenseActual.String(),
		Balance:       p.Balance.String(),
		Status:        string(p.Status),
	}
}

type strategyView struct {
	Months              int    `json:"months"`
	MonthlyContribution string `json:"monthly_contribution"`
	Feasible            bool   `json:"feasible"`
	Message             string `json:"message,omitempty"`
}

func viewStrategy(s engine.Strategy) strategyView {
	return strategyView{
		Months:              s.Months,
		MonthlyContribution: s.MonthlyContribution.String(),
		Feasible:            s.Feasible,
		Message:             s.Message,
	}
}
