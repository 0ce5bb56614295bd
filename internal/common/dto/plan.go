package dto

import "github.com/sahabhq/console/internal/platform"

// UpsertPlanRequest represents a plan create or update request. Quota
// fields accept a number or the string "unlimited"; everything beyond
// the name is validated upstream and surfaced as field errors.
type UpsertPlanRequest struct {
	Name         string         `json:"name" binding:"required"`
	NameAr       string         `json:"name_ar"`
	Type         string         `json:"type"`
	PriceMonthly float64        `json:"price_monthly"`
	PriceYearly  float64        `json:"price_yearly"`
	TrialDays    int            `json:"trial_days"`
	Users        platform.Limit `json:"users"`
	Clients      platform.Limit `json:"clients"`
	Storage      string         `json:"storage"`
	Features     []string       `json:"features"`
	FeaturesAr   []string       `json:"features_ar"`
	Visible      bool           `json:"visible"`
}

// Plan converts the request into the upstream wire model.
func (r *UpsertPlanRequest) Plan() platform.Plan {
	return platform.Plan{
		Name:         r.Name,
		NameAr:       r.NameAr,
		Type:         r.Type,
		PriceMonthly: r.PriceMonthly,
		PriceYearly:  r.PriceYearly,
		TrialDays:    r.TrialDays,
		Users:        r.Users,
		Clients:      r.Clients,
		Storage:      r.Storage,
		Features:     r.Features,
		FeaturesAr:   r.FeaturesAr,
		Visible:      r.Visible,
	}
}

// PlanView is a plan with its resolved display name for the active
// language.
type PlanView struct {
	platform.Plan
	DisplayName string `json:"display_name"`
}
