package broadcast

import (
	"github.com/sahabhq/console/internal/tenantview"
)

// Recipient is the personalization context a broadcast template renders
// against. Field names are the template vocabulary announcement authors
// use, e.g. {{.CompanyName}} or {{.EndDate | default "N/A"}}.
type Recipient struct {
	CompanyName string `json:"company_name"`
	Domain      string `json:"domain"`
	Owner       string `json:"owner"`
	PlanName    string `json:"plan_name"`
	Status      string `json:"status"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// NewRecipient builds the personalization context from a projected
// tenant.
func NewRecipient(t tenantview.Tenant) Recipient {
	return Recipient{
		CompanyName: t.Name,
		Domain:      t.Domain,
		Owner:       t.Owner,
		PlanName:    t.CurrentPlan,
		Status:      string(t.Status),
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
	}
}

// SampleRecipient is the context used when a preview does not name a
// tenant.
func SampleRecipient() Recipient {
	return Recipient{
		CompanyName: "Acme Trading Co.",
		Domain:      "acme.example.com",
		Owner:       "owner@acme.example.com",
		PlanName:    "Pro",
		Status:      string(tenantview.StatusActive),
		StartDate:   "2024-01-01",
		EndDate:     "2025-01-01",
	}
}
