package dto

// CreateTenantRequest represents a tenant (customer company) creation
// request. An initial subscription may be attached; it is created in a
// second upstream call after the company exists.
type CreateTenantRequest struct {
	Name           string `json:"name" binding:"required"`
	Domain         string `json:"domain"`
	Specialization string `json:"specialization"`
	Owner          string `json:"owner"`

	Subscription *CreateSubscriptionRequest `json:"subscription,omitempty"`
}

// UpdateTenantRequest represents a tenant update request
type UpdateTenantRequest struct {
	Name           string `json:"name" binding:"required"`
	Domain         string `json:"domain"`
	Specialization string `json:"specialization"`
	Owner          string `json:"owner"`
}

// CreateSubscriptionRequest represents a subscription creation request.
// Dates travel as YYYY-MM-DD. Company may be zero when the request rides
// inside CreateTenantRequest; the handler fills it in.
type CreateSubscriptionRequest struct {
	Company   int64  `json:"company"`
	Plan      int64  `json:"plan" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	IsActive  bool   `json:"is_active"`
}

// UpdateSubscriptionRequest represents a subscription update request
type UpdateSubscriptionRequest struct {
	Plan      int64  `json:"plan" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	IsActive  bool   `json:"is_active"`
}

// SubscriptionView is a subscription joined with the display names the
// subscriptions page shows alongside the raw record.
type SubscriptionView struct {
	ID          int64  `json:"id"`
	Company     int64  `json:"company"`
	CompanyName string `json:"company_name"`
	Plan        int64  `json:"plan"`
	PlanName    string `json:"plan_name"`
	Owner       string `json:"owner,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	IsActive    bool   `json:"is_active"`
}
