package platform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sahabhq/console/internal/access"
)

// Wire models for the upstream platform API. Fields are snake_case on the
// wire; date fields stay strings so one malformed record cannot fail a
// whole list decode.

// Company is a customer tenant as stored upstream.
type Company struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Domain         string `json:"domain"`
	Specialization string `json:"specialization"`
	Owner          string `json:"owner"`
	CreatedAt      string `json:"created_at"`
}

// Subscription links a company to a plan for a date range. A company may
// carry several records over time; the projector picks the current one.
type Subscription struct {
	ID        int64  `json:"id"`
	Company   int64  `json:"company"`
	Plan      int64  `json:"plan"`
	PlanName  string `json:"plan_name,omitempty"`
	Owner     string `json:"owner,omitempty"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Plan is a subscription plan.
type Plan struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	NameAr       string   `json:"name_ar"`
	Type         string   `json:"type"` // Trial, Paid, Free
	PriceMonthly float64  `json:"price_monthly"`
	PriceYearly  float64  `json:"price_yearly"`
	TrialDays    int      `json:"trial_days"`
	Users        Limit    `json:"users"`
	Clients      Limit    `json:"clients"`
	Storage      string   `json:"storage"`
	Features     []string `json:"features"`
	FeaturesAr   []string `json:"features_ar"`
	Visible      bool     `json:"visible"`
}

// Payment is one charge against a subscription.
type Payment struct {
	ID                      int64   `json:"id"`
	Amount                  float64 `json:"amount"`
	PaymentStatus           string  `json:"payment_status"`
	CreatedAt               string  `json:"created_at"`
	SubscriptionCompanyName string  `json:"subscription_company_name"`
	SubscriptionPlanName    string  `json:"subscription_plan_name"`
}

// Invoice is a billing document issued to a company.
type Invoice struct {
	ID            int64   `json:"id"`
	InvoiceNumber string  `json:"invoice_number"`
	CompanyName   string  `json:"company_name"`
	Amount        float64 `json:"amount"`
	DueDate       string  `json:"due_date"`
	Status        string  `json:"status"` // Paid, Due, Overdue
}

// Gateway is a configured payment gateway integration.
type Gateway struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Status      string         `json:"status"` // Active, Disabled, SetupRequired
	Enabled     bool           `json:"enabled"`
	Config      map[string]any `json:"config"`
}

// Broadcast is an outbound message to a set of tenants.
type Broadcast struct {
	ID          int64    `json:"id"`
	Subject     string   `json:"subject"`
	Content     string   `json:"content"`
	Target      []string `json:"target"`
	Status      string   `json:"status"` // draft, scheduled, sent
	CreatedAt   string   `json:"created_at"`
	ScheduledAt string   `json:"scheduled_at,omitempty"`
	SentAt      string   `json:"sent_at,omitempty"`
}

// Backup is a system backup record. Its status is backend-reported; the
// console never drives a state machine for it.
type Backup struct {
	ID          int64  `json:"id"`
	Status      string `json:"status"`    // in_progress, completed, failed
	Initiator   string `json:"initiator"` // manual, scheduled
	CreatedAt   string `json:"created_at"`
	CompletedAt string `json:"completed_at,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
}

// Admin is a limited administrator account. The capability flags are flat
// on the wire, matching the profile embedded in the current-user payload.
type Admin struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"` // write-only
	access.LimitedAdminProfile
}

// AuditAction identifies what an audit entry records.
type AuditAction struct {
	Key    string         `json:"key"`
	Params map[string]any `json:"params,omitempty"`
}

// AuditLog is one append-only audit trail entry.
type AuditLog struct {
	ID        int64       `json:"id"`
	User      string      `json:"user"`
	Action    AuditAction `json:"action"`
	Timestamp string      `json:"timestamp"`
}

// Settings is the upstream settings bag, passed through untyped.
type Settings map[string]any

// Limit is a plan quota that is either a number or the string
// "unlimited" on the wire.
type Limit struct {
	Unlimited bool
	N         int64
}

// UnlimitedLimit returns the unlimited quota value.
func UnlimitedLimit() Limit {
	return Limit{Unlimited: true}
}

// MarshalJSON implements json.Marshaler
func (l Limit) MarshalJSON() ([]byte, error) {
	if l.Unlimited {
		return json.Marshal("unlimited")
	}
	return json.Marshal(l.N)
}

// UnmarshalJSON implements json.Unmarshaler
func (l *Limit) UnmarshalJSON(data []byte) error {
	*l = Limit{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if strings.EqualFold(strings.TrimSpace(s), "unlimited") {
			l.Unlimited = true
			return nil
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid limit value %q", s)
		}
		l.N = n
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid limit value %s", string(data))
	}
	l.N = n
	return nil
}

// String renders the quota the way the dashboard displays it.
func (l Limit) String() string {
	if l.Unlimited {
		return "unlimited"
	}
	return strconv.FormatInt(l.N, 10)
}
