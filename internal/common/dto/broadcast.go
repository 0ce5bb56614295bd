package dto

import "github.com/ifuryst/lol"

// UpsertBroadcastRequest represents a broadcast create or update
// request. Status may be draft or scheduled; sending is a separate
// operation. Target is either the single element "all" or a list of
// company IDs rendered as strings.
type UpsertBroadcastRequest struct {
	Subject     string   `json:"subject" binding:"required"`
	Content     string   `json:"content" binding:"required"`
	Target      []string `json:"target"`
	Status      string   `json:"status"`
	ScheduledAt string   `json:"scheduled_at,omitempty"`
}

// NormalizedTarget de-duplicates the target list. "all" swallows any
// company IDs listed next to it; an empty target also means all.
func (r *UpsertBroadcastRequest) NormalizedTarget() []string {
	if len(r.Target) == 0 {
		return []string{"all"}
	}
	targets := lol.Union(r.Target)
	for _, t := range targets {
		if t == "all" {
			return []string{"all"}
		}
	}
	return targets
}

// PreviewBroadcastRequest represents a personalization preview request.
// CompanyID selects the tenant whose data fills the template; when nil
// the preview renders against sample data.
type PreviewBroadcastRequest struct {
	Subject   string `json:"subject" binding:"required"`
	Content   string `json:"content" binding:"required"`
	CompanyID *int64 `json:"company_id,omitempty"`
}

// PreviewBroadcastResponse carries the rendered subject and content.
type PreviewBroadcastResponse struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
}
