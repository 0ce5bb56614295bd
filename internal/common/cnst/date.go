package cnst

const (
	// DateLayout is the wire format for calendar dates (subscription
	// start/end dates, payment dates)
	DateLayout = "2006-01-02"
	// MonthLayout is the label format for report month buckets
	MonthLayout = "2006-01"
)
