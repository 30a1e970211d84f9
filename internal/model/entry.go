package model

// Entry represents a single recorded work session.
//
// Dates use the ISO YYYY-MM-DD form and times the 24h HH:MM form. The break
// components are kept as the zero-padded strings the entry form produces and
// are only meaningful when HasBreak is set.
type Entry struct {
	ID             int    `json:"id"`
	StartDate      string `json:"start_date"`
	StartTime      string `json:"start_time"`
	EndDate        string `json:"end_date"`
	EndTime        string `json:"end_time"`
	Category       string `json:"category"`
	HasBreak       bool   `json:"has_break"`
	BreakStartHour string `json:"break_start_hour"`
	BreakStartMin  string `json:"break_start_min"`
	BreakEndHour   string `json:"break_end_hour"`
	BreakEndMin    string `json:"break_end_min"`
}

// Fields holds the raw, user-supplied values for creating or editing an entry.
type Fields struct {
	StartDate string
	StartTime string
	EndDate   string
	EndTime   string
	Category  string
	Break     BreakConfig
}

// BreakConfig describes a break window as hour and minute components.
type BreakConfig struct {
	Enabled     bool
	StartHour   string
	StartMinute string
	EndHour     string
	EndMinute   string
}

// Apply copies f onto e, leaving the ID untouched.
func (f Fields) Apply(e *Entry) {
	e.StartDate = f.StartDate
	e.StartTime = f.StartTime
	e.EndDate = f.EndDate
	e.EndTime = f.EndTime
	e.Category = f.Category
	e.HasBreak = f.Break.Enabled
	e.BreakStartHour = f.Break.StartHour
	e.BreakStartMin = f.Break.StartMinute
	e.BreakEndHour = f.Break.EndHour
	e.BreakEndMin = f.Break.EndMinute
}

// Fields returns the editable values of e.
func (e Entry) Fields() Fields {
	return Fields{
		StartDate: e.StartDate,
		StartTime: e.StartTime,
		EndDate:   e.EndDate,
		EndTime:   e.EndTime,
		Category:  e.Category,
		Break:     e.Break(),
	}
}

// Break returns the entry's break window as a BreakConfig.
func (e Entry) Break() BreakConfig {
	return BreakConfig{
		Enabled:     e.HasBreak,
		StartHour:   e.BreakStartHour,
		StartMinute: e.BreakStartMin,
		EndHour:     e.BreakEndHour,
		EndMinute:   e.BreakEndMin,
	}
}
