package model

// DefaultCategories is the category list used when a snapshot carries none.
var DefaultCategories = []string{
	"Regular",
	"Night shift",
	"Overtime",
	"Weekend",
}

// Snapshot is the full persisted state exchanged with a storage backend.
// Backends own the encoding; the snapshot itself is format-agnostic.
type Snapshot struct {
	Entries       []Entry
	Categories    []string
	CategoryRates map[string]float64
	DefaultBreak  BreakConfig
	HourlyRate    float64
}

// NewSnapshot returns an empty snapshot with the default categories, each
// priced at 0.0.
func NewSnapshot() Snapshot {
	cats := append([]string(nil), DefaultCategories...)
	rates := make(map[string]float64, len(cats))
	for _, c := range cats {
		rates[c] = 0
	}
	return Snapshot{
		Entries:       []Entry{},
		Categories:    cats,
		CategoryRates: rates,
	}
}
