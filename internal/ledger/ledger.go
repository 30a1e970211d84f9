// Package ledger owns the entry collection and the category rate table.
//
// A Ledger keeps entry IDs dense and chronological: after every insert, edit
// or delete the entries are stably sorted by start date/time and renumbered
// 0..n-1. Mutations either commit completely or leave the ledger untouched.
package ledger

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"time"

	"github.com/Tiliavir/workhours/internal/model"
	"github.com/Tiliavir/workhours/internal/timecalc"
)

// Ledger is the engine state. It is not safe for concurrent use.
type Ledger struct {
	entries      []model.Entry
	categories   []string
	rates        map[string]float64
	defaultBreak model.BreakConfig
	hourlyRate   float64
	nextID       int
}

// New returns an empty ledger with the default categories.
func New() *Ledger {
	return FromSnapshot(model.NewSnapshot())
}

// FromSnapshot reconstructs a ledger from persisted state. Missing rates are
// filled with 0.0, orphan rates are dropped, duplicate categories are
// collapsed and entries are renumbered.
func FromSnapshot(s model.Snapshot) *Ledger {
	l := &Ledger{
		entries:      slices.Clone(s.Entries),
		rates:        make(map[string]float64),
		defaultBreak: s.DefaultBreak,
		hourlyRate:   sanitizeRate(s.HourlyRate),
	}
	if l.entries == nil {
		l.entries = []model.Entry{}
	}

	cats := s.Categories
	if len(cats) == 0 {
		cats = model.DefaultCategories
	}
	for _, c := range cats {
		if c == "" || slices.Contains(l.categories, c) {
			continue
		}
		l.categories = append(l.categories, c)
		l.rates[c] = sanitizeRate(s.CategoryRates[c])
	}
	if len(l.categories) == 0 {
		l.categories = slices.Clone(model.DefaultCategories)
		for _, c := range l.categories {
			l.rates[c] = 0
		}
	}

	l.Renumber()
	return l
}

// Snapshot returns a deep copy of the current state for persistence.
func (l *Ledger) Snapshot() model.Snapshot {
	return model.Snapshot{
		Entries:       l.Entries(),
		Categories:    l.Categories(),
		CategoryRates: l.Rates(),
		DefaultBreak:  l.defaultBreak,
		HourlyRate:    l.hourlyRate,
	}
}

// Clone returns an independent copy of l. Callers that must keep the current
// state if persisting fails apply mutations to a clone and swap on success.
func (l *Ledger) Clone() *Ledger {
	return &Ledger{
		entries:      l.Entries(),
		categories:   l.Categories(),
		rates:        l.Rates(),
		defaultBreak: l.defaultBreak,
		hourlyRate:   l.hourlyRate,
		nextID:       l.nextID,
	}
}

// Entries returns a copy of the entries in ID order.
func (l *Ledger) Entries() []model.Entry {
	out := make([]model.Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len reports the number of entries.
func (l *Ledger) Len() int { return len(l.entries) }

// NextID is the raw ID the next added entry receives before renumbering.
func (l *Ledger) NextID() int { return l.nextID }

// Entry returns the entry with the given ID.
func (l *Ledger) Entry(id int) (model.Entry, error) {
	i := l.indexOf(id)
	if i < 0 {
		return model.Entry{}, fmt.Errorf("%w: %d", ErrEntryNotFound, id)
	}
	return l.entries[i], nil
}

func (l *Ledger) indexOf(id int) int {
	for i, e := range l.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// AddEntry validates f and appends it as a new entry. The returned entry
// carries its ID after renumbering.
func (l *Ledger) AddEntry(f model.Fields) (model.Entry, error) {
	if _, err := timecalc.ValidateSession(f.StartDate, f.StartTime, f.EndDate, f.EndTime); err != nil {
		return model.Entry{}, err
	}

	e := model.Entry{ID: l.nextID}
	f.Apply(&e)
	if e.Category == "" {
		e.Category = l.DefaultCategory()
	}
	l.entries = append(l.entries, e)
	l.nextID++

	perm := l.Renumber()
	return l.entries[perm[len(perm)-1]], nil
}

// EditEntry validates f and replaces the fields of entry id in place.
func (l *Ledger) EditEntry(id int, f model.Fields) (model.Entry, error) {
	i := l.indexOf(id)
	if i < 0 {
		return model.Entry{}, fmt.Errorf("%w: %d", ErrEntryNotFound, id)
	}
	if _, err := timecalc.ValidateSession(f.StartDate, f.StartTime, f.EndDate, f.EndTime); err != nil {
		return model.Entry{}, err
	}

	f.Apply(&l.entries[i])
	if l.entries[i].Category == "" {
		l.entries[i].Category = l.DefaultCategory()
	}

	perm := l.Renumber()
	return l.entries[perm[i]], nil
}

// DeleteEntries removes every entry whose ID is in ids and returns how many
// were removed. Unknown IDs are ignored.
func (l *Ledger) DeleteEntries(ids []int) (int, error) {
	if len(ids) == 0 {
		return 0, ErrNoSelection
	}
	before := len(l.entries)
	l.entries = slices.DeleteFunc(l.entries, func(e model.Entry) bool {
		return slices.Contains(ids, e.ID)
	})
	l.Renumber()
	return before - len(l.entries), nil
}

// ClearAll removes every entry and resets the ID counter.
func (l *Ledger) ClearAll() {
	l.entries = []model.Entry{}
	l.nextID = 0
}

// Renumber stably sorts entries by start date/time and reassigns IDs 0..n-1.
// Entries whose start cannot be parsed sort after all others, keeping their
// relative order. It returns perm where perm[old] is the new index of the
// entry previously at index old.
func (l *Ledger) Renumber() []int {
	type keyed struct {
		old   int
		start time.Time
		ok    bool
	}
	keys := make([]keyed, len(l.entries))
	for i, e := range l.entries {
		t, err := timecalc.ParseDateTime(e.StartDate, e.StartTime)
		keys[i] = keyed{old: i, start: t, ok: err == nil}
	}
	sort.SliceStable(keys, func(a, b int) bool {
		ka, kb := keys[a], keys[b]
		if ka.ok != kb.ok {
			return ka.ok
		}
		return ka.ok && ka.start.Before(kb.start)
	})

	sorted := make([]model.Entry, len(l.entries))
	perm := make([]int, len(l.entries))
	for newIdx, k := range keys {
		sorted[newIdx] = l.entries[k.old]
		sorted[newIdx].ID = newIdx
		perm[k.old] = newIdx
	}
	l.entries = sorted
	l.nextID = len(sorted)
	return perm
}

// DefaultBreak returns the break configuration offered for new entries.
func (l *Ledger) DefaultBreak() model.BreakConfig { return l.defaultBreak }

// SetDefaultBreak stores the break configuration offered for new entries. An
// enabled configuration must have parseable components.
func (l *Ledger) SetDefaultBreak(b model.BreakConfig) error {
	if b.Enabled {
		if _, err := timecalc.BreakWindow("2000-01-01", b); err != nil {
			return err
		}
	}
	l.defaultBreak = b
	return nil
}

// HourlyRate returns the default hourly rate.
func (l *Ledger) HourlyRate() float64 { return l.hourlyRate }

// SetDefaultRate stores the default hourly rate. Negative or non-finite
// values are replaced with 0.0; the stored value is returned.
func (l *Ledger) SetDefaultRate(rate float64) float64 {
	l.hourlyRate = sanitizeRate(rate)
	return l.hourlyRate
}

// Rates returns a copy of the category rate table.
func (l *Ledger) Rates() map[string]float64 {
	return maps.Clone(l.rates)
}
