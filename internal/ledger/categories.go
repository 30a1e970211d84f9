package ledger

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Categories returns the ordered category names.
func (l *Ledger) Categories() []string {
	return slices.Clone(l.categories)
}

// DefaultCategory is the category assigned to entries that name none.
func (l *Ledger) DefaultCategory() string {
	return l.categories[0]
}

// Rate returns the hourly rate for category. An empty name means the default
// category; names that are no longer known are priced at 0.0.
func (l *Ledger) Rate(category string) float64 {
	if category == "" {
		category = l.DefaultCategory()
	}
	return l.rates[category]
}

// AddCategory appends a new category with the given rate.
func (l *Ledger) AddCategory(name string, rate float64) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidCategoryName
	}
	if slices.Contains(l.categories, name) {
		return fmt.Errorf("%w: %q", ErrDuplicateCategory, name)
	}
	if !validRate(rate) {
		return fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}
	l.categories = append(l.categories, name)
	l.rates[name] = rate
	return nil
}

// RemoveCategory drops a category and its rate. Entries that still reference
// it keep the name and fall back to a 0.0 rate.
func (l *Ledger) RemoveCategory(name string) error {
	i := slices.Index(l.categories, name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	if len(l.categories) == 1 {
		return ErrLastCategory
	}
	l.categories = slices.Delete(l.categories, i, i+1)
	delete(l.rates, name)
	return nil
}

// RenameCategory renames a category, keeping its position and rate, and
// re-points every entry that referenced the old name.
func (l *Ledger) RenameCategory(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrInvalidCategoryName
	}
	i := slices.Index(l.categories, oldName)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, oldName)
	}
	if newName == oldName {
		return nil
	}
	if slices.Contains(l.categories, newName) {
		return fmt.Errorf("%w: %q", ErrDuplicateCategory, newName)
	}

	l.categories[i] = newName
	l.rates[newName] = l.rates[oldName]
	delete(l.rates, oldName)
	for j := range l.entries {
		if l.entries[j].Category == oldName {
			l.entries[j].Category = newName
		}
	}
	return nil
}

// SetRate sets the hourly rate of an existing category.
func (l *Ledger) SetRate(name string, rate float64) error {
	return l.SetRates(map[string]float64{name: rate})
}

// SetRates updates several category rates at once. Nothing is changed unless
// every name is known and every rate is valid.
func (l *Ledger) SetRates(rates map[string]float64) error {
	for name, rate := range rates {
		if !slices.Contains(l.categories, name) {
			return fmt.Errorf("%w: %q", ErrUnknownCategory, name)
		}
		if !validRate(rate) {
			return fmt.Errorf("%w: %s=%v", ErrInvalidRate, name, rate)
		}
	}
	for name, rate := range rates {
		l.rates[name] = rate
	}
	return nil
}

func validRate(rate float64) bool {
	return !math.IsNaN(rate) && !math.IsInf(rate, 0) && rate >= 0
}

func sanitizeRate(rate float64) float64 {
	if !validRate(rate) {
		return 0
	}
	return rate
}
