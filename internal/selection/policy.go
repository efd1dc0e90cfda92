package selection

import (
	"errors"
	"fmt"
)

// ErrMissingForms is returned when a species selected for processing has no forms.
var ErrMissingForms = errors.New("species has no forms")

// Rules is the configuration-facing description of a Policy.
type Rules struct {
	// DumbInsert lists species whose sound goes on the first form only, as the base sound.
	DumbInsert []string
	// SkipFormNamesAll lists form names skipped for every species.
	SkipFormNamesAll []string
	// SkipFormNames holds per-species skip rules keyed by species name.
	SkipFormNames map[string]FormRule
	// TreatAsBaseAll lists form names that are the base sound for every species.
	TreatAsBaseAll []string
	// TreatAsBase maps a species name to the one form that is its base sound.
	TreatAsBase map[string]string
}

// Target is a single form selected for sound resolution.
type Target struct {
	// Index is the form's position in the species record.
	Index int
	// Form is the raw form name as declared in the record.
	Form string
	// EffectiveForm is the name used for lookup and output; empty means base sound.
	EffectiveForm string
}

// Policy decides which forms are processed. It is immutable once built.
type Policy struct {
	dumb        map[string]struct{}
	skipAll     map[string]struct{}
	skipRules   map[string]FormRule
	baseAll     map[string]struct{}
	baseByEntry map[string]string
}

// NewPolicy builds a policy from rules. The rules are copied.
func NewPolicy(rules Rules) *Policy {
	p := &Policy{
		dumb:        toSet(rules.DumbInsert),
		skipAll:     toSet(rules.SkipFormNamesAll),
		skipRules:   make(map[string]FormRule, len(rules.SkipFormNames)),
		baseAll:     toSet(rules.TreatAsBaseAll),
		baseByEntry: make(map[string]string, len(rules.TreatAsBase)),
	}
	for name, rule := range rules.SkipFormNames {
		p.skipRules[name] = rule
	}
	for name, form := range rules.TreatAsBase {
		p.baseByEntry[name] = form
	}
	return p
}

// IsDumb reports whether the species only receives a single base sound on its first form.
func (p *Policy) IsDumb(species string) bool {
	_, ok := p.dumb[species]
	return ok
}

// Plan returns the forms of species to resolve, in declaration order.
func (p *Policy) Plan(species string, forms []string) ([]Target, error) {
	if p.IsDumb(species) {
		if len(forms) == 0 {
			return nil, fmt.Errorf("%s: %w", species, ErrMissingForms)
		}
		return []Target{{Index: 0, Form: forms[0]}}, nil
	}

	rule := p.skipRules[species]
	targets := make([]Target, 0, len(forms))
	for i, form := range forms {
		if _, skip := p.skipAll[form]; skip {
			continue
		}
		if rule.Skips(form) {
			continue
		}
		targets = append(targets, Target{
			Index:         i,
			Form:          form,
			EffectiveForm: p.EffectiveForm(species, form),
		})
	}
	return targets, nil
}

// EffectiveForm maps a raw form name to the name used for lookup and output.
func (p *Policy) EffectiveForm(species, form string) string {
	if _, base := p.baseAll[form]; base {
		return ""
	}
	if base, ok := p.baseByEntry[species]; ok && base == form {
		return ""
	}
	return form
}
