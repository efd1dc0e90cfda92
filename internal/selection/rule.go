package selection

import (
	"fmt"
	"sort"
	"strings"
)

type ruleKind int

const (
	ruleNone ruleKind = iota
	ruleAll
	ruleForms
	ruleExcept
)

// FormRule describes which forms of a single species are skipped.
// The zero value skips nothing.
type FormRule struct {
	kind  ruleKind
	forms map[string]struct{}
}

// SkipAll skips every form of the species.
func SkipAll() FormRule {
	return FormRule{kind: ruleAll}
}

// SkipForms skips exactly the named forms.
func SkipForms(forms ...string) FormRule {
	return FormRule{kind: ruleForms, forms: toSet(forms)}
}

// SkipAllExcept skips every form that is not named.
func SkipAllExcept(forms ...string) FormRule {
	return FormRule{kind: ruleExcept, forms: toSet(forms)}
}

// Skips reports whether the rule excludes the given raw form name.
func (r FormRule) Skips(form string) bool {
	switch r.kind {
	case ruleAll:
		return true
	case ruleForms:
		_, listed := r.forms[form]
		return listed
	case ruleExcept:
		_, kept := r.forms[form]
		return !kept
	case ruleNone:
		return false
	default:
		panic(fmt.Sprintf("selection: unknown rule kind %d", r.kind))
	}
}

// String renders the rule in the same shape it is written in configuration.
func (r FormRule) String() string {
	switch r.kind {
	case ruleAll:
		return `"all"`
	case ruleForms:
		return "[" + strings.Join(sortedKeys(r.forms), ", ") + "]"
	case ruleExcept:
		return "{except = [" + strings.Join(sortedKeys(r.forms), ", ") + "]}"
	default:
		return "none"
	}
}

// ParseFormRule converts a decoded configuration value into a FormRule.
// Accepted shapes are the string "all", a list of form names, or a table with
// a single "except" list.
func ParseFormRule(value any) (FormRule, error) {
	switch v := value.(type) {
	case string:
		if strings.EqualFold(strings.TrimSpace(v), "all") {
			return SkipAll(), nil
		}
		return FormRule{}, fmt.Errorf("invalid value %q: expected \"all\" or a list of form names", v)
	case []string:
		return SkipForms(v...), nil
	case []any:
		forms, err := stringList(v)
		if err != nil {
			return FormRule{}, err
		}
		return SkipForms(forms...), nil
	case map[string]any:
		var except []string
		found := false
		for key, raw := range v {
			if key != "except" {
				return FormRule{}, fmt.Errorf("unknown field %q: expected \"except\"", key)
			}
			list, ok := raw.([]any)
			if !ok {
				return FormRule{}, fmt.Errorf("except must be a list of form names")
			}
			forms, err := stringList(list)
			if err != nil {
				return FormRule{}, err
			}
			except = forms
			found = true
		}
		if !found {
			return FormRule{}, fmt.Errorf("missing field \"except\"")
		}
		return SkipAllExcept(except...), nil
	default:
		return FormRule{}, fmt.Errorf("unsupported value of type %T: expected \"all\" or a list of form names", value)
	}
}

func stringList(values []any) ([]string, error) {
	out := make([]string, 0, len(values))
	for _, raw := range values {
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("form names must be strings, got %T", raw)
		}
		out = append(out, s)
	}
	return out, nil
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		set[value] = struct{}{}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
