// Package normalize folds variant spellings of categorical values into one
// canonical form so that "예약 확정 문의" and "예약확정문의" count as the
// same category. The rule set is data, not code: it ships in a YAML file
// and can be extended at runtime.
package normalize

import (
	"sort"
	"strings"
	"unicode"
)

// Normalizer applies canonicalization plus an ordered series of rule
// passes. A nil Normalizer is valid and performs canonicalization only.
type Normalizer struct {
	exact        map[string]string
	priority     []priorityRule
	combinations []combinationRule
	single       []SingleRule
	brackets     []string
}

type priorityRule struct {
	priority int
	keywords []string
	result   string
}

type combinationRule struct {
	keywords []string
	result   string
}

// New builds a Normalizer from a rule set. rules may be nil.
func New(rules *Rules) *Normalizer {
	n := &Normalizer{exact: map[string]string{}}
	if rules == nil {
		return n
	}
	for canonical, variants := range rules.Exact {
		n.AddExact(canonical, variants...)
	}
	for _, r := range rules.Priority {
		n.AddKeyword(r.Result, r.Priority, r.Keywords...)
	}
	for _, r := range rules.Combinations {
		n.AddCombination(r.Result, r.Keywords...)
	}
	for _, r := range rules.Single {
		n.AddSingle(r.Keyword, r.Result)
	}
	n.AddBracketKeyword(rules.Brackets...)
	return n
}

// Canonical trims a value and collapses interior whitespace runs to a
// single space. This is the baseline applied to every value whether or
// not any rule fires.
func Canonical(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Normalize canonicalizes value and runs the rule passes in order: exact
// variants, priority keywords, keyword combinations, single keywords,
// bracket stripping. The first matching rule decides the result.
func (n *Normalizer) Normalize(value string) string {
	canonical := Canonical(value)
	if n == nil || canonical == "" {
		return canonical
	}

	squashed := squash(canonical)
	lowered := strings.ToLower(squashed)

	if result, ok := n.exact[lowered]; ok {
		return result
	}
	for _, r := range n.priority {
		if containsAll(lowered, r.keywords) {
			return r.result
		}
	}
	for _, r := range n.combinations {
		if containsAll(lowered, r.keywords) {
			return r.result
		}
	}
	for _, r := range n.single {
		if strings.Contains(squashed, r.Keyword) {
			return r.Result
		}
	}
	for _, keyword := range n.brackets {
		if strings.Contains(canonical, keyword) &&
			(strings.Contains(canonical, "(") || strings.Contains(canonical, "（")) {
			return keyword
		}
	}
	return canonical
}

// AddExact registers variant spellings for a canonical value. Later
// registrations win when a variant is claimed twice.
func (n *Normalizer) AddExact(canonical string, variants ...string) {
	for _, v := range variants {
		n.exact[strings.ToLower(squash(v))] = canonical
	}
}

// AddKeyword registers a priority rule: when every keyword is contained
// in the value, result wins. Lower priorities are tried first; equal
// priorities keep registration order.
func (n *Normalizer) AddKeyword(result string, priority int, keywords ...string) {
	if len(keywords) == 0 {
		return
	}
	n.priority = append(n.priority, priorityRule{
		priority: priority,
		keywords: lowerAll(keywords),
		result:   result,
	})
	sort.SliceStable(n.priority, func(i, j int) bool {
		return n.priority[i].priority < n.priority[j].priority
	})
}

// AddCombination registers a rule that fires when every keyword is
// contained in the value.
func (n *Normalizer) AddCombination(result string, keywords ...string) {
	if len(keywords) == 0 {
		return
	}
	n.combinations = append(n.combinations, combinationRule{
		keywords: lowerAll(keywords),
		result:   result,
	})
}

// AddSingle registers a case-sensitive single-keyword rule.
func (n *Normalizer) AddSingle(keyword, result string) {
	if keyword == "" {
		return
	}
	n.single = append(n.single, SingleRule{Keyword: squash(keyword), Result: result})
}

// AddBracketKeyword registers keywords whose bracketed remainder is
// dropped.
func (n *Normalizer) AddBracketKeyword(keywords ...string) {
	n.brackets = append(n.brackets, keywords...)
}

func containsAll(value string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(value, kw) {
			return false
		}
	}
	return true
}

func lowerAll(keywords []string) []string {
	out := make([]string, len(keywords))
	for i, kw := range keywords {
		out[i] = strings.ToLower(squash(kw))
	}
	return out
}

func squash(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
