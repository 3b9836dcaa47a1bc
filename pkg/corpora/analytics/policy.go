package analytics

import "github.com/cognicore/corpora/pkg/corpora/ingest"

// ContentOnly is the reserved policy value that switches a Policy from
// "exclude these categories" to "exclude everything outside the content
// allow-list of the aggregation kind".
const ContentOnly = "*CONTENT*"

// TokenContent is the allow-list of content-bearing token categories.
var TokenContent = []string{ingest.NOUN, ingest.VERB, ingest.ADJ, ingest.ADV, ingest.PROPN}

// EntityContent is the allow-list of content-bearing entity labels.
var EntityContent = []string{ingest.LabelOrg, ingest.LabelLoc, ingest.LabelPerson, ingest.LabelGPE}

// Policy decides which token categories or entity labels are counted.
// A Policy is immutable; aggregation derives a fresh matcher per call.
type Policy struct {
	excluded    map[string]struct{}
	contentOnly bool
}

// Exclude builds a plain policy skipping the given categories. Passing
// ContentOnly anywhere in the list selects content-only mode instead.
func Exclude(categories ...string) Policy {
	p := Policy{excluded: make(map[string]struct{}, len(categories))}
	for _, c := range categories {
		if c == ContentOnly {
			p.contentOnly = true
			continue
		}
		p.excluded[c] = struct{}{}
	}
	return p
}

// ContentPolicy returns a content-only policy.
func ContentPolicy() Policy {
	return Exclude(ContentOnly)
}

// DefaultTokenPolicy skips punctuation and whitespace tokens.
func DefaultTokenPolicy() Policy {
	return Exclude(ingest.PUNCT, ingest.SPACE)
}

// DefaultEntityPolicy skips quantity entities.
func DefaultEntityPolicy() Policy {
	return Exclude(ingest.LabelQuantity)
}

// IsContentOnly reports whether the policy is in content-only mode.
func (p Policy) IsContentOnly() bool {
	return p.contentOnly
}

// Excluded returns the explicit exclusion set.
func (p Policy) Excluded() []string {
	out := make([]string, 0, len(p.excluded))
	for c := range p.excluded {
		out = append(out, c)
	}
	return out
}

// matcher is the per-call state of a policy: the fixed allow-list plus a
// rejects cache that memoizes categories seen outside it.
type matcher struct {
	policy  Policy
	allowed map[string]struct{}
	rejects map[string]struct{}
}

func (p Policy) matcher(allowList []string) *matcher {
	m := &matcher{policy: p}
	if p.contentOnly {
		m.allowed = make(map[string]struct{}, len(allowList))
		for _, c := range allowList {
			m.allowed[c] = struct{}{}
		}
		m.rejects = make(map[string]struct{})
	}
	return m
}

// skip reports whether an item tagged with category is dropped.
func (m *matcher) skip(category string) bool {
	if !m.policy.contentOnly {
		_, ok := m.policy.excluded[category]
		return ok
	}
	if _, ok := m.rejects[category]; ok {
		return true
	}
	if _, ok := m.allowed[category]; !ok {
		m.rejects[category] = struct{}{}
		return true
	}
	// Explicit exclusions still apply alongside the sentinel.
	_, ok := m.policy.excluded[category]
	return ok
}
