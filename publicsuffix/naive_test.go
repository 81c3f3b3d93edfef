package publicsuffix

import "strings"

// naiveRule mirrors one line of Public Suffix List text for the naive
// oracle below.
type naiveRule struct {
	labels    []string
	exception bool
}

// naiveList is a simple, pure-Go reimplementation used only to
// differentially test List against, independent of pslbuilder/pslmatch.
// It walks every rule for every query, so it is far too slow for
// production use but easy to trust.
type naiveList struct {
	rules []naiveRule
}

func newNaiveList(text string) *naiveList {
	n := &naiveList{}
	n.rules = append(n.rules, naiveRule{labels: []string{"*"}})
	for _, line := range strings.Split(text, "\n") {
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		exception := false
		if line[0] == '!' {
			exception = true
			line = line[1:]
		}
		if line == "" {
			continue
		}
		n.rules = append(n.rules, naiveRule{
			labels:    strings.Split(strings.ToLower(line), "."),
			exception: exception,
		})
	}
	return n
}

// matches reports whether rule matches the rightmost len(rule.labels)
// labels of hostLabels, treating "*" as matching any single label.
func (r naiveRule) matches(hostLabels []string) bool {
	if len(r.labels) > len(hostLabels) {
		return false
	}
	host := hostLabels[len(hostLabels)-len(r.labels):]
	for i, rl := range r.labels {
		if rl != "*" && rl != host[i] {
			return false
		}
	}
	return true
}

// publicSuffix finds every matching rule and applies exception > longest
// > wildcard precedence by brute force.
func (n *naiveList) publicSuffix(hostname string) string {
	if hostname == "" || hostname[0] == '.' {
		return ""
	}
	labels := strings.Split(strings.ToLower(hostname), ".")

	var bestException *naiveRule
	var bestNormal *naiveRule
	for i := range n.rules {
		r := &n.rules[i]
		if !r.matches(labels) {
			continue
		}
		if r.exception {
			if bestException == nil || len(r.labels) > len(bestException.labels) {
				bestException = r
			}
			continue
		}
		if bestNormal == nil || len(r.labels) > len(bestNormal.labels) {
			bestNormal = r
		}
	}

	if bestException != nil {
		// An exception rule "!a.b.c" means "b.c" (one label less) is the
		// public suffix.
		n := len(bestException.labels) - 1
		return strings.Join(labels[len(labels)-n:], ".")
	}
	if bestNormal == nil {
		return ""
	}
	return strings.Join(labels[len(labels)-len(bestNormal.labels):], ".")
}
