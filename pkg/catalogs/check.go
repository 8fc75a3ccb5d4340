package catalogs

import "fmt"

// IssueType classifies a data problem found in a catalog.
type IssueType string

// Issue types reported by Check.
const (
	IssueDuplicateID      IssueType = "duplicate_id"
	IssueDanglingWinery   IssueType = "dangling_winery"
	IssueDanglingVarietal IssueType = "dangling_varietal"
)

// Issue is a single data problem.
type Issue struct {
	Type    IssueType `json:"type" yaml:"type"`
	Kind    Kind      `json:"kind" yaml:"kind"`
	ID      string    `json:"id" yaml:"id"`
	Ref     string    `json:"ref,omitempty" yaml:"ref,omitempty"`
	Message string    `json:"message" yaml:"message"`
}

// Report collects the issues found in a catalog.
type Report struct {
	Issues []Issue `json:"issues" yaml:"issues"`
}

// OK reports whether no issue was found.
func (r Report) OK() bool {
	return len(r.Issues) == 0
}

// Count returns the number of issues of type t.
func (r Report) Count(t IssueType) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Type == t {
			n++
		}
	}
	return n
}

// Check reports the duplicate ids dropped when the snapshot was built and
// every wine reference that does not resolve.
func (c *Catalog) Check() Report {
	issues := make([]Issue, 0, len(c.duplicates))
	issues = append(issues, c.duplicates...)

	for _, w := range c.wines {
		if _, ok := c.wineryIndex[w.wineryID]; !ok {
			issues = append(issues, Issue{
				Type:    IssueDanglingWinery,
				Kind:    KindWine,
				ID:      w.ID(),
				Ref:     w.wineryID,
				Message: fmt.Sprintf("wine %s references unknown winery %q", w.ID(), w.wineryID),
			})
		}
		for _, vid := range w.DistinctVarietalIDs() {
			if _, ok := c.varietalIndex[vid]; !ok {
				issues = append(issues, Issue{
					Type:    IssueDanglingVarietal,
					Kind:    KindWine,
					ID:      w.ID(),
					Ref:     vid,
					Message: fmt.Sprintf("wine %s references unknown varietal %q", w.ID(), vid),
				})
			}
		}
	}

	return Report{Issues: issues}
}

func duplicateIssue(kind Kind, id string) Issue {
	return Issue{
		Type:    IssueDuplicateID,
		Kind:    kind,
		ID:      id,
		Message: fmt.Sprintf("duplicate %s id %q, keeping the first record", kind, id),
	}
}
