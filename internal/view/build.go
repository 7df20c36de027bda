package view

import (
	"fmt"
	"strings"
)

// BuildSelect assembles SELECT * FROM relation with optional WHERE,
// ORDER BY and LIMIT clauses. Empty condition strings are skipped; a
// limit of zero means no cap.
func BuildSelect(relation string, conds []string, order []string, limit int64) string {
	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(relation)

	var kept []string
	for _, c := range conds {
		if c != "" {
			kept = append(kept, c)
		}
	}
	if len(kept) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(kept, " AND "))
	}
	if len(order) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(order, ", "))
	}
	if limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", limit)
	}
	return b.String()
}

// joinKeywords maps the engine's Join Type tags to SQL join keywords.
var joinKeywords = map[string]string{
	"Inner": "INNER",
	"Full":  "FULL OUTER",
	"Left":  "LEFT OUTER",
	"Right": "RIGHT OUTER",
}

// BuildJoin assembles a join of the outer and inner views. An empty join
// condition degenerates to a CROSS JOIN. Join types outside the
// Inner/Full/Left/Right set are an error.
func BuildJoin(outer, inner, joinCond, joinType string, cols []string) (string, error) {
	projection := "*"
	if len(cols) > 0 {
		projection = strings.Join(cols, ", ")
	}
	if joinCond == "" {
		return fmt.Sprintf("SELECT %s FROM %s CROSS JOIN %s", projection, outer, inner), nil
	}
	kw, ok := joinKeywords[joinType]
	if !ok {
		return "", fmt.Errorf("%q is not a supported join type", joinType)
	}
	return fmt.Sprintf("SELECT %s FROM %s %s JOIN %s ON %s",
		projection, outer, kw, inner, joinCond), nil
}

// JoinColumns computes the de-duplicated projection for a join of two
// views: columns on only one side appear bare, columns on both sides are
// qualified by the inner view so the flattened result has no ambiguous
// names. Outer order first, then inner, deterministically.
func JoinColumns(outerCols, innerCols []string, innerID string) []string {
	inInner := make(map[string]bool, len(innerCols))
	for _, c := range innerCols {
		inInner[c] = true
	}

	var cols []string
	seen := make(map[string]bool, len(outerCols)+len(innerCols))
	for _, c := range outerCols {
		if seen[c] {
			continue
		}
		seen[c] = true
		if inInner[c] {
			cols = append(cols, innerID+"."+c)
		} else {
			cols = append(cols, c)
		}
	}
	for _, c := range innerCols {
		if seen[c] {
			continue
		}
		seen[c] = true
		cols = append(cols, c)
	}
	return cols
}
