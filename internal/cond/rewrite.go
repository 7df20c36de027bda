package cond

import (
	"fmt"
	"regexp"
)

var (
	// qualifiedRE matches one alias.column occurrence and captures the
	// alias.
	qualifiedRE = regexp.MustCompile(`([A-Za-z0-9_]+)\.[A-Za-z0-9_]+`)

	// equiJoinRE recognizes the restricted equi-join shape: a possibly
	// qualified left side equal to a qualified right side. The right side
	// must be qualified so the membership rewrite has a relation to build
	// its subquery from.
	equiJoinRE = regexp.MustCompile(
		`(?P<left>[A-Za-z0-9_]+\.?[A-Za-z0-9_]+) = (?P<rightRel>[A-Za-z0-9_]+)\.(?P<rightCol>[A-Za-z0-9_]+)`)
)

// Aliases returns every alias qualifying a column reference in the
// predicate. Order-insensitive; duplicates collapse.
func Aliases(pred string) map[string]struct{} {
	aliases := make(map[string]struct{})
	for _, m := range qualifiedRE.FindAllStringSubmatch(pred, -1) {
		aliases[m[1]] = struct{}{}
	}
	return aliases
}

// Substitute replaces every alias qualifier in the predicate with the
// view identifier registered for it. Fails with a ViewNotFoundError if
// any referenced alias is unregistered. Applying Substitute twice with
// the same registry state yields the same string as applying it once.
func Substitute(pred string, reg *Registry) (string, error) {
	for alias := range Aliases(pred) {
		viewID, err := reg.Resolve(alias)
		if err != nil {
			return "", err
		}
		// Word boundary so one alias never rewrites the tail of another
		// (alias s inside ps.partkey).
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(alias) + `\.`)
		pred = re.ReplaceAllString(pred, viewID+".")
	}
	return pred, nil
}

// IsJoin reports whether the predicate contains the restricted equi-join
// shape. A range or a disjunction classifies as non-join.
func IsJoin(pred string) bool {
	return equiJoinRE.MatchString(pred)
}

// ToMembership rewrites an equi-join predicate L = R.c into a membership
// test ( L IN (SELECT c FROM R) ). Once a join is represented by a
// flattened view, a descendant's filtering join predicate can no longer
// be stated as a join, so it is restated as a semi-join solvable against
// the single relation.
func ToMembership(pred string) (string, error) {
	m := equiJoinRE.FindStringSubmatch(pred)
	if m == nil {
		return "", &MalformedConditionError{Cond: pred}
	}
	var left, rightRel, rightCol string
	for i, name := range equiJoinRE.SubexpNames() {
		switch name {
		case "left":
			left = m[i]
		case "rightRel":
			rightRel = m[i]
		case "rightCol":
			rightCol = m[i]
		}
	}
	return fmt.Sprintf("( %s IN (SELECT %s FROM %s) )", left, rightCol, rightRel), nil
}
