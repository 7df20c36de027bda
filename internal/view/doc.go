// Package view synthesizes, for each supported plan operator, a SQL view
// whose contents mirror the operator's intermediate result.
//
// Emission is bottom-up: by the time a node is synthesized its children's
// views exist (or failed, in which case this node degrades per its
// family's containment rule). Scans select from the base relation with
// their rewritten conditions; joins flatten their Inner and Outer child
// views with a de-duplicated projection; pass-through operators wrap
// their single child, with Sort adding ORDER BY and Limit a row cap.
// Aggregates and unrecognized operators synthesize nothing.
//
// The statement builders (BuildSelect, BuildJoin, JoinColumns) are pure;
// Synthesizer adds the engine side effects and alias registration.
package view
