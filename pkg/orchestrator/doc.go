// Package orchestrator wires the card pipeline end to end: a persistence sink
// opened from configuration, the commit bridge, form sessions and the preview
// renderer registry, behind a single constructor.
package orchestrator
