// Package form is the event adapter around the card pipeline. A Form holds
// the latest canonical value of each field, runs the normalizers on every
// input or paste event, reclassifies the network when the number changes,
// re-evaluates the completeness gate, and notifies change listeners (the
// display sync) with the resulting State.
//
// A Form is not safe for concurrent use. Events are expected to arrive one at
// a time, each pass completing before the next begins; callers that share a
// Form across goroutines must serialize access themselves.
package form
