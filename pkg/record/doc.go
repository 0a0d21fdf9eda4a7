// Package record defines the snapshot persisted when a complete card form is
// committed, the append-only Sink that stores those snapshots, and the
// Committer that bridges the completeness gate to the sink.
//
// Record ids default to "User-<n>" where n is the sink length plus one at
// commit time. That id is not globally unique: any sink that loses or removes
// entries will hand out a colliding id. UUIDs switches to random ids when
// uniqueness matters.
package record
