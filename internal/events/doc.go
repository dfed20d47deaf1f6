// Package events carries match lifecycle notifications from the match
// workflow to interested components without coupling them to it.
//
// The workflow emits a MatchEvent after a state change commits. Handlers
// registered on the emitter record metrics and write the audit log. Handler
// failures are logged and never undo the committed change.
package events
