// Package evaluator asks a language model how a persisted character record
// should evolve in light of recent conversation, and turns the reply into a
// validated set of proposed field updates.
//
// The flow per [Evaluator.Evaluate] call: build a prompt embedding the
// current record, the transcript, and a field-by-field description of the
// record schema; send it through the configured [ai.Provider]; strip any
// reasoning-trace blocks from the reply; parse the remainder as XML (with a
// JSON-repair fallback); and extract the proposed updates. Replies with
// nothing usable are retried up to the attempt budget.
package evaluator
