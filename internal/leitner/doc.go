// Package leitner implements the Leitner box scheduling engine: the card
// and box data model, the box-weighted session sampler and the
// history-based rebalancer.
//
// The package does no I/O and holds no global state. Persistence and
// presentation are done by callers, which hand a Box to Sampler.Select,
// report each presented card's outcome with Card.RecordOutcome, and finally
// call Rebalance before persisting the cards.
package leitner
