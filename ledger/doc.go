// Package ledger records the history of a poker table as an append-only
// chain of snapshots.
//
// # Core Components
//
// History: an in-memory log of table snapshots with SHA-256 hash chaining
// for tamper detection. It implements poker.Observer, so it can be attached
// to a table with poker.WithObserver and will record every accepted change.
//
// Block: a single snapshot with the action that produced it, the hand it
// belongs to and the links to the previous block.
//
// # Security Properties
//
// The history provides:
//   - Verifiability: Verify recomputes every hash and link of the chain
//   - Tamper detection: any modification of a recorded block breaks the chain
//
// # Usage
//
// Create a history with NewHistory, pass it to the table as an observer and
// inspect it with GetLatest, GetByIndex or ForHand. Readers may use it from
// other goroutines while the table owner appends.
package ledger
