// Package source reads transaction records from external inputs.
//
// Two collaborators feed the engine:
//   - CSV: a file or reader with a type,client,tx,amount header row
//   - Stream: a WebSocket feed of JSON records
//
// Both convert records to model.Transaction at the boundary. Malformed
// records are reported to the diagnostic log and skipped; they never
// reach the account state machine.
package source
