// Package model defines the shared data types of the payment engine.
//
// Conventions:
//   - Amounts: integer hundred-thousandths of a unit (scale 10000,
//     4 fractional digits), converted once at the ingestion boundary
//   - IDs: uint16 for clients, uint32 for transactions
package model
