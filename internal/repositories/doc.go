// Package repositories implements SQLite persistence for the client's local state.
//
// The only durable state is a set of named storage slots:
//   - [SlotRepository] : key/value slots in the storage table, written and cleared in single transactions
//
// Slot names are owned by callers; the session layer uses "sessionToken" and "username".
package repositories
