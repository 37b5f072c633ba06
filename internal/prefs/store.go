// Package prefs is the local preference store: a small named-slot key/value
// store scoped to one profile. It holds the API credential and the daily
// usage bookkeeping. No other package touches the underlying storage.
package prefs

import "errors"

// Slot names. These are a compatibility contract with existing stored data.
const (
	KeyCredential = "api_credential"
	KeyUsageCount = "usage_count"
	KeyResetDate  = "usage_reset_date"
)

// ErrNotFound is returned when a slot has never been written.
var ErrNotFound = errors.New("prefs: not found")

// Store reads and writes named preference slots as plain strings.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
}
