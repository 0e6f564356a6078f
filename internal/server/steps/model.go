package steps

import "time"

// Entry is one immutable ledger record. There is no update or delete: the
// ledger is append-only and aggregation only ever reads it.
//
// The JSON shape matches the persisted stepData record:
// {id, userId, date (ISO-8601), steps}.
type Entry struct {
	ID     string    `json:"id"`
	UserID string    `json:"userId"`
	Date   time.Time `json:"date"`
	Steps  int       `json:"steps"`
}

// DayTotal is one derived point of the weekly rollup: the daily total for
// Date's calendar day. Not stored anywhere.
type DayTotal struct {
	Date  time.Time `json:"date"`
	Steps int       `json:"steps"`
}
