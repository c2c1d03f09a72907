// Package pricing holds the integer arithmetic shared by the
// subscription enforcer and the campaign engine. All amounts are int64
// currency units; every division floors, so the computed exact total
// never exceeds what was paid.
package pricing

import "errors"

// ErrDivisionByZero is returned when partyCount or unitPrice is not
// positive. Callers guard partyCount before invoking; unitPrice > 0 is
// guaranteed by package setup.
var ErrDivisionByZero = errors.New("pricing: division by zero")

// ErrNegativeAmount is returned when the paid amount is below zero. Go
// integer division truncates toward zero, so a negative amount would
// otherwise produce a negative duration.
var ErrNegativeAmount = errors.New("pricing: negative amount")

// CalcDuration converts a lump payment into a whole-day access duration
// shared by partyCount accounts at unitPrice per account per day. It
// returns the duration in days and the exact total owed for it.
//
// exactTotal = days * unitPrice * partyCount and is always <= paid for
// positive inputs: both divisions floor, so truncation can only shorten
// the duration, never inflate the charge.
func CalcDuration(paid, unitPrice, partyCount int64) (days, exactTotal int64, err error) {
	if partyCount <= 0 || unitPrice <= 0 {
		return 0, 0, ErrDivisionByZero
	}
	if paid < 0 {
		return 0, 0, ErrNegativeAmount
	}
	perAccount := paid / partyCount
	days = perAccount / unitPrice
	exactTotal = days * unitPrice * partyCount
	return days, exactTotal, nil
}
