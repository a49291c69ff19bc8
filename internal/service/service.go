// Package service holds the business rules. Services own transactions;
// repositories only touch rows. Every mutation that spans more than one
// row runs inside a single GORM transaction opened here.
package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Sentinel errors the handlers translate into HTTP statuses.
var (
	ErrNotFound = errors.New("not found")
	// ErrConflict covers protected references and duplicate keys.
	ErrConflict = errors.New("conflict")
	// ErrInvalid covers business-rule rejections that binding could not
	// catch (unknown adjustment type, inactive account, bad state).
	ErrInvalid = errors.New("invalid")
	// ErrUnauthorized covers bad credentials and unusable tokens.
	ErrUnauthorized = errors.New("unauthorized")
)

// LineFailure reports which line of a multi-line request was rejected
// and why. It unwraps to ErrInvalid so generic handling still works.
type LineFailure struct {
	Line      int
	ProductID string
	Reason    string
}

func (e *LineFailure) Error() string {
	return fmt.Sprintf("line %d (product %s): %s", e.Line, e.ProductID, e.Reason)
}

func (e *LineFailure) Unwrap() error { return ErrInvalid }

// runTx executes fn inside a transaction. A nil db runs fn directly
// with a nil tx, which lets unit tests drive services through stub
// repositories without a database.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// notFound maps gorm's record-not-found onto the service sentinel and
// passes everything else through.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
