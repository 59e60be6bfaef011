package shared

import (
	"slotbook/internal/infra"
	"slotbook/internal/pkg/errs"
)

// NotFoundAs maps a repository miss to the given domain error; other errors pass through.
func NotFoundAs(err, target error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, target)
	}
	if infra.IsKind(err, infra.KindDBFailure) {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return err
}

// StoreErr classifies repository failures that have no domain meaning.
func StoreErr(err error) error {
	return NotFoundAs(err, errs.ErrNotFound)
}
