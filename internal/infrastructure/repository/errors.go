package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	domainRepo "github.com/LokeshN1/bill-master/internal/domain/repository"
)

// translateError maps driver-level failures onto the domain sentinels so
// callers never have to import gorm or match SQLSTATE strings themselves.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainRepo.ErrNotFound
	}
	if isDuplicateKey(err) {
		return domainRepo.ErrDuplicateKey
	}
	return err
}

// isDuplicateKey detects a unique constraint violation. Matched on the
// SQLSTATE text because the postgres driver surfaces it only inside the
// error message.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
