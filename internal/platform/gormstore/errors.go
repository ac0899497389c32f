package gormstore

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/phrazzld/generic-crud/internal/store"
	"gorm.io/gorm"
)

// MySQL error numbers
const (
	duplicateEntryCode        = 1062
	rowIsReferencedCode       = 1451
	noReferencedRowCode       = 1452
	columnCannotBeNullCode    = 1048
	checkConstraintFailedCode = 3819
)

// MapError maps gorm and MySQL errors to the store's sentinel errors, in the
// same way postgres.MapError does for PostgreSQL.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w: %v", store.ErrIntegrityViolation, store.ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %w: %v", store.ErrIntegrityViolation, store.ErrInvalidEntity, err)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case duplicateEntryCode:
			return fmt.Errorf("%w: %w: %v", store.ErrIntegrityViolation, store.ErrDuplicate, err)
		case rowIsReferencedCode, noReferencedRowCode, columnCannotBeNullCode, checkConstraintFailedCode:
			return fmt.Errorf("%w: %w: %v", store.ErrIntegrityViolation, store.ErrInvalidEntity, err)
		}
	}

	return err
}
