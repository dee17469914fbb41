package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"exam-api/internal/domain"

	"github.com/godror/godror"
	"github.com/sijms/go-ora/v2/network"
)

// Oracle error numbers the repositories translate into domain sentinels.
const (
	oraUniqueViolation   = 1     // ORA-00001 unique constraint violated
	oraParentKeyNotFound = 2291  // ORA-02291 integrity constraint violated - parent key not found
	oraChildRecordFound  = 2292  // ORA-02292 integrity constraint violated - child record found
	oraPrecisionExceeded = 1438  // ORA-01438 value larger than specified precision
	oraValueTooLarge     = 12899 // ORA-12899 value too large for column
	oraCodePrefix        = "ORA-"
	oraCodeDigits        = 5
)

// oracleErrorCode extracts the ORA- number from either driver's error type,
// falling back to the message text for wrapped or stringified errors.
func oracleErrorCode(err error) (int, bool) {
	var goOraErr *network.OracleError
	if errors.As(err, &goOraErr) {
		return goOraErr.ErrCode, true
	}
	if oraErr, ok := godror.AsOraErr(err); ok {
		return oraErr.Code(), true
	}

	msg := err.Error()
	idx := strings.Index(msg, oraCodePrefix)
	if idx < 0 || len(msg) < idx+len(oraCodePrefix)+oraCodeDigits {
		return 0, false
	}
	start := idx + len(oraCodePrefix)
	code, convErr := strconv.Atoi(msg[start : start+oraCodeDigits])
	if convErr != nil {
		return 0, false
	}
	return code, true
}

// classifyError wraps err with the matching domain sentinel so services can
// use errors.Is without knowing which driver is configured.
func classifyError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(op)
	}
	if code, ok := oracleErrorCode(err); ok {
		switch code {
		case oraUniqueViolation:
			return fmt.Errorf("%s: %w: %w", op, domain.ErrUniqueViolation, err)
		case oraParentKeyNotFound:
			return fmt.Errorf("%s: %w: %w", op, domain.ErrForeignKeyViolation, err)
		case oraChildRecordFound:
			return fmt.Errorf("%s: %w: %w", op, domain.ErrChildRecordsExist, err)
		case oraPrecisionExceeded, oraValueTooLarge:
			return fmt.Errorf("%s: %w: %w", op, domain.ErrValueTooLarge, err)
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func notFound(op string) error {
	return fmt.Errorf("%s: %w", op, domain.ErrRecordNotFound)
}
