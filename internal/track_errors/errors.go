package track_errors

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
)

const (
	CodeUniqueConstraint     = "23505"
	CodeForeignKeyConstraint = "23503"
)

var (
	ErrInternal               = errors.New("internal service error. please try again later")
	ErrInvalidRequest         = errors.New("invalid request")
	ErrInvalidUserCredentials = errors.New("invalid user_name or email and password")
	ErrUnAuthorized           = errors.New("user not allowed to perform this action")
	ErrNotFound               = errors.New("entity not found")
	ErrEntityAlreadyExist     = errors.New("entity with given key already exist")
	ErrPasswordUnchanged      = errors.New("new password must differ from the current password")
	ErrLockNotAcquired        = errors.New("another request is already updating this resource")
	ErrInterrupted            = errors.New("operation interrupted before it finished")
)

// IsNoRows reports whether err means the query matched nothing.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}

// IsUniqueViolation reports whether err is a unique-key violation,
// optionally restricted to the given constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != CodeUniqueConstraint {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

func HandleDBErrors(
	err error,
	errMsgs map[string]map[string]string,
	contextMessage string,
) error {
	if IsNoRows(err) {
		log.Error(fmt.Sprintf("%s, %v", contextMessage, ErrNotFound))
		return fmt.Errorf("%w, %s", ErrNotFound, contextMessage)
	}

	// check if its a pg error
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		err = fmt.Errorf("%w, %s, %w", ErrInternal, contextMessage, err)
		log.Error(err)
		return err
	}

	switch pgErr.Code {
	case CodeForeignKeyConstraint:
		return handleConstraintError(pgErr, errMsgs[CodeForeignKeyConstraint], ErrInvalidRequest)
	case CodeUniqueConstraint:
		return handleConstraintError(pgErr, errMsgs[CodeUniqueConstraint], ErrEntityAlreadyExist)
	}

	// unknown error
	err = fmt.Errorf("%w, %s, %w", ErrInternal, contextMessage, err)
	log.Error(err)
	return err
}

func handleConstraintError(
	pgErr *pgconn.PgError,
	msgs map[string]string,
	kind error,
) error {
	msg, ok := msgs[pgErr.ConstraintName]
	if !ok {
		log.Warnf(
			"no message registered for constraint %s (code %s)",
			pgErr.ConstraintName,
			pgErr.Code,
		)
		msg = pgErr.Detail
	}
	err := fmt.Errorf("%w, %s", kind, msg)
	log.Error(err)
	return err
}

var knownErrors = []error{
	ErrInternal,
	ErrInvalidRequest,
	ErrInvalidUserCredentials,
	ErrUnAuthorized,
	ErrNotFound,
	ErrEntityAlreadyExist,
	ErrPasswordUnchanged,
	ErrLockNotAcquired,
	ErrInterrupted,
}

// EnsureKnown returns err unchanged when it already wraps one of the errors
// above, otherwise it is wrapped as ErrInternal.
func EnsureKnown(err error, contextMessage string) error {
	if err == nil {
		return nil
	}
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w, %s, %w", ErrInternal, contextMessage, err)
}
