package utils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type ErrorKind int

const (
	KindStorage ErrorKind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindForbidden
	KindUnauthorized
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	case KindStorage:
		return "storage"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	case KindForbidden:
		return fiber.StatusForbidden
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}

// AppError adalah error yang dikembalikan service ke controller.
// Message aman ditampilkan ke client; Err hanya untuk log.
type AppError struct {
	Kind    ErrorKind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func Validation(msg string) *AppError {
	return &AppError{Kind: KindValidation, Message: msg}
}

func ValidationFields(msg string, fields map[string]string) *AppError {
	return &AppError{Kind: KindValidation, Message: msg, Fields: fields}
}

func NotFound(msg string) *AppError {
	return &AppError{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *AppError {
	return &AppError{Kind: KindConflict, Message: msg}
}

func Forbidden(msg string) *AppError {
	return &AppError{Kind: KindForbidden, Message: msg}
}

func Unauthorized(msg string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: msg}
}

func Storage(err error) *AppError {
	return &AppError{Kind: KindStorage, Message: "Terjadi kesalahan pada server", Err: err}
}

// KindOf returns KindStorage for errors that are not an *AppError.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

const pgUniqueViolation = "23505"

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// FromDB menerjemahkan error gorm/driver ke AppError.
// notFound dipakai sebagai pesan kalau record tidak ditemukan.
func FromDB(err error, notFound string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &AppError{Kind: KindNotFound, Message: notFound, Err: err}
	case isDuplicateKey(err):
		return &AppError{Kind: KindConflict, Message: "Data sudah ada", Err: err}
	}
	return Storage(err)
}
