package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestFromDB(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind ErrorKind
	}{
		{"record not found", gorm.ErrRecordNotFound, KindNotFound},
		{"wrapped not found", fmt.Errorf("find: %w", gorm.ErrRecordNotFound), KindNotFound},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, KindConflict},
		{"postgres unique violation", &pgconn.PgError{Code: "23505"}, KindConflict},
		{"other postgres error", &pgconn.PgError{Code: "40001"}, KindStorage},
		{"app error passes through", Validation("x"), KindValidation},
		{"anything else", errors.New("boom"), KindStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromDB(tt.err, "Laptop tidak ditemukan")
			assert.Equal(t, tt.kind, KindOf(err))
		})
	}

	assert.NoError(t, FromDB(nil, ""))
}

func TestFromDBKeepsCause(t *testing.T) {
	err := FromDB(gorm.ErrRecordNotFound, "Sesi QC tidak ditemukan")

	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Sesi QC tidak ditemukan", appErr.Message)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestErrorKindStatus(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, KindValidation.HTTPStatus())
	assert.Equal(t, fiber.StatusNotFound, KindNotFound.HTTPStatus())
	assert.Equal(t, fiber.StatusConflict, KindConflict.HTTPStatus())
	assert.Equal(t, fiber.StatusForbidden, KindForbidden.HTTPStatus())
	assert.Equal(t, fiber.StatusUnauthorized, KindUnauthorized.HTTPStatus())
	assert.Equal(t, fiber.StatusInternalServerError, KindStorage.HTTPStatus())
}

func TestValidateStruct(t *testing.T) {
	type payload struct {
		Username string `validate:"required"`
		Password string `validate:"required,min=6"`
	}

	err := ValidateStruct(payload{Username: "", Password: "123"})
	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, KindValidation, appErr.Kind)
	assert.Equal(t, map[string]string{"username": "required", "password": "min"}, appErr.Fields)

	assert.NoError(t, ValidateStruct(payload{Username: "staff", Password: "staff123"}))
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	type payload struct {
		FullName string `json:"full_name" validate:"required"`
		Email    string `json:"email,omitempty" validate:"omitempty,email"`
		Internal string `json:"-" validate:"required"`
	}

	err := ValidateStruct(payload{Email: "bukan-email"})
	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, map[string]string{"full_name": "required", "email": "email", "internal": "required"}, appErr.Fields)
}
