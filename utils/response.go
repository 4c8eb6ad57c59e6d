package utils

import (
	"errors"
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, status int, message string, data interface{}) error {
	body := fiber.Map{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

// SuccessPage menambahkan blok pagination ke response list.
func SuccessPage(c *fiber.Ctx, message string, data interface{}, page Pagination) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"message":    message,
		"data":       data,
		"pagination": page,
	})
}

// Error menulis response untuk err. Error storage di-log, client hanya
// menerima pesan generik.
func Error(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"success": false, "message": fe.Message})
		}
		appErr = Storage(err)
	}

	if appErr.Kind == KindStorage {
		log.Printf("ERROR %s %s: %v", c.Method(), c.Path(), appErr.Err)
	}

	body := fiber.Map{
		"success": false,
		"message": appErr.Message,
	}
	if len(appErr.Fields) > 0 {
		body["errors"] = appErr.Fields
	}
	return c.Status(appErr.Kind.HTTPStatus()).JSON(body)
}

var validate = newValidator()

// newValidator memakai nama json sebagai nama field di pesan error.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateStruct menjalankan tag `validate` dan mengembalikan AppError dengan
// map field -> tag yang gagal.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Validation(err.Error())
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = fe.Tag()
	}
	return ValidationFields("Validasi gagal", fields)
}
