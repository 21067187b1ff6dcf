package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
	customError "github.com/segyhp/growvest-engine/pkg/errors"
	"github.com/segyhp/growvest-engine/pkg/response"
	"github.com/shopspring/decimal"
)

// newValidator returns a validator that understands decimal amounts.
// Decimals are validated through their string form so decimal_gt and
// decimal_gte can compare exactly. money rejects sub-cent amounts.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("decimal_gt", func(fl validator.FieldLevel) bool {
		value, bound, ok := decimalParam(fl)
		return ok && value.GreaterThan(bound)
	})
	_ = v.RegisterValidation("decimal_gte", func(fl validator.FieldLevel) bool {
		value, bound, ok := decimalParam(fl)
		return ok && value.GreaterThanOrEqual(bound)
	})

	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		value, err := decimal.NewFromString(fl.Field().String())
		return err == nil && value.Equal(value.Truncate(2))
	})

	return v
}

func decimalParam(fl validator.FieldLevel) (decimal.Decimal, decimal.Decimal, bool) {
	value, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return decimal.Zero, decimal.Zero, false
	}
	bound, err := decimal.NewFromString(fl.Param())
	if err != nil {
		return decimal.Zero, decimal.Zero, false
	}
	return value, bound, true
}

// decodeAndValidate reads a JSON body into dst and validates it.
// It writes the 400 response itself and reports false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.Validate, dst interface{}, allowEmpty bool) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if !(allowEmpty && errors.Is(err, io.EOF)) {
			response.BadRequest(w, "Invalid request body", err)
			return false
		}
	}

	return validate(w, v, dst)
}

func validate(w http.ResponseWriter, v *validator.Validate, dst interface{}) bool {
	if err := v.Struct(dst); err != nil {
		response.ErrorWithCode(w, http.StatusBadRequest, customError.ErrCodeValidation, "Validation failed", err)
		return false
	}
	return true
}
