// Package schema validates incoming item documents before they are stored.
package schema

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/stevemurr/simple-items-server/model"
)

// Messages returned to clients, one per field, in check order.
const (
	MsgName  = "Name is required"
	MsgPrice = "Price must be a number"
	MsgSize  = "Size must be one of 'small', 'medium', or 'large'"
)

// candidate mirrors a decoded request body. Fields are left untyped so that
// wrong JSON types surface as validation failures instead of decode failures.
type candidate struct {
	Name  any `json:"name" validate:"required,json_string"`
	Price any `json:"price" validate:"json_number"`
	Size  any `json:"size" validate:"item_size"`
}

var fieldMessages = map[string]string{
	"name":  MsgName,
	"price": MsgPrice,
	"size":  MsgSize,
}

// ValidationError reports the first field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("json_string", validateJSONString); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("json_number", validateJSONNumber); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("item_size", validateItemSize); err != nil {
		panic(err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks a decoded document and returns its typed fields.
// Fields other than name, price and size are ignored, including any id.
// On failure the error is a *ValidationError for the first offending field,
// checked in the order name, price, size.
func Validate(doc map[string]any) (model.Fields, error) {
	c := candidate{
		Name:  doc["name"],
		Price: doc["price"],
		Size:  doc["size"],
	}

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0].Field()
			return model.Fields{}, &ValidationError{Field: field, Message: fieldMessages[field]}
		}
		return model.Fields{}, err
	}

	return model.Fields{
		Name:  c.Name.(string),
		Price: toFloat(c.Price),
		Size:  model.Size(c.Size.(string)),
	}, nil
}

// required only rejects a nil interface, so emptiness is checked here.
func validateJSONString(fl validator.FieldLevel) bool {
	return fl.Field().Kind() == reflect.String && fl.Field().Len() > 0
}

// JSON numbers decode to float64 when the target is untyped; integer kinds
// are accepted for documents built in Go.
func validateJSONNumber(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func toFloat(v any) float64 {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	}
	return 0
}

func validateItemSize(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	v := model.Size(fl.Field().String())
	for _, s := range model.Sizes {
		if v == s {
			return true
		}
	}
	return false
}
