package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/apperr"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldMessages holds client messages keyed by "<request type>.<json field>",
// or "<request type>.<json field>.<tag>" when one tag needs its own message.
var fieldMessages = map[string]string{
	"createProductRequest.name":        "Name must be a non-empty string",
	"createProductRequest.price":       "Price must be a non-negative number",
	"createProductRequest.category_id": "Category ID must be a valid id",
	"updateProductRequest.name":        "Name must be a non-empty string",
	"updateProductRequest.price":       "Price must be a non-negative number",
	"updateProductRequest.category_id": "Category ID must be a valid id",
	"categoryRequest.name":             "Invalid category name. It must be a string of at least 3 characters.",
	"cartItemRequest.productId":        "Product ID must be a valid id",
	"cartItemRequest.quantity":         "Quantity must be a positive integer",
	"cartItemRequest.quantity.max":     fmt.Sprintf("Quantity of a product in the cart cannot exceed %d.", cart.MaxQuantity),
}

// decodeJSON reads the body into dst and validates its struct tags.
// Malformed JSON and malformed ids are Invalid (400); everything else
// that fails a tag is Validation (422).
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Invalid("Invalid request body.")
	}
	if err := validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Internal("Something went wrong, please try again.", err)
	}

	fe := verrs[0]
	msg, ok := fieldMessages[fe.Namespace()+"."+fe.Tag()]
	if !ok {
		msg, ok = fieldMessages[fe.Namespace()]
	}
	if !ok {
		msg = fmt.Sprintf("Invalid value for %s", fe.Field())
	}
	if fe.Tag() == "uuid" {
		return apperr.Invalid(msg)
	}
	return apperr.Validation(msg)
}

// pathID returns the named URL parameter after checking it is a uuid.
func pathID(r *http.Request, param, label string) (string, error) {
	id := chi.URLParam(r, param)
	if err := validate.Var(id, "required,uuid"); err != nil {
		return "", apperr.Invalid(label + " must be a valid id")
	}
	return id, nil
}
