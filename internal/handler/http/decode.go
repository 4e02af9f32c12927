package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"ecommerce-api/internal/apperror"
	"ecommerce-api/internal/service"
)

// maxBodyBytes caps POST payloads.
const maxBodyBytes = 1 << 20

var (
	productKeys = jsonKeys(reflect.TypeOf(service.ProductInput{}))
	variantKeys = jsonKeys(reflect.TypeOf(service.VariantInput{}))
)

// decodeProductInput rejects a missing body, a non-object body and an
// object with no keys before anything reaches the service. Members whose
// name is not an exact match for a schema field are dropped, so "NAME"
// does not stand in for "name".
func decodeProductInput(r *http.Request) (service.ProductInput, error) {
	var input service.ProductInput
	if r.Body == nil {
		return input, apperror.Validation(msgEmptyBody)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return input, apperror.Validation(msgBadPayload)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return input, apperror.Validation(msgEmptyBody)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return input, apperror.Validation(msgBadPayload)
	}
	if len(fields) == 0 {
		return input, apperror.Validation(msgEmptyBody)
	}

	fields = keepKeys(fields, productKeys)
	if raw, ok := fields["variants"]; ok {
		fields["variants"] = filterVariants(raw)
	}

	strict, err := json.Marshal(fields)
	if err != nil {
		return input, apperror.Validation(msgBadPayload)
	}
	if err := json.Unmarshal(strict, &input); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return input, apperror.Validation("Product validation failed: " + typeErr.Field + ": has the wrong type")
		}
		return input, apperror.Validation(msgBadPayload)
	}
	return input, nil
}

func keepKeys(fields map[string]json.RawMessage, allowed map[string]bool) map[string]json.RawMessage {
	kept := make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		if allowed[k] {
			kept[k] = v
		}
	}
	return kept
}

// filterVariants applies keepKeys to every object in a variants array.
// Anything that is not an array of objects is returned untouched so the
// typed decode can report it.
func filterVariants(raw json.RawMessage) json.RawMessage {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return raw
	}
	for i, item := range items {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err != nil || obj == nil {
			continue
		}
		if b, err := json.Marshal(keepKeys(obj, variantKeys)); err == nil {
			items[i] = b
		}
	}
	out, err := json.Marshal(items)
	if err != nil {
		return raw
	}
	return out
}

// jsonKeys lists the exact json names of a struct's fields.
func jsonKeys(t reflect.Type) map[string]bool {
	keys := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		if name != "" && name != "-" {
			keys[name] = true
		}
	}
	return keys
}
