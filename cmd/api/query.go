package main

import (
	"fmt"
	"net/http"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap"
)

// queryParams copies the first value of every URL query parameter.
func queryParams(r *http.Request) siciap.Params {
	params := siciap.Params{}
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

// runQuery serializes a named console query and asserts its result type.
func runQuery[T any](app *application, r *http.Request, name string, params siciap.Params) (T, error) {
	var zero T

	app.mu.Lock()
	defer app.mu.Unlock()

	out, err := app.console.Query(r.Context(), name, params)
	if err != nil {
		return zero, err
	}
	v, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("query %s returned %T", name, out)
	}
	return v, nil
}
