package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/veleo-lab/backend/pkg/errorx"
	"github.com/veleo-lab/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx := xcontext.WithHTTPRequest(router.baseCtx, r)

		resp, err := func() (*Response, error) {
			for _, m := range router.befores {
				var err error
				if ctx, err = m(ctx); err != nil {
					return nil, err
				}
			}

			var req Request
			if err := bindRequest(r, method, &req); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
				return nil, errorx.New(errorx.BadRequest, "Invalid request")
			}

			resp, err := handler(ctx, &req)
			if err != nil {
				return nil, err
			}

			for _, m := range router.afters {
				var err error
				if ctx, err = m(ctx); err != nil {
					return nil, err
				}
			}

			return resp, nil
		}()

		if err != nil {
			ctx = withError(ctx, err)
			writeJSON(ctx, w, newErrorResponse(err))
		} else {
			ctx = withResponse(ctx, resp)
			writeJSON(ctx, w, newResponse(resp))
		}

		for _, closer := range router.closers {
			closer(ctx)
		}
	}
}

// bindRequest fills req from the query string for GET and from the JSON body
// otherwise.
func bindRequest(r *http.Request, method string, req any) error {
	if method != http.MethodGet {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return err
		}

		if len(b) == 0 {
			return nil
		}

		return json.Unmarshal(b, req)
	}

	v := reflect.ValueOf(req).Elem()
	for i := 0; i < v.NumField(); i++ {
		name := v.Type().Field(i).Tag.Get("json")
		queryVal := r.URL.Query().Get(name)
		if queryVal == "" {
			continue
		}

		pointer := v.Field(i).Addr().Interface()
		switch v.Field(i).Kind() {
		case reflect.String:
			*pointer.(*string) = queryVal

		case reflect.Int:
			val, err := strconv.Atoi(queryVal)
			if err != nil {
				return err
			}
			*pointer.(*int) = val

		case reflect.Bool:
			val, err := strconv.ParseBool(queryVal)
			if err != nil {
				return err
			}
			*pointer.(*bool) = val
		}
	}

	return nil
}

type (
	errorKey    struct{}
	responseKey struct{}
)

func withError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, errorKey{}, err)
}

// Error returns the error of the current request, if any. Only meaningful in
// closers.
func Error(ctx context.Context) error {
	if err := ctx.Value(errorKey{}); err != nil {
		return err.(error)
	}

	return nil
}

func withResponse(ctx context.Context, resp any) context.Context {
	return context.WithValue(ctx, responseKey{}, resp)
}

// Response returns the response object of the current request. Only
// meaningful in closers.
func Response(ctx context.Context) any {
	return ctx.Value(responseKey{})
}
