package router

import (
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/birdsofspace/spacebirdz-backend/pkg/errorx"
	"github.com/birdsofspace/spacebirdz-backend/pkg/xcontext"
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

		ctx := xcontext.WithHTTPRequest(r.Context(), r)
		ctx = xcontext.WithDB(ctx, router.db)
		ctx = xcontext.WithConfigs(ctx, router.cfg)
		ctx = xcontext.WithLogger(ctx, router.logger)

		defer func() {
			for _, closer := range router.closers {
				closer(ctx)
			}
		}()

		var err error
		for _, before := range router.befores {
			if ctx, err = before(ctx); err != nil {
				writeResponse(ctx, w, nil, err)
				return
			}
		}

		var req Request
		switch method {
		case http.MethodGet:
			err = bindQuery(r, &req)
		case http.MethodPost:
			// An empty body is a valid encoding of a request without fields.
			if err = json.NewDecoder(r.Body).Decode(&req); err == io.EOF {
				err = nil
			}
		}
		if err != nil {
			writeResponse(ctx, w, nil, errorx.New(errorx.BadRequest, "Cannot bind the request"))
			return
		}

		resp, err := handler(ctx, &req)
		writeResponse(ctx, w, resp, err)
	}
}

// bindQuery fills req from URL query parameters using json field tags. Only
// the scalar kinds appearing in request models are supported.
func bindQuery(r *http.Request, req any) error {
	v := reflect.ValueOf(req).Elem()
	for i := 0; i < v.NumField(); i++ {
		name := v.Type().Field(i).Tag.Get("json")
		queryVal := r.URL.Query().Get(name)
		if queryVal == "" {
			continue
		}

		switch v.Field(i).Kind() {
		case reflect.String:
			v.Field(i).SetString(queryVal)

		case reflect.Int, reflect.Int64:
			val, err := strconv.ParseInt(queryVal, 10, 64)
			if err != nil {
				return err
			}
			v.Field(i).SetInt(val)

		case reflect.Uint64:
			val, err := strconv.ParseUint(queryVal, 10, 64)
			if err != nil {
				return err
			}
			v.Field(i).SetUint(val)

		case reflect.Bool:
			val, err := strconv.ParseBool(queryVal)
			if err != nil {
				return err
			}
			v.Field(i).SetBool(val)
		}
	}

	return nil
}
