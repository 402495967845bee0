package api

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"

	"github.com/enqueter/backend/pkg/errorx"
	"github.com/enqueter/backend/pkg/xcontext"
)

func register[Request, Response any](
	router *Router, method, pattern string, handler HandlerFunc[Request, Response],
) {
	befores := make([]MiddlewareFunc, len(router.befores))
	copy(befores, router.befores)

	router.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method != method {
			writeJson(router.baseCtx, w,
				newErrorResponse(errorx.New(errorx.NotFound, "Not found route %s %s", r.Method, r.URL.Path)))
			return
		}

		ctx := router.baseCtx
		for _, middleware := range befores {
			var err error
			if ctx, err = middleware(ctx, r); err != nil {
				writeJson(router.baseCtx, w, newErrorResponse(err))
				return
			}
		}

		var req Request
		if err := decodeRequest(r, &req); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot decode request: %v", err)
			writeJson(ctx, w, newErrorResponse(errorx.New(errorx.BadRequest, "Cannot decode the request")))
			return
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			writeJson(ctx, w, newErrorResponse(err))
			return
		}

		writeJson(ctx, w, newResponse(resp))
	})
}

// decodeRequest fills the request struct from the url query for read methods
// and from the json body otherwise. Query decoding only needs the flat
// string and int fields that request structs use.
func decodeRequest(r *http.Request, req any) error {
	switch r.Method {
	case http.MethodGet, http.MethodDelete:
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

			case reflect.Int:
				val, err := strconv.Atoi(queryVal)
				if err != nil {
					return err
				}

				v.Field(i).SetInt(int64(val))
			}
		}

		return nil

	default:
		if r.Body == nil || r.ContentLength == 0 {
			return nil
		}

		return json.NewDecoder(r.Body).Decode(req)
	}
}
