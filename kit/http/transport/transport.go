package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/superj80820/tinyurl/kit/code"
)

func DecodeEmptyRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	return nil, nil
}

func DecodeJsonRequest[T any](ctx context.Context, r *http.Request) (interface{}, error) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody).AddErrorMetaData(err)
	}
	return req, nil
}

// EncodeJsonResponse writes the status of responses implementing httptransport.StatusCoder, 200 otherwise.
func EncodeJsonResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if statusCoder, ok := response.(httptransport.StatusCoder); ok {
		w.WriteHeader(statusCoder.StatusCode())
	}
	return json.NewEncoder(w).Encode(response)
}

func EncodeTextResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := fmt.Fprint(w, response)
	return err
}

func EncodeOKResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	return EncodeTextResponse(ctx, w, "OK")
}
