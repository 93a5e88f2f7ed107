package http

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/gorilla/mux"
	"github.com/superj80820/tinyurl/domain"
	"github.com/superj80820/tinyurl/kit/http/transport"
)

type urlGetRequest struct {
	ShortURL string
}

func MakeURLGetEndpoint(svc domain.URLUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(urlGetRequest)
		baseURL, err := svc.Get(ctx, req.ShortURL)
		if err != nil {
			return nil, err
		}
		return baseURL, nil
	}
}

// DecodeURLGetRequest reads the token path variable, which may be empty.
func DecodeURLGetRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	return urlGetRequest{ShortURL: mux.Vars(r)["token"]}, nil
}

var EncodeURLGetResponse = transport.EncodeTextResponse
