package http

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/tinyurl/domain"
	httpKit "github.com/superj80820/tinyurl/kit/http"
	"github.com/superj80820/tinyurl/kit/http/transport"
)

type urlShortenRequest struct {
	URL string `json:"url"`
}

type urlShortenResponse struct {
	*domain.URL
}

func (urlShortenResponse) StatusCode() int {
	return http.StatusCreated
}

func MakeURLShortenEndpoint(svc domain.URLUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(urlShortenRequest)
		url, err := svc.Save(ctx, req.URL, httpKit.GetIP(ctx))
		if err != nil {
			return nil, err
		}
		return urlShortenResponse{URL: url}, nil
	}
}

var (
	DecodeURLShortenRequest  = transport.DecodeJsonRequest[urlShortenRequest]
	EncodeURLShortenResponse = transport.EncodeJsonResponse
)
