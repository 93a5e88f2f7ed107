package code

import httpPKG "net/http"

type SuccessCode struct {
	HTTPCode int
}

func (s SuccessCode) StatusCode() int {
	return s.HTTPCode
}

// ParseResponseSuccessCode resolves the status a successful response is written with,
// responses may carry their own through a StatusCode method.
func ParseResponseSuccessCode(res interface{}) *SuccessCode {
	switch successCode := res.(type) {
	case interface{ StatusCode() int }:
		return &SuccessCode{HTTPCode: successCode.StatusCode()}
	case nil:
		return &SuccessCode{HTTPCode: httpPKG.StatusNoContent}
	}
	return &SuccessCode{HTTPCode: httpPKG.StatusOK}
}
