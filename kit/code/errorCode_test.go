package code

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	errorCodeNotFound := CreateErrorCode(http.StatusNotFound)
	assert.Equal(t, errorCodeNotFound, ParseErrorCode(errorCodeNotFound))
	assert.Equal(t, errorCodeNotFound, ParseErrorCode(errors.Wrap(errorCodeNotFound, "lookup failed")))

	for _, testCase := range []struct {
		message          string
		errString        string
		httpCode         int
		isExistCallStack bool
		errorCode        *errorCode
	}{
		{
			message:          "bad request",
			errString:        `{"code":0,"message":"bad request"}`,
			httpCode:         http.StatusBadRequest,
			isExistCallStack: false,
			errorCode:        CreateErrorCode(http.StatusBadRequest),
		},
		{
			message:          "invalid url",
			errString:        `{"code":3,"message":"invalid url"}`,
			httpCode:         http.StatusBadRequest,
			isExistCallStack: false,
			errorCode:        CreateErrorCode(http.StatusBadRequest).AddCode(InvalidURL),
		},
		{
			message:          "rate limit error. expiry: 3",
			errString:        `{"code":1,"message":"rate limit error. expiry: 3"}`,
			httpCode:         http.StatusTooManyRequests,
			isExistCallStack: false,
			errorCode:        CreateErrorCode(http.StatusTooManyRequests).AddCode(RateLimit, 3),
		},
		{
			message:          "internal error",
			errString:        `{"code":0,"message":"internal error"}`,
			httpCode:         http.StatusInternalServerError,
			isExistCallStack: true,
			errorCode:        ParseErrorCode(errors.New("unknown error")),
		},
		{
			message:          "internal error",
			errString:        `{"code":0,"message":"internal error"}`,
			httpCode:         http.StatusInternalServerError,
			isExistCallStack: false,
			errorCode:        CreateErrorCode(http.StatusTeapot),
		},
	} {
		assert.Equal(t, testCase.message, testCase.errorCode.Message)
		assert.Equal(t, testCase.errString, testCase.errorCode.Error())
		assert.Equal(t, testCase.httpCode, CreateHTTPError(testCase.errorCode).HTTPCode)
		assert.Equal(t, testCase.isExistCallStack, len(testCase.errorCode.CallStack) != 0)
	}
}

func TestUnwrapOriginError(t *testing.T) {
	originErr := errors.New("origin")
	errorCode := CreateErrorCode(http.StatusNotFound).AddErrorMetaData(originErr)

	assert.ErrorIs(t, errorCode, originErr)
}

type createdResponse struct{}

func (createdResponse) StatusCode() int {
	return http.StatusCreated
}

func TestParseResponseSuccessCode(t *testing.T) {
	assert.Equal(t, http.StatusCreated, ParseResponseSuccessCode(createdResponse{}).HTTPCode)
	assert.Equal(t, http.StatusAccepted, ParseResponseSuccessCode(SuccessCode{HTTPCode: http.StatusAccepted}).HTTPCode)
	assert.Equal(t, http.StatusOK, ParseResponseSuccessCode("https://example.com").HTTPCode)
	assert.Equal(t, http.StatusNoContent, ParseResponseSuccessCode(nil).HTTPCode)
}
