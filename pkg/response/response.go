package response

import (
	"bytes"
	"errors"
	"net/http"
	"sync"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/blog-service/internal/constants"
	"github.com/benedict-erwin/blog-service/pkg/validation"
)

// Buffer pool for JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return &bytes.Buffer{}
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// putBuffer returns buffer to pool (only if not too large)
func putBuffer(buf *bytes.Buffer) {
	const maxBufferSize = 64 * 1024
	if buf.Cap() < maxBufferSize {
		bufferPool.Put(buf)
	}
}

// JSON writes obj with the given status through the pooled encoder
func JSON(c echo.Context, code int, obj interface{}) error {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(obj); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c.Response().WriteHeader(code)
	_, err := c.Response().Write(buf.Bytes())
	return err
}

// OK writes obj with status 200
func OK(c echo.Context, obj interface{}) error {
	return JSON(c, http.StatusOK, obj)
}

// ErrorBody is the body of every non-validation error
type ErrorBody struct {
	Detail any `json:"detail"`
}

// Detail writes {"detail": message} with the given status
func Detail(c echo.Context, httpStatus int, message string) error {
	return JSON(c, httpStatus, ErrorBody{Detail: message})
}

// FailWithCode returns an error response using standardized error code
func FailWithCode(c echo.Context, code int) error {
	return Detail(c, constants.GetHTTPStatusFromCode(code), constants.GetErrorMessage(code))
}

// FailWithCodeAndMessage returns an error response with custom message
func FailWithCodeAndMessage(c echo.Context, code int, customMessage string) error {
	return Detail(c, constants.GetHTTPStatusFromCode(code), customMessage)
}

// ValidationFailed writes 422 with the collected detail list
func ValidationFailed(c echo.Context, err error) error {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return FailWithCodeAndMessage(c, constants.CodeUnprocessable, err.Error())
	}
	return JSON(c, http.StatusUnprocessableEntity, ErrorBody{Detail: verr.Details})
}

// Response is the envelope used by operational endpoints
type Response struct {
	Success   bool   `json:"success"`
	Code      int    `json:"code"`
	Data      any    `json:"data"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// Success returns a successful envelope with data
func Success(c echo.Context, data any) error {
	return JSON(c, http.StatusOK, Response{
		Success:   true,
		Code:      constants.CodeSuccess,
		Data:      data,
		Message:   "Successful",
		RequestID: constants.GetRequestID(c),
	})
}

// General returns a customizable envelope
func General(c echo.Context, httpStatus int, code int, data any, message string) error {
	return JSON(c, httpStatus, Response{
		Success:   httpStatus < 400,
		Code:      code,
		Data:      data,
		Message:   message,
		RequestID: constants.GetRequestID(c),
	})
}
