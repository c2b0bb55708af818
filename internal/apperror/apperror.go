// File: internal/apperror/apperror.go
package apperror

import (
	"errors"
	"net/http"

	"talent-tracker/internal/dto"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Kind 錯誤分類，對應 HTTP 狀態碼
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindForbidden
	KindValidation
	KindConflict
	KindNotFound
	KindInvalidCredentials
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindInvalidCredentials:
		return "invalid_credentials"
	default:
		return "internal"
	}
}

// Status 對應的 HTTP 狀態碼
func (k Kind) Status() int {
	switch k {
	case KindUnauthenticated, KindInvalidCredentials:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

const internalMessage = "Server error"

// ContextKindKey Respond 將錯誤分類存入 echo.Context，供 metrics 區分失敗原因
const ContextKindKey = "error_kind"

// Error 帶分類的應用層錯誤；Message 會回傳給用戶端，Err 只寫入日誌
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Unauthenticated(message string) *Error { return New(KindUnauthenticated, message) }

func Forbidden(message string) *Error { return New(KindForbidden, message) }

func Validation(message string) *Error { return New(KindValidation, message) }

func Conflict(message string) *Error { return New(KindConflict, message) }

func NotFound(message string) *Error { return New(KindNotFound, message) }

func InvalidCredentials(message string) *Error { return New(KindInvalidCredentials, message) }

// Internal 包裝後端錯誤，用戶端只會看到通用訊息
func Internal(err error) *Error { return Wrap(KindInternal, internalMessage, err) }

// KindOf 取得錯誤分類，非 *Error 一律視為 Internal
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Respond 將錯誤轉成 dto.HTTPError 回應
func Respond(c echo.Context, log *zap.Logger, err error) error {
	if log == nil {
		log = zap.NewNop()
	}

	var ae *Error
	if !errors.As(err, &ae) {
		ae = Internal(err)
	}

	c.Set(ContextKindKey, ae.Kind)
	fields := []zap.Field{
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.String("kind", ae.Kind.String()),
	}
	if ae.Kind == KindInternal {
		log.Error("request failed", append(fields, zap.Error(err))...)
		return c.JSON(ae.Kind.Status(), dto.HTTPError{Message: internalMessage})
	}

	log.Debug("request rejected", append(fields, zap.String("message", ae.Message))...)
	return c.JSON(ae.Kind.Status(), dto.HTTPError{Message: ae.Message})
}
