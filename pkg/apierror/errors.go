package apierror

import (
	"fmt"
	"net/http"
)

// 预定义的业务错误
// 使用 WrapError 附加具体消息和原始错误，使用 errors.Is 判断类别
var (
	// ErrNotFound 关联、标签或被引用的实体不存在
	ErrNotFound = &Error{
		Code:       "NotFound",
		Message:    "The requested resource does not exist.",
		HTTPStatus: http.StatusNotFound,
	}

	// ErrValidationFailure 请求参数不合法
	ErrValidationFailure = &Error{
		Code:       "ValidationFailure",
		Message:    "The request failed validation.",
		HTTPStatus: http.StatusBadRequest,
	}

	// ErrUnknownTaggableType 未注册的实体类型
	ErrUnknownTaggableType = &Error{
		Code:       "ValidationFailure.UnknownTaggableType",
		Message:    "The taggable type is not registered.",
		HTTPStatus: http.StatusBadRequest,
	}

	// ErrPersistenceFailure 存储层操作失败，不做重试
	ErrPersistenceFailure = &Error{
		Code:       "PersistenceFailure",
		Message:    "The storage operation failed.",
		HTTPStatus: http.StatusInternalServerError,
	}

	// ErrInternalError 其他内部错误
	ErrInternalError = &Error{
		Code:       "InternalError",
		Message:    "An internal error has occurred.",
		HTTPStatus: http.StatusInternalServerError,
	}
)

// NotFound 返回带资源描述的 ErrNotFound
func NotFound(raw error, format string, args ...any) *Error {
	return WrapError(ErrNotFound, fmt.Sprintf(format, args...), raw)
}

// Validation 返回带描述的 ErrValidationFailure
func Validation(format string, args ...any) *Error {
	return WrapError(ErrValidationFailure, fmt.Sprintf(format, args...), nil)
}

// Persistence 包装存储层错误
func Persistence(raw error, format string, args ...any) *Error {
	return WrapError(ErrPersistenceFailure, fmt.Sprintf(format, args...), raw)
}
