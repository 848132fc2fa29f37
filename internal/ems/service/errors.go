package service

import (
	"errors"
	"fmt"

	"github.com/jimyag/ems/pkg/apierror"
	"gorm.io/gorm"
)

// storageError 将存储层错误归类
// 记录不存在为 NotFound，违反唯一约束为 ValidationFailure
// 已经是 apierror 的原样返回，其余为 PersistenceFailure
func storageError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if apiErr, ok := apierror.As(err); ok {
		return apiErr
	}
	msg := fmt.Sprintf(format, args...)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NotFound(err, "%s: not found", msg)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apierror.WrapError(apierror.ErrValidationFailure, msg+": already exists", err)
	}
	return apierror.Persistence(err, "%s", msg)
}

// internalError 包装转换等内部错误
func internalError(err error, msg string) error {
	return apierror.WrapError(apierror.ErrInternalError, msg, err)
}
