package ginx

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/ems/pkg/apierror"
)

// Adapt2 适配无参数、只有返回值的 handler
func Adapt2[T any](fn func(*gin.Context) T) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		renderResponse(ctx, fn(ctx))
	}
}

// Adapt3 适配无参数、有返回值和 error 的 handler
func Adapt3[T any](fn func(*gin.Context) (T, error)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, err := fn(ctx)
		if err != nil {
			// 没有请求体，按 JSON 返回
			setResponseFormat(ctx, "json")
			renderError(ctx, http.StatusInternalServerError, err)
			return
		}
		renderResponse(ctx, result)
	}
}

// Adapt4 适配有参数、只有 error 的 handler
func Adapt4[T any](fn func(*gin.Context, *T) error) gin.HandlerFunc {
	argsType := reflect.TypeOf((*T)(nil)).Elem()

	return func(ctx *gin.Context) {
		args, ok := bindAndValidate(ctx, argsType)
		if !ok {
			return
		}

		if err := fn(ctx, args.(*T)); err != nil {
			renderError(ctx, http.StatusInternalServerError, err)
			return
		}
		ctx.Status(http.StatusNoContent)
	}
}

// Adapt5 适配有参数、有返回值和 error 的 handler
func Adapt5[TArgs any, TResp any](fn func(*gin.Context, *TArgs) (TResp, error)) gin.HandlerFunc {
	argsType := reflect.TypeOf((*TArgs)(nil)).Elem()

	return func(ctx *gin.Context) {
		args, ok := bindAndValidate(ctx, argsType)
		if !ok {
			return
		}

		result, err := fn(ctx, args.(*TArgs))
		if err != nil {
			renderError(ctx, http.StatusInternalServerError, err)
			return
		}
		renderResponse(ctx, result)
	}
}

// bindAndValidate 绑定参数并调用 IsValid（如果实现了）
// 绑定失败统一视为 ValidationFailure；失败时已经写入响应，返回 false
func bindAndValidate(ctx *gin.Context, argsType reflect.Type) (any, bool) {
	args := reflect.New(argsType).Interface()

	if err := bindArgs(ctx, args); err != nil {
		renderError(ctx, http.StatusBadRequest,
			apierror.WrapError(apierror.ErrValidationFailure, err.Error(), err))
		return nil, false
	}

	if validator, ok := args.(interface{ IsValid() error }); ok {
		if err := validator.IsValid(); err != nil {
			renderError(ctx, http.StatusBadRequest, err)
			return nil, false
		}
	}
	return args, true
}
