// Package apierror 提供统一的 API 错误类型，用于所有服务的错误处理
//
// 错误响应支持 XML 和 JSON 两种格式：
//
//	JSON 格式：
//	{
//	    "errors": [
//	        {
//	            "code": "NotFound",
//	            "message": "taggable 42 does not exist"
//	        }
//	    ],
//	    "requestID": "ea966190-f9aa-478e-9ede-example"
//	}
//
// 预定义的错误类别：
//
//   - ErrNotFound: 关联、标签或实体不存在（404）
//   - ErrValidationFailure: 参数不合法（400）
//   - ErrUnknownTaggableType: 未注册的实体类型（400）
//   - ErrPersistenceFailure: 存储失败，不重试（500）
//   - ErrInternalError: 其他内部错误（500）
//
// 使用示例：
//
//	if errors.Is(err, gorm.ErrRecordNotFound) {
//	    return apierror.NotFound(err, "taggable %d does not exist", id)
//	}
//	return apierror.Persistence(err, "failed to load taggable %d", id)
//
//	// 调用方判断类别
//	errors.Is(err, apierror.ErrNotFound)
package apierror
