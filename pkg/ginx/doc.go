// Package ginx 提供 gin 框架的 handler 适配器，负责参数绑定、校验和响应渲染
//
// 请求和响应格式：
//   - 默认使用 JSON
//   - Content-Type 包含 "application/xml" 或 "text/xml" 时按 XML 解析请求，响应也使用 XML
//
// 错误响应：
//   - 错误链中有 *apierror.Error 时，使用它的 HTTPStatus，响应体为 apierror.ErrorResponse
//   - 每个错误响应都带 requestID，取自 X-Request-ID 请求头，没有时生成 UUID
//
// 支持的 handler 签名：
//
//	func(c *gin.Context, args *Args) (resp, error) // Adapt5
//	func(c *gin.Context, args *Args) error         // Adapt4
//	func(c *gin.Context) (resp, error)             // Adapt3
//	func(c *gin.Context) resp                      // Adapt2
//
// 参数绑定失败返回 400 ValidationFailure；参数类型实现 IsValid() error 时，
// 绑定后会先调用它，失败同样返回 400。
//
//	router.POST("/api/describe-tags", ginx.Adapt5(func(c *gin.Context, req *entity.DescribeTagsRequest) (*entity.DescribeTagsResponse, error) {
//	    return svc.DescribeTags(c, req)
//	}))
package ginx
