package ginx

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// isXMLRequest 请求体是否为 XML
func isXMLRequest(ctx *gin.Context) bool {
	contentType := ctx.GetHeader("Content-Type")
	return strings.Contains(contentType, "application/xml") ||
		strings.Contains(contentType, "text/xml")
}

func hasBody(ctx *gin.Context) bool {
	body := ctx.Request.Body
	return body != nil && body != http.NoBody && ctx.Request.ContentLength != 0
}

// bindArgs 绑定请求参数到 args
// 有请求体时按 Content-Type 解码 XML 或 JSON，解码失败直接返回错误，
// 之后再补充 URI 和 Query 中的字段；没有请求体时依次尝试 URI、Query、Form
func bindArgs(ctx *gin.Context, args any) error {
	format := "json"
	if isXMLRequest(ctx) {
		format = "xml"
	}
	setResponseFormat(ctx, format)

	if hasBody(ctx) {
		var err error
		if format == "xml" {
			err = ctx.ShouldBindXML(args)
		} else {
			err = ctx.ShouldBindJSON(args)
		}
		if err != nil {
			return err
		}
		_ = ctx.ShouldBindUri(args)
		_ = ctx.ShouldBindQuery(args)
		return nil
	}

	if err := ctx.ShouldBindUri(args); err == nil {
		_ = ctx.ShouldBindQuery(args)
		return nil
	}
	if err := ctx.ShouldBindQuery(args); err == nil {
		return nil
	}
	return ctx.ShouldBind(args)
}
