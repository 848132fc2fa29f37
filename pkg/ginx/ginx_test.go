package ginx_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/ems/pkg/apierror"
	"github.com/jimyag/ems/pkg/ginx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createArgs struct {
	Name string `json:"name" xml:"name" binding:"required"`
}

type createResp struct {
	Name string `json:"name" xml:"name"`
}

type validatedArgs struct {
	Weight float64 `json:"weight"`
}

func (a *validatedArgs) IsValid() error {
	if a.Weight < 0 {
		return apierror.Validation("weight must not be negative")
	}
	return nil
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doRequest(router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	router.ServeHTTP(w, req)
	return w
}

func decodeErrorResponse(t *testing.T, w *httptest.ResponseRecorder) apierror.ErrorResponse {
	t.Helper()
	var resp apierror.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAdapt5(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name       string
		handler    func(*gin.Context, *createArgs) (*createResp, error)
		body       string
		headers    map[string]string
		wantStatus int
		check      func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "json binding",
			handler: func(_ *gin.Context, args *createArgs) (*createResp, error) {
				return &createResp{Name: args.Name}, nil
			},
			body:       `{"name":"renewable"}`,
			headers:    map[string]string{"Content-Type": "application/json"},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp createResp
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "renewable", resp.Name)
			},
		},
		{
			name: "xml binding answers in xml",
			handler: func(_ *gin.Context, args *createArgs) (*createResp, error) {
				return &createResp{Name: args.Name}, nil
			},
			body:       `<createArgs><name>solar</name></createArgs>`,
			headers:    map[string]string{"Content-Type": "application/xml"},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Contains(t, w.Header().Get("Content-Type"), "xml")
				assert.Contains(t, w.Body.String(), "<name>solar</name>")
			},
		},
		{
			name: "missing required field",
			handler: func(*gin.Context, *createArgs) (*createResp, error) {
				return nil, errors.New("handler must not be called")
			},
			body:       `{}`,
			headers:    map[string]string{"Content-Type": "application/json"},
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decodeErrorResponse(t, w)
				require.Len(t, resp.Errors, 1)
				assert.Equal(t, "ValidationFailure", resp.Errors[0].Code)
			},
		},
		{
			name: "api error keeps its status",
			handler: func(*gin.Context, *createArgs) (*createResp, error) {
				return nil, apierror.NotFound(nil, "tag 42 does not exist")
			},
			body:       `{"name":"x"}`,
			headers:    map[string]string{"Content-Type": "application/json"},
			wantStatus: http.StatusNotFound,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decodeErrorResponse(t, w)
				require.Len(t, resp.Errors, 1)
				assert.Equal(t, "NotFound", resp.Errors[0].Code)
				assert.Equal(t, "tag 42 does not exist", resp.Errors[0].Message)
				assert.NotEmpty(t, resp.RequestID)
			},
		},
		{
			name: "wrapped api error is unwrapped",
			handler: func(*gin.Context, *createArgs) (*createResp, error) {
				return nil, fmt.Errorf("describe: %w", apierror.Validation("bad filter"))
			},
			body:       `{"name":"x"}`,
			headers:    map[string]string{"Content-Type": "application/json"},
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decodeErrorResponse(t, w)
				require.Len(t, resp.Errors, 1)
				assert.Equal(t, "ValidationFailure", resp.Errors[0].Code)
			},
		},
		{
			name: "plain error is a 500",
			handler: func(*gin.Context, *createArgs) (*createResp, error) {
				return nil, errors.New("boom")
			},
			body:       `{"name":"x"}`,
			headers:    map[string]string{"Content-Type": "application/json", ginx.RequestIDHeader: "req-1"},
			wantStatus: http.StatusInternalServerError,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var body map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, "boom", body["error"])
				assert.Equal(t, "req-1", body["requestID"])
				assert.Equal(t, "req-1", w.Header().Get(ginx.RequestIDHeader))
			},
		},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router := newRouter()
			router.POST("/test", ginx.Adapt5(tc.handler))

			w := doRequest(router, http.MethodPost, "/test", tc.body, tc.headers)
			assert.Equal(t, tc.wantStatus, w.Code, w.Body.String())
			if tc.check != nil {
				tc.check(t, w)
			}
		})
	}
}

func TestAdapt5_URIAndQueryBinding(t *testing.T) {
	t.Parallel()

	type args struct {
		ID    int64  `uri:"id"`
		Order string `form:"order"`
	}

	router := newRouter()
	router.GET("/items/:id", ginx.Adapt5(func(_ *gin.Context, a *args) (gin.H, error) {
		return gin.H{"id": a.ID, "order": a.Order}, nil
	}))

	w := doRequest(router, http.MethodGet, "/items/7?order=desc", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(7), body["id"])
	assert.Equal(t, "desc", body["order"])
}

func TestAdapt5_MalformedBody(t *testing.T) {
	t.Parallel()

	type filterArgs struct {
		MinWeight float64 `json:"minWeight"`
	}

	router := newRouter()
	router.POST("/filter", ginx.Adapt5(func(*gin.Context, *filterArgs) (gin.H, error) {
		return nil, errors.New("handler must not be called")
	}))

	// 没有必填字段时，解码失败也不能退回到 URI/Query 绑定
	w := doRequest(router, http.MethodPost, "/filter", `{"minWeight":"heavy"}`, map[string]string{"Content-Type": "application/json"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeErrorResponse(t, w)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "ValidationFailure", resp.Errors[0].Code)
}

func TestAdapt4_IsValid(t *testing.T) {
	t.Parallel()

	router := newRouter()
	called := 0
	router.POST("/weights", ginx.Adapt4(func(*gin.Context, *validatedArgs) error {
		called++
		return nil
	}))

	w := doRequest(router, http.MethodPost, "/weights", `{"weight":-1}`, map[string]string{"Content-Type": "application/json"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeErrorResponse(t, w)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "ValidationFailure", resp.Errors[0].Code)

	w = doRequest(router, http.MethodPost, "/weights", `{"weight":1.5}`, map[string]string{"Content-Type": "application/json"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1, called)
}

func TestAdapt3(t *testing.T) {
	t.Parallel()

	router := newRouter()
	router.GET("/ok", ginx.Adapt3(func(*gin.Context) (string, error) { return "ok", nil }))
	router.GET("/empty", ginx.Adapt3(func(*gin.Context) (any, error) { return nil, nil }))
	router.GET("/fail", ginx.Adapt3(func(*gin.Context) (string, error) {
		return "", apierror.Persistence(errors.New("disk full"), "save failed")
	}))

	w := doRequest(router, http.MethodGet, "/ok", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	w = doRequest(router, http.MethodGet, "/empty", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodGet, "/fail", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeErrorResponse(t, w)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "PersistenceFailure", resp.Errors[0].Code)
	assert.NotContains(t, w.Body.String(), "disk full", "raw error stays on the server")
}

func TestAdapt2(t *testing.T) {
	t.Parallel()

	router := newRouter()
	router.GET("/count", ginx.Adapt2(func(*gin.Context) int { return 3 }))

	w := doRequest(router, http.MethodGet, "/count", "", map[string]string{"Accept": "application/xml"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "xml")
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	router := newRouter()
	var first, second string
	router.GET("/id", func(c *gin.Context) {
		first = ginx.RequestID(c)
		second = ginx.RequestID(c)
		c.Status(http.StatusOK)
	})

	w := doRequest(router, http.MethodGet, "/id", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, first, 36)
	assert.Equal(t, first, second)
	assert.Equal(t, first, w.Header().Get(ginx.RequestIDHeader))
}

func TestRequestID_ClientHeader(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name   string
		header string
		keep   bool
	}{
		{name: "token accepted", header: "req-1", keep: true},
		{name: "uuid accepted", header: "6f1c3f1e-8a52-4c1b-9c7e-1b2a3c4d5e6f", keep: true},
		{name: "dotted and colon accepted", header: "svc.api:42_a", keep: true},
		{name: "max length accepted", header: strings.Repeat("a", 128), keep: true},
		{name: "too long replaced", header: strings.Repeat("a", 129)},
		{name: "spaces replaced", header: "req 1"},
		{name: "log injection replaced", header: `x" level="panic`},
		{name: "non ascii replaced", header: "请求-1"},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router := newRouter()
			var got string
			router.GET("/id", func(c *gin.Context) {
				got = ginx.RequestID(c)
				c.Status(http.StatusOK)
			})

			w := doRequest(router, http.MethodGet, "/id", "", map[string]string{ginx.RequestIDHeader: tc.header})
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, got, w.Header().Get(ginx.RequestIDHeader))
			if tc.keep {
				assert.Equal(t, tc.header, got)
				return
			}
			assert.NotEqual(t, tc.header, got)
			assert.Len(t, got, 36)
		})
	}
}
