// Package api 提供 EMS 的 HTTP 接口
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/ems/internal/ems/service"
	"github.com/jimyag/ems/pkg/ginx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Pinger 健康检查依赖，通常是数据库
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options 创建 API 所需的依赖
type Options struct {
	Address string

	TagService             *service.TagService
	TaggableService        *service.TaggableService
	OrganizationService    *service.OrganizationService
	UserService            *service.UserService
	CustomerProfileService *service.CustomerProfileService
	EnergyContractService  *service.EnergyContractService
	FaqService             *service.FaqService
	CarbonCreditService    *service.CarbonCreditService

	// Gatherer 为空时不注册 /metrics
	Gatherer prometheus.Gatherer
	Pinger   Pinger
}

type API struct {
	engine *gin.Engine
	server *http.Server
	pinger Pinger

	tag            *Tag
	taggable       *Taggable
	organization   *Organization
	user           *User
	profile        *CustomerProfile
	energyContract *EnergyContract
	faq            *Faq
	carbonCredit   *CarbonCredit
}

func New(opts Options) (*API, error) {
	engine := gin.New()
	// 让 zerolog.Ctx(ginCtx) 能取到中间件注入到 Request.Context 中的 logger
	engine.ContextWithFallback = true
	engine.Use(gin.Recovery(), requestLogger())

	api := &API{
		engine:         engine,
		pinger:         opts.Pinger,
		tag:            NewTag(opts.TagService),
		taggable:       NewTaggable(opts.TaggableService),
		organization:   NewOrganization(opts.OrganizationService),
		user:           NewUser(opts.UserService),
		profile:        NewCustomerProfile(opts.CustomerProfileService),
		energyContract: NewEnergyContract(opts.EnergyContractService),
		faq:            NewFaq(opts.FaqService),
		carbonCredit:   NewCarbonCredit(opts.CarbonCreditService),
	}

	group := engine.Group("/api")
	api.tag.RegisterRoutes(group)
	api.taggable.RegisterRoutes(group)
	api.organization.RegisterRoutes(group)
	api.user.RegisterRoutes(group)
	api.profile.RegisterRoutes(group)
	api.energyContract.RegisterRoutes(group)
	api.faq.RegisterRoutes(group)
	api.carbonCredit.RegisterRoutes(group)

	engine.GET("/healthz", ginx.Adapt3(api.Healthz))
	if opts.Gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	addr := opts.Address
	if addr == "" {
		addr = ":7777"
	}
	api.server = &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return api, nil
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status string `json:"status"`
}

// Healthz 检查存储是否可用
func (a *API) Healthz(ctx *gin.Context) (*HealthResponse, error) {
	if a.pinger != nil {
		if err := a.pinger.Ping(ctx); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("Health check failed")
			return nil, err
		}
	}
	return &HealthResponse{Status: "ok"}, nil
}

// Handler 返回 HTTP handler，测试中直接使用
func (a *API) Handler() http.Handler {
	return a.engine
}

func (a *API) Run(ctx context.Context) error {
	zerolog.Ctx(ctx).Info().Str("address", a.server.Addr).Msg("API server listening")
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *API) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}

// Name 实现 grace.Grace 接口
func (a *API) Name() string {
	return "API Server"
}
