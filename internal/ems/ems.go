// Package ems 提供 EMS 服务器的主入口和初始化逻辑
package ems

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jimmicro/grace"
	"github.com/jimyag/ems/internal/ems/api"
	"github.com/jimyag/ems/internal/ems/config"
	"github.com/jimyag/ems/internal/ems/registry"
	"github.com/jimyag/ems/internal/ems/repository"
	"github.com/jimyag/ems/internal/ems/service"
	"github.com/rs/zerolog"
)

type Server struct {
	cfg  *config.Config
	api  *api.API
	repo *repository.Repository
}

func New(cfg *config.Config) (*Server, error) {
	logger := zerolog.New(os.Stdout).Level(cfg.Level()).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger

	// 1. 打开数据库并完成迁移
	repo, err := repository.Open(repository.Config{
		Driver: cfg.DBDriver,
		DSN:    cfg.DBDSN,
	})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	logger.Info().Str("driver", cfg.DBDriver).Msg("Repository opened")

	// 2. 创建服务
	reg := registry.New()
	metrics := service.NewMetrics()

	organizationService := service.NewOrganizationService(repo)
	userService := service.NewUserService(repo)
	profileService := service.NewCustomerProfileService(repo)
	contractService := service.NewEnergyContractService(repo)
	faqService := service.NewFaqService(repo)

	// 3. 注册可被标签关联的实体类型
	if err := service.RegisterResolvers(reg,
		organizationService,
		userService,
		profileService,
		contractService,
		faqService,
	); err != nil {
		_ = repo.Close()
		return nil, err
	}
	logger.Info().Interface("kinds", reg.Kinds()).Msg("Taggable kinds registered")

	// 4. 创建 API
	apiInstance, err := api.New(api.Options{
		Address:                cfg.Address,
		TagService:             service.NewTagService(repo),
		TaggableService:        service.NewTaggableService(repo, reg, metrics),
		OrganizationService:    organizationService,
		UserService:            userService,
		CustomerProfileService: profileService,
		EnergyContractService:  contractService,
		FaqService:             faqService,
		CarbonCreditService:    service.NewCarbonCreditService(repo, reg),
		Gatherer:               metrics.Registry(),
		Pinger:                 repo,
	})
	if err != nil {
		_ = repo.Close()
		return nil, err
	}

	return &Server{
		cfg:  cfg,
		api:  apiInstance,
		repo: repo,
	}, nil
}

func (s *Server) Run(ctx context.Context) error {
	// 使用 grace.Shepherd 管理服务生命周期
	services := []grace.Grace{
		s.api,
	}

	shepherd := grace.NewShepherd(
		services,
		grace.WithTimeout(30*time.Second),
		grace.WithLogger(&zerologLogger{}),
	)

	shepherd.Start(ctx)
	return s.repo.Close()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.api.Shutdown(ctx); err != nil {
		return err
	}
	return s.repo.Close()
}

// Name 实现 grace.Grace 接口
func (s *Server) Name() string {
	return "EMS Server"
}

// zerologLogger 实现 grace.Logger 接口
type zerologLogger struct{}

func (l *zerologLogger) Info(msg string, args ...interface{}) {
	logger := zerolog.DefaultContextLogger.Info()
	if len(args) > 0 {
		logger.Msgf(msg, args...)
	} else {
		logger.Msg(msg)
	}
}

func (l *zerologLogger) Error(msg string, args ...interface{}) {
	logger := zerolog.DefaultContextLogger.Error()
	if len(args) > 0 {
		logger.Msgf(msg, args...)
	} else {
		logger.Msg(msg)
	}
}
