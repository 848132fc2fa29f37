package service

import (
	"context"
	"fmt"

	"github.com/jimyag/ems/internal/ems/registry"
)

// Resolver 能按 ID 加载某一类实体的服务
type Resolver interface {
	Kind() registry.Kind
	Resolve(ctx context.Context, id string) (registry.Entity, error)
}

// RegisterResolvers 将实体服务注册为 Registry 的变体
func RegisterResolvers(reg *registry.Registry, resolvers ...Resolver) error {
	for _, r := range resolvers {
		if err := reg.Register(r.Kind(), r.Resolve); err != nil {
			return fmt.Errorf("register resolver: %w", err)
		}
	}
	return nil
}
