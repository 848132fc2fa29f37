// Package registry 维护多态引用的类型标识到实体解析函数的映射
//
// (taggable_type, taggable_id) 这样的多态引用通过 Registry 显式解析，
// 每种实体类型注册一个 ResolveFunc，不做隐式的动态分发。
package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jimyag/ems/pkg/apierror"
)

// Kind 实体类型标识（discriminator），例如 "organization"
type Kind string

const (
	KindUser            Kind = "user"
	KindOrganization    Kind = "organization"
	KindCustomerProfile Kind = "customer_profile"
	KindEnergyContract  Kind = "energy_contract"
	KindFaq             Kind = "faq"
)

func (k Kind) String() string {
	return string(k)
}

// Ref 多态引用
type Ref struct {
	Kind Kind
	ID   string
}

func (r Ref) String() string {
	return fmt.Sprintf("%s/%s", r.Kind, r.ID)
}

// Entity 可被多态引用的实体
// 每个变体返回自己的类型标识和 ID，解析结果可以通过类型断言还原为具体类型
type Entity interface {
	TaggableKind() Kind
	TaggableID() string
}

// ResolveFunc 根据 ID 加载某一类型的实体
// 实体不存在时应返回 apierror.ErrNotFound 类别的错误
type ResolveFunc func(ctx context.Context, id string) (Entity, error)

// Registry 类型标识到解析函数的映射，可并发使用
type Registry struct {
	mu        sync.RWMutex
	resolvers map[Kind]ResolveFunc
}

// New 创建空的 Registry
func New() *Registry {
	return &Registry{
		resolvers: make(map[Kind]ResolveFunc),
	}
}

// Register 注册一种实体类型，重复注册返回错误
func (r *Registry) Register(kind Kind, fn ResolveFunc) error {
	if kind == "" {
		return fmt.Errorf("register: empty kind")
	}
	if fn == nil {
		return fmt.Errorf("register %s: nil resolver", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.resolvers[kind]; exists {
		return fmt.Errorf("register %s: already registered", kind)
	}
	r.resolvers[kind] = fn
	return nil
}

// Lookup 将 discriminator 字符串映射为已注册的 Kind
func (r *Registry) Lookup(discriminator string) (Kind, error) {
	kind := Kind(strings.TrimSpace(discriminator))

	r.mu.RLock()
	_, ok := r.resolvers[kind]
	r.mu.RUnlock()

	if !ok {
		return "", apierror.WrapError(
			apierror.ErrUnknownTaggableType,
			fmt.Sprintf("unknown taggable type %q", discriminator),
			nil,
		)
	}
	return kind, nil
}

// Kinds 返回所有已注册的类型，按字母序排列
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, 0, len(r.resolvers))
	for k := range r.resolvers {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Resolve 将多态引用解析为唯一的实体
func (r *Registry) Resolve(ctx context.Context, ref Ref) (Entity, error) {
	r.mu.RLock()
	fn, ok := r.resolvers[ref.Kind]
	r.mu.RUnlock()

	if !ok {
		return nil, apierror.WrapError(
			apierror.ErrUnknownTaggableType,
			fmt.Sprintf("unknown taggable type %q", ref.Kind),
			nil,
		)
	}
	if ref.ID == "" {
		return nil, apierror.Validation("taggable id is required for %s", ref.Kind)
	}

	entity, err := fn(ctx, ref.ID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, apierror.NotFound(nil, "%s does not exist", ref)
	}
	return entity, nil
}
