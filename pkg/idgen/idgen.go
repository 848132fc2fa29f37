package idgen

import (
	"fmt"
	"sync"
	"time"

	"github.com/sony/sonyflake"
)

// ID 前缀
const (
	PrefixOrganization    = "org"
	PrefixUser            = "usr"
	PrefixCustomerProfile = "cust"
	PrefixEnergyContract  = "ctr"
	PrefixFaq             = "faq"
	PrefixCarbonCredit    = "cc"
)

// Generator 递增 ID 生成器
// 使用 Sonyflake 算法生成全局唯一且递增的 ID
type Generator struct {
	sf *sonyflake.Sonyflake
}

var (
	defaultGenerator     *Generator
	defaultGeneratorOnce sync.Once
)

// DefaultGenerator 返回默认的 ID 生成器
func DefaultGenerator() *Generator {
	defaultGeneratorOnce.Do(func() {
		defaultGenerator = New()
	})
	return defaultGenerator
}

// New 创建新的 ID 生成器
func New() *Generator {
	sf := sonyflake.NewSonyflake(sonyflake.Settings{
		StartTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if sf == nil {
		// 取不到机器 ID 时退回到当前时间作为起始时间
		sf = sonyflake.NewSonyflake(sonyflake.Settings{
			StartTime: time.Now(),
		})
	}

	return &Generator{
		sf: sf,
	}
}

// WithPrefix 生成 {prefix}-{递增 ID} 格式的 ID
func (g *Generator) WithPrefix(prefix string) (string, error) {
	id, err := g.sf.NextID()
	if err != nil {
		return "", fmt.Errorf("generate %s ID: %w", prefix, err)
	}
	return fmt.Sprintf("%s-%d", prefix, id), nil
}

// GenerateOrganizationID 生成组织 ID（格式：org-{递增 ID}）
func (g *Generator) GenerateOrganizationID() (string, error) {
	return g.WithPrefix(PrefixOrganization)
}

// GenerateUserID 生成用户 ID（格式：usr-{递增 ID}）
func (g *Generator) GenerateUserID() (string, error) {
	return g.WithPrefix(PrefixUser)
}

// GenerateCustomerProfileID 生成客户资料 ID（格式：cust-{递增 ID}）
func (g *Generator) GenerateCustomerProfileID() (string, error) {
	return g.WithPrefix(PrefixCustomerProfile)
}

// GenerateEnergyContractID 生成能源合同 ID（格式：ctr-{递增 ID}）
func (g *Generator) GenerateEnergyContractID() (string, error) {
	return g.WithPrefix(PrefixEnergyContract)
}

// GenerateFaqID 生成 FAQ ID（格式：faq-{递增 ID}）
func (g *Generator) GenerateFaqID() (string, error) {
	return g.WithPrefix(PrefixFaq)
}

// GenerateCarbonCreditID 生成碳信用 ID（格式：cc-{递增 ID}）
func (g *Generator) GenerateCarbonCreditID() (string, error) {
	return g.WithPrefix(PrefixCarbonCredit)
}

// GenerateID 生成通用递增 ID
func (g *Generator) GenerateID() (uint64, error) {
	return g.sf.NextID()
}

// GenerateID 使用默认生成器生成通用递增 ID
func GenerateID() (uint64, error) {
	return DefaultGenerator().GenerateID()
}
