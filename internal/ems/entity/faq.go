package entity

import "github.com/jimyag/ems/internal/ems/registry"

// Faq 常见问题
type Faq struct {
	ID              string  `json:"id"` // faq-{id}
	Question        string  `json:"question"`
	Answer          string  `json:"answer"`
	Category        string  `json:"category,omitempty"`
	HelpfulCount    int64   `json:"helpfulCount"`
	NotHelpfulCount int64   `json:"notHelpfulCount"`
	HelpfulRate     float64 `json:"helpfulRate"` // 百分比，一位小数
	Published       bool    `json:"published"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func (f *Faq) TaggableKind() registry.Kind { return registry.KindFaq }
func (f *Faq) TaggableID() string          { return f.ID }

// CreateFaqRequest 创建 FAQ 请求
type CreateFaqRequest struct {
	Question  string `json:"question" binding:"required"`
	Answer    string `json:"answer" binding:"required"`
	Category  string `json:"category,omitempty"`
	Published bool   `json:"published,omitempty"`
}

// CreateFaqResponse 创建 FAQ 响应
type CreateFaqResponse struct {
	Faq *Faq `json:"faq"`
}

// DescribeFaqsRequest 描述 FAQ 请求
type DescribeFaqsRequest struct {
	FaqIDs        []string `json:"faqIDs,omitempty"`
	Category      string   `json:"category,omitempty"`
	PublishedOnly bool     `json:"publishedOnly,omitempty"`
}

// DescribeFaqsResponse 描述 FAQ 响应
type DescribeFaqsResponse struct {
	Faqs []Faq `json:"faqs"`
}

// VoteFaqRequest FAQ 投票请求
type VoteFaqRequest struct {
	FaqID   string `json:"faqID" binding:"required"`
	Helpful bool   `json:"helpful"`
}

// VoteFaqResponse FAQ 投票响应
type VoteFaqResponse struct {
	Faq *Faq `json:"faq"`
}
