package entity

// 碳信用状态
const (
	CarbonCreditAvailable = "available"
	CarbonCreditRetired   = "retired"
)

// CarbonCredit 碳信用
// 捐赠方为 user 或 organization
type CarbonCredit struct {
	ID           string  `json:"id"` // cc-{id}
	DonorType    string  `json:"donorType"`
	DonorID      string  `json:"donorID"`
	AmountTonnes float64 `json:"amountTonnes"`
	VintageYear  int     `json:"vintageYear,omitempty"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// CreateCarbonCreditRequest 创建碳信用请求
type CreateCarbonCreditRequest struct {
	DonorType    string  `json:"donorType" binding:"required,oneof=user organization"`
	DonorID      string  `json:"donorID" binding:"required"`
	AmountTonnes float64 `json:"amountTonnes" binding:"gt=0"`
	VintageYear  int     `json:"vintageYear,omitempty"`
	Status       string  `json:"status,omitempty" binding:"omitempty,oneof=available retired"` // 默认 available
}

// CreateCarbonCreditResponse 创建碳信用响应
type CreateCarbonCreditResponse struct {
	CarbonCredit *CarbonCredit `json:"carbonCredit"`
}

// DescribeCarbonCreditsRequest 描述碳信用请求
type DescribeCarbonCreditsRequest struct {
	CarbonCreditIDs []string `json:"carbonCreditIDs,omitempty"`
	DonorType       string   `json:"donorType,omitempty"`
	DonorID         string   `json:"donorID,omitempty"`
	Status          string   `json:"status,omitempty"`
}

// DescribeCarbonCreditsResponse 描述碳信用响应
type DescribeCarbonCreditsResponse struct {
	CarbonCredits []CarbonCredit `json:"carbonCredits"`
}

// ResolveCarbonCreditDonorRequest 解析碳信用捐赠方
type ResolveCarbonCreditDonorRequest struct {
	CarbonCreditID string `json:"carbonCreditID" binding:"required"`
}

// ResolveCarbonCreditDonorResponse 捐赠方实体，类型为 User 或 Organization
type ResolveCarbonCreditDonorResponse struct {
	DonorType string `json:"donorType"`
	Donor     any    `json:"donor"`
}
