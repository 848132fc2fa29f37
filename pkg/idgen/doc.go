// Package idgen 提供递增 ID 生成器
//
// 使用 Sonyflake 算法生成全局唯一且时间有序的 64 位 ID，
// 业务 ID 在数字前加上实体前缀：
//   - 组织: org-{递增数字}
//   - 用户: usr-{递增数字}
//   - 客户资料: cust-{递增数字}
//   - 能源合同: ctr-{递增数字}
//   - FAQ: faq-{递增数字}
//   - 碳信用: cc-{递增数字}
//
// 使用方式：
//
//	gen := idgen.New()
//	orgID, err := gen.GenerateOrganizationID()
//	// orgID: "org-1234567890"
package idgen
