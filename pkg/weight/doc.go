// Package weight 提供两位小数的定点权重类型，取值范围为 [0, 10]
//
// Weight 在内存中以“百分之一”为单位的整数保存，避免浮点误差：
//
//	w := weight.MustParse("9.95")
//	w = w.Add(weight.DefaultStep) // 10.00，超出上限时截断
//	fmt.Println(w)                // 10.00
//
// 所有改变权重的操作都会截断（clamp）到 [Min, Max]，而不是返回错误。
//
// Weight 实现了 sql.Scanner / driver.Valuer，可以直接作为 GORM 字段使用，
// 数据库中存储为 decimal(4,2)；JSON 序列化为带两位小数的数字。
package weight
