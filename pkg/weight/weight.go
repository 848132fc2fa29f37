package weight

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Weight 两位小数的定点数，单位为 0.01
type Weight int64

const (
	scale = 100

	// Min 权重下限 0.00
	Min Weight = 0
	// Max 权重上限 10.00
	Max Weight = 10 * scale
	// Default 新建关联时的默认权重 1.00
	Default Weight = 1 * scale
	// DefaultStep 增减权重的默认步长 0.10
	DefaultStep Weight = 10
	// DefaultMinimum 按权重过滤时的默认下限 1.00
	DefaultMinimum Weight = 1 * scale

	// saturation 超大输入先饱和到该值，避免 float64 -> int64 溢出
	saturation = 1e12
)

// ErrInvalid 非法的权重输入（非数字、NaN、Inf）
var ErrInvalid = errors.New("invalid weight")

// FromFloat 将浮点数四舍五入到两位小数
// 不做区间截断，截断由 Clamp 负责
func FromFloat(f float64) (Weight, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalid, f)
	}
	f = math.Max(-saturation, math.Min(saturation, f))
	return Weight(math.Round(f * scale)), nil
}

// Parse 解析十进制字符串，例如 "9.95"
func Parse(s string) (Weight, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	return FromFloat(f)
}

// MustParse 同 Parse，出错时 panic，仅用于常量和测试
func MustParse(s string) Weight {
	w, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return w
}

// Clamp 截断到 [Min, Max]
func (w Weight) Clamp() Weight {
	if w < Min {
		return Min
	}
	if w > Max {
		return Max
	}
	return w
}

// Add 返回 min(Max, w + d)
func (w Weight) Add(d Weight) Weight {
	return (w + d).Clamp()
}

// Sub 返回 max(Min, w - d)
func (w Weight) Sub(d Weight) Weight {
	return (w - d).Clamp()
}

// Float64 转换为浮点数
func (w Weight) Float64() float64 {
	return float64(w) / scale
}

// String 固定输出两位小数
func (w Weight) String() string {
	sign := ""
	v := int64(w)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/scale, v%scale)
}

// MarshalJSON 输出为 JSON 数字，例如 9.95
func (w Weight) MarshalJSON() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalJSON 接受 JSON 数字或数字字符串
func (w *Weight) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	return w.UnmarshalText([]byte(strings.Trim(s, `"`)))
}

// MarshalText 用于 XML 和表单
func (w Weight) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalText 用于 XML 和表单
func (w *Weight) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// Scan 实现 sql.Scanner
// SQLite 中 decimal 列可能返回 int64、float64 或文本
func (w *Weight) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*w = 0
		return nil
	case int64:
		*w = Weight(v * scale)
		return nil
	case float64:
		parsed, err := FromFloat(v)
		if err != nil {
			return err
		}
		*w = parsed
		return nil
	case []byte:
		return w.UnmarshalText(v)
	case string:
		return w.UnmarshalText([]byte(v))
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalid, value)
	}
}

// Value 实现 driver.Valuer，以十进制字符串写入，保证精度
func (w Weight) Value() (driver.Value, error) {
	return w.String(), nil
}
