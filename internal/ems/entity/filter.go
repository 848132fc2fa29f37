package entity

// Filter 过滤器
type Filter struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// FirstValue 返回第一个取值，没有时返回空字符串
func (f Filter) FirstValue() string {
	if len(f.Values) == 0 {
		return ""
	}
	return f.Values[0]
}
