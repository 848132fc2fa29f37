package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// 权重操作名，用作指标的 op 标签
const (
	opCreate   = "create"
	opUpdate   = "update"
	opSet      = "set"
	opIncrease = "increase"
	opDecrease = "decrease"
)

// Metrics 权重相关的运维指标
// 截断次数只对运维可见，不会体现在接口返回值中
type Metrics struct {
	registry  *prometheus.Registry
	mutations *prometheus.CounterVec
	clamped   *prometheus.CounterVec
}

// NewMetrics 创建指标并注册到独立的 Registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ems",
			Subsystem: "taggable",
			Name:      "weight_mutations_total",
			Help:      "Number of weight writes by operation.",
		}, []string{"op"}),
		clamped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ems",
			Subsystem: "taggable",
			Name:      "weight_clamped_total",
			Help:      "Number of weight writes that were clamped into [0, 10].",
		}, []string{"op"}),
	}
	m.registry.MustRegister(
		m.mutations,
		m.clamped,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry 返回用于 /metrics 暴露的 Registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// observe 记录一次权重写入，clamped 表示写入值被截断
func (m *Metrics) observe(op string, clamped bool) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(op).Inc()
	if clamped {
		m.clamped.WithLabelValues(op).Inc()
	}
}
