package metrics

import "github.com/prometheus/client_golang/prometheus"

// StorefrontMetrics counts rendering and checkout outcomes.
type StorefrontMetrics struct {
	sectionSkipped *prometheus.CounterVec
	submissions    *prometheus.CounterVec
	tenantCache    *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront counters on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_section_render_skipped_total",
		Help: "Sections skipped while composing a page.",
	}, []string{"type", "reason"})
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_checkout_submissions_total",
		Help: "Order submissions by outcome.",
	}, []string{"outcome"})
	cache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_tenant_cache_lookups_total",
		Help: "Tenant resolution cache lookups by result.",
	}, []string{"result"})
	reg.MustRegister(skipped, submissions, cache)
	return &StorefrontMetrics{
		sectionSkipped: skipped,
		submissions:    submissions,
		tenantCache:    cache,
	}
}

// SectionSkipped counts a section that did not render.
func (m *StorefrontMetrics) SectionSkipped(sectionType, reason string) {
	if m == nil || m.sectionSkipped == nil {
		return
	}
	m.sectionSkipped.WithLabelValues(normalizeLabel(sectionType), normalizeLabel(reason)).Inc()
}

// Submission counts an order submission outcome (placed, failed, suppressed, swept, recovered).
func (m *StorefrontMetrics) Submission(outcome string) {
	if m == nil || m.submissions == nil {
		return
	}
	m.submissions.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// TenantCache counts a tenant cache hit or miss.
func (m *StorefrontMetrics) TenantCache(hit bool) {
	if m == nil || m.tenantCache == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.tenantCache.WithLabelValues(result).Inc()
}
