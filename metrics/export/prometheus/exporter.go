package prometheus

import (
	"net/http"
	"strconv"
	"strings"

	gateway "github.com/AdolfoCB/almapac-gateway"
	"github.com/AdolfoCB/almapac-gateway/metrics/export/internaldefs"
)

const contentType = "text/plain; version=0.0.4; charset=utf-8"

type metricsSource interface {
	MetricsSnapshot() gateway.MetricsSnapshot
	AuditDropped() uint64
}

// PrometheusExporter renders gateway metrics in Prometheus text exposition format.
type PrometheusExporter struct {
	source metricsSource
}

func NewPrometheusExporter(gw *gateway.Gateway) *PrometheusExporter {
	return &PrometheusExporter{source: gw}
}

// NewPrometheusExporterFromSource reads from any snapshot source.
func NewPrometheusExporterFromSource(source metricsSource) *PrometheusExporter {
	return &PrometheusExporter{source: source}
}

// Handler serves Render. An empty body means metrics are disabled.
func (p *PrometheusExporter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write([]byte(p.Render()))
	})
}

func (p *PrometheusExporter) Render() string {
	if p == nil || p.source == nil {
		return ""
	}

	snapshot := p.source.MetricsSnapshot()
	dropped := p.source.AuditDropped()
	if len(snapshot.Counters) == 0 && len(snapshot.Histograms) == 0 && dropped == 0 {
		return ""
	}

	var b strings.Builder
	b.Grow(4096)

	for _, fam := range internaldefs.CounterFamilies {
		header(&b, fam.Name, fam.Help, "counter")
		for _, s := range fam.Series {
			sample(&b, fam.Name, s.Labels, snapshot.Counters[s.ID])
		}
	}

	for _, def := range internaldefs.HistogramDefs {
		cumulative := internaldefs.CumulativeBuckets(snapshot.Histograms[def.ID])
		header(&b, def.Name, def.Help, "histogram")
		for i, le := range internaldefs.HistogramBounds {
			sample(&b, def.Name+"_bucket", []internaldefs.Label{{Key: "le", Value: le}}, cumulative[i])
		}
		sample(&b, def.Name+"_count", nil, cumulative[len(cumulative)-1])
		// Snapshots carry no sum.
		sample(&b, def.Name+"_sum", nil, 0)
	}

	header(&b, internaldefs.AuditDroppedName, internaldefs.AuditDroppedHelp, "counter")
	sample(&b, internaldefs.AuditDroppedName, nil, dropped)

	return b.String()
}

func header(b *strings.Builder, name, help, kind string) {
	b.WriteString("# HELP ")
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(escapeHelp(help))
	b.WriteString("\n# TYPE ")
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(kind)
	b.WriteByte('\n')
}

func sample(b *strings.Builder, name string, labels []internaldefs.Label, value uint64) {
	b.WriteString(name)
	if len(labels) > 0 {
		b.WriteByte('{')
		for i, l := range labels {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(l.Key)
			b.WriteString(`="`)
			b.WriteString(escapeLabel(l.Value))
			b.WriteByte('"')
		}
		b.WriteByte('}')
	}
	b.WriteByte(' ')
	b.WriteString(strconv.FormatUint(value, 10))
	b.WriteByte('\n')
}

var (
	helpEscaper  = strings.NewReplacer(`\`, `\\`, "\n", `\n`)
	labelEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, `"`, `\"`)
)

func escapeHelp(help string) string { return helpEscaper.Replace(help) }

func escapeLabel(v string) string { return labelEscaper.Replace(v) }
