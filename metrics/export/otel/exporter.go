package otel

import (
	"context"
	"errors"
	"fmt"

	gateway "github.com/AdolfoCB/almapac-gateway"
	"github.com/AdolfoCB/almapac-gateway/metrics/export/internaldefs"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrNilMeter  = errors.New("nil meter")
	ErrNilSource = errors.New("nil metrics source")
)

type metricsSource interface {
	MetricsSnapshot() gateway.MetricsSnapshot
	AuditDropped() uint64
}

type observedSeries struct {
	id    gateway.MetricID
	attrs metric.ObserveOption
}

type observedFamily struct {
	instrument metric.Int64ObservableCounter
	series     []observedSeries
}

type observedHistogram struct {
	id      gateway.MetricID
	buckets metric.Int64ObservableGauge
	le      [8]metric.ObserveOption
	count   metric.Int64ObservableGauge
}

// OTelExporter publishes gateway metrics through an OTel meter until closed.
type OTelExporter struct {
	source       metricsSource
	registration metric.Registration
	families     []observedFamily
	histograms   []observedHistogram
	auditDropped metric.Int64ObservableCounter
}

// NewOTelExporter registers one observable counter per metric family on meter, with
// the family's labels as attributes. Values are read from gw on each collection.
func NewOTelExporter(meter metric.Meter, gw *gateway.Gateway) (*OTelExporter, error) {
	if gw == nil {
		return nil, ErrNilSource
	}
	return NewOTelExporterFromSource(meter, gw)
}

func NewOTelExporterFromSource(meter metric.Meter, source metricsSource) (*OTelExporter, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	if source == nil {
		return nil, ErrNilSource
	}

	e := &OTelExporter{source: source}
	var observables []metric.Observable

	for _, fam := range internaldefs.CounterFamilies {
		ins, err := meter.Int64ObservableCounter(fam.Name, metric.WithDescription(fam.Help))
		if err != nil {
			return nil, fmt.Errorf("create observable counter %s: %w", fam.Name, err)
		}
		of := observedFamily{instrument: ins}
		for _, s := range fam.Series {
			of.series = append(of.series, observedSeries{id: s.ID, attrs: metric.WithAttributeSet(attributes(s.Labels))})
		}
		e.families = append(e.families, of)
		observables = append(observables, ins)
	}

	for _, def := range internaldefs.HistogramDefs {
		h := observedHistogram{id: def.ID}
		var err error
		h.buckets, err = meter.Int64ObservableGauge(def.Name+"_bucket", metric.WithDescription(def.Help+" Cumulative count per le bound."))
		if err != nil {
			return nil, fmt.Errorf("create histogram bucket gauge %s: %w", def.Name, err)
		}
		for i, le := range internaldefs.HistogramBounds {
			h.le[i] = metric.WithAttributeSet(attribute.NewSet(attribute.String("le", le)))
		}
		h.count, err = meter.Int64ObservableGauge(def.Name+"_count", metric.WithDescription(def.Help+" Sample count."))
		if err != nil {
			return nil, fmt.Errorf("create histogram count gauge %s: %w", def.Name, err)
		}
		e.histograms = append(e.histograms, h)
		observables = append(observables, h.buckets, h.count)
	}

	var err error
	e.auditDropped, err = meter.Int64ObservableCounter(internaldefs.AuditDroppedName, metric.WithDescription(internaldefs.AuditDroppedHelp))
	if err != nil {
		return nil, fmt.Errorf("create audit dropped counter: %w", err)
	}
	observables = append(observables, e.auditDropped)

	e.registration, err = meter.RegisterCallback(e.observe, observables...)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}
	return e, nil
}

func (e *OTelExporter) observe(_ context.Context, o metric.Observer) error {
	snapshot := e.source.MetricsSnapshot()
	for _, fam := range e.families {
		for _, s := range fam.series {
			o.ObserveInt64(fam.instrument, int64(snapshot.Counters[s.id]), s.attrs)
		}
	}
	for _, h := range e.histograms {
		cumulative := internaldefs.CumulativeBuckets(snapshot.Histograms[h.id])
		for i, opt := range h.le {
			o.ObserveInt64(h.buckets, int64(cumulative[i]), opt)
		}
		o.ObserveInt64(h.count, int64(cumulative[len(cumulative)-1]))
	}
	o.ObserveInt64(e.auditDropped, int64(e.source.AuditDropped()))
	return nil
}

func attributes(labels []internaldefs.Label) attribute.Set {
	kvs := make([]attribute.KeyValue, 0, len(labels))
	for _, l := range labels {
		kvs = append(kvs, attribute.String(l.Key, l.Value))
	}
	return attribute.NewSet(kvs...)
}

// Close unregisters the collection callback.
func (e *OTelExporter) Close() error {
	if e == nil || e.registration == nil {
		return nil
	}
	return e.registration.Unregister()
}
