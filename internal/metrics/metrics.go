// Package metrics counts what the type builders do, so that pathological
// normalisation (for example, combinatorial distribution) can be spotted
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"sort"
)

// Normalization holds the counters for a single TypeCtx.
// A nil *Normalization is valid and counts nothing.
type Normalization struct {
	registry *prometheus.Registry

	unionsBuilt        prometheus.Counter
	intersectionsBuilt prometheus.Counter
	// conjunctions created by distributing an intersection over a union
	distributedConjunctions prometheus.Counter
	neverCollapses          prometheus.Counter
	boolSplits              prometheus.Counter
}

func New() *Normalization {
	m := &Normalization{
		unionsBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dnf",
			Name:      "unions_built_total",
			Help:      "number of union types produced by UnionBuilder.Build",
		}),
		intersectionsBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dnf",
			Name:      "intersections_built_total",
			Help:      "number of intersection types produced when finalising a conjunction",
		}),
		distributedConjunctions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dnf",
			Name:      "distributed_conjunctions_total",
			Help:      "conjunctions created by distributing an intersection over a union or a negated intersection",
		}),
		neverCollapses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dnf",
			Name:      "never_collapses_total",
			Help:      "conjunctions found to be unsatisfiable",
		}),
		boolSplits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dnf",
			Name:      "bool_splits_total",
			Help:      "conjunctions of bool and a negated boolean literal resolved to the other literal",
		}),
	}
	m.registry = prometheus.NewPedanticRegistry()
	reg := m.registry

	reg.MustRegister(m.unionsBuilt)
	reg.MustRegister(m.intersectionsBuilt)
	reg.MustRegister(m.distributedConjunctions)
	reg.MustRegister(m.neverCollapses)
	reg.MustRegister(m.boolSplits)
	return m
}

// Registry holds every counter of m, for exposing them to a prometheus scraper
func (m *Normalization) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Normalization) UnionBuilt() {
	if m != nil {
		m.unionsBuilt.Inc()
	}
}

func (m *Normalization) IntersectionBuilt() {
	if m != nil {
		m.intersectionsBuilt.Inc()
	}
}

func (m *Normalization) Distributed(conjunctions int) {
	if m != nil {
		m.distributedConjunctions.Add(float64(conjunctions))
	}
}

func (m *Normalization) CollapsedToNever() {
	if m != nil {
		m.neverCollapses.Inc()
	}
}

func (m *Normalization) SplitBool() {
	if m != nil {
		m.boolSplits.Inc()
	}
}

// Sample is the current value of one counter
type Sample struct {
	Name  string
	Help  string
	Value float64
}

// Snapshot gathers every counter, sorted by name
func (m *Normalization) Snapshot() ([]Sample, error) {
	families, err := m.Registry().Gather()
	if err != nil {
		return nil, err
	}
	samples := make([]Sample, 0, len(families))
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			samples = append(samples, Sample{
				Name:  family.GetName(),
				Help:  family.GetHelp(),
				Value: metric.GetCounter().GetValue(),
			})
		}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].Name < samples[j].Name })
	return samples, nil
}
