// Package qos carries the subset of RTPS QoS policies the sample cache
// needs to know about: how a topic's history is retained. Enforcement of
// these policies at subscription time is an external collaborator (§1);
// this package only models the value and its defaulting/merge rules.
package qos

import "github.com/mitchellh/mapstructure"

// HistoryKind selects how a TopicCache's backlog is meant to be bounded.
// The cache itself (pkg/cache) does not enforce depth eviction — that is
// QoS policy enforcement, out of scope per §1 — but the value is carried
// so a future enforcement layer has somewhere to read it from.
type HistoryKind int

const (
	// KeepLast retains at most Depth samples per instance.
	KeepLast HistoryKind = iota
	// KeepAll retains every sample.
	KeepAll
)

// ReliabilityKind mirrors RTPS's RELIABILITY policy.
type ReliabilityKind int

const (
	BestEffort ReliabilityKind = iota
	Reliable
)

// Policies is the QoS value a TopicCache stores. It is a plain value
// type, not a pointer: per §3/§9 it is replaced atomically under the
// cache's write lock, never mutated in place.
type Policies struct {
	History     HistoryKind     `mapstructure:"history_kind"`
	Depth       int             `mapstructure:"history_depth"`
	Reliability ReliabilityKind `mapstructure:"reliability"`
}

// Default returns the QoS profile assigned to a freshly created topic
// (RTPS "QoS none" equivalent): keep-last with depth 1, best effort.
func Default() Policies {
	return Policies{
		History:     KeepLast,
		Depth:       1,
		Reliability: BestEffort,
	}
}

// DecodeOverride decodes a generic map (e.g. subscription QoS overrides
// arriving as untyped discovery metadata) into a Policies value using its
// mapstructure tags, the same decoding convention pkg/config uses for
// file-sourced configuration.
func DecodeOverride(raw map[string]any) (Policies, error) {
	var p Policies
	if err := mapstructure.Decode(raw, &p); err != nil {
		return Policies{}, err
	}
	return p, nil
}

// Merge returns a copy of p with override applied on top: Depth is taken
// from override only when it is non-zero, while History and Reliability
// are always taken from override (their zero values are real policy
// choices). Used when a subscription narrows the topic's defaults.
func (p Policies) Merge(override Policies) Policies {
	merged := p
	if override.Depth != 0 {
		merged.Depth = override.Depth
	}
	merged.History = override.History
	merged.Reliability = override.Reliability
	return merged
}
