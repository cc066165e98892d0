package qos

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	d := Default()
	require.Equal(t, KeepLast, d.History)
	require.Equal(t, 1, d.Depth)
	require.Equal(t, BestEffort, d.Reliability)
}

func TestMergeOverridesNonZeroDepth(t *testing.T) {
	base := Default()
	merged := base.Merge(Policies{Depth: 10, History: KeepAll, Reliability: Reliable})

	require.Equal(t, 10, merged.Depth)
	require.Equal(t, KeepAll, merged.History)
	require.Equal(t, Reliable, merged.Reliability)
}

func TestMergeKeepsBaseDepthWhenOverrideZero(t *testing.T) {
	base := Policies{Depth: 5, History: KeepLast, Reliability: BestEffort}
	merged := base.Merge(Policies{})

	require.Equal(t, 5, merged.Depth)
}

func TestDecodeOverride(t *testing.T) {
	p, err := DecodeOverride(map[string]any{
		"history_kind":    int(KeepAll),
		"history_depth":   7,
		"reliability":     int(Reliable),
	})
	require.NoError(t, err)
	require.Equal(t, KeepAll, p.History)
	require.Equal(t, 7, p.Depth)
	require.Equal(t, Reliable, p.Reliability)
}

func TestDecodeOverrideRejectsWrongType(t *testing.T) {
	_, err := DecodeOverride(map[string]any{"history_depth": "not-a-number"})
	require.Error(t, err)
}
