package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rtpscore/corecache/internal/guid"
	"github.com/rtpscore/corecache/pkg/cache"
	"github.com/rtpscore/corecache/pkg/router"
	"github.com/stretchr/testify/require"
)

func TestREPL_PutGetRoundTrip(t *testing.T) {
	sampleCache := cache.NewSampleCache()
	r := router.New(sampleCache, func(guid.GUID, string) uint16 { return 256 }, nil)

	in := strings.NewReader(strings.Join([]string{
		"topic chatter nokey std_msgs/String",
		"put chatter hello world",
		"get chatter 1",
		"quit",
	}, "\n") + "\n")
	var out bytes.Buffer

	runREPL(in, &out, sampleCache, r)

	require.Contains(t, out.String(), "topic registered: true")
	require.Contains(t, out.String(), "put ok, seq=1")
	require.Contains(t, out.String(), "hello world")
}

func TestREPL_RangeAndStats(t *testing.T) {
	sampleCache := cache.NewSampleCache()
	r := router.New(sampleCache, func(guid.GUID, string) uint16 { return 256 }, nil)

	in := strings.NewReader(strings.Join([]string{
		"topic chatter nokey std_msgs/String",
		"put chatter one",
		"put chatter two",
		"range chatter 1 2",
		"put unregistered nope",
		"stats",
		"quit",
	}, "\n") + "\n")
	var out bytes.Buffer

	runREPL(in, &out, sampleCache, r)

	require.Contains(t, out.String(), "one")
	require.Contains(t, out.String(), "two")
	require.Contains(t, out.String(), "unknown_topic_drops=1")
}

func TestREPL_UnknownCommand(t *testing.T) {
	sampleCache := cache.NewSampleCache()
	r := router.New(sampleCache, func(guid.GUID, string) uint16 { return 256 }, nil)

	in := strings.NewReader("bogus\nquit\n")
	var out bytes.Buffer

	runREPL(in, &out, sampleCache, r)
	require.Contains(t, out.String(), "unknown command: bogus")
}
