package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rtpscore/corecache/internal/guid"
	"github.com/rtpscore/corecache/internal/wire"
	"github.com/rtpscore/corecache/pkg/cache"
	"github.com/rtpscore/corecache/pkg/router"
)

// runREPL reads line-oriented commands from in and writes responses to
// out, letting an operator exercise the core without a real transport or
// RTPS parser (§1, §6 EXPANSION). Supported commands:
//
//	topic <name> <nokey|withkey> <typeName>   register a topic
//	put   <topic> <text>                       deliver text as a single-fragment sample
//	get   <topic> <seq>                        look up the sample added by the seq'th put
//	range <topic> <fromSeq> <toSeq>            range-query by put sequence
//	stats                                      print SampleCache.Stats()
//	quit                                       exit the loop
func runREPL(in io.Reader, out io.Writer, sampleCache *cache.SampleCache, r *router.Router) {
	writer := guid.New()
	instants := make(map[int]time.Time)
	var sn wire.SequenceNumber
	var putSeq int

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return

		case "topic":
			if len(fields) != 4 {
				fmt.Fprintln(out, "usage: topic <name> <nokey|withkey> <typeName>")
				continue
			}
			kind := cache.NoKey
			if fields[2] == "withkey" {
				kind = cache.WithKey
			}
			ok := sampleCache.AddNewTopic(fields[1], kind, fields[3])
			fmt.Fprintf(out, "topic registered: %v\n", ok)

		case "put":
			if len(fields) < 3 {
				fmt.Fprintln(out, "usage: put <topic> <text...>")
				continue
			}
			topic := fields[1]
			text := strings.Join(fields[2:], " ")
			payload := []byte(text)

			sn++
			// data_size covers the full sample including the 4-byte
			// SerializedPayload prefix; Value holds only the user bytes.
			dataSize := uint32(len(payload)) + 4
			df := &wire.DataFrag{
				WriterGUID:            writer,
				WriterSN:              sn,
				DataSize:              dataSize,
				FragmentSize:          uint16(dataSize),
				FragmentStartingNum:   1,
				FragmentsInSubmessage: 1,
				SerializedPayload: wire.SerializedPayload{
					RepresentationIdentifier: wire.CDR_LE,
					Value:                    payload,
				},
			}

			now := time.Now()
			r.Deliver(topic, df, now)

			putSeq++
			instants[putSeq] = now
			fmt.Fprintf(out, "put ok, seq=%d\n", putSeq)

		case "get":
			if len(fields) != 3 {
				fmt.Fprintln(out, "usage: get <topic> <seq>")
				continue
			}
			seq, err := strconv.Atoi(fields[2])
			if err != nil {
				fmt.Fprintln(out, "bad seq:", err)
				continue
			}
			instant, ok := instants[seq]
			if !ok {
				fmt.Fprintln(out, "unknown seq")
				continue
			}
			change, ok := sampleCache.GetChange(fields[1], instant)
			if !ok {
				fmt.Fprintln(out, "not found")
				continue
			}
			fmt.Fprintf(out, "%s\n", change.Data.Payload.Value)

		case "range":
			if len(fields) != 4 {
				fmt.Fprintln(out, "usage: range <topic> <fromSeq> <toSeq>")
				continue
			}
			from, err1 := strconv.Atoi(fields[2])
			to, err2 := strconv.Atoi(fields[3])
			if err1 != nil || err2 != nil {
				fmt.Fprintln(out, "bad seq range")
				continue
			}
			fromInstant, ok1 := instants[from]
			toInstant, ok2 := instants[to]
			if !ok1 || !ok2 {
				fmt.Fprintln(out, "unknown seq in range")
				continue
			}
			entries := sampleCache.GetChangesInRange(fields[1], fromInstant, toInstant)
			for _, e := range entries {
				fmt.Fprintf(out, "%s\n", e.Change.Data.Payload.Value)
			}

		case "stats":
			stats := sampleCache.Stats()
			fmt.Fprintf(out, "unknown_topic_drops=%d\n", stats.UnknownTopicDrops)

		default:
			fmt.Fprintf(out, "unknown command: %s\n", fields[0])
		}
	}
}
