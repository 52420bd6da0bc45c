package core

import (
	"github.com/NethermindEth/junovm/core/felt"
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/ethereum/go-ethereum/common"
)

type Event struct {
	Data []*felt.Felt
	From *felt.Felt
	Keys []*felt.Felt
}

type L2ToL1Message struct {
	From    *felt.Felt
	Payload []*felt.Felt
	To      common.Address
}

const (
	// Calculated at https://hur.st/bloomfilter/?n=1000&p=&m=8192&k=
	// provides 1 in 51 possibility of false positives for approximately 1000 elements
	EventsBloomLength    = 8192
	EventsBloomHashFuncs = 6
)

// EventsBloom indexes the emitting contracts and keys of the events.
func EventsBloom(events []*Event) *bloom.BloomFilter {
	filter := bloom.New(EventsBloomLength, EventsBloomHashFuncs)

	for _, event := range events {
		fromBytes := event.From.Bytes()
		filter.Add(fromBytes[:])
		for _, key := range event.Keys {
			keyBytes := key.Bytes()
			filter.Add(keyBytes[:])
		}
	}
	return filter
}
