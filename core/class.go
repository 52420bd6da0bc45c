package core

import (
	"encoding/json"

	"github.com/Masterminds/semver/v3"
	"github.com/NethermindEth/junovm/core/felt"
)

// ContractClass is the parsed, immutable executable form of a class.
type ContractClass interface {
	// Version returns 0 for Cairo 0 classes and 1 for compiled Sierra classes.
	Version() uint64
	EntryPoints(t EntryPointType) []EntryPoint
}

var (
	_ ContractClass = (*Cairo0Class)(nil)
	_ ContractClass = (*CasmClass)(nil)
)

// Cairo0Class unambiguously defines a deprecated Cairo 0 contract's semantics.
type Cairo0Class struct {
	Abi json.RawMessage
	// External functions defined in the class.
	Externals []EntryPoint
	// Functions that receive L1 messages. See
	// https://www.cairo-lang.org/docs/hello_starknet/l1l2.html#receiving-a-message-from-l1
	L1Handlers []EntryPoint
	// Constructors for the class. Currently, only one is allowed.
	Constructors []EntryPoint
	// The compiled program, kept as the raw JSON for the execution engine.
	Program json.RawMessage
}

func (c *Cairo0Class) Version() uint64 {
	return 0
}

func (c *Cairo0Class) EntryPoints(t EntryPointType) []EntryPoint {
	switch t {
	case External:
		return c.Externals
	case L1Handler:
		return c.L1Handlers
	case Constructor:
		return c.Constructors
	default:
		return nil
	}
}

// SegmentLengths describes the nesting of the bytecode segments of a compiled class.
type SegmentLengths struct {
	Children []SegmentLengths
	Length   uint64
}

// CasmClass is a Sierra class compiled to Cairo assembly.
type CasmClass struct {
	Prime                  string
	Bytecode               []*felt.Felt
	Hints                  json.RawMessage
	PythonicHints          json.RawMessage
	CompilerVersion        *semver.Version
	BytecodeSegmentLengths SegmentLengths
	External               []EntryPoint
	L1Handler              []EntryPoint
	Constructor            []EntryPoint
}

func (c *CasmClass) Version() uint64 {
	return 1
}

func (c *CasmClass) EntryPoints(t EntryPointType) []EntryPoint {
	switch t {
	case External:
		return c.External
	case L1Handler:
		return c.L1Handler
	case Constructor:
		return c.Constructor
	default:
		return nil
	}
}

// FindEntryPoint looks up the entry point of the given type and selector.
func FindEntryPoint(c ContractClass, t EntryPointType, selector *felt.Felt) (EntryPoint, bool) {
	for _, ep := range c.EntryPoints(t) {
		if ep.Selector != nil && ep.Selector.Equal(selector) {
			return ep, true
		}
	}
	return EntryPoint{}, false
}
