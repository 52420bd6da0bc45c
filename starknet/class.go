package starknet

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/NethermindEth/junovm/core/felt"
)

var ErrUnknownClassFormat = errors.New("unknown compiled class format")

type EntryPoint struct {
	Selector *felt.Felt `json:"selector" validate:"required"`
	Offset   *felt.Felt `json:"offset" validate:"required"`
}

type EntryPoints struct {
	Constructor []EntryPoint `json:"CONSTRUCTOR" validate:"dive"`
	External    []EntryPoint `json:"EXTERNAL" validate:"dive"`
	L1Handler   []EntryPoint `json:"L1_HANDLER" validate:"dive"`
}

type DeprecatedCairoClass struct {
	Abi         json.RawMessage `json:"abi"`
	EntryPoints EntryPoints     `json:"entry_points_by_type"`
	Program     json.RawMessage `json:"program" validate:"required"`
}

type SegmentLengths struct {
	Children []SegmentLengths
	Length   uint64
}

func (n *SegmentLengths) UnmarshalJSON(data []byte) error {
	var err error
	n.Length, err = strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return json.Unmarshal(data, &n.Children)
	}
	return err
}

func (n SegmentLengths) MarshalJSON() ([]byte, error) {
	if len(n.Children) > 0 {
		return json.Marshal(n.Children)
	}
	return json.Marshal(n.Length)
}

type CompiledEntryPoints struct {
	External    []CompiledEntryPoint `json:"EXTERNAL" validate:"dive"`
	L1Handler   []CompiledEntryPoint `json:"L1_HANDLER" validate:"dive"`
	Constructor []CompiledEntryPoint `json:"CONSTRUCTOR" validate:"dive"`
}

type CasmClass struct {
	Prime                  string              `json:"prime" validate:"required"`
	Bytecode               []*felt.Felt        `json:"bytecode" validate:"required"`
	Hints                  json.RawMessage     `json:"hints"`
	PythonicHints          json.RawMessage     `json:"pythonic_hints,omitempty"`
	CompilerVersion        string              `json:"compiler_version"`
	BytecodeSegmentLengths *SegmentLengths     `json:"bytecode_segment_lengths,omitempty"`
	EntryPoints            CompiledEntryPoints `json:"entry_points_by_type"`
}

type CompiledEntryPoint struct {
	Selector *felt.Felt `json:"selector" validate:"required"`
	Offset   uint64     `json:"offset"`
	Builtins []string   `json:"builtins"`
}

// CompiledClass is the executable class payload handed over by the host. Exactly one
// of the fields is set after unmarshalling.
type CompiledClass struct {
	Deprecated *DeprecatedCairoClass
	Casm       *CasmClass
}

func (c *CompiledClass) UnmarshalJSON(data []byte) error {
	var classMap map[string]json.RawMessage
	if err := json.Unmarshal(data, &classMap); err != nil {
		return err
	}

	switch {
	case len(classMap["program"]) > 0:
		c.Deprecated = new(DeprecatedCairoClass)
		return json.Unmarshal(data, c.Deprecated)
	case len(classMap["bytecode"]) > 0:
		c.Casm = new(CasmClass)
		return json.Unmarshal(data, c.Casm)
	default:
		return ErrUnknownClassFormat
	}
}

func (c CompiledClass) MarshalJSON() ([]byte, error) {
	if c.Deprecated != nil {
		return json.Marshal(c.Deprecated)
	}
	if c.Casm != nil {
		return json.Marshal(c.Casm)
	}
	return nil, ErrUnknownClassFormat
}
