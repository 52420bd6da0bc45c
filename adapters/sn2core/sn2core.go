package sn2core

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/Masterminds/semver/v3"
	"github.com/NethermindEth/junovm/core"
	"github.com/NethermindEth/junovm/starknet"
	"github.com/NethermindEth/junovm/utils"
	"github.com/NethermindEth/junovm/validator"
	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
)

var ErrUnsupportedTransaction = errors.New("unsupported transaction")

func AdaptCompiledClass(class *starknet.CompiledClass) (core.ContractClass, error) {
	switch {
	case class.Casm != nil:
		return AdaptCasmClass(class.Casm)
	case class.Deprecated != nil:
		return AdaptDeprecatedCairoClass(class.Deprecated)
	default:
		return nil, starknet.ErrUnknownClassFormat
	}
}

func AdaptCasmClass(class *starknet.CasmClass) (*core.CasmClass, error) {
	if err := validator.Validator().Struct(class); err != nil {
		return nil, err
	}

	prime, ok := new(big.Int).SetString(class.Prime, 0)
	if !ok || prime.Cmp(fp.Modulus()) != 0 {
		return nil, fmt.Errorf("unexpected prime %q", class.Prime)
	}

	var compilerVersion *semver.Version
	if class.CompilerVersion != "" {
		var err error
		if compilerVersion, err = semver.NewVersion(class.CompilerVersion); err != nil {
			return nil, fmt.Errorf("compiler version %q: %w", class.CompilerVersion, err)
		}
	}

	casm := &core.CasmClass{
		Prime:           class.Prime,
		Bytecode:        class.Bytecode,
		Hints:           class.Hints,
		PythonicHints:   class.PythonicHints,
		CompilerVersion: compilerVersion,
		External:        utils.Map(class.EntryPoints.External, adaptCompiledEntryPoint),
		L1Handler:       utils.Map(class.EntryPoints.L1Handler, adaptCompiledEntryPoint),
		Constructor:     utils.Map(class.EntryPoints.Constructor, adaptCompiledEntryPoint),
	}
	if class.BytecodeSegmentLengths != nil {
		casm.BytecodeSegmentLengths = adaptSegmentLengths(*class.BytecodeSegmentLengths)
	}
	return casm, nil
}

func adaptCompiledEntryPoint(ep starknet.CompiledEntryPoint) core.EntryPoint {
	return core.EntryPoint{
		Selector: ep.Selector,
		Offset:   ep.Offset,
		Builtins: ep.Builtins,
	}
}

func adaptSegmentLengths(l starknet.SegmentLengths) core.SegmentLengths {
	return core.SegmentLengths{
		Length:   l.Length,
		Children: utils.Map(l.Children, adaptSegmentLengths),
	}
}

func AdaptDeprecatedCairoClass(class *starknet.DeprecatedCairoClass) (*core.Cairo0Class, error) {
	if err := validator.Validator().Struct(class); err != nil {
		return nil, err
	}

	cairo0 := &core.Cairo0Class{
		Abi:     class.Abi,
		Program: class.Program,
	}
	var err error
	if cairo0.Externals, err = adaptEntryPoints(class.EntryPoints.External); err != nil {
		return nil, err
	}
	if cairo0.L1Handlers, err = adaptEntryPoints(class.EntryPoints.L1Handler); err != nil {
		return nil, err
	}
	if cairo0.Constructors, err = adaptEntryPoints(class.EntryPoints.Constructor); err != nil {
		return nil, err
	}
	return cairo0, nil
}

func adaptEntryPoints(eps []starknet.EntryPoint) ([]core.EntryPoint, error) {
	if eps == nil {
		return nil, nil
	}
	result := make([]core.EntryPoint, len(eps))
	for i, ep := range eps {
		if !ep.Offset.IsUint64() {
			return nil, fmt.Errorf("entry point %v offset %v out of range", ep.Selector, ep.Offset)
		}
		result[i] = core.EntryPoint{Selector: ep.Selector, Offset: ep.Offset.Uint64()}
	}
	return result, nil
}
