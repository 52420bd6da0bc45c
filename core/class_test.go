package core_test

import (
	"testing"

	"github.com/NethermindEth/junovm/core"
	"github.com/NethermindEth/junovm/core/felt"
	"github.com/stretchr/testify/assert"
)

func TestFindEntryPoint(t *testing.T) {
	transfer := core.SelectorFromName("transfer")
	constructor := core.SelectorFromName("constructor")

	classes := map[string]core.ContractClass{
		"cairo 0": &core.Cairo0Class{
			Externals:    []core.EntryPoint{{Selector: transfer, Offset: 12}},
			Constructors: []core.EntryPoint{{Selector: constructor, Offset: 3}},
		},
		"casm": &core.CasmClass{
			External:    []core.EntryPoint{{Selector: transfer, Offset: 12, Builtins: []string{"range_check"}}},
			Constructor: []core.EntryPoint{{Selector: constructor, Offset: 3}},
		},
	}
	for name, class := range classes {
		t.Run(name, func(t *testing.T) {
			ep, ok := core.FindEntryPoint(class, core.External, transfer)
			assert.True(t, ok)
			assert.Equal(t, uint64(12), ep.Offset)

			_, ok = core.FindEntryPoint(class, core.External, constructor)
			assert.False(t, ok)

			ep, ok = core.FindEntryPoint(class, core.Constructor, constructor)
			assert.True(t, ok)
			assert.Equal(t, uint64(3), ep.Offset)

			_, ok = core.FindEntryPoint(class, core.L1Handler, &felt.Zero)
			assert.False(t, ok)
		})
	}
}

func TestClassVersion(t *testing.T) {
	assert.Equal(t, uint64(0), new(core.Cairo0Class).Version())
	assert.Equal(t, uint64(1), new(core.CasmClass).Version())
}
