package vm

import (
	"encoding/json"

	"github.com/NethermindEth/junovm/adapters/sn2core"
	"github.com/NethermindEth/junovm/core"
	"github.com/NethermindEth/junovm/starknet"
)

// ParseClass parses a compiled class in either the CASM or the Cairo 0 JSON format.
func ParseClass(data []byte) (core.ContractClass, error) {
	var class starknet.CompiledClass
	if err := json.Unmarshal(data, &class); err != nil {
		return nil, err
	}
	return sn2core.AdaptCompiledClass(&class)
}
