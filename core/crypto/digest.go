package crypto

import "github.com/NethermindEth/junovm/core/felt"

type Digest interface {
	Update(...*felt.Felt) Digest
	Finish() *felt.Felt
}
