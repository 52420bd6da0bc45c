package validator_test

import (
	"testing"

	"github.com/NethermindEth/junovm/core/felt"
	"github.com/NethermindEth/junovm/validator"
	"github.com/stretchr/testify/assert"
)

func TestValidatorFelt(t *testing.T) {
	type request struct {
		Address *felt.Felt `validate:"required"`
		Value   felt.Felt  `validate:"required"`
	}

	assert.NoError(t, validator.Validator().Struct(request{Address: &felt.Zero, Value: felt.One}))
	assert.Error(t, validator.Validator().Struct(request{Value: felt.One}))
	assert.Same(t, validator.Validator(), validator.Validator())
}
