package sn2core

import (
	"fmt"

	"github.com/NethermindEth/junovm/core"
	"github.com/NethermindEth/junovm/core/felt"
	"github.com/NethermindEth/junovm/starknet"
	"github.com/NethermindEth/junovm/utils"
	"github.com/NethermindEth/junovm/validator"
)

var v3Fields = []string{
	"Nonce", "Signature", "ResourceBounds", "Tip", "NonceDAMode", "FeeDAMode", "PaymasterData",
}

// requiredFields lists the wire fields each transaction kind and version must carry.
var requiredFields = map[starknet.TransactionType]map[uint64][]string{
	starknet.TxnInvoke: {
		0: {"ContractAddress", "EntryPointSelector", "CallData", "MaxFee", "Signature"},
		1: {"SenderAddress", "CallData", "MaxFee", "Nonce", "Signature"},
		3: append([]string{"SenderAddress", "CallData", "AccountDeploymentData"}, v3Fields...),
	},
	starknet.TxnDeclare: {
		0: {"ClassHash", "SenderAddress", "MaxFee", "Signature"},
		1: {"ClassHash", "SenderAddress", "MaxFee", "Signature", "Nonce"},
		2: {"ClassHash", "SenderAddress", "MaxFee", "Signature", "Nonce", "CompiledClassHash"},
		3: append([]string{"ClassHash", "SenderAddress", "CompiledClassHash", "AccountDeploymentData"}, v3Fields...),
	},
	starknet.TxnDeployAccount: {
		1: {"ClassHash", "ContractAddressSalt", "ConstructorCallData", "MaxFee", "Nonce", "Signature"},
		3: append([]string{"ClassHash", "ContractAddressSalt", "ConstructorCallData"}, v3Fields...),
	},
	starknet.TxnL1Handler: {
		0: {"ContractAddress", "EntryPointSelector", "CallData", "Nonce"},
	},
}

// AdaptEnvelope converts the envelope into a core transaction. A missing transaction
// hash is derived for chainID, and a missing deploy account address is computed.
func AdaptEnvelope(envelope *starknet.TransactionEnvelope, chainID *felt.Felt) (core.Transaction, error) {
	txn, err := AdaptTransaction(&envelope.Txn, envelope.QueryBit)
	if err != nil {
		return nil, err
	}

	if envelope.TxnHash != nil {
		setTransactionHash(txn, envelope.TxnHash)
		return txn, nil
	}

	hash, err := core.TransactionHash(txn, chainID)
	if err != nil {
		return nil, fmt.Errorf("txn_hash is missing: %w", err)
	}
	setTransactionHash(txn, hash)
	return txn, nil
}

func setTransactionHash(txn core.Transaction, hash *felt.Felt) {
	switch t := txn.(type) {
	case *core.InvokeTransaction:
		t.TransactionHash = hash
	case *core.DeclareTransaction:
		t.TransactionHash = hash
	case *core.DeployAccountTransaction:
		t.TransactionHash = hash
	case *core.L1HandlerTransaction:
		t.TransactionHash = hash
	}
}

func AdaptTransaction(variant *starknet.TxnVariant, queryBit bool) (core.Transaction, error) {
	versions, ok := requiredFields[variant.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTransaction, variant.Type)
	}
	fields, ok := versions[variant.Version]
	if !ok {
		return nil, fmt.Errorf("%w: %s version %d", ErrUnsupportedTransaction, variant.Type, variant.Version)
	}

	t := &variant.Transaction
	if err := validator.Validator().StructPartial(t, fields...); err != nil {
		return nil, fmt.Errorf("invalid %s v%d: %w", variant.Type, variant.Version, err)
	}

	version := core.NewTransactionVersion(variant.Version)
	if queryBit {
		version = core.NewQueryVersion(variant.Version)
	}

	switch variant.Type {
	case starknet.TxnInvoke:
		return adaptInvokeTransaction(t, version)
	case starknet.TxnDeclare:
		return adaptDeclareTransaction(t, version)
	case starknet.TxnDeployAccount:
		return adaptDeployAccountTransaction(t, version)
	case starknet.TxnL1Handler:
		return adaptL1HandlerTransaction(t, version), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTransaction, variant.Type)
	}
}

func adaptInvokeTransaction(t *starknet.Transaction, version *core.TransactionVersion) (*core.InvokeTransaction, error) {
	invoke := &core.InvokeTransaction{
		CallData:             utils.DerefSlice(t.CallData),
		TransactionSignature: utils.DerefSlice(t.Signature),
		MaxFee:               t.MaxFee,
		ContractAddress:      t.ContractAddress,
		Version:              version,
		EntryPointSelector:   t.EntryPointSelector,
		Nonce:                t.Nonce,
		SenderAddress:        t.SenderAddress,
	}
	if version.Is(3) {
		resourceFields, err := adaptResourceFields(t)
		if err != nil {
			return nil, err
		}
		invoke.ResourceFields = resourceFields
		invoke.AccountDeploymentData = utils.DerefSlice(t.AccountDeploymentData)
	}
	return invoke, nil
}

func adaptDeclareTransaction(t *starknet.Transaction, version *core.TransactionVersion) (*core.DeclareTransaction, error) {
	declare := &core.DeclareTransaction{
		ClassHash:            t.ClassHash,
		SenderAddress:        t.SenderAddress,
		MaxFee:               t.MaxFee,
		TransactionSignature: utils.DerefSlice(t.Signature),
		Nonce:                t.Nonce,
		Version:              version,
		CompiledClassHash:    t.CompiledClassHash,
	}
	if declare.Nonce == nil {
		declare.Nonce = new(felt.Felt)
	}
	if version.Is(3) {
		resourceFields, err := adaptResourceFields(t)
		if err != nil {
			return nil, err
		}
		declare.ResourceFields = resourceFields
		declare.AccountDeploymentData = utils.DerefSlice(t.AccountDeploymentData)
	}
	return declare, nil
}

func adaptDeployAccountTransaction(t *starknet.Transaction,
	version *core.TransactionVersion,
) (*core.DeployAccountTransaction, error) {
	deployAccount := &core.DeployAccountTransaction{
		ContractAddressSalt:  t.ContractAddressSalt,
		ContractAddress:      t.ContractAddress,
		ClassHash:            t.ClassHash,
		ConstructorCallData:  utils.DerefSlice(t.ConstructorCallData),
		Version:              version,
		MaxFee:               t.MaxFee,
		TransactionSignature: utils.DerefSlice(t.Signature),
		Nonce:                t.Nonce,
	}
	if deployAccount.ContractAddress == nil {
		deployAccount.ContractAddress = core.ContractAddress(&felt.Zero, deployAccount.ClassHash,
			deployAccount.ContractAddressSalt, deployAccount.ConstructorCallData)
	}
	if version.Is(3) {
		resourceFields, err := adaptResourceFields(t)
		if err != nil {
			return nil, err
		}
		deployAccount.ResourceFields = resourceFields
	}
	return deployAccount, nil
}

func adaptL1HandlerTransaction(t *starknet.Transaction, version *core.TransactionVersion) *core.L1HandlerTransaction {
	return &core.L1HandlerTransaction{
		ContractAddress:    t.ContractAddress,
		EntryPointSelector: t.EntryPointSelector,
		Nonce:              t.Nonce,
		CallData:           utils.DerefSlice(t.CallData),
		Version:            version,
	}
}

func adaptResourceFields(t *starknet.Transaction) (core.ResourceFields, error) {
	if !t.Tip.IsUint64() {
		return core.ResourceFields{}, fmt.Errorf("tip %v out of range", t.Tip)
	}
	fields := core.ResourceFields{
		ResourceBounds: make(map[core.Resource]core.ResourceBounds, len(*t.ResourceBounds)),
		Tip:            t.Tip.Uint64(),
		PaymasterData:  utils.DerefSlice(t.PaymasterData),
		NonceDAMode:    core.DataAvailabilityMode(*t.NonceDAMode),
		FeeDAMode:      core.DataAvailabilityMode(*t.FeeDAMode),
	}
	for resource, bounds := range *t.ResourceBounds {
		if bounds.MaxAmount == nil || bounds.MaxPricePerUnit == nil {
			return core.ResourceFields{}, fmt.Errorf("incomplete bounds for resource %d", resource)
		}
		if !bounds.MaxAmount.IsUint64() {
			return core.ResourceFields{}, fmt.Errorf("max amount %v out of range", bounds.MaxAmount)
		}
		fields.ResourceBounds[core.Resource(resource)] = core.ResourceBounds{
			MaxAmount:       bounds.MaxAmount.Uint64(),
			MaxPricePerUnit: bounds.MaxPricePerUnit,
		}
	}
	return fields, nil
}
