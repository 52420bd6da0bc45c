package core

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"

	"github.com/NethermindEth/junovm/core/crypto"
	"github.com/NethermindEth/junovm/core/felt"
	"github.com/ethereum/go-ethereum/common"
)

// Keep in sync with the execution engine's query version base.
var queryBit = new(felt.Felt).SetBigInt(new(big.Int).Lsh(big.NewInt(1), 128))

// TransactionVersion is the version field of a transaction. Versions with the query
// bit (2^128) set mark transactions that are only estimated and never charged.
type TransactionVersion felt.Felt

func NewTransactionVersion(v uint64) *TransactionVersion {
	return (*TransactionVersion)(felt.NewFromUint64(v))
}

// NewQueryVersion returns v with the query bit set.
func NewQueryVersion(v uint64) *TransactionVersion {
	version := new(felt.Felt).Add(queryBit, felt.NewFromUint64(v))
	return (*TransactionVersion)(version)
}

func (v *TransactionVersion) AsFelt() *felt.Felt {
	return (*felt.Felt)(v)
}

func (v *TransactionVersion) SetUint64(u64 uint64) *TransactionVersion {
	v.AsFelt().SetUint64(u64)
	return v
}

// Is checks if the version without the query bit equals u64.
func (v *TransactionVersion) Is(u64 uint64) bool {
	versionWithoutQueryBit := v.WithoutQueryBit()
	return versionWithoutQueryBit.AsFelt().Equal(felt.NewFromUint64(u64))
}

func (v *TransactionVersion) HasQueryBit() bool {
	return v.AsFelt().Cmp(queryBit) >= 0
}

// WithoutQueryBit removes the query bit from the version.
func (v *TransactionVersion) WithoutQueryBit() TransactionVersion {
	vFelt := *v.AsFelt()
	if v.HasQueryBit() {
		vFelt.Sub(&vFelt, queryBit)
	}
	return TransactionVersion(vFelt)
}

func (v *TransactionVersion) String() string {
	return v.AsFelt().String()
}

type Transaction interface {
	Hash() *felt.Felt
	Signature() []*felt.Felt
	TxVersion() *TransactionVersion
}

var (
	_ Transaction = (*DeployAccountTransaction)(nil)
	_ Transaction = (*DeclareTransaction)(nil)
	_ Transaction = (*InvokeTransaction)(nil)
	_ Transaction = (*L1HandlerTransaction)(nil)
)

type Resource uint32

const (
	ResourceL1Gas Resource = iota + 1
	ResourceL2Gas
	ResourceL1DataGas
)

func (r Resource) String() string {
	switch r {
	case ResourceL1Gas:
		return "L1_GAS"
	case ResourceL2Gas:
		return "L2_GAS"
	case ResourceL1DataGas:
		return "L1_DATA_GAS"
	default:
		return "<unknown>"
	}
}

type ResourceBounds struct {
	MaxAmount       uint64
	MaxPricePerUnit *felt.Felt
}

type DataAvailabilityMode uint32

const (
	DAModeL1 DataAvailabilityMode = iota
	DAModeL2
)

// Version 3 fields shared by account transactions.
type ResourceFields struct {
	ResourceBounds map[Resource]ResourceBounds
	Tip            uint64
	PaymasterData  []*felt.Felt
	NonceDAMode    DataAvailabilityMode
	FeeDAMode      DataAvailabilityMode
}

type DeployAccountTransaction struct {
	TransactionHash *felt.Felt
	// A random number used to distinguish between different instances of the contract.
	ContractAddressSalt *felt.Felt
	// The address of the contract, derived from the other fields when absent.
	ContractAddress *felt.Felt
	// The hash of the class which defines the contract's functionality.
	ClassHash *felt.Felt
	// The arguments passed to the constructor during deployment.
	ConstructorCallData []*felt.Felt
	Version             *TransactionVersion
	// The maximum fee that the sender is willing to pay for the transaction.
	MaxFee *felt.Felt
	// Additional information given by the sender, used to validate the transaction.
	TransactionSignature []*felt.Felt
	Nonce                *felt.Felt

	ResourceFields
}

func (d *DeployAccountTransaction) Hash() *felt.Felt {
	return d.TransactionHash
}

func (d *DeployAccountTransaction) Signature() []*felt.Felt {
	return d.TransactionSignature
}

func (d *DeployAccountTransaction) TxVersion() *TransactionVersion {
	return d.Version
}

type InvokeTransaction struct {
	TransactionHash *felt.Felt
	// The arguments that are passed to the validated and execute functions.
	CallData []*felt.Felt
	// Additional information given by the sender, used to validate the transaction.
	TransactionSignature []*felt.Felt
	// The maximum fee that the sender is willing to pay for the transaction
	MaxFee *felt.Felt
	// The address of the contract invoked by this transaction.
	ContractAddress *felt.Felt
	Version         *TransactionVersion

	// Version 0 fields
	// The encoding of the selector for the function invoked (the entry point in the contract)
	EntryPointSelector *felt.Felt

	// Version 1 fields
	Nonce *felt.Felt
	// The address of the sender of this transaction
	SenderAddress *felt.Felt

	// Version 3 fields
	ResourceFields
	AccountDeploymentData []*felt.Felt
}

func (i *InvokeTransaction) Hash() *felt.Felt {
	return i.TransactionHash
}

func (i *InvokeTransaction) Signature() []*felt.Felt {
	return i.TransactionSignature
}

func (i *InvokeTransaction) TxVersion() *TransactionVersion {
	return i.Version
}

type DeclareTransaction struct {
	TransactionHash *felt.Felt
	ClassHash       *felt.Felt
	// The address of the account initiating the transaction.
	SenderAddress *felt.Felt
	// The maximum fee that the sender is willing to pay for the transaction.
	MaxFee *felt.Felt
	// Additional information given by the sender, used to validate the transaction.
	TransactionSignature []*felt.Felt
	Nonce                *felt.Felt
	Version              *TransactionVersion

	// Version 2 fields
	CompiledClassHash *felt.Felt

	// Version 3 fields
	ResourceFields
	AccountDeploymentData []*felt.Felt
}

func (d *DeclareTransaction) Hash() *felt.Felt {
	return d.TransactionHash
}

func (d *DeclareTransaction) Signature() []*felt.Felt {
	return d.TransactionSignature
}

func (d *DeclareTransaction) TxVersion() *TransactionVersion {
	return d.Version
}

type L1HandlerTransaction struct {
	TransactionHash *felt.Felt
	// The address of the contract.
	ContractAddress *felt.Felt
	// The encoding of the selector for the function invoked (the entry point in the contract)
	EntryPointSelector *felt.Felt
	Nonce              *felt.Felt
	// The first element is the L1 sender address, followed by the message payload.
	CallData []*felt.Felt
	Version  *TransactionVersion
}

func (l *L1HandlerTransaction) Hash() *felt.Felt {
	return l.TransactionHash
}

func (l *L1HandlerTransaction) Signature() []*felt.Felt {
	return make([]*felt.Felt, 0)
}

func (l *L1HandlerTransaction) TxVersion() *TransactionVersion {
	return l.Version
}

// L1Sender returns the L1 address which sent the message handled by the transaction.
func (l *L1HandlerTransaction) L1Sender() (common.Address, error) {
	if len(l.CallData) == 0 {
		return common.Address{}, errors.New("l1 handler calldata is empty")
	}
	senderBytes := l.CallData[0].Bytes()
	for _, b := range senderBytes[:len(senderBytes)-common.AddressLength] {
		if b != 0 {
			return common.Address{}, fmt.Errorf("l1 sender %v is not an L1 address", l.CallData[0])
		}
	}
	return common.BytesToAddress(senderBytes[:]), nil
}

// ChainIDFelt encodes a chain id string such as "SN_MAIN" as a field element.
func ChainIDFelt(chainID string) *felt.Felt {
	return new(felt.Felt).SetBytes([]byte(chainID))
}

var ErrHashUnsupported = errors.New("transaction hash cannot be derived for this version")

// TransactionHash derives the hash of the transaction on the given chain.
func TransactionHash(transaction Transaction, chainID *felt.Felt) (*felt.Felt, error) {
	switch t := transaction.(type) {
	case *DeclareTransaction:
		return declareTransactionHash(t, chainID)
	case *InvokeTransaction:
		return invokeTransactionHash(t, chainID)
	case *L1HandlerTransaction:
		return l1HandlerTransactionHash(t, chainID)
	case *DeployAccountTransaction:
		return deployAccountTransactionHash(t, chainID)
	default:
		return nil, errors.New("unknown transaction")
	}
}

var (
	invokeFelt        = new(felt.Felt).SetBytes([]byte("invoke"))
	declareFelt       = new(felt.Felt).SetBytes([]byte("declare"))
	l1HandlerFelt     = new(felt.Felt).SetBytes([]byte("l1_handler"))
	deployAccountFelt = new(felt.Felt).SetBytes([]byte("deploy_account"))
)

func errInvalidTransactionVersion(t Transaction, version *TransactionVersion) error {
	return fmt.Errorf("invalid Transaction (type: %v) version: %v: %w",
		reflect.TypeOf(t), version.AsFelt().Text(felt.Base10), ErrHashUnsupported)
}

func invokeTransactionHash(i *InvokeTransaction, chainID *felt.Felt) (*felt.Felt, error) {
	if i.Version.Is(1) {
		return crypto.PedersenArray(
			invokeFelt,
			i.Version.AsFelt(),
			i.SenderAddress,
			&felt.Zero,
			crypto.PedersenArray(i.CallData...),
			i.MaxFee,
			chainID,
			i.Nonce,
		), nil
	}
	return nil, errInvalidTransactionVersion(i, i.Version)
}

func declareTransactionHash(d *DeclareTransaction, chainID *felt.Felt) (*felt.Felt, error) {
	switch {
	case d.Version.Is(1):
		return crypto.PedersenArray(
			declareFelt,
			d.Version.AsFelt(),
			d.SenderAddress,
			&felt.Zero,
			crypto.PedersenArray(d.ClassHash),
			d.MaxFee,
			chainID,
			d.Nonce,
		), nil
	case d.Version.Is(2):
		return crypto.PedersenArray(
			declareFelt,
			d.Version.AsFelt(),
			d.SenderAddress,
			&felt.Zero,
			crypto.PedersenArray(d.ClassHash),
			d.MaxFee,
			chainID,
			d.Nonce,
			d.CompiledClassHash,
		), nil
	default:
		return nil, errInvalidTransactionVersion(d, d.Version)
	}
}

func l1HandlerTransactionHash(l *L1HandlerTransaction, chainID *felt.Felt) (*felt.Felt, error) {
	if l.Version.Is(0) && l.Nonce != nil {
		return crypto.PedersenArray(
			l1HandlerFelt,
			l.Version.AsFelt(),
			l.ContractAddress,
			l.EntryPointSelector,
			crypto.PedersenArray(l.CallData...),
			&felt.Zero,
			chainID,
			l.Nonce,
		), nil
	}
	return nil, errInvalidTransactionVersion(l, l.Version)
}

func deployAccountTransactionHash(d *DeployAccountTransaction, chainID *felt.Felt) (*felt.Felt, error) {
	// There is no version 0 for deploy account
	if d.Version.Is(1) {
		callData := []*felt.Felt{d.ClassHash, d.ContractAddressSalt}
		callData = append(callData, d.ConstructorCallData...)
		return crypto.PedersenArray(
			deployAccountFelt,
			d.Version.AsFelt(),
			d.ContractAddress,
			&felt.Zero,
			crypto.PedersenArray(callData...),
			d.MaxFee,
			chainID,
			d.Nonce,
		), nil
	}
	return nil, errInvalidTransactionVersion(d, d.Version)
}
