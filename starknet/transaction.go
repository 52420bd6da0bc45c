package starknet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/NethermindEth/junovm/core/felt"
)

type TransactionType uint8

const (
	Invalid TransactionType = iota
	TxnDeclare
	TxnDeploy
	TxnDeployAccount
	TxnInvoke
	TxnL1Handler
)

func (t TransactionType) String() string {
	switch t {
	case TxnDeclare:
		return "DECLARE"
	case TxnDeploy:
		return "DEPLOY"
	case TxnDeployAccount:
		return "DEPLOY_ACCOUNT"
	case TxnInvoke:
		return "INVOKE_FUNCTION"
	case TxnL1Handler:
		return "L1_HANDLER"
	default:
		return "<unknown>"
	}
}

func (t TransactionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// variantName is the name the execution engine's serde format uses for the kind.
func (t TransactionType) variantName() string {
	switch t {
	case TxnDeclare:
		return "Declare"
	case TxnDeploy:
		return "Deploy"
	case TxnDeployAccount:
		return "DeployAccount"
	case TxnInvoke:
		return "Invoke"
	case TxnL1Handler:
		return "L1Handler"
	default:
		return ""
	}
}

func transactionTypeFromVariant(name string) (TransactionType, error) {
	switch name {
	case "Declare":
		return TxnDeclare, nil
	case "Deploy":
		return TxnDeploy, nil
	case "DeployAccount":
		return TxnDeployAccount, nil
	case "Invoke":
		return TxnInvoke, nil
	case "L1Handler":
		return TxnL1Handler, nil
	default:
		return Invalid, fmt.Errorf("unknown transaction kind %q", name)
	}
}

type Resource uint32

const (
	ResourceL1Gas Resource = iota + 1
	ResourceL2Gas
	ResourceL1DataGas
)

func (r *Resource) UnmarshalJSON(data []byte) error {
	return r.UnmarshalText(bytes.Trim(data, `"`))
}

func (r *Resource) UnmarshalText(text []byte) error {
	switch string(text) {
	case "L1_GAS":
		*r = ResourceL1Gas
	case "L1_DATA_GAS":
		*r = ResourceL1DataGas
	case "L2_GAS":
		*r = ResourceL2Gas
	default:
		return fmt.Errorf("unknown resource: %q", string(text))
	}
	return nil
}

func (r Resource) MarshalText() ([]byte, error) {
	switch r {
	case ResourceL1Gas:
		return []byte("L1_GAS"), nil
	case ResourceL1DataGas:
		return []byte("L1_DATA_GAS"), nil
	case ResourceL2Gas:
		return []byte("L2_GAS"), nil
	default:
		return nil, errors.New("unknown resource")
	}
}

type DataAvailabilityMode uint32

const (
	DAModeL1 DataAvailabilityMode = iota
	DAModeL2
)

func (m DataAvailabilityMode) MarshalJSON() ([]byte, error) {
	switch m {
	case DAModeL1:
		return []byte(`"L1"`), nil
	case DAModeL2:
		return []byte(`"L2"`), nil
	default:
		return nil, errors.New("unknown data availability mode")
	}
}

func (m *DataAvailabilityMode) UnmarshalJSON(data []byte) error {
	switch string(bytes.Trim(data, `"`)) {
	case "L1", "0":
		*m = DAModeL1
	case "L2", "1":
		*m = DAModeL2
	default:
		return fmt.Errorf("unknown data availability mode: %s", data)
	}
	return nil
}

type ResourceBounds struct {
	MaxAmount       *felt.Felt `json:"max_amount" validate:"required"`
	MaxPricePerUnit *felt.Felt `json:"max_price_per_unit" validate:"required"`
}

// Transaction holds the fields of every transaction kind in the Starknet feeder
// naming. Which fields are required depends on the kind and version.
type Transaction struct {
	Version               *felt.Felt                   `json:"version,omitempty"`
	ContractAddress       *felt.Felt                   `json:"contract_address,omitempty" validate:"required"`
	ContractAddressSalt   *felt.Felt                   `json:"contract_address_salt,omitempty" validate:"required"`
	ClassHash             *felt.Felt                   `json:"class_hash,omitempty" validate:"required"`
	ConstructorCallData   *[]*felt.Felt                `json:"constructor_calldata,omitempty" validate:"required"`
	SenderAddress         *felt.Felt                   `json:"sender_address,omitempty" validate:"required"`
	MaxFee                *felt.Felt                   `json:"max_fee,omitempty" validate:"required"`
	Signature             *[]*felt.Felt                `json:"signature,omitempty" validate:"required"`
	CallData              *[]*felt.Felt                `json:"calldata,omitempty" validate:"required"`
	EntryPointSelector    *felt.Felt                   `json:"entry_point_selector,omitempty" validate:"required"`
	Nonce                 *felt.Felt                   `json:"nonce,omitempty" validate:"required"`
	CompiledClassHash     *felt.Felt                   `json:"compiled_class_hash,omitempty" validate:"required"`
	ResourceBounds        *map[Resource]ResourceBounds `json:"resource_bounds,omitempty" validate:"required"`
	Tip                   *felt.Felt                   `json:"tip,omitempty" validate:"required"`
	NonceDAMode           *DataAvailabilityMode        `json:"nonce_data_availability_mode,omitempty" validate:"required"`
	FeeDAMode             *DataAvailabilityMode        `json:"fee_data_availability_mode,omitempty" validate:"required"`
	AccountDeploymentData *[]*felt.Felt                `json:"account_deployment_data,omitempty" validate:"required"`
	PaymasterData         *[]*felt.Felt                `json:"paymaster_data,omitempty" validate:"required"`
}

// TxnVariant is the externally tagged transaction inside an envelope, for example
// {"Invoke": {"V1": {...}}} or {"L1Handler": {...}}.
type TxnVariant struct {
	Type        TransactionType
	Version     uint64
	Transaction Transaction
}

func (v *TxnVariant) UnmarshalJSON(data []byte) error {
	var kinds map[string]json.RawMessage
	if err := json.Unmarshal(data, &kinds); err != nil {
		return err
	}
	if len(kinds) != 1 {
		return fmt.Errorf("expected exactly one transaction kind, got %d", len(kinds))
	}

	for name, body := range kinds {
		txnType, err := transactionTypeFromVariant(name)
		if err != nil {
			return err
		}
		v.Type = txnType

		switch txnType {
		case TxnL1Handler, TxnDeploy:
			return v.unmarshalBody(body)
		default:
			return v.unmarshalVersioned(body)
		}
	}
	return nil
}

func (v *TxnVariant) unmarshalVersioned(data []byte) error {
	var versions map[string]json.RawMessage
	if err := json.Unmarshal(data, &versions); err != nil {
		return err
	}
	if len(versions) != 1 {
		return fmt.Errorf("expected exactly one %s version, got %d", v.Type.variantName(), len(versions))
	}

	for tag, body := range versions {
		version, err := strconv.ParseUint(strings.TrimPrefix(tag, "V"), 10, 64)
		if err != nil || !strings.HasPrefix(tag, "V") {
			return fmt.Errorf("invalid %s version tag %q", v.Type.variantName(), tag)
		}
		v.Version = version
		return v.unmarshalBody(body)
	}
	return nil
}

func (v *TxnVariant) unmarshalBody(data []byte) error {
	if err := json.Unmarshal(data, &v.Transaction); err != nil {
		return err
	}
	if v.Type == TxnL1Handler && v.Transaction.Version != nil {
		if !v.Transaction.Version.IsUint64() {
			return fmt.Errorf("l1 handler version %s out of range", v.Transaction.Version)
		}
		v.Version = v.Transaction.Version.Uint64()
	}
	return nil
}

func (v TxnVariant) MarshalJSON() ([]byte, error) {
	name := v.Type.variantName()
	if name == "" {
		return nil, errors.New("unknown transaction kind")
	}
	switch v.Type {
	case TxnL1Handler, TxnDeploy:
		return json.Marshal(map[string]any{name: v.Transaction})
	default:
		return json.Marshal(map[string]any{
			name: map[string]any{"V" + strconv.FormatUint(v.Version, 10): v.Transaction},
		})
	}
}

// TransactionEnvelope is the transaction payload handed over by the host.
type TransactionEnvelope struct {
	QueryBit    bool       `json:"query_bit"`
	Txn         TxnVariant `json:"txn"`
	TxnHash     *felt.Felt `json:"txn_hash,omitempty"`
	PaidFeeOnL1 *felt.Felt `json:"paid_fee_on_l1,omitempty"`
}

// UnmarshalEnvelope decodes a transaction envelope, rejecting payloads without a
// transaction.
func UnmarshalEnvelope(data []byte) (*TransactionEnvelope, error) {
	var envelope TransactionEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}
	if envelope.Txn.Type == Invalid {
		return nil, errors.New("transaction envelope has no txn")
	}
	return &envelope, nil
}
