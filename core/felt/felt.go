package felt

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
	"github.com/fxamacker/cbor/v2"
)

const (
	Limbs = fp.Limbs // number of 64 bits words needed to represent a Element
	Bits  = fp.Bits  // number of bits needed to represent a Element
	Bytes = fp.Bytes // number of bytes needed to represent a Element
)

const (
	Base16 = 16
	Base10 = 10
)

var (
	// Zero felt constant
	Zero = Felt{}
	// One felt constant
	One = FromUint64(1)

	ErrValueTooLarge = errors.New("value too large for a field element")
)

// Felt is an element of the Stark field. Its canonical wire form is
// a 32-byte big-endian buffer.
type Felt struct {
	val fp.Element
}

func NewFelt(element *fp.Element) *Felt {
	return &Felt{
		val: *element,
	}
}

// FromBytes interprets e as a big-endian unsigned integer reduced mod p.
func FromBytes(e []byte) Felt {
	var f Felt
	f.SetBytes(e)
	return f
}

func FromUint64(v uint64) Felt {
	var f Felt
	f.SetUint64(v)
	return f
}

func NewFromUint64(v uint64) *Felt {
	f := FromUint64(v)
	return &f
}

// Impl returns the underlying field element type
func (z *Felt) Impl() *fp.Element {
	return &z.val
}

// SetBytes forwards the call to underlying field element implementation
func (z *Felt) SetBytes(e []byte) *Felt {
	z.val.SetBytes(e)
	return z
}

// SetBytesCanonical rejects inputs which do not fit in 32 bytes or encode
// a value greater or equal to the field modulus.
func (z *Felt) SetBytesCanonical(e []byte) error {
	if len(e) > Bytes {
		return ErrValueTooLarge
	}
	v := new(big.Int).SetBytes(e)
	if v.Cmp(fp.Modulus()) >= 0 {
		return ErrValueTooLarge
	}
	z.val.SetBigInt(v)
	return nil
}

// Bytes forwards the call to underlying field element implementation
func (z *Felt) Bytes() [32]byte {
	return z.val.Bytes()
}

// Marshal forwards the call to underlying field element implementation
func (z *Felt) Marshal() []byte {
	return z.val.Marshal()
}

// SetString accepts 0x prefixed hex strings and base 10 numbers.
func (z *Felt) SetString(number string) (*Felt, error) {
	if _, err := z.val.SetString(number); err != nil {
		return nil, err
	}
	return z, nil
}

// SetUint64 forwards the call to underlying field element implementation
func (z *Felt) SetUint64(v uint64) *Felt {
	z.val.SetUint64(v)
	return z
}

// Uint64 returns the value as uint64. The result is undefined when the
// value does not fit, see IsUint64.
func (z *Felt) Uint64() uint64 {
	return z.val.Uint64()
}

func (z *Felt) IsUint64() bool {
	return z.val.IsUint64()
}

func (z *Felt) SetBigInt(v *big.Int) *Felt {
	z.val.SetBigInt(v)
	return z
}

func (z *Felt) BigInt(res *big.Int) *big.Int {
	return z.val.BigInt(res)
}

// SetRandom forwards the call to underlying field element implementation
func (z *Felt) SetRandom() (*Felt, error) {
	if _, err := z.val.SetRandom(); err != nil {
		return nil, err
	}
	return z, nil
}

// String returns the 0x prefixed hex representation
func (z *Felt) String() string {
	return "0x" + z.val.Text(Base16)
}

// ShortString returns a shortened hex representation for logs
func (z *Felt) ShortString() string {
	hexStr := z.val.Text(Base16)
	if len(hexStr) <= 8 {
		return "0x" + hexStr
	}
	return fmt.Sprintf("0x%s...%s", hexStr[:4], hexStr[len(hexStr)-4:])
}

// Text forwards the call to underlying field element implementation
func (z *Felt) Text(base int) string {
	return z.val.Text(base)
}

// Equal forwards the call to underlying field element implementation
func (z *Felt) Equal(x *Felt) bool {
	return z.val.Equal(&x.val)
}

// IsOne forwards the call to underlying field element implementation
func (z *Felt) IsOne() bool {
	return z.val.IsOne()
}

// IsZero forwards the call to underlying field element implementation
func (z *Felt) IsZero() bool {
	return z.val.IsZero()
}

// Cmp forwards the call to underlying field element implementation
func (z *Felt) Cmp(x *Felt) int {
	return z.val.Cmp(&x.val)
}

// Add forwards the call to underlying field element implementation
func (z *Felt) Add(x, y *Felt) *Felt {
	z.val.Add(&x.val, &y.val)
	return z
}

// Sub forwards the call to underlying field element implementation
func (z *Felt) Sub(x, y *Felt) *Felt {
	z.val.Sub(&x.val, &y.val)
	return z
}

// Mul forwards the call to underlying field element implementation
func (z *Felt) Mul(x, y *Felt) *Felt {
	z.val.Mul(&x.val, &y.val)
	return z
}

// UnmarshalJSON accepts numbers and strings as input.
// Strings without a prefix are read as hex.
func (z *Felt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if len(s) > Bits*3 {
		return ErrValueTooLarge
	}
	if s == "" {
		return errors.New("empty field element")
	}

	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		if v, ok = new(big.Int).SetString(s, Base16); !ok {
			return errors.New("can't parse into a field element: " + s)
		}
	}
	if v.Sign() < 0 {
		return errors.New("negative field element: " + s)
	}
	z.val.SetBigInt(v)
	return nil
}

// MarshalJSON returns the quoted 0x prefixed hex representation
func (z Felt) MarshalJSON() ([]byte, error) {
	return []byte(`"` + z.String() + `"`), nil
}

// MarshalCBOR encodes the felt as a 32-byte byte string.
func (z Felt) MarshalCBOR() ([]byte, error) {
	b := z.Bytes()
	return cbor.Marshal(b[:])
}

func (z *Felt) UnmarshalCBOR(data []byte) error {
	var b []byte
	if err := cbor.Unmarshal(data, &b); err != nil {
		return err
	}
	return z.SetBytesCanonical(b)
}
