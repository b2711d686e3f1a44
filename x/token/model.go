package token

import (
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
	"github.com/safeharbor/harbor/orm"
)

// MaxDecimals is the greatest precision a mint may declare.
const MaxDecimals = 18

// AccountSize is the number of bytes a holding account occupies: owner,
// mint, an 8 byte balance and the lock flag.
const AccountSize = 2*harbor.AddressLength + 8 + 1

// IsSymbol checks the format of a mint symbol.
var IsSymbol = regexp.MustCompile(`^[A-Z][A-Z0-9]{2,7}$`).MatchString

// Mint describes a fungible asset.
type Mint struct {
	Metadata *harbor.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Authority is the only address allowed to issue new tokens.
	Authority harbor.Address `protobuf:"bytes,2,opt,name=authority,proto3,casttype=github.com/safeharbor/harbor.Address" json:"authority,omitempty"`
	Symbol    string         `protobuf:"bytes,3,opt,name=symbol,proto3" json:"symbol,omitempty"`
	Decimals  uint32         `protobuf:"varint,4,opt,name=decimals,proto3" json:"decimals,omitempty"`
	// Supply is the total amount issued so far.
	Supply uint64 `protobuf:"varint,5,opt,name=supply,proto3" json:"supply,omitempty"`
}

func (m *Mint) Reset()         { *m = Mint{} }
func (m *Mint) String() string { return proto.CompactTextString(m) }
func (*Mint) ProtoMessage()    {}

var _ orm.Model = (*Mint)(nil)

func (m *Mint) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Authority", m.Authority.Validate())
	if !IsSymbol(m.Symbol) {
		errs = errors.AppendField(errs, "Symbol", errors.ErrInput)
	}
	if m.Decimals > MaxDecimals {
		errs = errors.AppendField(errs, "Decimals", errors.ErrInput)
	}
	return errs
}

// Address returns the key the mint is stored under.
func (m *Mint) Address() harbor.Address {
	return MintAddress(m.Symbol)
}

// Account is a holding account. It keeps the balance of one mint for one
// owner.
type Account struct {
	Metadata *harbor.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner    harbor.Address   `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/safeharbor/harbor.Address" json:"owner,omitempty"`
	Mint     harbor.Address   `protobuf:"bytes,3,opt,name=mint,proto3,casttype=github.com/safeharbor/harbor.Address" json:"mint,omitempty"`
	Amount   uint64           `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
	// Locked accounts are controlled by a program. They accept funds only
	// while their owner is authenticated.
	Locked bool `protobuf:"varint,5,opt,name=locked,proto3" json:"locked,omitempty"`
}

func (m *Account) Reset()         { *m = Account{} }
func (m *Account) String() string { return proto.CompactTextString(m) }
func (*Account) ProtoMessage()    {}

var _ orm.Model = (*Account)(nil)

func (a *Account) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", a.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", a.Owner.Validate())
	errs = errors.AppendField(errs, "Mint", a.Mint.Validate())
	return errs
}

// Address returns the key the account is stored under.
func (a *Account) Address() harbor.Address {
	return HoldingAddress(a.Owner, a.Mint)
}

// MintAddress returns the address of the mint with given symbol.
func MintAddress(symbol string) harbor.Address {
	return harbor.NewCondition("token", "mint", []byte(symbol)).Address()
}

// HoldingAddress returns the address of the holding account of owner for
// given mint.
func HoldingAddress(owner, mint harbor.Address) harbor.Address {
	data := make([]byte, 0, len(owner)+len(mint))
	data = append(data, owner...)
	data = append(data, mint...)
	return harbor.NewCondition("token", "hold", data).Address()
}

// NewMintBucket returns the bucket of all mints, keyed by MintAddress.
func NewMintBucket() orm.Bucket {
	return orm.NewBucket("mints", &Mint{}).
		WithIndex("authority", mintAuthority, false)
}

func mintAuthority(m orm.Model) ([]byte, error) {
	mint, ok := m.(*Mint)
	if !ok {
		return nil, errors.WithType(errors.ErrType, m)
	}
	return mint.Authority, nil
}

// NewAccountBucket returns the bucket of all holding accounts, keyed by
// HoldingAddress and indexed by owner.
func NewAccountBucket() orm.Bucket {
	return orm.NewBucket("accts", &Account{}).
		WithIndex("owner", accountOwner, false)
}

func accountOwner(m orm.Model) ([]byte, error) {
	acc, ok := m.(*Account)
	if !ok {
		return nil, errors.WithType(errors.ErrType, m)
	}
	return acc.Owner, nil
}
