package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
	"github.com/safeharbor/harbor/orm"
)

// RecordSize is the number of bytes an escrow record occupies: seed,
// maker, both mints, receive amount and bump.
const RecordSize = 8 + 3*harbor.AddressLength + 8 + 1

// Escrow is the record of an open offer.
type Escrow struct {
	Metadata *harbor.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Seed     uint64           `protobuf:"fixed64,2,opt,name=seed,proto3" json:"seed,omitempty"`
	Maker    harbor.Address   `protobuf:"bytes,3,opt,name=maker,proto3,casttype=github.com/safeharbor/harbor.Address" json:"maker,omitempty"`
	// MintDeposit is the asset locked in the vault.
	MintDeposit harbor.Address `protobuf:"bytes,4,opt,name=mint_deposit,json=mintDeposit,proto3,casttype=github.com/safeharbor/harbor.Address" json:"mint_deposit,omitempty"`
	// MintReceive is the asset the maker asks for.
	MintReceive   harbor.Address `protobuf:"bytes,5,opt,name=mint_receive,json=mintReceive,proto3,casttype=github.com/safeharbor/harbor.Address" json:"mint_receive,omitempty"`
	ReceiveAmount uint64         `protobuf:"fixed64,6,opt,name=receive_amount,json=receiveAmount,proto3" json:"receive_amount,omitempty"`
	// Bump is the value found when the record address was derived.
	Bump uint32 `protobuf:"varint,7,opt,name=bump,proto3" json:"bump,omitempty"`
}

func (m *Escrow) Reset()         { *m = Escrow{} }
func (m *Escrow) String() string { return proto.CompactTextString(m) }
func (*Escrow) ProtoMessage()    {}

var _ orm.Model = (*Escrow)(nil)

func (e *Escrow) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", e.Metadata.Validate())
	errs = errors.AppendField(errs, "Maker", e.Maker.Validate())
	errs = errors.AppendField(errs, "MintDeposit", e.MintDeposit.Validate())
	errs = errors.AppendField(errs, "MintReceive", e.MintReceive.Validate())
	if e.MintDeposit.Equals(e.MintReceive) {
		errs = errors.AppendField(errs, "MintReceive", ErrSameAsset)
	}
	if e.ReceiveAmount == 0 {
		errs = errors.AppendField(errs, "ReceiveAmount", ErrInvalidAmount)
	}
	if e.Bump > 255 {
		errs = errors.AppendField(errs, "Bump", errors.ErrInput)
	}
	return errs
}

// Condition re-derives the program condition that owns the record and its
// vault.
func (e *Escrow) Condition() (harbor.Condition, error) {
	return RecordCondition(e.Maker, e.Seed, uint8(e.Bump))
}

// NewBucket returns the bucket of all escrows, keyed by record address and
// indexed by maker.
func NewBucket() orm.Bucket {
	return orm.NewBucket("esc", &Escrow{}).
		WithIndex("maker", makerIndex, false)
}

func makerIndex(m orm.Model) ([]byte, error) {
	e, ok := m.(*Escrow)
	if !ok {
		return nil, errors.WithType(errors.ErrType, m)
	}
	return e.Maker, nil
}
