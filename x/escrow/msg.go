package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
)

const (
	pathCreateMsg = "escrow/create"
	pathTakeMsg   = "escrow/take"
	pathRefundMsg = "escrow/refund"
)

// CreateMsg opens an escrow. It must be signed by the maker.
type CreateMsg struct {
	Metadata      *harbor.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Maker         harbor.Address   `protobuf:"bytes,2,opt,name=maker,proto3,casttype=github.com/safeharbor/harbor.Address" json:"maker,omitempty"`
	Seed          uint64           `protobuf:"fixed64,3,opt,name=seed,proto3" json:"seed,omitempty"`
	MintDeposit   harbor.Address   `protobuf:"bytes,4,opt,name=mint_deposit,json=mintDeposit,proto3,casttype=github.com/safeharbor/harbor.Address" json:"mint_deposit,omitempty"`
	MintReceive   harbor.Address   `protobuf:"bytes,5,opt,name=mint_receive,json=mintReceive,proto3,casttype=github.com/safeharbor/harbor.Address" json:"mint_receive,omitempty"`
	DepositAmount uint64           `protobuf:"fixed64,6,opt,name=deposit_amount,json=depositAmount,proto3" json:"deposit_amount,omitempty"`
	ReceiveAmount uint64           `protobuf:"fixed64,7,opt,name=receive_amount,json=receiveAmount,proto3" json:"receive_amount,omitempty"`
	// MakerDepositAccount optionally names the holding account the deposit
	// is taken from. When set it must match the derived one.
	MakerDepositAccount harbor.Address `protobuf:"bytes,8,opt,name=maker_deposit_account,json=makerDepositAccount,proto3,casttype=github.com/safeharbor/harbor.Address" json:"maker_deposit_account,omitempty"`
}

func (m *CreateMsg) Reset()         { *m = CreateMsg{} }
func (m *CreateMsg) String() string { return proto.CompactTextString(m) }
func (*CreateMsg) ProtoMessage()    {}

var _ harbor.Msg = (*CreateMsg)(nil)

func (CreateMsg) Path() string { return pathCreateMsg }

func (m *CreateMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Maker", m.Maker.Validate())
	errs = errors.AppendField(errs, "MintDeposit", m.MintDeposit.Validate())
	errs = errors.AppendField(errs, "MintReceive", m.MintReceive.Validate())
	if m.DepositAmount == 0 {
		errs = errors.AppendField(errs, "DepositAmount", ErrInvalidAmount)
	}
	if m.ReceiveAmount == 0 {
		errs = errors.AppendField(errs, "ReceiveAmount", ErrInvalidAmount)
	}
	if m.MintDeposit.Equals(m.MintReceive) {
		errs = errors.AppendField(errs, "MintReceive", ErrSameAsset)
	}
	errs = errors.AppendField(errs, "MakerDepositAccount", validOptional(m.MakerDepositAccount))
	return errs
}

// TakeMsg fulfills an escrow. The taker pays the receive amount to the
// maker and gets the whole vault.
type TakeMsg struct {
	Metadata *harbor.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Taker    harbor.Address   `protobuf:"bytes,2,opt,name=taker,proto3,casttype=github.com/safeharbor/harbor.Address" json:"taker,omitempty"`
	// Escrow is the record address.
	Escrow harbor.Address `protobuf:"bytes,3,opt,name=escrow,proto3,casttype=github.com/safeharbor/harbor.Address" json:"escrow,omitempty"`
	// The following accounts are optional. When set they must match the
	// derived holding accounts.
	TakerReceiveAccount harbor.Address `protobuf:"bytes,4,opt,name=taker_receive_account,json=takerReceiveAccount,proto3,casttype=github.com/safeharbor/harbor.Address" json:"taker_receive_account,omitempty"`
	TakerDepositAccount harbor.Address `protobuf:"bytes,5,opt,name=taker_deposit_account,json=takerDepositAccount,proto3,casttype=github.com/safeharbor/harbor.Address" json:"taker_deposit_account,omitempty"`
	MakerReceiveAccount harbor.Address `protobuf:"bytes,6,opt,name=maker_receive_account,json=makerReceiveAccount,proto3,casttype=github.com/safeharbor/harbor.Address" json:"maker_receive_account,omitempty"`
}

func (m *TakeMsg) Reset()         { *m = TakeMsg{} }
func (m *TakeMsg) String() string { return proto.CompactTextString(m) }
func (*TakeMsg) ProtoMessage()    {}

var _ harbor.Msg = (*TakeMsg)(nil)

func (TakeMsg) Path() string { return pathTakeMsg }

func (m *TakeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Taker", m.Taker.Validate())
	errs = errors.AppendField(errs, "Escrow", m.Escrow.Validate())
	errs = errors.AppendField(errs, "TakerReceiveAccount", validOptional(m.TakerReceiveAccount))
	errs = errors.AppendField(errs, "TakerDepositAccount", validOptional(m.TakerDepositAccount))
	errs = errors.AppendField(errs, "MakerReceiveAccount", validOptional(m.MakerReceiveAccount))
	return errs
}

// RefundMsg cancels an escrow and returns the vault to the maker. It must
// be signed by the maker.
type RefundMsg struct {
	Metadata *harbor.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Maker    harbor.Address   `protobuf:"bytes,2,opt,name=maker,proto3,casttype=github.com/safeharbor/harbor.Address" json:"maker,omitempty"`
	Escrow   harbor.Address   `protobuf:"bytes,3,opt,name=escrow,proto3,casttype=github.com/safeharbor/harbor.Address" json:"escrow,omitempty"`
	// MakerDepositAccount is optional. When set it must match the derived
	// holding account.
	MakerDepositAccount harbor.Address `protobuf:"bytes,4,opt,name=maker_deposit_account,json=makerDepositAccount,proto3,casttype=github.com/safeharbor/harbor.Address" json:"maker_deposit_account,omitempty"`
}

func (m *RefundMsg) Reset()         { *m = RefundMsg{} }
func (m *RefundMsg) String() string { return proto.CompactTextString(m) }
func (*RefundMsg) ProtoMessage()    {}

var _ harbor.Msg = (*RefundMsg)(nil)

func (RefundMsg) Path() string { return pathRefundMsg }

func (m *RefundMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Maker", m.Maker.Validate())
	errs = errors.AppendField(errs, "Escrow", m.Escrow.Validate())
	errs = errors.AppendField(errs, "MakerDepositAccount", validOptional(m.MakerDepositAccount))
	return errs
}

func validOptional(a harbor.Address) error {
	if len(a) == 0 {
		return nil
	}
	return a.Validate()
}
