package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
)

const (
	pathCreateMintMsg = "token/create_mint"
	pathIssueMsg      = "token/issue"
	pathTransferMsg   = "token/transfer"
)

// CreateMintMsg registers a new asset. It must be signed by the authority.
type CreateMintMsg struct {
	Metadata  *harbor.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Authority harbor.Address   `protobuf:"bytes,2,opt,name=authority,proto3,casttype=github.com/safeharbor/harbor.Address" json:"authority,omitempty"`
	Symbol    string           `protobuf:"bytes,3,opt,name=symbol,proto3" json:"symbol,omitempty"`
	Decimals  uint32           `protobuf:"varint,4,opt,name=decimals,proto3" json:"decimals,omitempty"`
}

func (m *CreateMintMsg) Reset()         { *m = CreateMintMsg{} }
func (m *CreateMintMsg) String() string { return proto.CompactTextString(m) }
func (*CreateMintMsg) ProtoMessage()    {}

var _ harbor.Msg = (*CreateMintMsg)(nil)

func (CreateMintMsg) Path() string { return pathCreateMintMsg }

func (m *CreateMintMsg) Validate() error {
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

// IssueMsg creates new tokens. It must be signed by the mint authority.
type IssueMsg struct {
	Metadata  *harbor.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Mint      harbor.Address   `protobuf:"bytes,2,opt,name=mint,proto3,casttype=github.com/safeharbor/harbor.Address" json:"mint,omitempty"`
	Recipient harbor.Address   `protobuf:"bytes,3,opt,name=recipient,proto3,casttype=github.com/safeharbor/harbor.Address" json:"recipient,omitempty"`
	Amount    uint64           `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *IssueMsg) Reset()         { *m = IssueMsg{} }
func (m *IssueMsg) String() string { return proto.CompactTextString(m) }
func (*IssueMsg) ProtoMessage()    {}

var _ harbor.Msg = (*IssueMsg)(nil)

func (IssueMsg) Path() string { return pathIssueMsg }

func (m *IssueMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Mint", m.Mint.Validate())
	errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrInvalidAmount)
	}
	return errs
}

// TransferMsg moves tokens between the holding accounts of two owners. It
// must be signed by the source owner.
type TransferMsg struct {
	Metadata    *harbor.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Mint        harbor.Address   `protobuf:"bytes,2,opt,name=mint,proto3,casttype=github.com/safeharbor/harbor.Address" json:"mint,omitempty"`
	Source      harbor.Address   `protobuf:"bytes,3,opt,name=source,proto3,casttype=github.com/safeharbor/harbor.Address" json:"source,omitempty"`
	Destination harbor.Address   `protobuf:"bytes,4,opt,name=destination,proto3,casttype=github.com/safeharbor/harbor.Address" json:"destination,omitempty"`
	Amount      uint64           `protobuf:"varint,5,opt,name=amount,proto3" json:"amount,omitempty"`
	Memo        string           `protobuf:"bytes,6,opt,name=memo,proto3" json:"memo,omitempty"`
}

func (m *TransferMsg) Reset()         { *m = TransferMsg{} }
func (m *TransferMsg) String() string { return proto.CompactTextString(m) }
func (*TransferMsg) ProtoMessage()    {}

var _ harbor.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string { return pathTransferMsg }

const maxMemoSize = 128

func (m *TransferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Mint", m.Mint.Validate())
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrInvalidAmount)
	}
	if len(m.Memo) > maxMemoSize {
		errs = errors.AppendField(errs, "Memo", errors.ErrInput)
	}
	return errs
}
