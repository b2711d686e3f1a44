package rent

import (
	"github.com/gogo/protobuf/proto"
	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
	"github.com/safeharbor/harbor/orm"
)

// Configuration is the rent price list, stored with gconf.
type Configuration struct {
	Metadata *harbor.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Owner may update the configuration.
	Owner harbor.Address `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/safeharbor/harbor.Address" json:"owner,omitempty"`
	// Mint is the asset rent is paid in.
	Mint            harbor.Address `protobuf:"bytes,3,opt,name=mint,proto3,casttype=github.com/safeharbor/harbor.Address" json:"mint,omitempty"`
	LamportsPerByte uint64         `protobuf:"varint,4,opt,name=lamports_per_byte,json=lamportsPerByte,proto3" json:"lamports_per_byte,omitempty"`
	// AccountOverhead is added to the size of every allocation.
	AccountOverhead uint64 `protobuf:"varint,5,opt,name=account_overhead,json=accountOverhead,proto3" json:"account_overhead,omitempty"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

func (c *Configuration) GetOwner() harbor.Address {
	return c.Owner
}

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	errs = errors.AppendField(errs, "Mint", c.Mint.Validate())
	return errs
}

// Deposit is the rent paid for one allocated address.
type Deposit struct {
	Metadata *harbor.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Payer    harbor.Address   `protobuf:"bytes,2,opt,name=payer,proto3,casttype=github.com/safeharbor/harbor.Address" json:"payer,omitempty"`
	Amount   uint64           `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Size     uint64           `protobuf:"varint,4,opt,name=size,proto3" json:"size,omitempty"`
	Mint     harbor.Address   `protobuf:"bytes,5,opt,name=mint,proto3,casttype=github.com/safeharbor/harbor.Address" json:"mint,omitempty"`
}

func (m *Deposit) Reset()         { *m = Deposit{} }
func (m *Deposit) String() string { return proto.CompactTextString(m) }
func (*Deposit) ProtoMessage()    {}

var _ orm.Model = (*Deposit)(nil)

func (d *Deposit) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", d.Metadata.Validate())
	errs = errors.AppendField(errs, "Payer", d.Payer.Validate())
	errs = errors.AppendField(errs, "Mint", d.Mint.Validate())
	return errs
}

// NewDepositBucket returns the bucket of deposits keyed by the allocated
// address and indexed by payer.
func NewDepositBucket() orm.Bucket {
	return orm.NewBucket("rents", &Deposit{}).
		WithIndex("payer", depositPayer, false)
}

func depositPayer(m orm.Model) ([]byte, error) {
	d, ok := m.(*Deposit)
	if !ok {
		return nil, errors.WithType(errors.ErrType, m)
	}
	return d.Payer, nil
}

// UpdateConfigurationMsg patches the rent configuration.
type UpdateConfigurationMsg struct {
	Metadata *harbor.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Patch    *Configuration   `protobuf:"bytes,2,opt,name=patch,proto3" json:"patch,omitempty"`
}

func (m *UpdateConfigurationMsg) Reset()         { *m = UpdateConfigurationMsg{} }
func (m *UpdateConfigurationMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateConfigurationMsg) ProtoMessage()    {}

var _ harbor.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string {
	return "rent/update_configuration"
}

func (m *UpdateConfigurationMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	return nil
}
