package app

import (
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
	"github.com/safeharbor/harbor/x/escrow"
	"github.com/safeharbor/harbor/x/rent"
	"github.com/safeharbor/harbor/x/sigs"
	"github.com/safeharbor/harbor/x/token"
)

// Tx is the transaction format of the harbor chain. The message is kept
// serialized together with its path so that the sign bytes do not depend
// on the set of messages a client knows about.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	MsgPath    string               `protobuf:"bytes,2,opt,name=msg_path,json=msgPath,proto3" json:"msg_path,omitempty"`
	MsgData    []byte               `protobuf:"bytes,3,opt,name=msg_data,json=msgData,proto3" json:"msg_data,omitempty"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

// make sure tx fulfills all interfaces
var _ harbor.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// messages lists every message this application routes. The value is the
// concrete type, used to create a fresh instance when decoding.
var messages = map[string]reflect.Type{}

func registerMsg(msgs ...harbor.Msg) {
	for _, m := range msgs {
		if _, ok := messages[m.Path()]; ok {
			panic("message registered twice: " + m.Path())
		}
		messages[m.Path()] = reflect.TypeOf(m).Elem()
	}
}

func init() {
	registerMsg(
		&token.CreateMintMsg{},
		&token.IssueMsg{},
		&token.TransferMsg{},
		&rent.UpdateConfigurationMsg{},
		&escrow.CreateMsg{},
		&escrow.TakeMsg{},
		&escrow.RefundMsg{},
	)
}

// NewTx wraps msg into an unsigned transaction.
func NewTx(msg harbor.Msg) (*Tx, error) {
	if _, ok := messages[msg.Path()]; !ok {
		return nil, errors.Wrapf(errors.ErrType, "unknown message %q", msg.Path())
	}
	raw, err := proto.Marshal(msg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	return &Tx{MsgPath: msg.Path(), MsgData: raw}, nil
}

// GetMsg decodes the message of the type registered for MsgPath.
func (tx *Tx) GetMsg() (harbor.Msg, error) {
	typ, ok := messages[tx.MsgPath]
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "unknown message %q", tx.MsgPath)
	}
	msg := reflect.New(typ).Interface().(harbor.Msg)
	if err := proto.Unmarshal(tx.MsgData, msg); err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	return msg, nil
}

func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the serialized transaction without signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{MsgPath: tx.MsgPath, MsgData: tx.MsgData}
	raw, err := proto.Marshal(&unsigned)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// Marshal serializes the transaction, signatures included.
func (tx *Tx) Marshal() ([]byte, error) {
	return proto.Marshal(tx)
}

// TxDecoder creates a Tx and unmarshals bytes into it.
func TxDecoder(raw []byte) (harbor.Tx, error) {
	if len(raw) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "empty transaction")
	}
	var tx Tx
	if err := proto.Unmarshal(raw, &tx); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return &tx, nil
}
