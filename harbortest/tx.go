package harbortest

import (
	"github.com/safeharbor/harbor"
)

// Tx carries a single message. Err, when set, is returned by GetMsg.
type Tx struct {
	Msg harbor.Msg
	Err error
}

var _ harbor.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (harbor.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg is a message that only knows its route. It is never serialized.
type Msg struct {
	RoutePath string
	// Err if set is returned by Validate.
	Err error
}

var _ harbor.Msg = (*Msg)(nil)

func (m *Msg) Reset()         { *m = Msg{} }
func (m *Msg) String() string { return "harbortest.Msg{" + m.RoutePath + "}" }
func (*Msg) ProtoMessage()    {}

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
