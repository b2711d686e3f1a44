package crypto

import (
	"github.com/gogo/protobuf/proto"
	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
)

// ExtensionName is used for the conditions we get from signatures.
const ExtensionName = "sigs"

// Supported key algorithms.
const (
	Ed25519   = "ed25519"
	Secp256k1 = "secp256k1"
)

// PubKey represents a crypto public key we use.
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() harbor.Condition
}

// Signer is the functionality we use from a private key. No serializing to
// support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// PublicKey is the serialized form of a public key of any of the supported
// algorithms.
type PublicKey struct {
	Type string `protobuf:"bytes,1,opt,name=type,proto3" json:"type,omitempty"`
	Data []byte `protobuf:"bytes,2,opt,name=data,proto3" json:"data,omitempty"`
}

func (m *PublicKey) Reset()         { *m = PublicKey{} }
func (m *PublicKey) String() string { return proto.CompactTextString(m) }
func (*PublicKey) ProtoMessage()    {}

// PrivateKey is the serialized form of a private key of any of the
// supported algorithms.
type PrivateKey struct {
	Type string `protobuf:"bytes,1,opt,name=type,proto3" json:"type,omitempty"`
	Data []byte `protobuf:"bytes,2,opt,name=data,proto3" json:"data,omitempty"`
}

func (m *PrivateKey) Reset()         { *m = PrivateKey{} }
func (m *PrivateKey) String() string { return proto.CompactTextString(m) }
func (*PrivateKey) ProtoMessage()    {}

// Signature is a signature created by one of the supported algorithms.
type Signature struct {
	Type string `protobuf:"bytes,1,opt,name=type,proto3" json:"type,omitempty"`
	Data []byte `protobuf:"bytes,2,opt,name=data,proto3" json:"data,omitempty"`
}

func (m *Signature) Reset()         { *m = Signature{} }
func (m *Signature) String() string { return proto.CompactTextString(m) }
func (*Signature) ProtoMessage()    {}

var _ PubKey = (*PublicKey)(nil)

// Verify verifies the signature was created with this message and public
// key. A signature of another algorithm never verifies.
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if p == nil || sig == nil || sig.Type != p.Type {
		return false
	}
	switch p.Type {
	case Ed25519:
		return verifyEd25519(p.Data, message, sig.Data)
	case Secp256k1:
		return verifySecp256k1(p.Data, message, sig.Data)
	default:
		return false
	}
}

// Condition encodes the public key into a condition. Returns nil for an
// unknown key type.
func (p *PublicKey) Condition() harbor.Condition {
	if p == nil || !knownType(p.Type) {
		return nil
	}
	return harbor.NewCondition(ExtensionName, p.Type, p.Data)
}

// Address is a shortcut for the address of the key condition.
func (p *PublicKey) Address() harbor.Address {
	return p.Condition().Address()
}

// Validate returns an error if the key type is unknown or the key data has
// an invalid length.
func (p *PublicKey) Validate() error {
	if p == nil {
		return errors.Wrap(errors.ErrEmpty, "public key")
	}
	switch p.Type {
	case Ed25519:
		if len(p.Data) != ed25519PubKeyLen {
			return errors.Wrapf(errors.ErrInput, "ed25519 public key length %d", len(p.Data))
		}
	case Secp256k1:
		if len(p.Data) != secp256k1PubKeyLen {
			return errors.Wrapf(errors.ErrInput, "secp256k1 public key length %d", len(p.Data))
		}
	default:
		return errors.Wrapf(errors.ErrType, "public key type %q", p.Type)
	}
	return nil
}

var _ Signer = (*PrivateKey)(nil)

// Sign returns a matching signature for this private key.
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	switch p.Type {
	case Ed25519:
		return signEd25519(p.Data, message), nil
	case Secp256k1:
		return signSecp256k1(p.Data, message)
	default:
		return nil, errors.Wrapf(errors.ErrType, "private key type %q", p.Type)
	}
}

// PublicKey returns the corresponding PublicKey. Returns nil for an unknown
// key type.
func (p *PrivateKey) PublicKey() *PublicKey {
	switch p.Type {
	case Ed25519:
		return publicEd25519(p.Data)
	case Secp256k1:
		return publicSecp256k1(p.Data)
	default:
		return nil
	}
}

func knownType(t string) bool {
	return t == Ed25519 || t == Secp256k1
}
