package crypto

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/safeharbor/harbor/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	keys := map[string]*PrivateKey{
		"ed25519":   GenPrivKeyEd25519(),
		"secp256k1": GenPrivKeySecp256k1(),
	}

	msg := []byte("create escrow")
	for name, priv := range keys {
		t.Run(name, func(t *testing.T) {
			pub := priv.PublicKey()
			require.NotNil(t, pub)
			require.NoError(t, pub.Validate())

			sig, err := priv.Sign(msg)
			require.NoError(t, err)
			assert.True(t, pub.Verify(msg, sig))
			assert.False(t, pub.Verify([]byte("refund escrow"), sig))

			cond := pub.Condition()
			require.NoError(t, cond.Validate())
			ext, typ, data, err := cond.Parse()
			require.NoError(t, err)
			assert.Equal(t, ExtensionName, ext)
			assert.Equal(t, name, typ)
			assert.Equal(t, []byte(pub.Data), data)
			assert.Equal(t, cond.Address(), pub.Address())
		})
	}
}

func TestSignatureOfAnotherAlgorithm(t *testing.T) {
	ed := GenPrivKeyEd25519()
	k1 := GenPrivKeySecp256k1()

	msg := []byte("take escrow")
	sig, err := k1.Sign(msg)
	require.NoError(t, err)
	assert.False(t, ed.PublicKey().Verify(msg, sig))
}

func TestDeterministicEd25519(t *testing.T) {
	seed := make([]byte, 32)
	a := PrivKeyEd25519FromSeed(seed)
	b := PrivKeyEd25519FromSeed(seed)
	assert.Equal(t, a.PublicKey(), b.PublicKey())
}

func TestPublicKeyValidate(t *testing.T) {
	var nilKey *PublicKey
	assert.True(t, errors.ErrEmpty.Is(nilKey.Validate()))
	assert.True(t, errors.ErrType.Is((&PublicKey{Type: "rsa", Data: []byte{1}}).Validate()))
	assert.True(t, errors.ErrInput.Is((&PublicKey{Type: Ed25519, Data: []byte{1}}).Validate()))
	assert.Nil(t, (&PublicKey{Type: "rsa"}).Condition())
}

func TestPublicKeySerialization(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	raw, err := proto.Marshal(pub)
	require.NoError(t, err)

	var got PublicKey
	require.NoError(t, proto.Unmarshal(raw, &got))
	assert.Equal(t, pub.Type, got.Type)
	assert.Equal(t, pub.Data, got.Data)
}
