package crypto

import (
	"golang.org/x/crypto/ed25519"
)

const ed25519PubKeyLen = ed25519.PublicKeySize

func verifyEd25519(pub, message, sig []byte) bool {
	if len(pub) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), message, sig)
}

func signEd25519(priv, message []byte) *Signature {
	bz := ed25519.Sign(ed25519.PrivateKey(priv), message)
	return &Signature{Type: Ed25519, Data: bz}
}

func publicEd25519(priv []byte) *PublicKey {
	pub := ed25519.PrivateKey(priv).Public().(ed25519.PublicKey)
	return &PublicKey{Type: Ed25519, Data: pub}
}

// GenPrivKeyEd25519 returns a random new private key.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Type: Ed25519, Data: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness, or
// for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	priv := ed25519.NewKeyFromSeed(seed)
	return &PrivateKey{Type: Ed25519, Data: priv}
}
