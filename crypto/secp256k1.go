package crypto

import (
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/safeharbor/harbor/errors"
)

// Compressed public key.
const secp256k1PubKeyLen = 33

// Messages are hashed with keccak256 before signing, the signature is the
// 64 byte [R || S] form without the recovery id.
func verifySecp256k1(pub, message, sig []byte) bool {
	if len(sig) != 64 {
		return false
	}
	return ethcrypto.VerifySignature(pub, ethcrypto.Keccak256(message), sig)
}

func signSecp256k1(priv, message []byte) (*Signature, error) {
	key, err := ethcrypto.ToECDSA(priv)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "secp256k1 private key: %s", err)
	}
	sig, err := ethcrypto.Sign(ethcrypto.Keccak256(message), key)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrSignature, "secp256k1: %s", err)
	}
	return &Signature{Type: Secp256k1, Data: sig[:64]}, nil
}

func publicSecp256k1(priv []byte) *PublicKey {
	key, err := ethcrypto.ToECDSA(priv)
	if err != nil {
		return nil
	}
	return &PublicKey{Type: Secp256k1, Data: ethcrypto.CompressPubkey(&key.PublicKey)}
}

// GenPrivKeySecp256k1 returns a random new secp256k1 private key.
func GenPrivKeySecp256k1() *PrivateKey {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Type: Secp256k1, Data: ethcrypto.FromECDSA(key)}
}
