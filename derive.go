package harbor

import (
	"crypto/sha256"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/safeharbor/harbor/errors"
)

const (
	// MaxSeeds is the maximum number of seeds a program condition can be
	// derived from.
	MaxSeeds = 16

	// MaxSeedLength is the maximum length of a single seed.
	MaxSeedLength = 32

	programMarker = "ProgramDerivedAddress"
)

// CreateProgramCondition derives the condition controlled by the given
// program from the seeds and the bump. The condition data is a digest that
// is not a valid secp256k1 public key, so that no private key can ever sign
// for the resulting address.
//
// The same program, seeds and bump always result in the same condition.
func CreateProgramCondition(program string, bump uint8, seeds ...[]byte) (Condition, error) {
	if err := validateSeeds(seeds); err != nil {
		return nil, err
	}
	digest := programDigest(program, bump, seeds)
	if onCurve(digest) {
		return nil, errors.Wrap(errors.ErrInput, "derived digest is a valid public key")
	}
	return NewCondition(program, "pda", digest), nil
}

// FindProgramCondition searches for the highest bump for which
// CreateProgramCondition succeeds, starting from 255. The bump must be
// kept in order to derive the condition again without searching.
func FindProgramCondition(program string, seeds ...[]byte) (Condition, uint8, error) {
	if err := validateSeeds(seeds); err != nil {
		return nil, 0, err
	}
	for bump := 255; bump >= 0; bump-- {
		digest := programDigest(program, uint8(bump), seeds)
		if !onCurve(digest) {
			return NewCondition(program, "pda", digest), uint8(bump), nil
		}
	}
	return nil, 0, errors.Wrap(errors.ErrState, "no bump results in an address without a key")
}

// FindProgramAddress is a shortcut to derive the program address along
// with the bump that was found.
func FindProgramAddress(program string, seeds ...[]byte) (Address, uint8, error) {
	c, bump, err := FindProgramCondition(program, seeds...)
	if err != nil {
		return nil, 0, err
	}
	return c.Address(), bump, nil
}

func validateSeeds(seeds [][]byte) error {
	if len(seeds) > MaxSeeds {
		return errors.Wrapf(errors.ErrInput, "too many seeds: %d", len(seeds))
	}
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return errors.Wrapf(errors.ErrInput, "seed %d too long: %d", i, len(s))
		}
	}
	return nil
}

func programDigest(program string, bump uint8, seeds [][]byte) []byte {
	h := sha256.New()
	for _, s := range seeds {
		_, _ = h.Write(s)
	}
	_, _ = h.Write([]byte{bump})
	_, _ = h.Write([]byte(program))
	_, _ = h.Write([]byte(programMarker))
	return h.Sum(nil)
}

// onCurve returns true if the digest is a valid x coordinate of a
// secp256k1 point, which means a private key might exist for it.
func onCurve(digest []byte) bool {
	_, err := crypto.DecompressPubkey(append([]byte{0x02}, digest...))
	return err == nil
}
