package harbor

import (
	"encoding/json"
	"testing"

	"github.com/safeharbor/harbor/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionParse(t *testing.T) {
	cases := map[string]struct {
		cond     Condition
		wantExt  string
		wantType string
		wantData []byte
		wantErr  *errors.Error
	}{
		"valid condition": {
			cond:     NewCondition("escrow", "pda", []byte{1, 2, 3}),
			wantExt:  "escrow",
			wantType: "pda",
			wantData: []byte{1, 2, 3},
		},
		"data may contain slashes and newlines": {
			cond:     NewCondition("token", "mint", []byte("a/b\nc")),
			wantExt:  "token",
			wantType: "mint",
			wantData: []byte("a/b\nc"),
		},
		"extension too short": {
			cond:    NewCondition("x", "pda", []byte{1}),
			wantErr: errors.ErrInput,
		},
		"missing data": {
			cond:    Condition("escrow/pda/"),
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ext, typ, data, err := tc.cond.Parse()
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %v error, got %v", tc.wantErr, err)
			}
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, tc.wantExt, ext)
			assert.Equal(t, tc.wantType, typ)
			assert.Equal(t, tc.wantData, data)
			assert.NoError(t, tc.cond.Validate())
		})
	}
}

func TestAddressIsDeterministic(t *testing.T) {
	a := NewCondition("sigs", "ed25519", []byte("pubkey")).Address()
	b := NewCondition("sigs", "ed25519", []byte("pubkey")).Address()
	c := NewCondition("sigs", "ed25519", []byte("another")).Address()

	require.NoError(t, a.Validate())
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.Len(t, a, AddressLength)
}

func TestAddressJSON(t *testing.T) {
	cond := NewCondition("escrow", "pda", []byte{0xAB, 0xCD})
	addr := cond.Address()
	b32, err := addr.Bech32()
	require.NoError(t, err)

	cases := map[string]struct {
		json    string
		want    Address
		wantErr *errors.Error
	}{
		"hex": {
			json: `"` + addr.String() + `"`,
			want: addr,
		},
		"prefixed hex": {
			json: `"hex:` + addr.String() + `"`,
			want: addr,
		},
		"condition": {
			json: `"cond:escrow/pda/ABCD"`,
			want: addr,
		},
		"bech32": {
			json: `"bech32:` + b32 + `"`,
			want: addr,
		},
		"empty": {
			json: `""`,
			want: nil,
		},
		"unknown format": {
			json:    `"base64:AAAA"`,
			wantErr: errors.ErrType,
		},
		"invalid length": {
			json:    `"ABCD"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got Address
			err := json.Unmarshal([]byte(tc.json), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %v error, got %v", tc.wantErr, err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestAddressMarshalRoundTrip(t *testing.T) {
	addr := NewCondition("token", "hold", []byte("owner")).Address()
	raw, err := json.Marshal(addr)
	require.NoError(t, err)

	var got Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)
}

func TestConditionJSON(t *testing.T) {
	cond := NewCondition("rent", "pool", []byte{0x01})
	raw, err := json.Marshal(cond)
	require.NoError(t, err)
	assert.Equal(t, `"rent/pool/01"`, string(raw))

	var got Condition
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, cond, got)
}
