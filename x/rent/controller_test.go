package rent

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
	"github.com/safeharbor/harbor/harbortest"
	"github.com/safeharbor/harbor/store"
	"github.com/safeharbor/harbor/x/token"
	. "github.com/smartystreets/goconvey/convey"
)

func TestController(t *testing.T) {
	Convey("Given a configured rent mint", t, func() {
		owner := harbortest.NewCondition()
		payer := harbortest.NewCondition()
		account := harbortest.NewCondition().Address()
		usdc := token.MintAddress("USDC")

		db := store.MemStore()
		genesis := map[string]interface{}{
			"conf": map[string]interface{}{
				"rent": Configuration{
					Metadata:        &harbor.Metadata{Schema: 1},
					Owner:           owner.Address(),
					Mint:            usdc,
					LamportsPerByte: 2,
					AccountOverhead: 10,
				},
			},
			"token": token.Genesis{
				Mints:    []token.GenesisMint{{Authority: owner.Address(), Symbol: "USDC"}},
				Accounts: []token.GenesisAccount{{Owner: payer.Address(), Symbol: "USDC", Amount: 100}},
			},
		}
		raw, err := json.Marshal(genesis)
		So(err, ShouldBeNil)
		var opts harbor.Options
		So(json.Unmarshal(raw, &opts), ShouldBeNil)
		So(Initializer{}.FromGenesis(opts, db), ShouldBeNil)
		So(token.Initializer{}.FromGenesis(opts, db), ShouldBeNil)

		ctx := context.Background()
		ctrl := NewController(&harbortest.Auth{Signer: payer})
		tokens := token.NewController(nil)

		Convey("Required counts the overhead", func() {
			got, err := ctrl.Required(db, 5)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, 30)
		})

		Convey("When the payer allocates an account", func() {
			dep, err := ctrl.Allocate(ctx, db, payer.Address(), account, 20)
			So(err, ShouldBeNil)
			So(dep.Amount, ShouldEqual, 60)

			Convey("The rent is moved to the pool", func() {
				bal, err := tokens.Balance(db, payer.Address(), usdc)
				So(err, ShouldBeNil)
				So(bal, ShouldEqual, 40)
				bal, err = tokens.Balance(db, PoolCondition.Address(), usdc)
				So(err, ShouldBeNil)
				So(bal, ShouldEqual, 60)
			})

			Convey("The same account cannot be allocated twice", func() {
				_, err := ctrl.Allocate(ctx, db, payer.Address(), account, 1)
				So(errors.ErrDuplicate.Is(err), ShouldBeTrue)
			})

			Convey("Release refunds the whole deposit", func() {
				recipient := harbortest.NewCondition().Address()
				refunded, err := NewController(&harbortest.Auth{}).Release(ctx, db, account, recipient)
				So(err, ShouldBeNil)
				So(refunded, ShouldEqual, 60)

				bal, err := tokens.Balance(db, recipient, usdc)
				So(err, ShouldBeNil)
				So(bal, ShouldEqual, 60)

				_, err = ctrl.Deposit(db, account)
				So(errors.ErrNotFound.Is(err), ShouldBeTrue)

				_, err = ctrl.Release(ctx, db, account, recipient)
				So(errors.ErrNotFound.Is(err), ShouldBeTrue)
			})
		})

		Convey("Allocation fails without enough funds", func() {
			_, err := ctrl.Allocate(ctx, db, payer.Address(), account, 100)
			So(errors.ErrInsufficientAmount.Is(err), ShouldBeTrue)
		})

		Convey("Allocation fails without the payer signature", func() {
			stranger := NewController(&harbortest.Auth{Signer: harbortest.NewCondition()})
			_, err := stranger.Allocate(ctx, db, payer.Address(), account, 1)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
		})

		Convey("The owner can lower the overhead", func() {
			r := make(router)
			RegisterRoutes(r, &harbortest.Auth{Signer: owner})
			msg := &UpdateConfigurationMsg{
				Metadata: &harbor.Metadata{Schema: 1},
				Patch:    &Configuration{AccountOverhead: 1},
			}
			_, err := r[msg.Path()].Deliver(ctx, db, &harbortest.Tx{Msg: msg})
			So(err, ShouldBeNil)

			got, err := ctrl.Required(db, 5)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, 12)
		})
	})
}

type router map[string]harbor.Handler

func (r router) Handle(path string, h harbor.Handler) { r[path] = h }
