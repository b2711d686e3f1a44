package escrow

import (
	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
	"github.com/safeharbor/harbor/orm"
	"github.com/safeharbor/harbor/x/rent"
	"github.com/safeharbor/harbor/x/token"
)

// closeEscrow moves the whole vault to recipient, then closes the vault
// and deletes the record. The rent of both goes back to the maker. It
// returns the amount moved out of the vault.
func closeEscrow(
	ctx harbor.Context,
	db harbor.KVStore,
	tokens token.Controller,
	rents rent.Controller,
	bucket orm.Bucket,
	addr harbor.Address,
	escrow *Escrow,
	recipient harbor.Address,
) (uint64, error) {
	record, err := escrow.Condition()
	if err != nil {
		return 0, errors.Wrap(err, "record condition")
	}
	if !record.Address().Equals(addr) {
		return 0, errors.Wrapf(errors.ErrState, "escrow %s stored under %s", record.Address(), addr)
	}
	// The record signs for its own vault from here on.
	ctx = withRecord(ctx, record)

	amount, err := tokens.Balance(db, addr, escrow.MintDeposit)
	if err != nil {
		return 0, err
	}
	if amount > 0 {
		if err := tokens.Transfer(ctx, db, escrow.MintDeposit, addr, recipient, amount); err != nil {
			return 0, errors.Wrap(err, "empty vault")
		}
	}
	if err := tokens.CloseAccount(ctx, db, addr, escrow.MintDeposit); err != nil {
		return 0, errors.Wrap(err, "close vault")
	}
	if _, err := rents.Release(ctx, db, VaultAddress(addr, escrow.MintDeposit), escrow.Maker); err != nil {
		return 0, errors.Wrap(err, "vault rent")
	}
	if err := bucket.Delete(db, addr); err != nil {
		return 0, errors.Wrap(err, "delete escrow")
	}
	if _, err := rents.Release(ctx, db, addr, escrow.Maker); err != nil {
		return 0, errors.Wrap(err, "record rent")
	}
	return amount, nil
}
