package utils

import (
	"time"

	"github.com/safeharbor/harbor"
)

// Logging writes a log entry for every processed transaction.
//
// Failed transactions are logged at error level, delivered ones at info
// and checked ones at debug.
type Logging struct{}

var _ harbor.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx harbor.Context, store harbor.KVStore, tx harbor.Tx, next harbor.Checker) (*harbor.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, true)
	return res, err
}

func (Logging) Deliver(ctx harbor.Context, store harbor.KVStore, tx harbor.Tx, next harbor.Deliverer) (*harbor.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

func logDuration(ctx harbor.Context, tx harbor.Tx, start time.Time, msg string, err error, lowPrio bool) {
	logger := harbor.GetLogger(ctx).With(
		"path", harbor.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond,
	)
	// An empty message is still logged, the key values carry the
	// information.
	switch {
	case err != nil:
		logger.Error(msg, "err", err)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
