package harbortest

import "github.com/safeharbor/harbor"

// Handler returns the configured results and counts the calls.
type Handler struct {
	checkCall   int
	CheckResult harbor.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult harbor.DeliverResult
	DeliverErr    error
}

var _ harbor.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx harbor.Context, db harbor.KVStore, tx harbor.Tx) (*harbor.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx harbor.Context, db harbor.KVStore, tx harbor.Tx) (*harbor.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int   { return h.checkCall }
func (h *Handler) DeliverCallCount() int { return h.deliverCall }
func (h *Handler) CallCount() int        { return h.checkCall + h.deliverCall }

// WriteHandler sets Key to Value on every call and then fails with Err, if
// set. Use it to test that a decorator rolls back or persists writes.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ harbor.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(ctx harbor.Context, db harbor.KVStore, tx harbor.Tx) (*harbor.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &harbor.CheckResult{}, nil
}

func (h *WriteHandler) Deliver(ctx harbor.Context, db harbor.KVStore, tx harbor.Tx) (*harbor.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &harbor.DeliverResult{}, nil
}

// PanicHandler panics on every call with Msg.
type PanicHandler struct {
	Msg string
}

var _ harbor.Handler = PanicHandler{}

func (p PanicHandler) Check(harbor.Context, harbor.KVStore, harbor.Tx) (*harbor.CheckResult, error) {
	panic(p.Msg)
}

func (p PanicHandler) Deliver(harbor.Context, harbor.KVStore, harbor.Tx) (*harbor.DeliverResult, error) {
	panic(p.Msg)
}
