package harbortest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/store/iavl"
)

// CommitKVStore returns a leveldb backed iavl store in a temporary
// directory. Call cleanup once done.
func CommitKVStore(t testing.TB) (db harbor.CommitKVStore, cleanup func()) {
	t.Helper()

	dir, err := ioutil.TempDir("", "harbortest")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}
	cs, err := iavl.NewCommitStore(dir, "db")
	if err != nil {
		os.RemoveAll(dir)
		t.Fatalf("cannot open commit store: %s", err)
	}
	return cs, func() { os.RemoveAll(dir) }
}
