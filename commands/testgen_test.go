package commands

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
	"github.com/safeharbor/harbor/harbortest/assert"
)

func TestTestGen(t *testing.T) {
	dir, err := ioutil.TempDir("", "testgen")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)
	out := filepath.Join(dir, "nested", "out")

	meta := &harbor.Metadata{Schema: 7}
	err = TestGenCmd([]Example{{Filename: "metadata", Obj: meta}}, []string{out})
	assert.Nil(t, err)

	js, err := ioutil.ReadFile(filepath.Join(out, "metadata.json"))
	assert.Nil(t, err)
	assert.Equal(t, "{\n  \"schema\": 7\n}", string(js))

	pb, err := ioutil.ReadFile(filepath.Join(out, "metadata.bin"))
	assert.Nil(t, err)
	var got harbor.Metadata
	assert.Nil(t, proto.Unmarshal(pb, &got))
	assert.Equal(t, uint32(7), got.Schema)

	err = TestGenCmd([]Example{{Filename: "../escape", Obj: meta}}, []string{out})
	assert.IsErr(t, errors.ErrInput, err)
}
