package commands

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/gogo/protobuf/proto"
	"github.com/safeharbor/harbor/errors"
)

// Example is written out as <Filename>.json and <Filename>.bin. Filename
// has no directory and no extension.
type Example struct {
	Filename string
	Obj      proto.Message
}

// TestGenCmd writes the JSON and protobuf encoding of every example into
// the directory given as the first argument ("testdata" by default).
// Clients use the files to check their own encoders.
func TestGenCmd(examples []Example, args []string) error {
	outdir := "testdata"
	if len(args) > 0 {
		outdir = args[0]
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return errors.Wrap(err, "cannot create output directory")
	}

	for _, ex := range examples {
		if ex.Filename == "" || filepath.Base(ex.Filename) != ex.Filename {
			return errors.Wrapf(errors.ErrInput, "invalid example name %q", ex.Filename)
		}
		js, err := json.MarshalIndent(ex.Obj, "", "  ")
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "%s: %s", ex.Filename, err)
		}
		pb, err := proto.Marshal(ex.Obj)
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "%s: %s", ex.Filename, err)
		}
		if err := ioutil.WriteFile(filepath.Join(outdir, ex.Filename+".json"), js, 0644); err != nil {
			return err
		}
		if err := ioutil.WriteFile(filepath.Join(outdir, ex.Filename+".bin"), pb, 0644); err != nil {
			return err
		}
	}
	return nil
}
