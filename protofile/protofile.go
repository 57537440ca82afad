// Package protofile loads and saves PROTO files.
//
// Save only touches the disk when the document was changed since it was
// loaded, and then first keeps the original text next to the file with a
// ".bak" suffix.
package protofile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/signadot/wbproto/encode"
	"github.com/signadot/wbproto/ir"
	"github.com/signadot/wbproto/parse"
)

// ErrIO matches every error caused by reading or writing a file.
var ErrIO = errors.New("i/o error")

// BackupSuffix is appended to the path of the backup written by Save.
const BackupSuffix = ".bak"

func ioErr(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIO, op, path, err)
}

// Load reads and parses the file at path.
func Load(path string, opts ...parse.ParseOption) (*ir.Document, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, ioErr("read", path, err)
	}
	opts = append([]parse.ParseOption{parse.ParseFilename(path)}, opts...)
	return parse.Parse(d, opts...)
}

// Save writes doc to path if it was mutated, after writing the text doc
// was loaded from to path+".bak".  It reports whether anything was
// written.  On success doc is marked clean.
func Save(doc *ir.Document, path string, opts ...encode.EncodeOption) (bool, error) {
	if !doc.Mutated() {
		return false, nil
	}
	mode := fileMode(path)
	if err := os.WriteFile(path+BackupSuffix, doc.Source(), mode); err != nil {
		return false, ioErr("write", path+BackupSuffix, err)
	}
	if err := write(doc, path, mode, opts); err != nil {
		return false, err
	}
	return true, nil
}

// SaveAs writes doc to path whether or not it was mutated.  No backup is
// made.
func SaveAs(doc *ir.Document, path string, opts ...encode.EncodeOption) error {
	return write(doc, path, fileMode(path), opts)
}

func write(doc *ir.Document, path string, mode fs.FileMode, opts []encode.EncodeOption) error {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(doc, buf, opts...); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), mode); err != nil {
		return ioErr("write", path, err)
	}
	doc.MarkClean(buf.Bytes())
	return nil
}

func fileMode(path string) fs.FileMode {
	fi, err := os.Stat(path)
	if err != nil {
		return 0o644
	}
	return fi.Mode().Perm()
}
