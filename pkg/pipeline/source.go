package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding/charmap"

	cferrors "github.com/matzehuels/codeflow/pkg/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadSource reads a source file from fs. A missing file is reported with
// [cferrors.ErrCodeFileNotFound] naming the path. Text that is not valid
// UTF-8 is decoded as Latin-1.
func ReadSource(fs afero.Fs, path string) ([]byte, error) {
	if err := cferrors.ValidateSourcePath(path); err != nil {
		return nil, err
	}
	info, err := fs.Stat(path)
	if os.IsNotExist(err) {
		return nil, cferrors.New(cferrors.ErrCodeFileNotFound, "file not found: %s", path)
	}
	if err != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeIO, err, "stat %s", path)
	}
	if info.IsDir() {
		return nil, cferrors.New(cferrors.ErrCodeInvalidInput, "%s is a directory", path)
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeIO, err, "read %s", path)
	}
	return decodeText(data)
}

func decodeText(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeIO, err, "decode source as Latin-1")
	}
	return out, nil
}

// DefaultOutputPath returns "<dir>/<base>_flowchart.<format>" for an input
// file, keeping it next to the input.
func DefaultOutputPath(input, format string) string {
	dir := filepath.Dir(input)
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(dir, base+"_flowchart."+format)
}

// WriteFile writes data to path on fs, creating parent directories.
func WriteFile(fs afero.Fs, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return cferrors.Wrap(cferrors.ErrCodeIO, err, "create %s", dir)
		}
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return cferrors.Wrap(cferrors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}
