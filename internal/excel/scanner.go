package excel

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const filteredSuffix = "_filtered"

// Extensions excelize reads and writes. Legacy BIFF (.xls) workbooks are
// not among them.
var supportedExts = []string{".xlsx", ".xlsm"}

func supportedList() string {
	return strings.Join(supportedExts, ", ")
}

func hasExt(exts []string, ext string) bool {
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}

// IsSpreadsheet reports whether path has a recognized spreadsheet extension.
func IsSpreadsheet(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return hasExt(supportedExts, ext)
}

// ValidateInputFile checks that path exists, is a regular file and carries a
// spreadsheet extension.
func ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &NotFoundError{Path: path}
	}
	if err != nil {
		return &ReadError{Path: path, Err: fmt.Errorf("error checking file status: %w", err)}
	}
	if info.IsDir() {
		return &ReadError{Path: path, Err: fmt.Errorf("is a directory")}
	}

	if !IsSpreadsheet(path) {
		return &UnsupportedFormatError{Path: path, Ext: filepath.Ext(path)}
	}
	return nil
}

// OutputPath derives the destination for a filtered copy of input: same
// directory, base name suffixed with "_filtered", same extension.
func OutputPath(input string) string {
	dir := filepath.Dir(input)
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, name+filteredSuffix+ext)
}
