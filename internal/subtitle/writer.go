package subtitle

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
)

// WriteOptions controls how Write lays the file down.
type WriteOptions struct {
	// Encoding for the output text, UTF-8 when nil
	Encoding encoding.Encoding
	// Atomic writes a temp file next to the target and renames it over
	Atomic bool
}

// Write concatenates lines into path, replacing any existing file. Text the
// encoding cannot represent fails before the target is touched.
func Write(path string, lines []string, opts WriteOptions) error {
	data, err := encode(strings.Join(lines, ""), opts.Encoding)
	if err != nil {
		return &IOError{Op: "encode", Path: path, Err: err}
	}

	if err := ensureDir(path); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}

	if opts.Atomic {
		err = writeAtomic(path, data)
	} else {
		err = writeOverwrite(path, data)
	}
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

func encode(text string, enc encoding.Encoding) ([]byte, error) {
	if isUTF8(enc) {
		return []byte(text), nil
	}
	return enc.NewEncoder().Bytes([]byte(text))
}

func writeOverwrite(path string, data []byte) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(file)
	if _, err := writer.Write(data); err != nil {
		_ = file.Close()
		return err
	}
	if err := writer.Flush(); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".subscroll-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, 0644)

	writer := bufio.NewWriter(tmp)
	if _, err := writer.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := writer.Flush(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}
