// Package remember keeps the "remember me" username between runs.
//
// The file holds the plain username and nothing else. It is a convenience for
// pre-filling the login prompt, not a credential store.
package remember

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"strings"
)

type File struct {
	Path string
}

func NewFile(path string) *File {
	return &File{Path: path}
}

// Save writes username when remember is true and removes the file otherwise.
func (f *File) Save(username string, remember bool) error {
	if !remember {
		err := os.Remove(f.Path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}
	return os.WriteFile(f.Path, []byte(username), 0o600)
}

// Load returns the remembered username, if any.
func (f *File) Load() (string, bool, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return "", false, scanner.Err()
	}
	username := strings.TrimSpace(scanner.Text())
	return username, username != "", nil
}
