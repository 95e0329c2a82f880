package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	apperrors "mergebench/internal/errors"
)

// Store persists a single dataset and reads it back.
type Store interface {
	Save(data []int) error
	Load() ([]int, error)
}

// FileStore implements Store using a line-oriented text file, one decimal
// integer per line.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Save(data []int) error {
	return Save(s.path, data)
}

func (s *FileStore) Load() ([]int, error) {
	return Load(s.path)
}

// Save writes data to path, replacing any existing content.
func Save(path string, data []int) error {
	f, err := os.Create(path)
	if err != nil {
		return &apperrors.IOFailure{Op: "save", Path: path, Err: err}
	}

	if err := Write(f, data); err != nil {
		f.Close()
		return &apperrors.IOFailure{Op: "save", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &apperrors.IOFailure{Op: "save", Path: path, Err: err}
	}
	return nil
}

// Write emits data to w, one integer per line.
func Write(w io.Writer, data []int) error {
	bw := bufio.NewWriterSize(w, 64*1024)
	buf := make([]byte, 0, 24)
	for _, v := range data {
		buf = strconv.AppendInt(buf[:0], int64(v), 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Load reads the dataset stored at path.
func Load(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &apperrors.IOFailure{Op: "load", Path: path, Err: err}
	}
	defer f.Close()

	return Read(f, path)
}

// Read parses one integer per line from r, in order. Blank lines are skipped;
// any other line that is not an integer fails the whole read. name is only
// used for error context.
func Read(r io.Reader, name string) ([]int, error) {
	data := []int{}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		v, err := strconv.Atoi(text)
		if err != nil {
			return nil, &apperrors.IOFailure{
				Op:   "parse",
				Path: name,
				Line: line,
				Err:  fmt.Errorf("%q is not an integer", text),
			}
		}
		data = append(data, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, &apperrors.IOFailure{Op: "load", Path: name, Err: err}
	}
	return data, nil
}
