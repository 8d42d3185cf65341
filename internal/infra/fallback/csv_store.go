package fallback

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/xavierca1/alboomx-bot/internal/entity"
)

// utf8BOM lets spreadsheet apps on Windows open the file as UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVStore is the local, append-only copy of every captured lead.
type CSVStore struct {
	path string
	mu   sync.Mutex
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// EnsureHeader creates the file with a BOM and the header row. An existing
// file is left untouched.
func (s *CSVStore) EnsureHeader() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.create()
	if errors.Is(err, os.ErrExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return f.Close()
}

// Append adds one row. A missing file (first use, or removed while running)
// is recreated with the BOM and header first.
func (s *CSVStore) Append(_ context.Context, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.create()
	if errors.Is(err, os.ErrExist) {
		f, err = os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open %s: %w", s.path, err)
		}
	} else if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	w.Flush()
	return w.Error()
}

// create makes a new file holding the BOM and header. It returns an error
// wrapping os.ErrExist when the file is already there.
func (s *CSVStore) create() (*os.File, error) {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", s.path, err)
	}

	if _, err := f.Write(utf8BOM); err != nil {
		f.Close()
		return nil, fmt.Errorf("write %s: %w", s.path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(entity.Header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write %s: %w", s.path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, fmt.Errorf("write %s: %w", s.path, err)
	}
	return f, nil
}

// ReadAll returns the data rows, header excluded.
func (s *CSVStore) ReadAll() ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", s.path, err)
		}
		rows = append(rows, rec)
	}

	if len(rows) > 0 && len(rows[0]) > 0 && rows[0][0] == entity.Header[0] {
		rows = rows[1:]
	}
	return rows, nil
}
