package ranking

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

var ErrMalformedRecord = errors.New("malformed ranking record")

// FileStore keeps the ranking in a text file, one "<player> <score>" per line.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the ranking file. A missing file is an empty ranking.
func (s *FileStore) Load(_ context.Context) (map[string]int, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]int{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parseRecords(f)
}

func parseRecords(f *os.File) (map[string]int, error) {
	scores := map[string]int{}
	scanner := bufio.NewScanner(f)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedRecord, line, text)
		}
		score, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, line, err)
		}
		scores[fields[0]] = score
	}

	return scores, scanner.Err()
}

// Save replaces the ranking file. The new contents are written next to it
// and renamed into place.
func (s *FileStore) Save(_ context.Context, scores map[string]int) error {
	players := make([]string, 0, len(scores))
	for p := range scores {
		if p == "" || strings.ContainsFunc(p, unicode.IsSpace) {
			return fmt.Errorf("%w: player %q", ErrMalformedRecord, p)
		}
		players = append(players, p)
	}
	sort.Strings(players)

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, p := range players {
		fmt.Fprintf(w, "%s %d\n", p, scores[p])
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}
