// FILE: lixenwraith/sdklog/storage.go
package sdklog

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Everything in this file runs on the file worker only.

// writeRecord appends data to slot 1, rotating first when slot 1 has reached
// the ceiling. Slot 1 may exceed the ceiling by the last record written.
func (s *FileSink) writeRecord(data []byte) error {
	size, err := s.activeSize()
	if err != nil {
		return err
	}
	if size >= s.limit {
		if err := s.rotate(); err != nil {
			// Keep appending to slot 1 rather than losing the record
			internalLog(s.internalErrors, "failed to rotate log files: %v\n", err)
		}
	}

	path := s.slotPath(1)
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmtErrorf("failed to open log file '%s': %w", path, err)
	}

	n, writeErr := file.Write(data)
	syncErr := file.Sync()
	closeErr := file.Close()

	if fi, err := os.Stat(path); err == nil {
		s.state.ActiveSize.Store(fi.Size())
	} else {
		s.state.ActiveSize.Add(int64(n))
	}

	if writeErr != nil {
		return fmtErrorf("failed to write to log file '%s': %w", path, writeErr)
	}
	if syncErr != nil {
		return fmtErrorf("failed to sync log file '%s': %w", path, syncErr)
	}
	if closeErr != nil {
		return fmtErrorf("failed to close log file '%s': %w", path, closeErr)
	}
	return nil
}

// activeSize returns the current size of slot 1, zero if it does not exist
func (s *FileSink) activeSize() (int64, error) {
	fi, err := os.Stat(s.slotPath(1))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmtErrorf("failed to stat active log file: %w", err)
	}
	return fi.Size(), nil
}

// rotate discards slot N and shifts every remaining slot up by one, leaving
// slot 1 absent.
func (s *FileSink) rotate() error {
	oldest := s.slotPath(s.count)
	if err := os.Remove(oldest); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmtErrorf("failed to remove oldest log file '%s': %w", oldest, err)
	}

	for i := s.count - 1; i >= 1; i-- {
		from := s.slotPath(i)
		if _, err := os.Stat(from); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmtErrorf("failed to stat log file '%s': %w", from, err)
		}
		to := s.slotPath(i + 1)
		if err := os.Rename(from, to); err != nil {
			return fmtErrorf("failed to rename log file from '%s' to '%s': %w", from, to, err)
		}
	}

	s.state.ActiveSize.Store(0)
	s.state.TotalRotations.Add(1)
	return nil
}

// concat copies slots 1..N in slot order to w, skipping absent slots
func (s *FileSink) concat(w io.Writer) error {
	for i := 1; i <= s.count; i++ {
		path := s.slotPath(i)
		file, err := os.Open(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmtErrorf("failed to open log file '%s': %w", path, err)
		}
		_, err = io.Copy(w, file)
		file.Close()
		if err != nil {
			return fmtErrorf("failed to read log file '%s': %w", path, err)
		}
	}
	return nil
}

// mergeInto appends slots 1..N to an external file line by line
func (s *FileSink) mergeInto(path string) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmtErrorf("failed to resolve merge target '%s': %w", path, err)
	}
	for _, managed := range s.Paths() {
		if abs, err := filepath.Abs(managed); err == nil && abs == target {
			return fmtErrorf("merge target '%s' is a managed log file", path)
		}
	}

	out, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmtErrorf("failed to open merge target '%s': %w", path, err)
	}
	w := bufio.NewWriter(out)

	var mergeErr error
	for i := 1; i <= s.count && mergeErr == nil; i++ {
		mergeErr = copyLines(w, s.slotPath(i))
	}

	if err := w.Flush(); err != nil {
		mergeErr = combineErrors(mergeErr, fmtErrorf("failed to write merge target '%s': %w", path, err))
	}
	if err := out.Close(); err != nil {
		mergeErr = combineErrors(mergeErr, fmtErrorf("failed to close merge target '%s': %w", path, err))
	}
	return mergeErr
}

// copyLines writes each line of the file at path to w, newline terminated.
// A missing file is not an error.
func copyLines(w *bufio.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmtErrorf("failed to open log file '%s': %w", path, err)
	}
	defer file.Close()

	r := bufio.NewReader(file)
	for {
		line, err := r.ReadString('\n')
		if len(line) > 0 {
			if _, werr := w.WriteString(line); werr != nil {
				return fmtErrorf("failed to write merged line: %w", werr)
			}
			if line[len(line)-1] != '\n' {
				if werr := w.WriteByte('\n'); werr != nil {
					return fmtErrorf("failed to write merged line: %w", werr)
				}
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmtErrorf("failed to read log file '%s': %w", path, err)
		}
	}
}

// fileCount returns how many slots currently exist
func (s *FileSink) fileCount() int {
	count := 0
	for _, p := range s.Paths() {
		if _, err := os.Stat(p); err == nil {
			count++
		}
	}
	return count
}
