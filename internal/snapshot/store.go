package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"

	"speakerline/internal/services"
)

// WriteOptions controls snapshot encoding.
type WriteOptions struct {
	Pretty bool
}

// IsCompressed reports whether path names a gzip snapshot.
func IsCompressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".gz")
}

// Encode renders v as JSON without HTML escaping.
func Encode(v any, opts WriteOptions) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if opts.Pretty {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write stores v at path. Concurrent writers to the same path are
// serialized through a lock file kept under LockDir, so the output directory
// only ever holds snapshots, and readers never observe a partially written
// snapshot.
func Write(path string, v any, opts WriteOptions) error {
	data, err := Encode(v, opts)
	if err != nil {
		return services.Wrap(services.ErrValidation, "snapshot", "encode", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return services.Wrap(services.ErrConfiguration, "snapshot", "create directory", dir, err)
	}

	lockFile, err := lockPath(path)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "snapshot", "lock", path, err)
	}
	lock := flock.New(lockFile)
	if err := lock.Lock(); err != nil {
		return services.Wrap(services.ErrConfiguration, "snapshot", "lock", path, err)
	}
	defer func() { _ = lock.Unlock() }()

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "snapshot", "create temp file", dir, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if err := writePayload(tmp, data, IsCompressed(path)); err != nil {
		_ = tmp.Close()
		cleanup()
		return services.Wrap(services.ErrValidation, "snapshot", "write", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return services.Wrap(services.ErrValidation, "snapshot", "sync", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return services.Wrap(services.ErrValidation, "snapshot", "close", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return services.Wrap(services.ErrValidation, "snapshot", "rename", path, err)
	}
	return nil
}

// LockDir holds the per-snapshot lock files.
func LockDir() string {
	return filepath.Join(os.TempDir(), "speakerline-locks")
}

// lockPath maps a snapshot path to a stable lock file name derived from its
// absolute path.
func lockPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	dir := LockDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(abs))).String()
	return filepath.Join(dir, name+".lock"), nil
}

func writePayload(w io.Writer, data []byte, compressed bool) error {
	if !compressed {
		_, err := w.Write(data)
		return err
	}
	zw := gzip.NewWriter(w)
	if _, err := zw.Write(data); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}

// ReadRaw returns the decompressed JSON bytes stored at path.
func ReadRaw(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "snapshot", "read", fmt.Sprintf("snapshot %q not found", path), nil)
		}
		return nil, services.Wrap(services.ErrValidation, "snapshot", "read", path, err)
	}
	if !IsCompressed(path) {
		return data, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "snapshot", "decompress", path, err)
	}
	defer zr.Close()
	plain, err := io.ReadAll(zr)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "snapshot", "decompress", path, err)
	}
	return plain, nil
}

// Read validates the snapshot at path against the schema for kind and
// decodes it into v.
func Read(path string, kind Kind, v any) error {
	data, err := ReadRaw(path)
	if err != nil {
		return err
	}
	issues, err := Validate(kind, data)
	if err != nil {
		return err
	}
	if len(issues) > 0 {
		return services.Wrap(services.ErrValidation, "snapshot", "validate", fmt.Sprintf("%s: %s", path, strings.Join(issues, "; ")), nil)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return services.Wrap(services.ErrValidation, "snapshot", "decode", path, err)
	}
	return nil
}

// ReadTranscript loads a transcript snapshot.
func ReadTranscript(path string) (Transcript, error) {
	var t Transcript
	err := Read(path, KindTranscript, &t)
	return t, err
}

// ReadQA loads a question/answer snapshot.
func ReadQA(path string) (QA, error) {
	var q QA
	err := Read(path, KindQA, &q)
	return q, err
}
