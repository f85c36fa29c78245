package keystore

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/LevanIlashvili/stylish-go-app/internal/crypto"
)

const fileExt = ".sealed"

var validKey = regexp.MustCompile(`^[a-z0-9_]+$`)

// FileStore is a SecureStore that keeps one sealed file per key in a directory.
// Every value is encrypted with scrypt + AES-GCM under the store password.
type FileStore struct {
	dir      string
	password []byte
	params   crypto.Params
	logger   *slog.Logger

	rename func(oldpath, newpath string) error
}

// NewFileStore opens (creating if needed) a sealed store in dir.
// The password is copied; call Close to wipe it.
func NewFileStore(dir string, password []byte, params crypto.Params, logger *slog.Logger) (*FileStore, error) {
	if len(password) == 0 {
		return nil, errors.New("password cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create keystore directory: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	pw := make([]byte, len(password))
	copy(pw, password)
	return &FileStore{dir: dir, password: pw, params: params, logger: logger, rename: os.Rename}, nil
}

func (s *FileStore) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, key+fileExt), nil
}

func (s *FileStore) SetItem(key, value string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	plain := []byte(value)
	defer clear(plain)

	sealed, err := crypto.Seal(plain, s.password, s.params)
	if err != nil {
		return fmt.Errorf("failed to seal %s: %w", key, err)
	}
	if err := s.writeFileAtomic(p, sealed, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) GetItem(key string) (string, bool, error) {
	p, err := s.path(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	plain, err := crypto.Open(data, s.password)
	if err != nil {
		return "", false, fmt.Errorf("failed to open %s: %w", key, err)
	}
	defer clear(plain)
	return string(plain), true, nil
}

func (s *FileStore) DeleteItem(key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Rekey re-seals every stored item under newPassword.
// Items are decrypted first so a wrong current password changes nothing. All
// items are sealed to temp files before any is renamed into place; if a rename
// fails the items already committed are sealed again under the old password.
func (s *FileStore) Rekey(newPassword []byte, keys ...string) error {
	if len(newPassword) == 0 {
		return errors.New("password cannot be empty")
	}

	var batch []rekeyItem
	defer func() {
		for _, it := range batch {
			if it.tmp != "" {
				_ = os.Remove(it.tmp)
			}
		}
	}()

	for _, k := range keys {
		v, ok, err := s.GetItem(k)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		p, _ := s.path(k)

		plain := []byte(v)
		sealed, err := crypto.Seal(plain, newPassword, s.params)
		clear(plain)
		if err != nil {
			return fmt.Errorf("failed to seal %s: %w", k, err)
		}
		tmp, err := writeTemp(s.dir, sealed, 0o600)
		if err != nil {
			return fmt.Errorf("failed to stage %s: %w", k, err)
		}
		batch = append(batch, rekeyItem{key: k, path: p, tmp: tmp, value: v})
	}

	for i := range batch {
		if err := s.rename(batch[i].tmp, batch[i].path); err != nil {
			s.logger.Error("rekey interrupted, restoring previous password", "key", batch[i].key, "error", err)
			s.restore(batch[:i])
			return fmt.Errorf("failed to commit %s: %w", batch[i].key, err)
		}
		batch[i].tmp = ""
	}

	pw := make([]byte, len(newPassword))
	copy(pw, newPassword)
	clear(s.password)
	s.password = pw
	return nil
}

type rekeyItem struct {
	key, path, tmp, value string
}

// restore seals committed items again under the current password.
func (s *FileStore) restore(committed []rekeyItem) {
	for _, it := range committed {
		if err := s.SetItem(it.key, it.value); err != nil {
			s.logger.Error("failed to restore item after rekey", "key", it.key, "error", err)
		}
	}
}

// Close wipes the in-memory password.
func (s *FileStore) Close() {
	clear(s.password)
}

// writeFileAtomic writes data to a temp file in the same directory and renames it into place.
func (s *FileStore) writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := writeTemp(filepath.Dir(filename), data, perm)
	if err != nil {
		return err
	}
	if err := s.rename(tmp, filename); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// writeTemp writes data to a synced temp file in dir and returns its name.
func writeTemp(dir string, data []byte, perm os.FileMode) (string, error) {
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	var success bool
	defer func() {
		if !success {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return "", fmt.Errorf("failed to chmod temp file: %w", err)
	}
	success = true
	return tmp.Name(), nil
}
