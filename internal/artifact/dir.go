package artifact

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DirStore keeps one file per artifact under a directory.
type DirStore struct {
	dir string
}

var _ Store = (*DirStore)(nil)

// NewDirStore returns a store rooted at dir. The directory is created on
// first Save.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// Dir returns the root directory.
func (d *DirStore) Dir() string {
	return d.dir
}

func (d *DirStore) path(n Name) string {
	return filepath.Join(d.dir, string(n)+".gob")
}

// rename is replaced in tests to fail individual installs.
var rename = os.Rename

// Save writes every member to a temporary file, moves the current set aside
// and then installs the new files. Any failure restores the previous set, so
// readers see the old set, the new set or an incomplete one, never a mix.
func (d *DirStore) Save(ctx context.Context, s *Set) error {
	if _, err := s.RunID(); err != nil {
		return fmt.Errorf("save artifacts: %w", err)
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("save artifacts: %w", err)
	}

	temps := make(map[Name]string, len(Names()))
	cleanup := func() {
		for _, p := range temps {
			os.Remove(p)
		}
	}

	for _, n := range Names() {
		if err := ctx.Err(); err != nil {
			cleanup()
			return err
		}
		data, err := s.Envelopes[n].Marshal()
		if err != nil {
			cleanup()
			return fmt.Errorf("save artifacts: %w", err)
		}
		tmp, err := writeTemp(d.dir, string(n), data)
		if err != nil {
			cleanup()
			return fmt.Errorf("save artifacts: %w", err)
		}
		temps[n] = tmp
	}

	if err := d.install(temps); err != nil {
		cleanup()
		return fmt.Errorf("save artifacts: %w", err)
	}
	return nil
}

func (d *DirStore) backupPath(n Name) string {
	return filepath.Join(d.dir, "."+string(n)+".bak")
}

// install swaps the temp files in. Existing members are renamed to backups
// before the first new file lands and are put back on failure.
func (d *DirStore) install(temps map[Name]string) error {
	backups := make(map[Name]string, len(temps))
	var installed []Name
	rollback := func() {
		for _, n := range installed {
			os.RemoveAll(d.path(n))
		}
		for n, b := range backups {
			os.Rename(b, d.path(n))
		}
	}

	for _, n := range Names() {
		_, err := os.Lstat(d.path(n))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			rollback()
			return fmt.Errorf("stat %s: %w", n, err)
		}
		b := d.backupPath(n)
		os.RemoveAll(b)
		if err := rename(d.path(n), b); err != nil {
			rollback()
			return fmt.Errorf("back up %s: %w", n, err)
		}
		backups[n] = b
	}

	for _, n := range Names() {
		if err := rename(temps[n], d.path(n)); err != nil {
			rollback()
			return fmt.Errorf("install %s: %w", n, err)
		}
		installed = append(installed, n)
	}

	for _, b := range backups {
		os.RemoveAll(b)
	}
	return nil
}

func writeTemp(dir, prefix string, data []byte) (string, error) {
	f, err := os.CreateTemp(dir, "."+prefix+"-*.tmp")
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// Load reads all four members.
func (d *DirStore) Load(ctx context.Context) (*Set, error) {
	set := NewSet()
	var missing []Name
	for _, n := range Names() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(d.path(n))
		if errors.Is(err, fs.ErrNotExist) {
			missing = append(missing, n)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", n, err)
		}
		env, err := UnmarshalEnvelope(data)
		if err != nil {
			return nil, &ErrMismatch{Reason: fmt.Sprintf("corrupt %s artifact", n), Err: err}
		}
		if env.Name != n {
			return nil, &ErrMismatch{Reason: fmt.Sprintf("file for %s holds %s", n, env.Name)}
		}
		set.Put(env)
	}
	if len(missing) > 0 {
		return nil, &ErrIncomplete{Missing: missing}
	}
	return set, nil
}

func (d *DirStore) Exists(ctx context.Context) (bool, error) {
	for _, n := range Names() {
		_, err := os.Stat(d.path(n))
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("stat %s: %w", n, err)
		}
	}
	return true, nil
}
