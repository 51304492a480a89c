package vault

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/headline/pkg/errors"
	"github.com/arthur-debert/headline/pkg/logging"
	"github.com/arthur-debert/headline/pkg/types"
)

// Storage is the persisted-content collaborator. Write applies a mutator to
// the current content and persists the result, so callers express edits as
// pure content transforms.
type Storage interface {
	Read(note Note) (string, error)
	Write(note Note, mutate func(content string) string) error
	Rename(note Note, newStem string) (Note, error)
	Exists(note Note) bool
}

// fsStorage implements Storage over a types.FS rooted at the vault.
type fsStorage struct {
	fs     types.FS
	root   string
	logger zerolog.Logger
}

// NewStorage creates a Storage over the given filesystem and vault root.
func NewStorage(fs types.FS, root string) Storage {
	return &fsStorage{
		fs:     fs,
		root:   root,
		logger: logging.GetLogger("vault.storage"),
	}
}

func (s *fsStorage) abs(note Note) string {
	return filepath.Join(s.root, filepath.FromSlash(note.Path))
}

func (s *fsStorage) Read(note Note) (string, error) {
	data, err := s.fs.ReadFile(s.abs(note))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrStorageRead, "failed to read %s", note.Path)
	}
	return string(data), nil
}

func (s *fsStorage) Write(note Note, mutate func(string) string) error {
	path := s.abs(note)

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrStorageRead, "failed to read %s", note.Path)
	}

	updated := mutate(string(data))
	if updated == string(data) {
		s.logger.Trace().Str("note", note.Path).Msg("mutator made no change, skipping write")
		return nil
	}

	info, err := s.fs.Stat(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrStorageRead, "failed to stat %s", note.Path)
	}
	if err := s.fs.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrStorageWrite, "failed to write %s", note.Path)
	}

	s.logger.Debug().Str("note", note.Path).Int("bytes", len(updated)).Msg("note written")
	return nil
}

func (s *fsStorage) Rename(note Note, newStem string) (Note, error) {
	target := note.WithStem(newStem)
	if target.Path == note.Path {
		return note, nil
	}
	if s.Exists(target) {
		return note, errors.Newf(errors.ErrNoteExists, "target already exists: %s", target.Path)
	}
	if err := s.fs.Rename(s.abs(note), s.abs(target)); err != nil {
		return note, errors.Wrapf(err, errors.ErrStorageWrite, "failed to rename %s", note.Path)
	}

	s.logger.Info().Str("from", note.Path).Str("to", target.Path).Msg("note renamed")
	return target, nil
}

func (s *fsStorage) Exists(note Note) bool {
	_, err := s.fs.Stat(s.abs(note))
	return err == nil
}
