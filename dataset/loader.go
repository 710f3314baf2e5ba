package dataset

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// VersionLoader produces a sequence of software versions from some source.
type VersionLoader interface {
	Load() ([]SoftwareVersion, error)
}

// SingleVersionLoader parses one dataset file.
type SingleVersionLoader interface {
	Load(path string) (*Dataset, error)
	// Accepts reports whether the loader applies to the given file name.
	Accepts(filename string) bool
}

// DirectoryLoader walks one directory and loads every file its FileLoader
// accepts, in lexical order. The project name is the file base name without
// its extension.
type DirectoryLoader struct {
	Dir        string
	FileLoader SingleVersionLoader
}

func (l DirectoryLoader) Load() ([]SoftwareVersion, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read data directory %s", l.Dir)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !l.FileLoader.Accepts(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	versions := make([]SoftwareVersion, 0, len(names))
	for _, name := range names {
		path := filepath.Join(l.Dir, name)
		data, err := l.FileLoader.Load(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load dataset %s", path)
		}
		project := strings.TrimSuffix(name, filepath.Ext(name))
		log.Debug().Str("project", project).Int("rows", data.NumRows()).Msg("loaded version")
		versions = append(versions, SoftwareVersion{
			Project: project,
			Version: project,
			Data:    data,
		})
	}
	return versions, nil
}
