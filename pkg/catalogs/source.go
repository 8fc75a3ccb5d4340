package catalogs

import (
	"context"
	"io/fs"
	"os"
	"path"

	"github.com/agentstation/vinoteca/pkg/errors"
)

// Source produces the dataset a catalog is built from.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string
	// Read returns the dataset or a *errors.DataLoadError.
	Read(ctx context.Context) (*Dataset, error)
}

// FileSource reads a JSON or YAML file from the local filesystem.
type FileSource struct {
	Path string
}

// NewFileSource creates a source for the file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Name returns the file path.
func (s *FileSource) Name() string { return s.Path }

// Read reads and decodes the file.
func (s *FileSource) Read(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewDataLoadError(s.Path, err)
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.NewDataLoadError(s.Path, errors.WrapIO("read", s.Path, err))
	}
	return decodeSource(s.Path, data, FormatFromPath(s.Path))
}

// FSSource reads a JSON or YAML file from an fs.FS, such as an embed.FS.
type FSSource struct {
	FS   fs.FS
	Path string
}

// NewFSSource creates a source for the file at name inside fsys.
func NewFSSource(fsys fs.FS, name string) *FSSource {
	return &FSSource{FS: fsys, Path: name}
}

// Name returns the path inside the filesystem.
func (s *FSSource) Name() string { return s.Path }

// Read reads and decodes the file.
func (s *FSSource) Read(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewDataLoadError(s.Path, err)
	}
	if s.FS == nil {
		return nil, errors.NewDataLoadError(s.Path, &errors.ValidationError{
			Field:   "fs",
			Message: "cannot be nil",
		})
	}
	data, err := fs.ReadFile(s.FS, s.Path)
	if err != nil {
		return nil, errors.NewDataLoadError(s.Path, errors.WrapIO("read", s.Path, err))
	}
	return decodeSource(s.Path, data, FormatFromPath(path.Base(s.Path)))
}

// BytesSource decodes an in-memory document.
type BytesSource struct {
	Label  string
	Data   []byte
	Format Format
}

// NewBytesSource creates a source for a JSON document held in memory.
func NewBytesSource(label string, data []byte) *BytesSource {
	return &BytesSource{Label: label, Data: data, Format: FormatJSON}
}

// Name returns the label.
func (s *BytesSource) Name() string { return s.Label }

// Read decodes the document.
func (s *BytesSource) Read(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewDataLoadError(s.Label, err)
	}
	return decodeSource(s.Label, s.Data, s.Format)
}

// DatasetSource serves an already decoded dataset.
type DatasetSource struct {
	Label   string
	Dataset *Dataset
}

// Name returns the label.
func (s *DatasetSource) Name() string { return s.Label }

// Read returns the dataset.
func (s *DatasetSource) Read(_ context.Context) (*Dataset, error) {
	if s.Dataset == nil {
		return &Dataset{}, nil
	}
	return s.Dataset, nil
}

func decodeSource(name string, data []byte, format Format) (*Dataset, error) {
	ds, err := Decode(data, format)
	if err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) {
			pe.File = name
		}
		return nil, errors.NewDataLoadError(name, err)
	}
	return ds, nil
}
