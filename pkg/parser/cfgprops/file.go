package cfgprops

import (
	"context"
	"fmt"

	"github.com/yaklabco/propslint/pkg/propast"
)

// FileParser implements lint.Parser. It creates a Parser per call and is
// therefore safe for concurrent use.
type FileParser struct {
	opts Options
}

// NewFileParser creates a FileParser using opts for every parse.
func NewFileParser(opts Options) *FileParser {
	return &FileParser{opts: opts}
}

// Parse converts raw bytes into a FileSnapshot. A syntax error is not an
// error here: it is recorded in the snapshot's Diagnostics and Matched.
func (fp *FileParser) Parse(ctx context.Context, path string, content []byte) (*propast.FileSnapshot, error) {
	res, err := New(fp.opts).Parse(ctx, string(content))
	if err != nil {
		return nil, err
	}

	snapshot, err := res.Snapshot(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}

	return snapshot, nil
}
