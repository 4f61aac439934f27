package resources

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/npillmayer/lcdfont/core"
)

// Staging is a temporary directory inside an output directory. Files are
// written to the staging directory and moved to the output directory by
// Commit. Discard removes the staging directory and is a no-op after Commit,
// so clients will usually
//
//    st, err := NewStaging(out)
//    …
//    defer st.Discard()
//    … write to st.Dir() …
//    return st.Commit()
//
type Staging struct {
	dir    string
	target string
	done   bool
}

// OutputDirPath checks and possibly creates an output folder. Non-existing
// folders will be created as necessary (with permissions 755).
func OutputDirPath(dir string) (string, error) {
	_, err := os.Stat(dir)
	if os.IsNotExist(err) {
		tracer().Infof("creating output directory %s", dir)
		err = os.MkdirAll(dir, 0755)
	}
	if err != nil {
		return "", core.ConfigError(err, "cannot create output directory %s", dir)
	}
	return dir, nil
}

// NewStaging creates a staging directory for output directory target.
func NewStaging(target string) (*Staging, error) {
	target, err := OutputDirPath(target)
	if err != nil {
		return nil, err
	}
	dir, err := os.MkdirTemp(target, ".staging-")
	if err != nil {
		return nil, core.ConfigError(err, "cannot create staging directory in %s", target)
	}
	tracer().Debugf("staging output in %s", dir)
	return &Staging{dir: dir, target: target}, nil
}

// Dir is the directory to write to.
func (st *Staging) Dir() string {
	return st.dir
}

// Target is the output directory.
func (st *Staging) Target() string {
	return st.target
}

// Commit moves all staged files to the output directory, replacing files of
// the same name, and removes the staging directory. It returns the paths of
// the moved files.
func (st *Staging) Commit() ([]string, error) {
	if st.done {
		return nil, core.Error(core.EINTERNAL, "staging directory %s already closed", st.dir)
	}
	entries, err := os.ReadDir(st.dir)
	if err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "cannot read staging directory %s", st.dir)
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	paths := make([]string, 0, len(names))
	for _, name := range names {
		to := filepath.Join(st.target, name)
		if err := os.Rename(filepath.Join(st.dir, name), to); err != nil {
			return paths, core.WrapError(err, core.EINTERNAL, "cannot move %s to %s", name, st.target)
		}
		paths = append(paths, to)
	}
	st.done = true
	if err := os.RemoveAll(st.dir); err != nil {
		tracer().Errorf("cannot remove staging directory %s: %v", st.dir, err)
	}
	tracer().Infof("moved %d files to %s", len(paths), st.target)
	return paths, nil
}

// Discard removes the staging directory with all its content, unless the
// staging has been committed.
func (st *Staging) Discard() error {
	if st == nil || st.done {
		return nil
	}
	st.done = true
	tracer().Infof("discarding staged output in %s", st.dir)
	return os.RemoveAll(st.dir)
}
