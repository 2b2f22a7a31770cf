package split

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"stylesplit/archive"
	"stylesplit/state"
)

// sourceFunc handles single decoded stylesheet. "src" is path of the source
// relative to what was requested: base file name for a file, relative path
// inside directory or archive otherwise.
type sourceFunc func(ctx context.Context, data []byte, src string) error

// walker finds stylesheets in files, directories and archives and hands them
// to sourceFunc one by one. Failures do not stop processing, they are logged
// and accumulated.
type walker struct {
	env    *state.LocalEnv
	log    *zap.Logger
	handle sourceFunc

	count  int
	failed int
	errs   error
}

func newWalker(env *state.LocalEnv, log *zap.Logger, handle sourceFunc) *walker {
	return &walker{env: env, log: log, handle: handle}
}

func (w *walker) isStyle(name string) bool {
	return hasStyleExt(name, w.env.Cfg.Split.Extensions)
}

func (w *walker) fail(src string, err error) {
	w.failed++
	w.log.Error("Unable to process source", zap.String("source", src), zap.Error(err))
	w.errs = multierr.Append(w.errs, fmt.Errorf("%s: %w", src, err))
}

// process determines the input type (directory, archive, path inside archive
// or single file) and processes it accordingly. Stylesheet named explicitly
// is processed regardless of its extension.
func (w *walker) process(ctx context.Context, src string) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := w.processDir(ctx, head); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		arc, err := isArchiveFile(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if arc {
			// the rest is path inside archive
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := w.processArchive(ctx, head, filepath.ToSlash(tail), ""); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		if len(tail) != 0 {
			return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}
		w.processFile(ctx, head, filepath.Base(head))
		break
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	if w.count == 0 {
		w.log.Warn("Nothing to process", zap.String("source", src))
	}
	return w.errs
}

// processDir walks directory tree (symbolic links are not followed) and
// processes stylesheets and archives in natural order of their paths.
func (w *walker) processDir(ctx context.Context, dir string) error {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			w.log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	slices.SortFunc(paths, naturalCompare)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))

		arc, err := isArchiveFile(path)
		if err != nil {
			w.log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			continue
		}
		if arc {
			if err := w.processArchive(ctx, path, "", filepath.Dir(rel)); err != nil {
				w.fail(rel, fmt.Errorf("unable to process archive: %w", err))
			}
			continue
		}
		if !w.isStyle(path) {
			w.log.Debug("Skipping file, not recognized as stylesheet or archive", zap.String("file", path))
			continue
		}
		w.processFile(ctx, path, rel)
	}
	return nil
}

// processArchive processes stylesheets inside archive under "pathIn", which
// could also name a single entry. "pathOut" is prepended to names of
// entries.
func (w *walker) processArchive(ctx context.Context, file, pathIn, pathOut string) error {
	dirIn := pathIn
	if dirIn != "" && !strings.HasSuffix(dirIn, "/") {
		dirIn += "/"
	}
	match := func(name string) bool {
		if name == pathIn {
			return true
		}
		return strings.HasPrefix(name, dirIn) && w.isStyle(name)
	}

	return archive.Walk(file, pathIn, match, func(arc string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := f.FileHeader.Name
		if cp := w.env.CodePage; cp != nil && f.FileHeader.NonUTF8 {
			// forcing zip file name encoding
			if n, err := cp.NewDecoder().String(name); err == nil {
				name = n
			} else {
				n, _ = ianaindex.IANA.Name(cp)
				w.log.Warn("Unable to convert archive name from specified encoding",
					zap.String("charset", n), zap.String("path", name), zap.Error(err))
			}
		}
		src := filepath.Join(pathOut, filepath.FromSlash(name))

		r, err := f.Open()
		if err != nil {
			w.count++
			w.fail(src, err)
			return nil
		}
		defer r.Close()

		w.processReader(ctx, r, src)
		return nil
	})
}

func (w *walker) processFile(ctx context.Context, file, src string) {
	f, err := os.Open(file)
	if err != nil {
		w.count++
		w.fail(src, err)
		return
	}
	defer f.Close()

	w.processReader(ctx, f, src)
}

func (w *walker) processReader(ctx context.Context, r io.Reader, src string) {
	w.count++

	defer func() {
		// one bad source should not stop the rest
		if r := recover(); r != nil {
			w.log.Error("Processing ended with panic", zap.String("source", src), zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			w.fail(src, fmt.Errorf("panic: %v", r))
		}
	}()

	data, err := decodeSource(r, w.env.Charset)
	if err != nil {
		w.fail(src, fmt.Errorf("unable to read source: %w", err))
		return
	}
	w.env.Rpt.StoreData(path.Join("source", filepath.ToSlash(src)), data)

	if err := w.handle(ctx, data, src); err != nil {
		w.fail(src, err)
	}
}

func naturalCompare(a, b string) int {
	switch {
	case natural.Less(a, b):
		return -1
	case natural.Less(b, a):
		return 1
	}
	return 0
}
