package engine

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jsvensson/recolor"
	"github.com/jsvensson/recolor/internal/palette"
	"github.com/jsvensson/recolor/internal/rewrite"
	"github.com/tliron/commonlog"
	"go.uber.org/multierr"
)

var log = commonlog.GetLogger("recolor.engine")

// DefaultExtensions are the stylesheet extensions picked up when a
// directory is walked.
var DefaultExtensions = []string{".css"}

// Engine recolors stylesheet files against a resolved Scheme.
type Engine struct {
	Scheme     *recolor.Scheme
	Options    recolor.Options
	OutputDir  string    // if set, results are written below this directory
	InPlace    bool      // overwrite inputs; takes precedence over OutputDir
	DryRun     bool      // plan and rewrite, but write nothing
	Extensions []string  // if empty, DefaultExtensions
	Stdout     io.Writer // destination when neither OutputDir nor InPlace is set
}

// FileResult describes one processed stylesheet.
type FileResult struct {
	Path    string
	Output  string // written path, empty for stdout or dry runs
	Sites   int
	Rules   []rewrite.Rule
	Changed bool
}

type input struct {
	path string
	rel  string // path below the argument it was found in
}

// Run recolors every stylesheet named by paths. Directories are walked for
// files with a matching extension. A failing file does not stop the run; all
// failures are returned together.
func (e *Engine) Run(paths []string) ([]FileResult, error) {
	if e.Scheme == nil || len(e.Scheme.Target) == 0 {
		return nil, palette.ErrEmptyPalette
	}
	if _, err := rewrite.ParseMode(string(e.Options.Mode)); err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no stylesheets given")
	}

	inputs, err := e.collect(paths)

	if e.OutputDir != "" && !e.InPlace && !e.DryRun {
		if mkErr := os.MkdirAll(e.OutputDir, 0755); mkErr != nil {
			return nil, multierr.Append(err, fmt.Errorf("creating output directory: %w", mkErr))
		}
	}

	results := make([]FileResult, 0, len(inputs))
	for _, in := range inputs {
		res, fileErr := e.processFile(in)
		if fileErr != nil {
			log.Errorf("%s: %s", in.path, fileErr)
			err = multierr.Append(err, fileErr)
			continue
		}
		results = append(results, res)
	}
	return results, err
}

func (e *Engine) extensions() []string {
	if len(e.Extensions) == 0 {
		return DefaultExtensions
	}
	return e.Extensions
}

func (e *Engine) shouldProcess(name string) bool {
	return slices.Contains(e.extensions(), strings.ToLower(filepath.Ext(name)))
}

// collect expands paths into the files to process. Files named explicitly
// are taken regardless of extension.
func (e *Engine) collect(paths []string) ([]input, error) {
	var inputs []input
	var errs error
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("reading %s: %w", p, err))
			continue
		}
		if !info.IsDir() {
			inputs = append(inputs, input{path: p, rel: filepath.Base(p)})
			continue
		}

		root := p
		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !e.shouldProcess(d.Name()) {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			inputs = append(inputs, input{path: path, rel: rel})
			return nil
		})
		if walkErr != nil {
			errs = multierr.Append(errs, fmt.Errorf("walking %s: %w", root, walkErr))
		}
	}
	log.Debugf("collected %d stylesheets", len(inputs))
	return inputs, errs
}

func (e *Engine) processFile(in input) (FileResult, error) {
	data, err := os.ReadFile(in.path)
	if err != nil {
		return FileResult{}, fmt.Errorf("reading %s: %w", in.path, err)
	}

	css := string(data)
	res, err := recolor.Recolor(css, e.Scheme, e.Options)
	if err != nil {
		return FileResult{}, fmt.Errorf("recoloring %s: %w", in.path, err)
	}

	fr := FileResult{
		Path:    in.path,
		Sites:   len(res.Sites),
		Rules:   res.Rules,
		Changed: res.Changed(css),
	}
	log.Infof("%s: %d sites, %d rules", in.path, fr.Sites, len(fr.Rules))

	if e.DryRun {
		return fr, nil
	}

	switch {
	case e.InPlace:
		if !fr.Changed {
			return fr, nil
		}
		fr.Output = in.path
	case e.OutputDir != "":
		fr.Output = filepath.Join(e.OutputDir, in.rel)
		if err := os.MkdirAll(filepath.Dir(fr.Output), 0755); err != nil {
			return FileResult{}, fmt.Errorf("creating output directory: %w", err)
		}
	default:
		w := e.Stdout
		if w == nil {
			w = os.Stdout
		}
		if _, err := io.WriteString(w, res.Text); err != nil {
			return FileResult{}, fmt.Errorf("writing %s: %w", in.path, err)
		}
		return fr, nil
	}

	if err := os.WriteFile(fr.Output, []byte(res.Text), 0644); err != nil {
		return FileResult{}, fmt.Errorf("writing output file %s: %w", fr.Output, err)
	}
	return fr, nil
}
