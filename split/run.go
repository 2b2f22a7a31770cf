// Package split implements program commands: splitting stylesheets into
// global and scoped sections and checking them.
package split

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"stylesplit/config"
	"stylesplit/css"
	"stylesplit/mozdoc"
	"stylesplit/state"
)

// Run is the action of split command.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("split")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Format = env.Cfg.Split.Format
	if cmd.IsSet("to") {
		if format, err := config.ParseOutputFmt(cmd.String("to")); err != nil {
			log.Warn("Unknown output format requested, using configured one", zap.Error(err), zap.Stringer("format", env.Format))
		} else {
			env.Format = format
		}
	}
	if cmd.IsSet("validate") {
		env.Cfg.Split.Validate = cmd.Bool("validate")
	}
	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")
	setEncodings(cmd, env, log)

	s := &splitter{
		env:    env,
		log:    log,
		parser: mozdoc.NewParser(log),
		dst:    dst,
	}
	if env.Cfg.Split.Validate {
		s.checker = css.NewChecker(log)
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", env.Format))
	w := newWalker(env, log, s.split)
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)), zap.Int("sources", w.count), zap.Int("failed", w.failed))
	}(time.Now())

	return w.process(ctx, src)
}

// setEncodings resolves character sets requested by configuration and
// command line.
func setEncodings(cmd *cli.Command, env *state.LocalEnv, log *zap.Logger) {
	name := env.Cfg.Split.Charset
	if cmd.IsSet("charset") {
		name = cmd.String("charset")
	}
	env.Charset = lookupEncoding(name, log)

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	env.CodePage = lookupEncoding(cmd.String("force-zip-cp"), log)
}

type splitter struct {
	env     *state.LocalEnv
	log     *zap.Logger
	parser  *mozdoc.Parser
	checker *css.Checker
	dst     string
}

func (s *splitter) split(_ context.Context, data []byte, src string) error {
	log := s.log.With(zap.String("source", src))

	if s.checker != nil {
		if err := s.checker.Check(data, src); err != nil {
			// splitter does not depend on stylesheet validity
			for _, issue := range css.Issues(err) {
				log.Warn("Syntax problem", zap.Int("line", issue.Line), zap.Int("column", issue.Col), zap.String("problem", issue.Msg))
			}
		}
	}

	sections, err := s.parser.Split(string(data), src)
	if err != nil {
		return fmt.Errorf("unable to split: %w", err)
	}
	log.Debug("Split", zap.Int("sections", len(sections)), zap.Int("global", len(mozdoc.Globals(sections))))
	if s.env.Rpt != nil {
		s.env.Rpt.StoreData(path.Join("parsed", filepath.ToSlash(src)+".txt"), []byte(mozdoc.Dump(sections)))
	}

	if s.env.Format == config.OutputFmtFiles {
		return s.writeFiles(src, sections, log)
	}
	return s.writeDocument(src, sections, log)
}

func (s *splitter) writeDocument(src string, sections []mozdoc.Section, log *zap.Logger) error {
	doc := newDocument(src, s.env.RunID.String(), sections)

	name := buildDocumentPath(src, s.dst, s.env)
	if err := prepareOutput(name, s.env.Overwrite, log); err != nil {
		return err
	}
	if err := writeDocumentFile(name, s.env.Format, doc); err != nil {
		return err
	}
	log.Info("Sections written", zap.String("to", name), zap.Int("sections", len(sections)))
	s.store(name)
	return nil
}

func (s *splitter) writeFiles(src string, sections []mozdoc.Section, log *zap.Logger) error {
	for i, sec := range sections {
		name := buildSectionPath(src, s.dst, i+1, sec, s.env)
		if err := prepareOutput(name, s.env.Overwrite, log); err != nil {
			return err
		}
		if err := writeSectionFile(name, sec); err != nil {
			return fmt.Errorf("unable to write section %d: %w", i+1, err)
		}
		log.Debug("Section written", zap.String("to", name), zap.String("kind", sectionKind(sec)))
		s.store(name)
	}
	log.Info("Sections written", zap.String("to", determineOutputDir(src, s.dst, s.env)), zap.Int("sections", len(sections)))
	return nil
}

// store puts produced file into debug report.
func (s *splitter) store(name string) {
	if s.env.Rpt == nil {
		return
	}
	rel, err := filepath.Rel(s.dst, name)
	if err != nil {
		rel = filepath.Base(name)
	}
	s.env.Rpt.Store(path.Join("result", filepath.ToSlash(rel)), name)
}
