package split

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylesplit/css"
	"stylesplit/mozdoc"
	"stylesplit/state"
)

// Check is the action of check command. Every source is checked for syntax
// problems and split, nothing is written.
func Check(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("check")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	setEncodings(cmd, env, log)

	c := &checker{
		log:    log,
		css:    css.NewChecker(log),
		parser: mozdoc.NewParser(log),
	}

	log.Info("Checking starting", zap.String("source", src))
	w := newWalker(env, log, c.check)
	defer func(start time.Time) {
		log.Info("Checking completed", zap.Duration("elapsed", time.Since(start)), zap.Int("sources", w.count), zap.Int("invalid", w.failed))
	}(time.Now())

	return w.process(ctx, src)
}

type checker struct {
	log    *zap.Logger
	css    *css.Checker
	parser *mozdoc.Parser
}

func (c *checker) check(_ context.Context, data []byte, src string) (errs error) {
	log := c.log.With(zap.String("source", src))

	if err := c.css.Check(data, src); err != nil {
		issues := css.Issues(err)
		for _, issue := range issues {
			log.Warn("Syntax problem", zap.Int("line", issue.Line), zap.Int("column", issue.Col), zap.String("problem", issue.Msg))
		}
		errs = multierr.Append(errs, fmt.Errorf("%d syntax problem(s) found", len(issues)))
	}

	sections, err := c.parser.Split(string(data), src)
	if err != nil {
		var pe *mozdoc.ParseError
		if errors.As(err, &pe) {
			log.Warn("Unable to split", zap.Stringer("kind", pe.Kind), zap.Int("line", pe.Line), zap.Int("column", pe.Col), zap.String("problem", pe.Msg))
		}
		return multierr.Append(errs, fmt.Errorf("unable to split: %w", err))
	}
	if errs == nil {
		log.Info("Source is valid", zap.Int("sections", len(sections)), zap.Int("global", len(mozdoc.Globals(sections))))
	}
	return errs
}
