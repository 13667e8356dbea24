package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/nodemark/xmlstream/encode"
	"github.com/nodemark/xmlstream/format"
	"github.com/nodemark/xmlstream/token"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='render text output in color'"`
	Closes  bool `cli:"name=closes desc='emit synthetic close events after self-closing tags'"`
	NoEmpty bool `cli:"name=noempty desc='suppress whitespace-only text events'"`
	Chunk   int  `cli:"name=chunk desc='read chunk size in bytes'"`

	OutFormat *format.Format

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fp **format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*fp = &f
		return f, nil
	})
}

func (cfg *MainConfig) tokenOpts(include []token.NodeType) []token.TokenOpt {
	var res []token.TokenOpt
	if cfg.Closes {
		res = append(res, token.AlwaysTagClose())
	}
	if cfg.NoEmpty {
		res = append(res, token.NoEmptyText())
	}
	if cfg.Chunk > 0 {
		res = append(res, token.ReadSize(cfg.Chunk))
	}
	if len(include) > 0 {
		res = append(res, token.Include(include...))
	}
	return res
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	var res []encode.EncodeOption
	f := format.TextFormat
	if cfg.OutFormat != nil {
		f = *cfg.OutFormat
	}
	res = append(res, encode.EncodeFormat(f))
	if !f.IsText() {
		return res
	}
	useColor := cfg.Color
	if !useColor {
		if of, ok := w.(*os.File); ok {
			useColor = isatty.IsTerminal(of.Fd())
		}
	}
	if useColor {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// parseKinds parses a comma separated list of event kind names as used in
// rendered output: text, cdata, comment, pi, open, close.
func parseKinds(v string) ([]token.NodeType, error) {
	if v == "" {
		return nil, nil
	}
	byName := map[string]token.NodeType{}
	for _, t := range []token.NodeType{
		token.TText, token.TCData, token.TComment,
		token.TProcInst, token.TTagOpen, token.TTagClose,
	} {
		byName[encode.TypeName(t)] = t
	}
	var res []token.NodeType
	for _, name := range strings.Split(v, ",") {
		t, ok := byName[strings.TrimSpace(name)]
		if !ok {
			return nil, fmt.Errorf("%w: unknown event kind %q", cli.ErrUsage, name)
		}
		res = append(res, t)
	}
	return res, nil
}

// forFiles runs fn once per named input, or once on cc.In when args is
// empty. "-" names stdin.
func forFiles(cc *cli.Context, args []string, fn func(name string, r io.Reader) error) error {
	if len(args) == 0 {
		return fn("stdin", cc.In)
	}
	for _, file := range args {
		if file == "-" {
			if err := fn("stdin", cc.In); err != nil {
				return err
			}
			continue
		}
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("could not open %q: %w", file, err)
		}
		err = fn(file, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
	}
	return nil
}
