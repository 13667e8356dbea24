package main

import (
	"fmt"
	"io"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"

	"github.com/nodemark/xmlstream/encode"
	"github.com/nodemark/xmlstream/token"
)

type GrepConfig struct {
	MainConfig *MainConfig

	Grep *cli.Command
}

func grep(cfg *GrepConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Grep.Parse(cc, args)
	if err != nil {
		cfg.Grep.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: grep requires one argument, an expression", cli.ErrUsage)
	}
	prg, err := expr.Compile(args[0], expr.AsBool())
	if err != nil {
		return fmt.Errorf("%w: bad expression %q: %w", cli.ErrUsage, args[0], err)
	}
	return forFiles(cc, args[1:], func(name string, r io.Reader) error {
		return grepReader(cfg, prg, cc.Out, r)
	})
}

func grepReader(cfg *GrepConfig, prg *vm.Program, w io.Writer, r io.Reader) error {
	mCfg := cfg.MainConfig
	tk := token.NewTokenizer(r, mCfg.tokenOpts(nil)...)
	enc := encode.NewEncoder(w, mCfg.encOpts(w)...)
	for {
		nd, err := tk.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		res, err := vm.Run(prg, grepEnv(nd))
		if err != nil {
			return fmt.Errorf("error evaluating expression: %w", err)
		}
		if ok, _ := res.(bool); !ok {
			continue
		}
		if err := enc.Write(nd); err != nil {
			return err
		}
	}
}

func grepEnv(nd *token.Node) map[string]any {
	return map[string]any{
		"type":        encode.TypeName(nd.Type),
		"name":        string(nd.Name),
		"attr":        string(nd.Attr),
		"text":        string(nd.Text),
		"selfClosing": nd.SelfClosing,
		"offset":      nd.Pos.Off,
		"line":        nd.Pos.Line,
	}
}
