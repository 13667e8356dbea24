package main

import (
	"errors"
	"os"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{Chunk: 4096}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "O",
		Aliases:     []string{"ofmt"},
		Description: "output format: text/x, json/j, yaml/y",
		Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
	})

	return cli.NewCommandAt(&cfg.Main, "xmlt").
		WithSynopsis("xmlt [opts] command [opts]").
		WithDescription("xmlt is a tool for working with markup node event streams.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return xmltMain(cfg, cc, args)
		}).
		WithSubs(
			EventsCommand(cfg),
			GrepCommand(cfg),
			CheckCommand(cfg))
}

func xmltMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		cfg.Main.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) > 0 {
		if sub := cfg.Main.FindSub(cc, args[0]); sub != nil {
			err := sub.Run(cc, args[1:])
			if errors.Is(err, cli.ErrUsage) {
				sub.Usage(cc, err)
				os.Exit(sub.Exit(cc, err))
			}
			return err
		}
	}
	// bare invocation dumps events from stdin or the named files
	eCfg := &EventsConfig{MainConfig: cfg, Events: cfg.Main}
	return eventsFiles(eCfg, cc, args)
}

func EventsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EventsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("events").
		WithAliases("e", "ev").
		WithSynopsis("events [-include kinds] [files]").
		WithDescription("tokenize markup and print its node event stream").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return events(cfg, cc, args)
		})
	cfg.Events = cmd
	return cmd
}

func GrepCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GrepConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("grep").
		WithAliases("g").
		WithSynopsis("grep <expr> [files]").
		WithDescription("print events matching a boolean expression over " +
			"type, name, attr, text, selfClosing, offset and line").
		WithRun(func(cc *cli.Context, args []string) error {
			return grep(cfg, cc, args)
		})
	cfg.Grep = cmd
	return cmd
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg, Size: 7}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("check").
		WithAliases("c").
		WithSynopsis("check [-size n] [files]").
		WithDescription("verify well-formedness and that rechunked input " +
			"produces an identical event stream").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
	cfg.Check = cmd
	return cmd
}
