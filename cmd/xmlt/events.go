package main

import (
	"io"

	"github.com/scott-cotton/cli"

	"github.com/nodemark/xmlstream/encode"
	"github.com/nodemark/xmlstream/token"
)

type EventsConfig struct {
	MainConfig *MainConfig

	Include string `cli:"name=include desc='comma separated event kinds to emit'"`

	Events *cli.Command
}

func events(cfg *EventsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Events.Parse(cc, args)
	if err != nil {
		cfg.Events.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	return eventsFiles(cfg, cc, args)
}

func eventsFiles(cfg *EventsConfig, cc *cli.Context, args []string) error {
	include, err := parseKinds(cfg.Include)
	if err != nil {
		return err
	}
	return forFiles(cc, args, func(name string, r io.Reader) error {
		return eventsReader(cfg, include, cc.Out, r)
	})
}

func eventsReader(cfg *EventsConfig, include []token.NodeType, w io.Writer, r io.Reader) error {
	mCfg := cfg.MainConfig
	tk := token.NewTokenizer(r, mCfg.tokenOpts(include)...)
	enc := encode.NewEncoder(w, mCfg.encOpts(w)...)
	for {
		nd, err := tk.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := enc.Write(nd); err != nil {
			return err
		}
	}
}
