package main

import (
	"bytes"
	"fmt"
	"io"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/scott-cotton/cli"

	"github.com/nodemark/xmlstream/encode"
	"github.com/nodemark/xmlstream/token"
)

type CheckConfig struct {
	MainConfig *MainConfig

	Size int `cli:"name=size desc='chunk size for the rechunked run'"`

	Check *cli.Command
}

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	findings := 0
	err = forFiles(cc, args, func(name string, r io.Reader) error {
		doc, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("error reading: %w", err)
		}
		n, err := checkDoc(cfg, cc.Out, name, doc)
		findings += n
		return err
	})
	if err != nil {
		return err
	}
	if findings > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// checkDoc tokenizes doc once as a single chunk and once in cfg.Size byte
// chunks, and reports any divergence between the two event streams along
// with any well-formedness error. It returns the number of findings.
func checkDoc(cfg *CheckConfig, w io.Writer, name string, doc []byte) (int, error) {
	mCfg := cfg.MainConfig
	whole, wholeErr := token.Tokenize(nil, doc, mCfg.tokenOpts(nil)...)

	opts := append(mCfg.tokenOpts(nil), token.ReadSize(cfg.Size))
	tk := token.NewTokenizer(bytes.NewReader(doc), opts...)
	var chunked []token.Node
	var chunkedErr error
	for {
		nd, err := tk.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			chunkedErr = err
			break
		}
		chunked = append(chunked, *nd)
	}

	findings := 0
	if (wholeErr == nil) != (chunkedErr == nil) ||
		(wholeErr != nil && wholeErr.Error() != chunkedErr.Error()) {
		findings++
		fmt.Fprintf(w, "%s: error divergence:\n  whole: %v\n  chunked(%d): %v\n",
			name, wholeErr, cfg.Size, chunkedErr)
	}
	a, err := render(whole)
	if err != nil {
		return findings, err
	}
	b, err := render(chunked)
	if err != nil {
		return findings, err
	}
	if a != b {
		findings++
		diffCfg := diffpatch.New()
		diffs := diffCfg.DiffMain(a, b, true)
		fmt.Fprintf(w, "%s: event stream diverges when rechunked at %d bytes:\n%s\n",
			name, cfg.Size, diffCfg.DiffPrettyText(diffs))
	}
	if wholeErr != nil {
		findings++
		fmt.Fprintf(w, "%s: %v\n", name, wholeErr)
	}
	if findings == 0 {
		fmt.Fprintf(w, "%s: ok (%d events)\n", name, len(whole))
	}
	return findings, nil
}

func render(nodes []token.Node) (string, error) {
	var buf bytes.Buffer
	if err := encode.Encode(nodes, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
