package token

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedComment = errors.New("malformed comment")
	ErrUnknownMarkup    = errors.New("unrecognized markup declaration")
	ErrTagName          = errors.New("tag name may not start with whitespace")
	ErrUnclosedTag      = errors.New("unclosed tag")
	ErrUnclosed         = errors.New("unclosed")
	ErrUnclosedTags     = errors.New("unclosed tags")
)

type TokenizeErr struct {
	Err error
	Pos Pos
}

func NewTokenizeErr(e error, p Pos) *TokenizeErr {
	return &TokenizeErr{Err: e, Pos: p}
}

func (e *TokenizeErr) Unwrap() error {
	return e.Err
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos)
}

// unclosedErr names the construct left open when input ended.
func unclosedErr(kind NodeType) error {
	what := map[NodeType]string{
		TCData:    "CDATA section",
		TComment:  "comment",
		TProcInst: "processing instruction",
		TTagOpen:  "tag",
		TDecl:     "markup declaration",
	}[kind]
	return fmt.Errorf("%w %s", ErrUnclosed, what)
}
