package encode

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/nodemark/xmlstream/token"
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[token.NodeType]func(string, ...any) string
}

func colorDefault(f string, args ...any) string {
	return fmt.Sprintf(f, args...)
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[token.NodeType]func(string, ...any) string{},
	}
	colors.Map[token.TText] = color.RGB(8, 196, 16).SprintfFunc()
	colors.Map[token.TCData] = color.RGB(198, 198, 46).SprintfFunc()
	colors.Map[token.TComment] = color.BlueString
	colors.Map[token.TProcInst] = color.RGB(168, 0, 196).SprintfFunc()
	colors.Map[token.TTagOpen] = color.RGB(128, 168, 196).SprintfFunc()
	colors.Map[token.TTagClose] = color.RGB(74, 92, 138).SprintfFunc()
	return colors
}

func (c *Colors) sprintf(t token.NodeType) func(string, ...any) string {
	if f, ok := c.Map[t]; ok {
		return f
	}
	return c.Default
}
