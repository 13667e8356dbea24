package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Scan   bool
	Events bool
	Attrs  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Scan = boolEnv("XMLSTREAM_DEBUG_SCAN")
	d.Events = boolEnv("XMLSTREAM_DEBUG_EVENTS")
	d.Attrs = boolEnv("XMLSTREAM_DEBUG_ATTRS")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Scan() bool {
	return d.Scan
}
func Events() bool {
	return d.Events
}
func Attrs() bool {
	return d.Attrs
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func LogAny(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(b)
	os.Stderr.Write([]byte{'\n'})
}
