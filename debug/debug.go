package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Parse  bool
	Search bool
	Edit   bool
	Pass   bool
	Config bool
	LSP    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("WBPROTO_DEBUG_PARSE")
	d.Search = boolEnv("WBPROTO_DEBUG_SEARCH")
	d.Edit = boolEnv("WBPROTO_DEBUG_EDIT")
	d.Pass = boolEnv("WBPROTO_DEBUG_PASS")
	d.Config = boolEnv("WBPROTO_DEBUG_CONFIG")
	d.LSP = boolEnv("WBPROTO_DEBUG_LSP")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Search() bool {
	return d.Search
}
func Edit() bool {
	return d.Edit
}
func Pass() bool {
	return d.Pass
}
func Config() bool {
	return d.Config
}
func LSP() bool {
	return d.LSP
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
	os.Stderr.Write([]byte{'\n'})
}
