// encfix - ISO-8859-1 to UTF-8 comment encoding fixer
//
// encfix scans Lisp-family source trees for non-ASCII bytes, re-encodes the
// ones that sit inside comments as UTF-8, and verifies the result.
package main

import (
	"os"

	"github.com/ccollicutt/encfix/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
