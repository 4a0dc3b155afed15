// A command line tool which audits a music library for album artwork.
//
// This file is only here to make installing with go install easier. All of
// the actual work happens in the src package.
package main

import (
	"github.com/ironsmile/coverscan/src"
)

func main() {
	src.Main()
}
