// The main package for the sitebrief executable.
package main

import (
	"github.com/leadfoundry/sitebrief/cmd"
)

func main() {
	cmd.Execute()
}
