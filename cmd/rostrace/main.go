// RosTrace CLI - render charts from offline trace dumps
package main

import (
	"os"

	"github.com/rostrace/rostrace/cmd/rostrace/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
