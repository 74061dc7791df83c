package main

import (
	"fmt"

	"github.com/burrowHQ/burrowland-sub002/cmd"
)

var (
	version string
	commit  string
)

func main() {
	cmd.Execute(fmt.Sprintf("%s-%s", version, commit))
}
