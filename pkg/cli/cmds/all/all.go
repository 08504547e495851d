// Package all registers all shell commands.
package all

import (
	// register commands
	_ "github.com/robotalks/ctrlm.go/pkg/cli/cmds/busctl"
	_ "github.com/robotalks/ctrlm.go/pkg/cli/cmds/ir"
	_ "github.com/robotalks/ctrlm.go/pkg/cli/cmds/light"
)
