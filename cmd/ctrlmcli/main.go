package main

import (
	"github.com/robotalks/ctrlm.go/pkg/cli/sh"
	"github.com/robotalks/ctrlm.go/pkg/env"

	_ "github.com/robotalks/ctrlm.go/pkg/cli/cmds/all"
)

//go-build: CGO_ENABLED=0

func init() {
	env.SetupFlags()
}

func main() {
	sh.Main()
}
