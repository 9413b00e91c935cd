package main

import (
	"os"

	"github.com/Azure/xccover/pkg/action"
	"github.com/Azure/xccover/pkg/cmd"
	"github.com/Azure/xccover/pkg/xccover"
)

func main() {
	writer := action.NewOutputWriter(os.Stdout, os.Stderr)
	command := cmd.NewXCCoverCommand(writer)
	if err := command.Execute(); err != nil {
		writer.SetFailed(err.Error())
		os.Exit(xccover.ExitCode(err))
	}
}
