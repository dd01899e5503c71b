package main

import (
	"github.com/mamaar/deskcalc/internal/cli"
	"github.com/mamaar/deskcalc/internal/cli/commands"
)

func main() {
	app := cli.NewApp()
	app.Initialize()

	runner := cli.NewRunner()
	runner.RegisterCommand("press", commands.PressCommand)
	runner.RegisterCommand("repl", commands.ReplCommand)
	runner.RegisterCommand("run", commands.RunCommand)
	runner.RegisterCommand("watch", commands.WatchCommand)
	runner.RegisterCommand("history", commands.HistoryCommand)
	runner.RegisterCommand("version", commands.VersionCommand)
	runner.RegisterCommand("help", commands.HelpCommand)

	app.Run(runner)
}
