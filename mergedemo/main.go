package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/rlaau/mergetrace/config"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML config file; flags override its values",
	}
	valuesFlag = cli.StringFlag{
		Name:  "values",
		Usage: "comma separated integers to sort, e.g. 12,11,13,5,6,7",
	}
	fileFlag = cli.StringFlag{
		Name:  "file",
		Usage: "read integers to sort from a file, one per line",
	}
	randomFlag = cli.IntFlag{
		Name:  "random",
		Usage: "sort this many seeded random integers",
	}
	seedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "seed for --random",
		Value: 42,
	}
	formatFlag = cli.StringFlag{
		Name:  "format",
		Usage: "trace format: text, json, markdown, log or none",
		Value: config.FormatText,
	}
	outputFlag = cli.StringFlag{
		Name:  "output",
		Usage: "write the trace to this file instead of stdout",
	}
	indentFlag = cli.BoolFlag{
		Name:  "indent",
		Usage: "indent text trace lines by recursion depth",
	}
	storeFlag = cli.StringFlag{
		Name:  "store",
		Usage: "persist the trace in a bbolt, badger or pebble store",
	}
	storePathFlag = cli.StringFlag{
		Name:  "store-path",
		Usage: "directory of the trace store",
		Value: "trace",
	}
	runFlag = cli.StringFlag{
		Name:  "run",
		Usage: "name of the stored run",
		Value: "demo",
	}
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Usage: "logrus level: debug, info, warn, error",
		Value: "warn",
	}
	genOutFlag = cli.StringFlag{
		Name:  "out",
		Usage: "file to write generated integers to",
		Value: "input.txt",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "mergedemo"
	app.Usage = "Trace every split and merge step of a merge sort"
	app.Version = "v0.1.0"
	app.Flags = []cli.Flag{
		configFlag, valuesFlag, fileFlag, randomFlag, seedFlag,
		formatFlag, outputFlag, indentFlag,
		storeFlag, storePathFlag, runFlag, logLevelFlag,
	}
	app.Action = sortAction
	app.Commands = []cli.Command{
		{
			Name:   "replay",
			Usage:  "print a stored run as text",
			Action: replayAction,
		},
		{
			Name:   "runs",
			Usage:  "list stored runs",
			Action: runsAction,
		},
		{
			Name:   "gen",
			Usage:  "write seeded random integers to a file for --file",
			Flags:  []cli.Flag{genOutFlag},
			Action: genAction,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Error("mergedemo failed")
		os.Exit(1)
	}
}
