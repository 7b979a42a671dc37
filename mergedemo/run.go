package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/rlaau/mergetrace/config"
	"github.com/rlaau/mergetrace/mergesort"
	"github.com/rlaau/mergetrace/tracestore"
)

// buildConfig 설정 파일 위에 명시된 플래그만 덮어쓴다
func buildConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.GlobalString(configFlag.Name))
	if err != nil {
		return cfg, err
	}

	if c.GlobalIsSet(valuesFlag.Name) {
		values, err := parseValues(c.GlobalString(valuesFlag.Name))
		if err != nil {
			return cfg, errors.Wrap(err, "parse --values")
		}
		cfg.Input.Values = values
	}
	if c.GlobalIsSet(fileFlag.Name) {
		cfg.Input.File = c.GlobalString(fileFlag.Name)
	}
	if c.GlobalIsSet(randomFlag.Name) {
		cfg.Input.Random = c.GlobalInt(randomFlag.Name)
	}
	if c.GlobalIsSet(seedFlag.Name) {
		cfg.Input.Seed = c.GlobalInt64(seedFlag.Name)
	}
	if c.GlobalIsSet(formatFlag.Name) {
		cfg.Trace.Format = c.GlobalString(formatFlag.Name)
	}
	if c.GlobalIsSet(outputFlag.Name) {
		cfg.Trace.Output = c.GlobalString(outputFlag.Name)
	}
	if c.GlobalIsSet(indentFlag.Name) {
		cfg.Trace.Indent = c.GlobalBool(indentFlag.Name)
	}
	if c.GlobalIsSet(storeFlag.Name) {
		cfg.Store.Backend = c.GlobalString(storeFlag.Name)
	}
	if c.GlobalIsSet(storePathFlag.Name) {
		cfg.Store.Path = c.GlobalString(storePathFlag.Name)
	}
	if c.GlobalIsSet(runFlag.Name) {
		cfg.Store.Run = c.GlobalString(runFlag.Name)
	}

	return cfg, cfg.Validate()
}

func setupLogger(c *cli.Context) error {
	level, err := logrus.ParseLevel(c.GlobalString(logLevelFlag.Name))
	if err != nil {
		return errors.Wrap(err, "parse --log-level")
	}
	logrus.SetLevel(level)
	return nil
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "create %s", path)
	}
	return f, f.Close, nil
}

func sortAction(c *cli.Context) error {
	if err := setupLogger(c); err != nil {
		return err
	}
	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}
	out, closeOut, err := openOutput(cfg.Trace.Output)
	if err != nil {
		return err
	}
	defer closeOut()

	return runDemo(cfg, out, logrus.StandardLogger())
}

// runDemo 입력을 준비하고 정렬 전후 배열과 추적을 out에 기록
func runDemo(cfg config.Config, out io.Writer, logger *logrus.Logger) error {
	data, err := loadInput(cfg.Input)
	if err != nil {
		return err
	}
	input := slices.Clone(data)
	logger.WithField("size", len(data)).Info("input ready")

	var tracers mergesort.Multi[int]
	recorder := &mergesort.Recorder[int]{}
	counter := &mergesort.Counter[int]{}
	tracers = append(tracers, counter)

	switch cfg.Trace.Format {
	case config.FormatText:
		tracers = append(tracers, &mergesort.TextTracer[int]{W: out, Indent: cfg.Trace.Indent})
	case config.FormatLog:
		lt := mergesort.NewLogTracer[int](logger)
		lt.Level = logrus.InfoLevel
		tracers = append(tracers, lt)
	case config.FormatJSON, config.FormatMarkdown:
		tracers = append(tracers, recorder)
	}

	var writer *tracestore.Writer[int]
	if cfg.Store.Backend != "" {
		store, err := tracestore.Open(cfg.Store.Backend, cfg.Store.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		writer = tracestore.NewWriter[int](store, cfg.Store.Run)
		tracers = append(tracers, writer)
	}

	plain := cfg.Trace.Format == config.FormatText || cfg.Trace.Format == config.FormatNone
	if plain {
		if _, err := fmt.Fprintf(out, "Original array: %v\n", data); err != nil {
			return errors.Wrap(err, "write original array")
		}
	}

	mergesort.Sort(data, tracers)

	if plain {
		if _, err := fmt.Fprintf(out, "Sorted array: %v\n", data); err != nil {
			return errors.Wrap(err, "write sorted array")
		}
	}

	switch cfg.Trace.Format {
	case config.FormatJSON:
		if err := saveEventsToJSON(out, recorder.Events); err != nil {
			return errors.Wrap(err, "write json trace")
		}
	case config.FormatMarkdown:
		if err := saveEventsToMarkdown(out, input, data, recorder.Events); err != nil {
			return errors.Wrap(err, "write markdown trace")
		}
	}

	if writer != nil {
		n := writer.Pending()
		if err := writer.Flush(); err != nil {
			return errors.Wrap(err, "store trace")
		}
		logger.WithFields(logrus.Fields{
			"backend": cfg.Store.Backend,
			"run":     cfg.Store.Run,
			"events":  n,
		}).Info("trace stored")
	}

	logger.WithFields(logrus.Fields{
		"splits":      counter.Splits(),
		"comparisons": counter.Comparisons(),
		"writes":      counter.Writes(),
	}).Info("sort finished")
	return nil
}

func openStore(c *cli.Context) (config.Config, tracestore.Store, error) {
	cfg, err := buildConfig(c)
	if err != nil {
		return cfg, nil, err
	}
	if cfg.Store.Backend == "" {
		return cfg, nil, errors.New("no store backend, set --store or [store] backend")
	}
	store, err := tracestore.Open(cfg.Store.Backend, cfg.Store.Path)
	return cfg, store, err
}

func replayAction(c *cli.Context) error {
	if err := setupLogger(c); err != nil {
		return err
	}
	cfg, store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	out, closeOut, err := openOutput(cfg.Trace.Output)
	if err != nil {
		return err
	}
	defer closeOut()

	return replayRun(store, cfg.Store.Run, &mergesort.TextTracer[int]{W: out, Indent: cfg.Trace.Indent})
}

// replayRun 저장된 이벤트를 순서대로 tr에 다시 흘려보낸다
func replayRun(store tracestore.Store, run string, tr mergesort.Tracer[int]) error {
	events, err := tracestore.Load[int](store, run)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return errors.Errorf("run %q has no events", run)
	}
	for _, e := range events {
		tr.Trace(e)
	}
	return nil
}

func runsAction(c *cli.Context) error {
	if err := setupLogger(c); err != nil {
		return err
	}
	cfg, store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	out, closeOut, err := openOutput(cfg.Trace.Output)
	if err != nil {
		return err
	}
	defer closeOut()

	return listRuns(store, out)
}

// listRuns 저장된 run 이름을 한 줄에 하나씩
func listRuns(store tracestore.Store, out io.Writer) error {
	runs, err := store.Runs()
	if err != nil {
		return err
	}
	for _, r := range runs {
		if _, err := fmt.Fprintln(out, r); err != nil {
			return errors.Wrap(err, "write run name")
		}
	}
	return nil
}

func genAction(c *cli.Context) error {
	if err := setupLogger(c); err != nil {
		return err
	}
	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}
	size := cfg.Input.Random
	if size == 0 {
		size = len(cfg.Input.Values)
	}
	data := generateRandomData(size, cfg.Input.Seed)

	path := c.String(genOutFlag.Name)
	if err := writeDataToFile(data, path); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	logrus.WithFields(logrus.Fields{"file": path, "size": size}).Info("input generated")
	return nil
}
