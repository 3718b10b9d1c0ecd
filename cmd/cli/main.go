package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/limaJavier/classtables/pkg/compiler"
	"github.com/limaJavier/classtables/pkg/config"
	"github.com/limaJavier/classtables/pkg/fet"
	"github.com/limaJavier/classtables/pkg/groups"
	"github.com/limaJavier/classtables/pkg/logger"
	"github.com/limaJavier/classtables/pkg/model"
	"github.com/limaJavier/classtables/pkg/slots"
	"go.uber.org/zap"
)

const (
	exitOk         = 0
	exitInputError = 1
	exitFailure    = 2
)

var validFormats = []string{"json", "fet"}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// Define arguments
	flags := flag.NewFlagSet("cli", flag.ContinueOnError)
	flags.SetOutput(stderr)
	filePath := flags.String("file", "", "Path to the input file")
	outFilePath := flags.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	format := flags.String("format", "json", "Output format. Allowed values are: \"json\" (the compiled bundle) and \"fet\" (a FET input document), where \"json\" is the default")
	configPath := flags.String("config", "", "Path to the configuration file; config.json next to the executable or in the working directory is used if empty")
	solve := flags.Bool("solve", false, "Hand the compiled document over to fet-cl, which writes its results next to the document")
	if err := flags.Parse(args); err != nil {
		return exitFailure
	}
	*format = strings.ToLower(*format)

	// Validate arguments
	if !slices.Contains(validFormats, *format) {
		fmt.Fprintf(stderr, "%v is not a valid format\n", *format)
		return exitFailure
	} else if *filePath == "" {
		fmt.Fprintln(stderr, "an input file must be specified")
		return exitFailure
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "cannot load configuration: %v\n", err)
		return exitFailure
	}
	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "cannot build logger: %v\n", err)
		return exitFailure
	}
	defer log.Sync()

	// Extract input
	input, err := model.InputFromJson(*filePath)
	if err != nil {
		log.Error("cannot parse input file", zap.String("file", *filePath), zap.Error(err))
		return exitInputError
	}

	// Compile
	bundle, err := compiler.NewCompiler(cfg.Options, log).Compile(input)
	if err != nil {
		log.Error("compilation failed", zap.Error(err))
		if isInputError(err) {
			return exitInputError
		}
		return exitFailure
	}
	slotModel, err := input.SlotModel()
	if err != nil {
		log.Error("invalid week", zap.Error(err))
		return exitInputError
	}
	document := fet.ToFET(bundle, slotModel)

	// Build output
	var output []byte
	if *format == "fet" {
		output, err = document.Marshal()
	} else {
		output, err = json.MarshalIndent(bundle, "", "  ")
	}
	if err != nil {
		log.Error("an error occurred while building output", zap.Error(err))
		return exitFailure
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if *outFilePath == "" {
		fmt.Fprintln(stdout, string(output))
	} else if err := os.WriteFile(*outFilePath, output, 0666); err != nil {
		log.Error("an error occurred while writing to the output file", zap.String("file", *outFilePath), zap.Error(err))
		return exitFailure
	}

	if *solve {
		outputDir, err := fet.NewRunner(cfg.Fet, log).Run(ctx, document)
		if err != nil {
			log.Error("fet run failed", zap.Error(err))
			return exitFailure
		}
		log.Info("fet results written", zap.String("dir", outputDir))
	}

	return exitOk
}

func isInputError(err error) bool {
	var inputErr compiler.InputError
	var divisionErr groups.DivisionError
	var configErr slots.ConfigError
	return errors.As(err, &inputErr) || errors.As(err, &divisionErr) || errors.As(err, &configErr)
}
