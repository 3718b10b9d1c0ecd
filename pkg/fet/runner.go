package fet

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const DefaultPath = "fet-cl"

type RunnerOptions struct {
	Path      string        `mapstructure:"path"`
	TimeLimit time.Duration `mapstructure:"time_limit"` // Zero leaves fet-cl's own limit
	OutputDir string        `mapstructure:"output_dir"` // Temporary directory when empty
}

// Runner hands a document over to the fet-cl command line solver
type Runner struct {
	options RunnerOptions
	logger  *zap.Logger
}

func NewRunner(options RunnerOptions, logger *zap.Logger) *Runner {
	if options.Path == "" {
		options.Path = DefaultPath
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{options: options, logger: logger}
}

// Run writes document to the output directory and runs fet-cl on it. It returns the directory where
// fet-cl left its results
func (runner *Runner) Run(ctx context.Context, document *Document) (string, error) {
	content, err := document.Marshal()
	if err != nil {
		return "", fmt.Errorf("cannot render fet document: %w", err)
	}

	outputDir := runner.options.OutputDir
	if outputDir == "" {
		if outputDir, err = os.MkdirTemp("", "classtables-*"); err != nil {
			return "", fmt.Errorf("failed to create temporary directory: %w", err)
		}
	} else if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	inputFile := filepath.Join(outputDir, "input.fet")
	if err := os.WriteFile(inputFile, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write fet document: %w", err)
	}

	args := []string{"--inputfile=" + inputFile, "--outputdir=" + outputDir}
	if runner.options.TimeLimit > 0 {
		args = append(args, "--timelimitseconds="+strconv.Itoa(int(runner.options.TimeLimit.Seconds())))
	}
	cmd := exec.CommandContext(ctx, runner.options.Path, args...)
	cmd.WaitDelay = time.Second

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	runner.logger.Info("running fet", zap.String("path", runner.options.Path), zap.String("input", inputFile))
	start := time.Now()
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("fet execution interrupted: %w", ctxErr)
		}
		return "", fmt.Errorf("an error occurred during fet execution: %w : %v", err, stderr.String())
	}
	runner.logger.Info("fet finished", zap.Duration("elapsed", time.Since(start)), zap.Int("output_bytes", stdOut.Len()))

	return outputDir, nil
}
