package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"github.com/limaJavier/classtables/pkg/compiler"
	"github.com/limaJavier/classtables/pkg/constraints"
	"github.com/limaJavier/classtables/pkg/model"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	defaultTestDirectory         = "../../pkg/compiler/testdata/"
	MB                   float32 = 1024 * 1024
)

type CacheMode int

const (
	cold CacheMode = iota // Division cache cleared before every compile
	warm
)

var cacheModes = map[CacheMode]string{
	cold: "cold",
	warm: "warm",
}

type TestMetadata struct {
	Name     string
	Classes  int
	Teachers int
	Courses  int
	Rooms    int
}

type BenchmarkResult struct {
	Test             TestMetadata
	Cache            CacheMode
	Runs             int
	Duration         time.Duration // Mean per compile
	Memory           float32       // Mean allocated MB per compile
	Activities       int
	TimeConstraints  int
	SpaceConstraints int
	VirtualRooms     int
	Warnings         int
}

func main() {
	directory := flag.String("dir", defaultTestDirectory, "Directory holding the input files to compile")
	runs := flag.Int("runs", 100, "Number of compiles per input file and cache mode")
	outFile := flag.String("out", "benchmark_results.csv", "Path to the CSV file where results will be written")
	flag.Parse()

	inputs, tests := getTests(*directory)
	results := make([]BenchmarkResult, 0, len(tests)*len(cacheModes))

	for i, test := range tests {
		for _, cache := range []CacheMode{cold, warm} {
			fmt.Printf("Benchmarking test \"%v\" with a %v cache\n", test.Name, cacheModes[cache])
			result, err := measure(inputs[i], cache, *runs)
			if err != nil {
				log.Fatalf("an error occurred while compiling test \"%v\": %v", test.Name, err)
			}
			result.Test = test
			results = append(results, result)
		}
	}

	file, err := os.Create(*outFile)
	if err != nil {
		log.Fatalf("cannot create CSV file: %v", err)
	}
	defer file.Close()
	toCsv(file, results)
}

func getTests(directory string) ([]model.Input, []TestMetadata) {
	testFiles, err := os.ReadDir(directory)
	if err != nil {
		log.Fatalf("cannot read directory: %v", err)
	}

	inputs := make([]model.Input, 0, len(testFiles))
	tests := make([]TestMetadata, 0, len(testFiles))
	for _, file := range testFiles {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}
		filename := filepath.Join(directory, file.Name())
		input, err := model.InputFromJson(filename)
		if err != nil {
			log.Fatalf("cannot parse input file: %v", err)
		}

		inputs = append(inputs, input)
		tests = append(tests, TestMetadata{
			Name:     filename,
			Classes:  len(input.Classes),
			Teachers: len(input.Teachers),
			Courses:  len(input.Courses),
			Rooms:    len(input.Rooms),
		})
	}

	return inputs, tests
}

func measure(input model.Input, cache CacheMode, runs int) (BenchmarkResult, error) {
	engine := compiler.NewCompiler(compiler.DefaultOptions(), zap.NewNop())
	bundle, err := engine.Compile(input)
	if err != nil {
		return BenchmarkResult{}, err
	}

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()
	for range runs {
		if cache == cold {
			engine.ClearCache()
		}
		if _, err := engine.Compile(input); err != nil {
			return BenchmarkResult{}, err
		}
	}
	elapsed := time.Since(start)
	runtime.ReadMemStats(&after)

	return BenchmarkResult{
		Cache:            cache,
		Runs:             runs,
		Duration:         elapsed / time.Duration(max(runs, 1)),
		Memory:           float32(after.TotalAlloc-before.TotalAlloc) / MB / float32(max(runs, 1)),
		Activities:       len(bundle.Activities),
		TimeConstraints:  countConstraints(bundle.TimeConstraints),
		SpaceConstraints: countConstraints(bundle.SpaceConstraints),
		VirtualRooms:     len(bundle.VirtualRooms),
		Warnings:         len(bundle.Warnings),
	}, nil
}

func countConstraints(byKind map[constraints.Kind][]constraints.Constraint) int {
	return lo.SumBy(lo.Values(byKind), func(list []constraints.Constraint) int { return len(list) })
}

func toCsv(out io.Writer, results []BenchmarkResult) {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	header := []string{"Test", "Classes", "Teachers", "Courses", "Rooms", "Cache", "Runs", "Duration(us)", "Memory(MB)", "Activities", "TimeConstraints", "SpaceConstraints", "VirtualRooms", "Warnings"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	slices.SortStableFunc(results, func(a, b BenchmarkResult) int { return int(a.Cache) - int(b.Cache) })
	for _, result := range results {
		record := []string{
			result.Test.Name,
			fmt.Sprintf("%d", result.Test.Classes),
			fmt.Sprintf("%d", result.Test.Teachers),
			fmt.Sprintf("%d", result.Test.Courses),
			fmt.Sprintf("%d", result.Test.Rooms),
			cacheModes[result.Cache],
			fmt.Sprintf("%d", result.Runs),
			fmt.Sprintf("%d", result.Duration.Microseconds()),
			fmt.Sprintf("%.3f", result.Memory),
			fmt.Sprintf("%d", result.Activities),
			fmt.Sprintf("%d", result.TimeConstraints),
			fmt.Sprintf("%d", result.SpaceConstraints),
			fmt.Sprintf("%d", result.VirtualRooms),
			fmt.Sprintf("%d", result.Warnings),
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}
