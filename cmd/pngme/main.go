// Command pngme hides messages in PNG files by adding, reading and removing
// chunks.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"pngme.adpollak.net/internal/chunk"
	"pngme.adpollak.net/internal/commands"
	"pngme.adpollak.net/internal/config"
)

// errUsage marks errors caused by bad arguments rather than a failed
// operation.
var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var configPath string
	var verbose bool

	flagSet := pflag.NewFlagSet("pngme", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&configPath, "config", "", "path to a YAML config file (default: $"+config.EnvVar+")")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(stderr, flagSet)
			return 0
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		printHelp(stderr, flagSet)
		return 2
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stderr, flagSet)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	level, _ := cfg.Level()
	if verbose {
		level = slog.LevelDebug
	}
	logger := newLogger(stderr, level)

	runner := commands.NewRunner(logger, cfg, stdout)
	if err := dispatch(runner, flagSet.Args()); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		if errors.Is(err, errUsage) {
			printHelp(stderr, flagSet)
			return 2
		}
		return 1
	}
	return 0
}

func dispatch(runner *commands.Runner, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}
	command, rest := args[0], args[1:]
	switch command {
	case "encode":
		if len(rest) < 3 || len(rest) > 4 {
			return fmt.Errorf("%w: encode PATH CHUNK_TYPE MESSAGE [OUTPUT]", errUsage)
		}
		chunkType, err := parseChunkType(rest[1])
		if err != nil {
			return err
		}
		var output string
		if len(rest) == 4 {
			output = rest[3]
		}
		return runner.Encode(rest[0], chunkType, rest[2], output)
	case "decode":
		if len(rest) != 2 {
			return fmt.Errorf("%w: decode PATH CHUNK_TYPE", errUsage)
		}
		chunkType, err := parseChunkType(rest[1])
		if err != nil {
			return err
		}
		return runner.Decode(rest[0], chunkType)
	case "remove":
		if len(rest) != 2 {
			return fmt.Errorf("%w: remove PATH CHUNK_TYPE", errUsage)
		}
		chunkType, err := parseChunkType(rest[1])
		if err != nil {
			return err
		}
		return runner.Remove(rest[0], chunkType)
	case "print":
		if len(rest) != 1 {
			return fmt.Errorf("%w: print PATH", errUsage)
		}
		return runner.Print(rest[0])
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, command)
}

func parseChunkType(s string) (chunk.ChunkType, error) {
	chunkType, err := chunk.FromString(s)
	if err != nil {
		return chunk.ChunkType{}, fmt.Errorf("%w: %w", errUsage, err)
	}
	return chunkType, nil
}

// newLogger logs text to a terminal and JSON otherwise.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `pngme hides text messages in PNG files as extra chunks.

Usage:
  pngme [flags] encode PATH CHUNK_TYPE MESSAGE [OUTPUT]
  pngme [flags] decode PATH CHUNK_TYPE
  pngme [flags] remove PATH CHUNK_TYPE
  pngme [flags] print PATH

CHUNK_TYPE is four ASCII letters, e.g. ruSt.

Flags:
%s`, flagSet.FlagUsages())
}
