// Command csvbind inspects delimited text files from the shell.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/shapestone/shape-csvbind/pkg/csv"
)

var (
	verboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Usage:   "log parser decisions to stderr",
		Aliases: []string{"v"},
	}

	delimiterFlag = &cli.StringFlag{
		Name:    "delimiter",
		Usage:   "field `DELIMITER`: auto, comma, tab, semicolon or pipe",
		Value:   "auto",
		Aliases: []string{"d"},
	}

	noHeaderFlag = &cli.BoolFlag{
		Name:  "no-header",
		Usage: "treat the first row as data",
	}

	keepHeaderFlag = &cli.BoolFlag{
		Name:  "keep-header",
		Usage: "print the header row as well",
	}

	encodingFlag = &cli.StringFlag{
		Name:    "encoding",
		Usage:   "input `LABEL`, e.g. utf-8, windows-1252, utf-16le",
		Value:   "utf-8",
		Aliases: []string{"e"},
	}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "csvbind: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "csvbind",
		Usage:     "detect, sniff and print delimited text files",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     []cli.Flag{verboseFlag},
		Commands: []*cli.Command{
			{
				Name:      "detect",
				Usage:     "print the delimiter detected from the first non-blank line",
				ArgsUsage: "FILE",
				Flags:     []cli.Flag{encodingFlag},
				Action:    detect,
			},
			{
				Name:      "rows",
				Usage:     "print every row as a JSON array",
				ArgsUsage: "FILE",
				Flags:     []cli.Flag{delimiterFlag, noHeaderFlag, keepHeaderFlag, encodingFlag},
				Action:    rows,
			},
			{
				Name:      "sniff",
				Usage:     "guess the delimiter and whether the file has a header",
				ArgsUsage: "FILE",
				Flags:     []cli.Flag{encodingFlag},
				Action:    sniff,
			},
		},
	}
}

func detect(c *cli.Context) error {
	sample, err := readSample(c)
	if err != nil {
		return err
	}
	d := csv.DetectDelimiter(sample)
	logger(c).Debug("detected delimiter", slog.String("delimiter", d.String()))
	_, err = fmt.Fprintln(c.App.Writer, d)
	return err
}

func rows(c *cli.Context) error {
	path, err := fileArg(c)
	if err != nil {
		return err
	}

	d, err := csv.ParseDelimiter(c.String(delimiterFlag.Name))
	if err != nil {
		return err
	}

	opts := csv.DefaultParseOptions()
	opts.Delimiter = d
	opts.HasHeader = !c.Bool(noHeaderFlag.Name)
	opts.RemoveHeader = !c.Bool(keepHeaderFlag.Name)
	opts.Encoding = c.String(encodingFlag.Name)
	opts.Logger = logger(c)

	sheet, err := csv.ParseFile(path, opts)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetEscapeHTML(false)
	for _, row := range sheet {
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}

func sniff(c *cli.Context) error {
	sample, err := readSample(c)
	if err != nil {
		return err
	}
	s := csv.NewSniffer(sample)
	_, err = fmt.Fprintf(c.App.Writer, "delimiter=%s header=%t\n", s.DetectDelimiter(), s.HasHeader())
	return err
}

func fileArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("%s: expected one FILE argument, got %d", c.Command.Name, c.NArg())
	}
	return c.Args().First(), nil
}

// readSample loads the file decoded under the --encoding label.
func readSample(c *cli.Context) (string, error) {
	path, err := fileArg(c)
	if err != nil {
		return "", err
	}
	opts := csv.DefaultParseOptions()
	opts.Encoding = c.String(encodingFlag.Name)
	return csv.ReadFile(path, opts)
}

func logger(c *cli.Context) *slog.Logger {
	level := slog.LevelInfo
	if c.Bool(verboseFlag.Name) {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level}))
}
