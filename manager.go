package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

const usageHeader = `Usage: photorename -pattern PATTERN [-exif FILE] [flags] [FILE...]

Computes a filename from EXIF metadata and PATTERN, then renames FILE to it.
With -exif and no FILE the computed name is printed. Without -exif each FILE
uses FILE+SIDECAR_EXT when present, else its embedded EXIF.

Pattern variables: {Y} {y} {m} {D} {t} {H} {h} {M} {S} {W} {a} from
CreateDate, {f} {r} {e} from FileName, {T2} from Model, plus every raw
metadata key. Use {{ and }} for literal braces.

Flags:
`

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "photorename: %v\n", err)
		return 2
	}
	configureLogging(cfg.Verbose, stderr)

	switch {
	case cfg.ServeAddr != "":
		if err := StartServer(cfg.ServeAddr, cfg.JournalPath); err != nil {
			logrus.WithError(err).Error("server error")
			return 1
		}
		return 0

	case cfg.ClearJournal:
		db, err := openAndInitDB(cfg.JournalPath)
		if err != nil {
			logrus.WithError(err).Error("Failed to open journal")
			return 1
		}
		defer db.Close()
		if err := db.clearDBTables(); err != nil {
			logrus.WithError(err).Error("Failed to clear journal")
			return 1
		}
		logrus.WithField("journal", cfg.JournalPath).Info("Cleared journal")
		return 0

	case cfg.UndoBatch != "":
		summary, err := undoBatch(cfg, stdout)
		return exitCode(summary, err)

	case len(cfg.Files) == 0:
		record, err := ReadMetadataFile(cfg.ExifFile)
		if err != nil {
			logrus.WithError(err).Error("cannot read metadata")
			return 1
		}
		name, err := ComputeFilename(record, cfg.Pattern)
		if err != nil {
			logrus.WithError(err).Error("cannot format filename")
			return 1
		}
		fmt.Fprintln(stdout, name)
		return 0
	}

	summary, err := renameFiles(ctx, cfg, stdout)
	return exitCode(summary, err)
}

func exitCode(summary RenameSummary, err error) int {
	if err != nil {
		logrus.WithError(err).Error("run failed")
		return 1
	}
	logrus.WithFields(logrus.Fields{
		"batch":     summary.BatchID,
		"planned":   summary.Planned,
		"renamed":   summary.Renamed,
		"unchanged": summary.Unchanged,
		"failed":    summary.Failed,
	}).Debug("done")
	if summary.Failed > 0 {
		return 1
	}
	return 0
}

// parseFlags parses args into a validated RenameConfig.
func parseFlags(args []string, output io.Writer) (RenameConfig, error) {
	cfg := DefaultRenameConfig()

	fs := flag.NewFlagSet("photorename", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, usageHeader)
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.Pattern, "pattern", "", "Filename pattern, e.g. {y}{m}{D}_{t}_{T2}_{r}.{e}")
	fs.StringVar(&cfg.Pattern, "p", "", "Same as -pattern")
	fs.StringVar(&cfg.ExifFile, "exif", "", "Metadata file (key: value lines)")
	fs.StringVar(&cfg.ExifFile, "e", "", "Same as -exif")
	fs.StringVar(&cfg.SidecarExt, "sidecar-ext", cfg.SidecarExt, "Sidecar suffix looked up next to each FILE")
	fs.StringVar(&cfg.DestDir, "dest", "", "Directory for renamed files (default: name as computed)")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Print the renames without touching files")
	fs.BoolVar(&cfg.Force, "force", false, "Overwrite existing targets")
	fs.IntVar(&cfg.Jobs, "jobs", cfg.Jobs, "Files planned in parallel")
	fs.StringVar(&cfg.JournalPath, "journal", "", "SQLite journal recording each rename")
	fs.StringVar(&cfg.UndoBatch, "undo", "", "Revert a journal batch by id")
	fs.BoolVar(&cfg.ClearJournal, "clear-journal", false, "Delete all journal entries and exit")
	fs.StringVar(&cfg.ThumbDir, "thumbs", "", "Write a thumbnail of each renamed image here")
	fs.StringVar(&cfg.ServeAddr, "serve", "", "Serve the HTTP API on this address, e.g. 127.0.0.1:7070")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")
	showVersion := fs.Bool("version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if *showVersion {
		fmt.Fprintln(output, "photorename v"+version)
		return cfg, flag.ErrHelp
	}
	cfg.Files = fs.Args()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func configureLogging(verbose bool, out io.Writer) {
	logrus.SetOutput(out)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}
