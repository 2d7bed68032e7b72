package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"photoRenamer/naming"
)

// RenameConfig holds configuration for a rename run.
type RenameConfig struct {
	Pattern    string
	ExifFile   string   // explicit sidecar; only valid with at most one file
	SidecarExt string   // looked up as <file><ext> when ExifFile is empty
	Files      []string // positional arguments
	DestDir    string   // joined with the computed name when set
	DryRun     bool
	Force      bool // overwrite existing targets
	Jobs       int

	JournalPath  string
	UndoBatch    string
	ClearJournal bool
	ThumbDir     string
	ServeAddr    string
	Verbose      bool
}

// DefaultRenameConfig returns the configuration before flags are applied.
func DefaultRenameConfig() RenameConfig {
	return RenameConfig{
		SidecarExt: ".txt",
		Jobs:       4,
	}
}

// Validate checks that the flag combination describes a runnable mode.
func (c *RenameConfig) Validate() error {
	if c.ServeAddr != "" {
		return nil
	}
	if c.UndoBatch != "" || c.ClearJournal {
		if c.JournalPath == "" {
			return errors.New("-undo and -clear-journal need -journal")
		}
		return nil
	}
	if c.Pattern == "" {
		return errors.New("missing -pattern")
	}
	if _, err := naming.Placeholders(c.Pattern); err != nil {
		return err
	}
	if c.ExifFile != "" && len(c.Files) > 1 {
		return errors.New("-exif applies to a single file")
	}
	if c.ExifFile == "" && len(c.Files) == 0 {
		return errors.New("need -exif or at least one file")
	}
	if c.Jobs < 1 {
		return fmt.Errorf("invalid -jobs %d (must be at least 1)", c.Jobs)
	}
	return nil
}

var (
	// ErrTargetExists means the computed name is already taken on disk.
	ErrTargetExists = errors.New("target exists")
	// ErrTargetCollision means two files in the same run compute the same name.
	ErrTargetCollision = errors.New("target collision")
)

// RenamePlan is the computed outcome for one source file.
type RenamePlan struct {
	Source    string
	Target    string
	Unchanged bool // Target is Source; nothing to do
	Err       error
}

// RenameSummary counts the outcome of a run.
type RenameSummary struct {
	BatchID   string `json:"batchId"`
	Planned   int    `json:"planned"`
	Renamed   int    `json:"renamed"`
	Unchanged int    `json:"unchanged"`
	Failed    int    `json:"failed"`
}

// ComputeFilename runs the naming pipeline for one metadata record.
func ComputeFilename(record naming.Vars, pattern string) (string, error) {
	return naming.FormatPattern(pattern, naming.Variables(record))
}

// planRename loads the metadata of src and computes its target path.
func planRename(cfg RenameConfig, src string) RenamePlan {
	plan := RenamePlan{Source: src}
	record, err := LoadRecord(src, cfg.ExifFile, cfg.SidecarExt)
	if err != nil {
		plan.Err = err
		return plan
	}
	name, err := ComputeFilename(record, cfg.Pattern)
	if err != nil {
		plan.Err = err
		return plan
	}
	plan.Target = name
	if cfg.DestDir != "" {
		plan.Target = filepath.Join(cfg.DestDir, name)
	}
	plan.Unchanged = filepath.Clean(plan.Target) == filepath.Clean(src)
	return plan
}

// planRenames computes every plan in parallel, bounded by cfg.Jobs, then
// checks the targets for collisions in input order.
func planRenames(ctx context.Context, cfg RenameConfig) ([]RenamePlan, error) {
	plans := make([]RenamePlan, len(cfg.Files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Jobs)
	for i, src := range cfg.Files {
		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			plans[i] = planRename(cfg, src)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	checkCollisions(plans, cfg.Force)
	return plans, nil
}

// checkCollisions fails plans whose target is claimed by an earlier plan or,
// unless force is set, already exists on disk.
func checkCollisions(plans []RenamePlan, force bool) {
	owners := make(map[string]string)
	for i := range plans {
		p := &plans[i]
		if p.Err != nil || p.Unchanged {
			continue
		}
		key := filepath.Clean(p.Target)
		if owner, ok := owners[key]; ok {
			p.Err = fmt.Errorf("%w: %s is also the target of %s", ErrTargetCollision, p.Target, owner)
			continue
		}
		owners[key] = p.Source
		if force {
			continue
		}
		if _, err := os.Lstat(p.Target); err == nil {
			p.Err = fmt.Errorf("%w: %s", ErrTargetExists, p.Target)
		}
	}
}

// renameFiles plans and executes a batch rename. Every executed rename is
// recorded in the journal when one is configured.
func renameFiles(ctx context.Context, cfg RenameConfig, out io.Writer) (RenameSummary, error) {
	summary := RenameSummary{BatchID: uuid.NewString()}

	plans, err := planRenames(ctx, cfg)
	if err != nil {
		return summary, err
	}
	summary.Planned = len(plans)

	var db *DB
	if cfg.JournalPath != "" && !cfg.DryRun {
		db, err = openAndInitDB(cfg.JournalPath)
		if err != nil {
			return summary, fmt.Errorf("failed to open journal: %w", err)
		}
		defer db.Close()
	}

	log := logrus.WithField("batch", summary.BatchID)
	for _, p := range plans {
		switch {
		case p.Err != nil:
			summary.Failed++
			log.WithField("file", p.Source).WithError(p.Err).Error("cannot rename")
			continue
		case p.Unchanged:
			summary.Unchanged++
			log.WithField("file", p.Source).Debug("already named")
			continue
		case cfg.DryRun:
			fmt.Fprintf(out, "%s -> %s (dry run)\n", p.Source, p.Target)
			continue
		}

		if err := moveFile(p.Source, p.Target); err != nil {
			summary.Failed++
			log.WithField("file", p.Source).WithError(err).Error("rename failed")
			continue
		}
		summary.Renamed++
		fmt.Fprintf(out, "%s -> %s\n", p.Source, p.Target)

		if db != nil {
			if _, err := db.insertRename(RenameRecord{
				BatchID: summary.BatchID,
				Source:  p.Source,
				Target:  p.Target,
				Pattern: cfg.Pattern,
			}); err != nil {
				log.WithField("file", p.Target).WithError(err).Warn("journal write failed")
			}
		}

		if cfg.ThumbDir != "" {
			// Don't fail the rename if thumbnail generation fails
			if _, err := processThumbnail(p.Target, cfg.ThumbDir); err != nil {
				log.WithField("file", p.Target).WithError(err).Warn("thumbnail generation failed")
			}
		}
	}

	if db != nil && summary.Renamed > 0 {
		log.WithField("journal", cfg.JournalPath).Info("undo with -undo " + summary.BatchID)
	}
	return summary, nil
}

// undoBatch moves every entry of a journal batch back to its source path,
// newest first.
func undoBatch(cfg RenameConfig, out io.Writer) (RenameSummary, error) {
	summary := RenameSummary{BatchID: cfg.UndoBatch}

	db, err := openAndInitDB(cfg.JournalPath)
	if err != nil {
		return summary, fmt.Errorf("failed to open journal: %w", err)
	}
	defer db.Close()

	rows, err := db.listBatchRows(cfg.UndoBatch)
	if err != nil {
		return summary, fmt.Errorf("failed to read batch %s: %w", cfg.UndoBatch, err)
	}
	if len(rows) == 0 {
		return summary, fmt.Errorf("batch %s not found in %s", cfg.UndoBatch, cfg.JournalPath)
	}

	log := logrus.WithField("batch", cfg.UndoBatch)
	for i := len(rows) - 1; i >= 0; i-- {
		r := rows[i]
		if r.Undone {
			continue
		}
		summary.Planned++
		if _, err := os.Lstat(r.Source); err == nil && !cfg.Force {
			summary.Failed++
			log.WithField("file", r.Target).WithError(fmt.Errorf("%w: %s", ErrTargetExists, r.Source)).Error("cannot undo")
			continue
		}
		if cfg.DryRun {
			fmt.Fprintf(out, "%s -> %s (dry run)\n", r.Target, r.Source)
			continue
		}
		if err := moveFile(r.Target, r.Source); err != nil {
			summary.Failed++
			log.WithField("file", r.Target).WithError(err).Error("undo failed")
			continue
		}
		summary.Renamed++
		fmt.Fprintf(out, "%s -> %s\n", r.Target, r.Source)
		if err := db.markUndone(r.ID); err != nil {
			log.WithField("file", r.Source).WithError(err).Warn("journal update failed")
		}
	}
	return summary, nil
}

// moveFile renames src to dst, creating dst's directory. Across devices it
// falls back to copy and remove.
func moveFile(src, dst string) error {
	if err := ensureDirectory(filepath.Dir(dst)); err != nil {
		return err
	}
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return fmt.Errorf("failed to rename %s: %w", src, err)
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("failed to remove %s after copy: %w", src, err)
	}
	return nil
}

// ensureDirectory creates a directory if it doesn't exist
func ensureDirectory(dirPath string) error {
	if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// copyFile copies src to dst, keeping src's permission bits.
func copyFile(srcPath, dstPath string) error {
	existingFile, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer existingFile.Close()

	info, err := existingFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat source file: %w", err)
	}

	dstFile, err := os.OpenFile(dstPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}

	if _, err := io.Copy(dstFile, existingFile); err != nil {
		dstFile.Close()
		return fmt.Errorf("failed to copy file: %w", err)
	}
	if err := dstFile.Close(); err != nil {
		return fmt.Errorf("failed to close destination file: %w", err)
	}
	return nil
}
