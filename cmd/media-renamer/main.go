package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/quidome/media-renamer-go/pkg/plan"
	"github.com/quidome/media-renamer-go/pkg/rename"
	"github.com/quidome/media-renamer-go/pkg/scan"
	"github.com/quidome/media-renamer-go/pkg/taken"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

type options struct {
	verbose bool
	dryRun  bool
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "media-renamer",
		Short:   "A CLI tool to rename media files by their date taken",
		Long:    "Media Renamer is a command-line tool that renames photos and videos in a folder to a timestamp-based filename derived from their EXIF date taken.",
		Version: version,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("Media Renamer CLI")
			cmd.Printf("Version: %s\n", version)
			cmd.Println("")
			cmd.Println("Use --help to see available commands and options")
		},
	}

	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "perform a dry run without making changes")

	rootCmd.AddCommand(newRenameCmd(opts))
	rootCmd.AddCommand(newScanCmd(opts))

	return rootCmd
}

type jsonOperation struct {
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
	Outcome string `json:"outcome"`
	Error   string `json:"error,omitempty"`
}

func newRenameCmd(opts *options) *cobra.Command {
	var jsonOut bool

	renameCmd := &cobra.Command{
		Use:   "rename [directory]",
		Short: "Rename media files in a directory by their date taken",
		Long: "Rename media files in a directory (defaults to the current working directory) to IMG_YYYYMMDD_HHMMSS / VID_YYYYMMDD_HHMMSS names derived from their date taken.\n" +
			"Files without a usable date are left untouched. Existing files are never overwritten.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runRename(cmd, dir, opts, jsonOut)
		},
	}

	renameCmd.Flags().BoolVar(&jsonOut, "json", false, "print per-file results as JSON")

	return renameCmd
}

func runRename(cmd *cobra.Command, dir string, opts *options, jsonOut bool) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("input folder: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("input folder: %s is not a directory", dir)
	}

	fsys := os.DirFS(dir)

	// Direct children only; the rename contract does not recurse.
	records, err := scan.ScanRecords(fsys, ".", scan.DefaultOptions())
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}

	var items []plan.Item
	var skipped, unreadable int
	for _, rec := range records {
		res, detErr := taken.Determine(fsys, rec.Path, taken.Options{
			UseMtime: rec.Kind == scan.KindVideo,
		})
		if detErr != nil {
			cmd.PrintErrf("warning: %s: %v\n", rec.Path, detErr)
			unreadable++
			continue
		}
		if res.Source == taken.SourceUnknown {
			cmd.PrintErrf("warning: %s: no date taken, skipping\n", rec.Path)
			skipped++
			continue
		}
		if opts.verbose {
			cmd.PrintErrf("%s: date taken %s (from %s)\n", rec.Path, res.TakenAt.Format("2006-01-02 15:04:05"), res.Source)
		}

		prefix := plan.PrefixPhoto
		if rec.Kind == scan.KindVideo {
			prefix = plan.PrefixVideo
		}
		items = append(items, plan.Item{Name: rec.Path, Prefix: prefix, TakenAt: res.TakenAt})
	}

	ops := plan.Assign(items)
	results := rename.Execute(dir, ops, rename.Options{DryRun: opts.dryRun})

	if jsonOut {
		jsonOps := make([]jsonOperation, 0, len(results))
		for _, r := range results {
			op := jsonOperation{
				OldName: r.Operation.OldName,
				NewName: r.Operation.NewName,
				Outcome: string(r.Outcome),
			}
			if r.Error != nil {
				op.Error = r.Error.Error()
			}
			jsonOps = append(jsonOps, op)
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(jsonOps); err != nil {
			return fmt.Errorf("encode results: %w", err)
		}
	} else {
		for _, r := range results {
			switch r.Outcome {
			case rename.OutcomeRenamed:
				cmd.Printf("%s -> %s\n", r.Operation.OldName, r.Operation.NewName)
			case rename.OutcomeUnchanged:
				if opts.verbose {
					cmd.PrintErrf("%s: already named correctly\n", r.Operation.OldName)
				}
			case rename.OutcomeFailed:
				cmd.PrintErrf("warning: %s: %v\n", r.Operation.OldName, r.Error)
			}
		}
	}

	summary := rename.Summarize(results, skipped)
	summary.Failed += unreadable

	if opts.dryRun {
		cmd.PrintErrln("dry run: no files were renamed")
	}
	cmd.PrintErrf("renamed %d, unchanged %d, skipped %d, failed %d\n",
		summary.Renamed, summary.Unchanged, summary.Skipped, summary.Failed)

	return nil
}

func newScanCmd(opts *options) *cobra.Command {
	var maxDepth int
	var jsonOut bool

	scanCmd := &cobra.Command{
		Use:   "scan [directory]",
		Short: "Scan a directory for media files",
		Long:  "Scan a directory and print all media files found (relative to the scan root).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			directory := args[0]

			scanOpts := scan.DefaultOptions()
			scanOpts.MaxDepth = maxDepth

			records, err := scan.ScanRecords(os.DirFS(directory), ".", scanOpts)
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(records); err != nil {
					return fmt.Errorf("encode records: %w", err)
				}
			} else {
				for _, rec := range records {
					cmd.Println(rec.Path)
				}
			}

			if opts.verbose {
				cmd.PrintErrf("found %d media files\n", len(records))
			}

			return nil
		},
	}

	scanCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum recursion depth (0 = no recursion, -1 = unlimited)")
	scanCmd.Flags().BoolVar(&jsonOut, "json", false, "print records as JSON")

	return scanCmd
}
