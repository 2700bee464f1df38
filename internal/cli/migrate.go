package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Reasonofmoon/darlkom-banana/pkg/dna"
	"github.com/Reasonofmoon/darlkom-banana/pkg/errors"
)

// migrateCommand creates the migrate command.
func (c *CLI) migrateCommand() *cobra.Command {
	var output string
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "migrate <legacy.json> [current.json]",
		Short: "Convert legacy descriptors to the v2 schema",
		Long: `Convert legacy descriptors to the v2 schema.

Entries of the legacy file are mapped to v2 (background becomes primary,
the first accent becomes accent) and appended to the current document.
Entries whose id already exists are skipped, so migrating twice is safe.
Without a current document the result holds only the migrated entries.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			current := ""
			if len(args) == 2 {
				current = args[1]
			}
			if output == "" {
				output = current
			}
			if output == "" && !dryRun {
				return errors.New(errors.ErrCodeInvalidInput, "--output is required without a current document")
			}
			return c.runMigrate(args[0], current, output, dryRun)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: the current document)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would change without writing")
	return cmd
}

func (c *CLI) runMigrate(legacyPath, currentPath, output string, dryRun bool) error {
	legacy, err := readDocument(legacyPath)
	if err != nil {
		return err
	}
	current := &dna.Document{}
	if currentPath != "" {
		if current, err = readDocument(currentPath); err != nil {
			return err
		}
	}

	res := dna.Migrate(legacy, current)
	c.Logger.Debug("migrated", "added", res.Added, "skipped", res.Skipped)
	if dryRun {
		printInfo("Would add %d entries, skip %d", res.Added, res.Skipped)
		return nil
	}

	if err := errors.ValidateOutputPath(output); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := dna.WriteDocument(&buf, res.Document); err != nil {
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Migrated %d entries (%d skipped)", res.Added, res.Skipped)
	printFile(output)
	return nil
}

func readDocument(path string) (*dna.Document, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dna.ReadDocument(f)
}
