package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorage/pkg/errors"
	"github.com/matzehuels/anchorage/pkg/scenario"
)

// initCommand creates the init command, which writes a starter scenario file.
func (c *CLI) initCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [FILE]",
		Short: "Write an example scenario file",
		Long: `Write an example scenario file. The format follows the extension
(.toml, .yaml, .yml or .json); without FILE a TOML document goes to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			examples := []scenario.Scenario{scenario.Example()}
			if len(args) == 0 {
				return scenario.Encode(cmd.OutOrStdout(), scenario.FormatTOML, examples)
			}

			path := args[0]
			format, err := scenario.FormatOf(path)
			if err != nil {
				return err
			}
			flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
			if force {
				flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
			}
			f, err := os.OpenFile(path, flags, 0o644)
			if os.IsExist(err) {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s already exists (use --force to overwrite)", path)
			}
			if err != nil {
				return err
			}
			if err := scenario.Encode(f, format, examples); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			printSuccess("Wrote example scenario")
			printFile(path)
			printNextStep("Resolve it", "anchorage resolve --file "+path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}
