package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/miditoy/miditoy/pkg/cli"
)

var compositionsCmd = &cobra.Command{
	Use:     "compositions",
	Aliases: []string{"comp"},
	Short:   "Composition library",
}

var compositionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored compositions",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()
		recs, err := lib.List(cmd.Context())
		if err != nil {
			return err
		}
		type row struct {
			Name      string    `json:"name"`
			CreatedAt time.Time `json:"createdAt"`
			UpdatedAt time.Time `json:"updatedAt"`
		}
		rows := make([]row, len(recs))
		for i, r := range recs {
			rows[i] = row{Name: r.Name, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
		}
		return cli.Output(rows, outputOpts())
	},
}

var compositionsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a stored composition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()
		rec, err := lib.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		c, err := rec.Decode()
		if err != nil {
			return err
		}
		return cli.Output(c, outputOpts())
	},
}

var compositionsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored composition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()
		if err := lib.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		cli.PrintSuccess("deleted %s", args[0])
		return nil
	},
}

func init() {
	compositionsCmd.AddCommand(compositionsListCmd)
	compositionsCmd.AddCommand(compositionsShowCmd)
	compositionsCmd.AddCommand(compositionsDeleteCmd)
	rootCmd.AddCommand(compositionsCmd)
}
