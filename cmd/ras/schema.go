package main

import (
	"fmt"

	"github.com/rankmath/repair-action-scheduler/internal/domain/schema"
	apperrors "github.com/rankmath/repair-action-scheduler/pkg/errors"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [table]",
	Short: "Print the CREATE TABLE statement for one or all tables",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

// runSchema needs no database connection.
func runSchema(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	charsetCollate := schema.CharsetCollate(cfg.DB.Charset, cfg.DB.Collate)

	specs := schema.Catalog()
	if len(args) == 1 {
		spec, ok := schema.Lookup(args[0])
		if !ok {
			return apperrors.NewNotFoundError("Table", args[0])
		}
		specs = []schema.TableSpec{spec}
	}

	for _, spec := range specs {
		fmt.Fprintf(cmd.OutOrStdout(), "%s;\n\n", spec.DDL(cfg.DB.Prefix, charsetCollate))
	}
	return nil
}
