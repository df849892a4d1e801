package main

import (
	"context"
	"fmt"

	employeestore "github.com/dalemusser/employeehub/internal/app/store/employees"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace the collection with the sample employees",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, s *employeestore.Store) error {
			seed := employeestore.SeedData()
			if err := s.Replace(ctx, seed); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored %d sample employees\n", len(seed))
			return nil
		})
	},
}
