package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	employeestore "github.com/dalemusser/employeehub/internal/app/store/employees"
	"github.com/spf13/cobra"
)

var listQuery employeestore.Query

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one page of employees",
	Long: `Prints employees the way the list page pages them.

Example:
  employeectl list --page 2 --size 20 --department 1`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	f := listCmd.Flags()
	f.IntVar(&listQuery.Page, "page", 1, "Page number (1-based)")
	f.IntVar(&listQuery.PageSize, "size", employeestore.DefaultPageSize, "Employees per page")
	f.StringVarP(&listQuery.SearchTerm, "q", "q", "", "Search term (name, email, phone)")
	f.StringVar(&listQuery.Department, "department", "", "Department code")
	f.StringVar(&listQuery.Position, "position", "", "Position code")
}

func runList(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, s *employeestore.Store) error {
		page, err := s.GetEmployees(ctx, listQuery)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tFIRST\tLAST\tEMPLOYED\tBORN\tPHONE\tEMAIL\tDEPT\tPOS")
		for _, e := range page.Data {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				e.ID, e.FirstName, e.LastName, e.DateOfEmployment, e.DateOfBirth,
				e.Phone, e.Email, e.Department, e.Position)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		m := page.Metadata
		fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d, %d employees\n", m.CurrentPage, m.TotalPages, m.TotalItems)
		return nil
	})
}
