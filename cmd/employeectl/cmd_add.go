package main

import (
	"context"
	"fmt"

	employeestore "github.com/dalemusser/employeehub/internal/app/store/employees"
	"github.com/dalemusser/employeehub/internal/app/system/csvutil"
	"github.com/dalemusser/employeehub/internal/domain/models"
	"github.com/spf13/cobra"
)

var newEmployee models.Employee

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add one employee",
	Long: `Adds an employee after the same checks the add form makes.

Example:
  employeectl add --first Ada --last Lovelace --born 1990-12-10 \
    --employed 2024-01-02 --phone "+90 555 555 55 99" \
    --email ada@example.com --department 2 --position 3`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	f := addCmd.Flags()
	f.StringVar(&newEmployee.FirstName, "first", "", "First name")
	f.StringVar(&newEmployee.LastName, "last", "", "Last name")
	f.StringVar(&newEmployee.DateOfBirth, "born", "", "Date of birth (YYYY-MM-DD)")
	f.StringVar(&newEmployee.DateOfEmployment, "employed", "", "Date of employment (YYYY-MM-DD)")
	f.StringVar(&newEmployee.Phone, "phone", "", "Phone number")
	f.StringVar(&newEmployee.Email, "email", "", "Email address")
	f.StringVar(&newEmployee.Department, "department", "", "Department code")
	f.StringVar(&newEmployee.Position, "position", "", "Position code")
}

func runAdd(cmd *cobra.Command, args []string) error {
	if reason := csvutil.Validate(newEmployee); reason != "" {
		return fmt.Errorf("invalid employee: %s", reason)
	}
	return withStore(cmd, func(ctx context.Context, s *employeestore.Store) error {
		e, err := s.AddEmployee(ctx, newEmployee)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added employee %d\n", e.ID)
		return nil
	})
}
