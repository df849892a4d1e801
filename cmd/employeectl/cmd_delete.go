package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	employeestore "github.com/dalemusser/employeehub/internal/app/store/employees"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id...]",
	Short: "Delete employees by id",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	return withStore(cmd, func(ctx context.Context, s *employeestore.Store) error {
		n, err := s.DeleteEmployees(ctx, ids)
		if errors.Is(err, employeestore.ErrNotFound) {
			return fmt.Errorf("no employee with id %v", args)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %d of %d employees\n", n, len(ids))
		return nil
	})
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid id %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
