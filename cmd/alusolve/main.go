// Command alusolve inverts an ALU program: it reads the assembly text,
// derives the comparison constraints with one forward symbolic pass, and
// searches for the largest and/or smallest digit sequence that drives
// register z to zero.
package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/gitrdm/alusolve/internal/parallel"
	"github.com/gitrdm/alusolve/pkg/alu"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		order      string
		timeout    time.Duration
		cpuProfile bool
	)

	cmd := &cobra.Command{
		Use:   "alusolve [program file]",
		Short: "find the digit sequences that zero an ALU program's z register",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cpuProfile {
				defer profile.Start(profile.ProfilePath(".")).Stop()
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			return solve(ctx, cmd, args[0], order)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&order, "order", "both", "which answer to search for: largest, smallest or both")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "abort the search after this duration (0 means no limit)")
	cmd.Flags().BoolVar(&cpuProfile, "profile", false, "write a CPU profile to the current directory")
	return cmd
}

func solve(ctx context.Context, cmd *cobra.Command, path, order string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	prog, err := alu.Parse(string(src))
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	// One forward pass serves both searches; the constraint is immutable.
	constraint, err := alu.Analyze(prog, alu.Z, 0)
	if err != nil {
		return err
	}

	var orders []alu.Order
	switch order {
	case "largest":
		orders = []alu.Order{alu.Descending}
	case "smallest":
		orders = []alu.Order{alu.Ascending}
	case "both":
		orders = []alu.Order{alu.Descending, alu.Ascending}
	default:
		return fmt.Errorf("unknown order %q", order)
	}

	answers := make([]int64, len(orders))
	var mu sync.Mutex
	group := parallel.NewGroup(len(orders))
	for i, o := range orders {
		group.Go(ctx, func(ctx context.Context) error {
			digits, err := alu.Search(ctx, prog, constraint, o, alu.Z, 0)
			if err != nil {
				return fmt.Errorf("%s search: %w", o, err)
			}
			mu.Lock()
			answers[i] = alu.Number(digits)
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	for i, o := range orders {
		label := "largest"
		if o == alu.Ascending {
			label = "smallest"
		}
		cmd.Printf("%s: %d\n", label, answers[i])
	}
	return nil
}
