package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cayley/internal/algebra"
	"cayley/internal/groups/service"
)

type rootOptions struct {
	output string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "cayley",
		Short:         "Build Cayley tables for cyclic, dihedral and symmetric groups",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateFormat(opts.output)
		},
	}
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", formatText, "output format: text, json or yaml")

	root.AddCommand(
		newGenerateCmd(opts),
		newComposeCmd(opts),
		newClassifyCmd(opts),
		newVerticesCmd(opts),
	)
	return root
}

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "generate <family> <n>",
		Short:   "Print the Cayley table of Z_n, D_n or S_n",
		Example: "  cayley generate D 4\n  cayley generate S 3 -o yaml",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, n, err := parseFamilyOrder(args[0], args[1])
			if err != nil {
				return err
			}
			g, err := algebra.Build(f, n)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, newGroupView(g))
		},
	}
}

func newComposeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "compose <family> <n> <element>...",
		Short:   "Fold a sequence of elements left to right, showing each step",
		Example: "  cayley compose D 4 r1 s r2",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, n, err := parseFamilyOrder(args[0], args[1])
			if err != nil {
				return err
			}
			g, err := algebra.Build(f, n)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, newTraceView(algebra.Reduce(g, args[2:])))
		},
	}
}

func newClassifyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <n>",
		Short: "Group the permutations of S_n by cycle type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseOrder(args[0])
			if err != nil {
				return err
			}
			members, err := algebra.Enumerate(algebra.Symmetric, n)
			if err != nil {
				return err
			}
			cc, err := algebra.ClassifyCycles(members)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, newClassesView(cc))
		},
	}
}

func newVerticesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "vertices <n> <element>",
		Short: "Show where a D_n element sends each vertex of the n-gon",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseOrder(args[0])
			if err != nil {
				return err
			}
			if n > service.DefaultMaxOrder {
				return fmt.Errorf("%w: D_%d (max n=%d)", algebra.ErrCapacityExceeded, n, service.DefaultMaxOrder)
			}
			positions, err := algebra.PolygonAction(n, args[1])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, verticesView{
				Group:     algebra.CanonicalName(algebra.Dihedral, n),
				Element:   args[1],
				Label:     algebra.FormatLabel(args[1]),
				Positions: positions,
			})
		},
	}
}

func parseFamilyOrder(family, order string) (algebra.Family, int, error) {
	f, err := algebra.ParseFamily(family)
	if err != nil {
		return "", 0, err
	}
	n, err := parseOrder(order)
	if err != nil {
		return "", 0, err
	}
	if err := algebra.CheckCapacity(f, n); err != nil {
		return "", 0, err
	}
	if n > service.DefaultMaxOrder {
		return "", 0, fmt.Errorf("%w: %s (max n=%d)", algebra.ErrCapacityExceeded, algebra.CanonicalName(f, n), service.DefaultMaxOrder)
	}
	return f, n, nil
}

func parseOrder(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("order must be a positive integer, got %q", s)
	}
	return n, nil
}
