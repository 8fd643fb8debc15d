package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubetrainer"
)

var plain bool

var applyCmd = &cobra.Command{
	Use:   "apply <moves...>",
	Short: "Apply moves to a solved cube and show the result",
	Long: `Apply a move sequence to a solved cube and print the resulting net.

Notation is read tolerantly: lowercase letters, curly or fullwidth prime
marks and commas are accepted, anything unrecognised is skipped.`,
	Example: `  cubetrainer apply "R U R' U'"
  cubetrainer apply r u r’ u’`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

var scrambleMoves bool

var scrambleCmd = &cobra.Command{
	Use:   "scramble <algorithm-id | moves...>",
	Short: "Show the scramble an algorithm solves",
	Long: `Show the cube state produced by the inverse of an algorithm, which is the
state the algorithm solves. Pass --moves to scramble for a move sequence
instead of a library algorithm.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScramble,
}

var inverseCmd = &cobra.Command{
	Use:   "inverse <moves...>",
	Short: "Print the inverse of a move sequence",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		moves, err := parseMoves(args)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), cubetrainer.FormatMoves(cubetrainer.InverseAlgorithm(moves)))
		return nil
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse <text...>",
	Short: "Normalise free text into canonical notation",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		moves, err := parseMoves(args)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n(%d moves)\n", cubetrainer.FormatMoves(moves), len(moves))
		return nil
	},
}

func init() {
	applyCmd.Flags().BoolVar(&plain, "plain", false, "Print the net as letters instead of colors")
	scrambleCmd.Flags().BoolVar(&plain, "plain", false, "Print the net as letters instead of colors")
	scrambleCmd.Flags().BoolVar(&scrambleMoves, "moves", false, "Treat the arguments as moves rather than an algorithm id")

	rootCmd.AddCommand(applyCmd, scrambleCmd, inverseCmd, parseCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	moves, err := parseMoves(args)
	if err != nil {
		return err
	}

	state, err := cubetrainer.ApplyMoves(cubetrainer.Solved(), moves)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Moves: %s\n\n", cubetrainer.FormatMoves(moves))
	fmt.Fprint(out, renderNet(state, !plain))
	fmt.Fprintf(out, "\nSolved: %v\n", state.IsSolved())
	return nil
}

func runScramble(cmd *cobra.Command, args []string) error {
	var alg cubetrainer.Algorithm
	if scrambleMoves {
		moves, err := parseMoves(args)
		if err != nil {
			return err
		}
		alg = cubetrainer.Algorithm{Name: "Moves", Moves: moves}
	} else {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		lib, err := loadLibrary(db)
		if err != nil {
			return err
		}
		alg, err = lib.Get(args[0])
		if err != nil {
			return err
		}
	}

	state, err := alg.Scramble()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s\n", alg.Name, alg.Notation())
	fmt.Fprintf(out, "Scramble: %s\n\n", cubetrainer.FormatMoves(cubetrainer.InverseAlgorithm(alg.Moves)))
	fmt.Fprint(out, renderNet(state, !plain))
	return nil
}
