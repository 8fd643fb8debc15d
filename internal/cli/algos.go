package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubetrainer"
	"github.com/SeamusWaldron/cubetrainer/internal/library"
	"github.com/SeamusWaldron/cubetrainer/internal/storage"
)

var algosCmd = &cobra.Command{
	Use:     "algos",
	Aliases: []string{"algorithms"},
	Short:   "Browse and manage the algorithm library",
}

var algosCategory string

var algosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List algorithms by category",
	RunE:  runAlgosList,
}

var algosShowCmd = &cobra.Command{
	Use:   "show <algorithm-id>",
	Short: "Show an algorithm and the state it solves",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlgosShow,
}

var (
	addName        string
	addDescription string
)

var algosAddCmd = &cobra.Command{
	Use:   "add <moves...>",
	Short: "Add a custom algorithm",
	Long: `Add a custom algorithm from free text. The moves are parsed tolerantly and
stored in canonical notation.`,
	Example: `  cubetrainer algos add --name "My trigger" "R U2 R' U'"`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runAlgosAdd,
}

var algosRemoveCmd = &cobra.Command{
	Use:   "remove <algorithm-id>",
	Short: "Remove a custom algorithm",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlgosRemove,
}

func init() {
	algosListCmd.Flags().StringVarP(&algosCategory, "category", "c", "", "Only list one category (basic, advanced, pro, custom)")
	algosShowCmd.Flags().BoolVar(&plain, "plain", false, "Print the net as letters instead of colors")
	algosAddCmd.Flags().StringVar(&addName, "name", "", "Display name (default \"Custom\")")
	algosAddCmd.Flags().StringVar(&addDescription, "description", "", "Description (default: the moves as typed)")

	algosCmd.AddCommand(algosListCmd, algosShowCmd, algosAddCmd, algosRemoveCmd)
	rootCmd.AddCommand(algosCmd)
}

func runAlgosList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	lib, err := loadLibrary(db)
	if err != nil {
		return err
	}

	categories := lib.Categories()
	if algosCategory != "" {
		c := cubetrainer.Category(algosCategory)
		if !c.Valid() {
			return fmt.Errorf("unknown category %q", algosCategory)
		}
		categories = []cubetrainer.Category{c}
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, c := range categories {
		fmt.Fprintf(w, "%s\n", strings.ToUpper(string(c)))
		for _, alg := range lib.ByCategory(c) {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", alg.ID, alg.Name, alg.Notation())
		}
	}
	return w.Flush()
}

func runAlgosShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	lib, err := loadLibrary(db)
	if err != nil {
		return err
	}

	alg, err := lib.Get(args[0])
	if err != nil {
		return err
	}
	state, err := alg.Scramble()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", alg.Name, alg.Category)
	fmt.Fprintf(out, "%s\n\n", alg.Description)
	fmt.Fprintf(out, "Moves:    %s (%d)\n", alg.Notation(), len(alg.Moves))
	fmt.Fprintf(out, "Scramble: %s\n\n", cubetrainer.FormatMoves(cubetrainer.InverseAlgorithm(alg.Moves)))
	fmt.Fprint(out, renderNet(state, !plain))

	best, err := storage.NewAttemptRepository(db).Best(alg.ID)
	if err != nil {
		return err
	}
	if best != nil {
		fmt.Fprintf(out, "\nBest: %s %s\n", formatDuration(best.Duration), formatStars(best.Stars))
	}
	return nil
}

func runAlgosAdd(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	alg, err := library.NewCustom(cfg.ParsePolicy(), addName, addDescription, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if err := storage.NewAlgorithmRepository(db).Save(alg); err != nil {
		return err
	}

	logger.WithField("algorithm", alg.ID).Debug("custom algorithm saved")
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s\n", alg.ID, alg.Notation())
	return nil
}

func runAlgosRemove(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	lib, err := loadLibrary(db)
	if err != nil {
		return err
	}
	if err := lib.Remove(args[0]); err != nil {
		if errors.Is(err, library.ErrNotCustom) {
			return fmt.Errorf("%s is built in and cannot be removed", args[0])
		}
		return err
	}

	if err := storage.NewAlgorithmRepository(db).Delete(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
	return nil
}
