package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RowanDark/cryptokit/internal/bindata"
	"github.com/RowanDark/cryptokit/internal/cipher"
)

func newRecipeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Run saved operation pipelines",
	}
	cmd.AddCommand(newRecipeListCmd(a), newRecipeRunCmd(a), newRecipeOpsCmd())
	return cmd
}

func (a *app) recipes() (*cipher.RecipeManager, error) {
	if a.cfg.RecipesDir == "" {
		return nil, fmt.Errorf("no recipes directory configured (set recipes_dir or CRYPTOKIT_RECIPES_DIR)")
	}
	rm := cipher.NewRecipeManager(a.cfg.RecipesDir)
	rm.Audit = a.audit.WithComponent("recipes")
	if err := rm.LoadRecipes(); err != nil {
		return nil, err
	}
	return rm, nil
}

func newRecipeListCmd(a *app) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rm, err := a.recipes()
			if err != nil {
				return err
			}
			list := rm.ListRecipes()
			if query != "" {
				list = rm.SearchRecipes(query)
			}
			for _, r := range list {
				steps := make([]string, len(r.Pipeline.Operations))
				for i, op := range r.Pipeline.Operations {
					steps[i] = op.Name
				}
				writeLine(cmd, fmt.Sprintf("%s\t%s\t%s", r.Name, strings.Join(steps, " -> "), r.Description))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&query, "search", "", "only show recipes matching this text")
	return cmd
}

func newRecipeRunCmd(a *app) *cobra.Command {
	var in, out string
	var reverse bool
	cmd := &cobra.Command{
		Use:   "run <name> [input|-|@file]",
		Short: "Run a saved recipe",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rm, err := a.recipes()
			if err != nil {
				return err
			}
			raw, err := readArg(cmd, args, 1)
			if err != nil {
				return err
			}
			data, err := decode(raw, in, bindata.ASCII)
			if err != nil {
				return err
			}
			result, err := rm.RunRecipe(cmd.Context(), args[0], data.Bytes(), reverse)
			if err != nil {
				return err
			}
			s, err := encode(bindata.New(result), out, bindata.ASCII)
			if err != nil {
				return err
			}
			writeLine(cmd, s)
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", formatRaw, "input format")
	cmd.Flags().StringVar(&out, "out", formatRaw, "output format")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "run the reversed pipeline")
	return cmd
}

func newRecipeOpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the operations recipes can use",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, op := range cipher.ListOperations() {
				writeLine(cmd, fmt.Sprintf("%-20s %-8s %s", op.Name(), op.Type(), op.Description()))
			}
		},
	}
}
