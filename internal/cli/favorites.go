package cli

import (
	"fmt"

	"github.com/artpar/rickdex/internal/core"
	"github.com/spf13/cobra"
)

// NewFavoritesCommand creates the favorites command group.
func NewFavoritesCommand(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage saved characters",
	}

	cmd.AddCommand(newFavoritesListCommand(global))
	cmd.AddCommand(newFavoritesIDsCommand(global))
	cmd.AddCommand(newFavoritesToggleCommand(global))
	cmd.AddCommand(newFavoritesRemoveCommand(global))
	cmd.AddCommand(newFavoritesClearCommand(global))

	return cmd
}

func newFavoritesListCommand(global *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show saved characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, global)
			if err != nil {
				return err
			}
			defer a.Close()

			set, h, err := a.LoadFavorites(cmd.Context())
			if err != nil {
				return fmt.Errorf("load favorites: %w", err)
			}
			failed := h.FailedIDs(set.IDs())

			if asJSON {
				chars := h.Characters
				if chars == nil {
					chars = []core.Character{}
				}
				if failed == nil {
					failed = []int{}
				}
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"characters": chars,
					"failed":     failed,
				})
			}

			out := cmd.OutOrStdout()
			if set.Len() == 0 {
				fmt.Fprintln(out, "No saved characters.")
				return nil
			}
			if err := printCharacterTable(out, h.Characters, set); err != nil {
				return err
			}
			if len(failed) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d unavailable: %v\n", len(failed), failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newFavoritesIDsCommand(global *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ids",
		Short: "Print saved character ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, global)
			if err != nil {
				return err
			}
			defer a.Close()

			set, err := a.Favorites().Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("load favorites: %w", err)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), set)
			}
			for _, id := range set.IDs() {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newFavoritesToggleCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Save or unsave a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd, global)
			if err != nil {
				return err
			}
			defer a.Close()

			set, err := a.Favorites().Toggle(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("toggle favorite %d: %w", id, err)
			}
			if set.Contains(id) {
				fmt.Fprintf(cmd.OutOrStdout(), "saved %d\n", id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "removed %d\n", id)
			}
			return nil
		},
	}
}

func newFavoritesRemoveCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Unsave a character",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd, global)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.Favorites().Remove(cmd.Context(), id); err != nil {
				return fmt.Errorf("remove favorite %d: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d\n", id)
			return nil
		},
	}
}

func newFavoritesClearCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every saved character",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, global)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Favorites().Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear favorites: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cleared")
			return nil
		},
	}
}
