package cli

import (
	"fmt"
	"strconv"

	"github.com/artpar/rickdex/internal/core"
	"github.com/artpar/rickdex/internal/search"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(global *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the first page of characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, global)
			if err != nil {
				return err
			}
			defer a.Close()

			chars, err := a.Client().FetchAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("list characters: %w", err)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), chars)
			}
			favs, _ := a.Favorites().Load(cmd.Context())
			return printCharacterTable(cmd.OutOrStdout(), chars, favs)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

// NewGetCommand creates the get command.
func NewGetCommand(global *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show one character",
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

			c, err := a.Client().FetchByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get character %d: %w", id, err)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), c)
			}
			fav, _ := a.Favorites().Contains(cmd.Context(), id)
			return printCharacter(cmd.OutOrStdout(), c, fav)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

// NewSearchCommand creates the search command.
func NewSearchCommand(global *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search NAME",
		Short: "Search characters by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, global)
			if err != nil {
				return err
			}
			defer a.Close()

			r := a.Searcher().Search(cmd.Context(), args[0])
			if r.State == search.StateErrored {
				return fmt.Errorf("search %q: %w", args[0], r.Err)
			}
			if asJSON {
				chars := r.Characters
				if chars == nil {
					chars = []core.Character{}
				}
				return writeJSON(cmd.OutOrStdout(), chars)
			}

			out := cmd.OutOrStdout()
			switch r.State {
			case search.StateIdle:
				fmt.Fprintln(out, "Type a character name.")
				return nil
			case search.StateEmpty:
				fmt.Fprintln(out, r.Message)
				return nil
			}
			favs, _ := a.Favorites().Load(cmd.Context())
			return printCharacterTable(out, r.Characters, favs)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid character id %q", s)
	}
	return id, nil
}
