package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/artpar/rickdex/internal/core"
	"github.com/artpar/rickdex/internal/tui/components"
)

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printCharacterTable writes one row per character.
func printCharacterTable(w io.Writer, chars []core.Character, favs core.FavoriteSet) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tSPECIES\tLOCATION\tFAV")
	for _, c := range chars {
		fav := ""
		if favs.Contains(c.ID) {
			fav = "♥"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Status, c.Species, c.Location.Name, fav)
	}
	return tw.Flush()
}

// printCharacter writes the details view of one character.
func printCharacter(w io.Writer, c *core.Character, favorite bool) error {
	title := c.Name
	if favorite {
		title = "♥ " + title
	}
	fmt.Fprintf(w, "%s (#%d)\n\n", title, c.ID)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, row := range components.Lines(c) {
		fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}
