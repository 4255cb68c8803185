package apitest

import (
	"fmt"

	"github.com/artpar/rickdex/internal/core"
)

const live = "https://rickandmortyapi.com/api"

func episodes(nums ...int) []string {
	out := make([]string, len(nums))
	for i, n := range nums {
		out[i] = fmt.Sprintf("%s/episode/%d", live, n)
	}
	return out
}

func character(id int, name, status, species, gender, origin, location, created string, eps ...int) core.Character {
	return core.Character{
		ID:       id,
		Name:     name,
		Status:   status,
		Species:  species,
		Gender:   gender,
		Origin:   core.Place{Name: origin},
		Location: core.Place{Name: location},
		Image:    fmt.Sprintf("%s/character/avatar/%d.jpeg", live, id),
		Episode:  episodes(eps...),
		URL:      fmt.Sprintf("%s/character/%d", live, id),
		Created:  created,
	}
}

// Fixtures returns a small catalog shaped like the live API.
func Fixtures() []core.Character {
	return []core.Character{
		character(1, "Rick Sanchez", "Alive", "Human", "Male", "Earth (C-137)", "Citadel of Ricks", "2017-11-04T18:48:46.250Z", 1, 2, 3),
		character(2, "Morty Smith", "Alive", "Human", "Male", "unknown", "Citadel of Ricks", "2017-11-04T18:50:21.651Z", 1, 2),
		character(3, "Summer Smith", "Alive", "Human", "Female", "Earth (Replacement Dimension)", "Earth (Replacement Dimension)", "2017-11-04T19:09:56.428Z", 6, 7),
		character(4, "Beth Smith", "Alive", "Human", "Female", "Earth (Replacement Dimension)", "Earth (Replacement Dimension)", "2017-11-04T19:22:43.665Z", 6),
		character(5, "Jerry Smith", "Alive", "Human", "Male", "Earth (Replacement Dimension)", "Earth (Replacement Dimension)", "2017-11-04T19:26:56.301Z", 6, 7, 8),
		character(8, "Adjudicator Rick", "Dead", "Human", "Male", "unknown", "Citadel of Ricks", "2017-11-04T20:03:34.737Z", 28),
	}
}
