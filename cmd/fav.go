package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AndyHazz/quickssh/internal/state"
)

var favCmd = &cobra.Command{
	Use:   "fav <alias>",
	Short: "Toggle a host's favorite flag",
	Long:  `Favorites are listed first, in their own section, in the picker and in 'quickssh list'.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runFav,
}

func init() {
	rootCmd.AddCommand(favCmd)
}

func runFav(cmd *cobra.Command, args []string) error {
	alias := args[0]
	if _, _, _, err := loadHost(alias); err != nil {
		return err
	}

	s, err := getApp().UpdateState(func(s *state.State) *state.State {
		s.Favorites = state.ToggleFavorite(s.Favorites, alias)
		return s
	})
	if err != nil {
		return err
	}

	if state.IsFavorite(s.Favorites, alias) {
		logSuccess("Added %s to favorites", alias)
	} else {
		logSuccess("Removed %s from favorites", alias)
	}
	return nil
}
