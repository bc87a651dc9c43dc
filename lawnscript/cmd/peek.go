package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/lawnlab/lawnscript/board"
	"github.com/lawnlab/lawnscript/mem"
	"github.com/lawnlab/lawnscript/proc"
)

var peekCmd = &cobra.Command{
	Use:   "peek",
	Short: "Attach and print a one-shot snapshot of the board.",
	Run: func(_ *cobra.Command, _ []string) {
		sess, err := proc.Attach()
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		defer sess.Detach()

		r := board.NewReader(mem.NewAccessor(sess), board.Default)

		inGame, err := r.InGame()
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		if !inGame {
			fmt.Println("attached, but no level is being played")
			return
		}

		sun, _ := r.Sun()
		wave, _ := r.Wave()
		total, _ := r.TotalWaves()
		tick, _ := r.GameClock()
		scene, _ := r.CurrentScene()

		fmt.Printf("scene %s, wave %d/%d, tick %d, sun %d\n",
			scene, wave, total, tick, sun)

		zombies, err := r.Zombies()
		if err == nil {
			for _, z := range zombies {
				fmt.Printf("zombie %d: row %d type %d hp %d x %.0f\n",
					z.Index, z.Row, z.Type, z.HP, z.X)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(peekCmd)
}
