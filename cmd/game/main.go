package main

import (
	"flag"
	"log"
	"time"

	"hexpop/internal/game"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var tierName string
	var advisorURL string
	flag.StringVar(&tierName, "tier", "steady", "difficulty tier: relaxed, steady, frantic")
	flag.StringVar(&advisorURL, "advisor", "", "websocket URL of a hint service (empty = no hints)")
	flag.Parse()

	var tier game.DifficultyTier
	switch tierName {
	case "relaxed":
		tier = game.TierRelaxed
	case "steady":
		tier = game.TierSteady
	case "frantic":
		tier = game.TierFrantic
	default:
		log.Fatalf("unknown tier %q", tierName)
	}

	var advisor game.Advisor
	if advisorURL != "" {
		a, err := game.DialAdvisor(advisorURL, 10*time.Second)
		if err != nil {
			// The game is fully playable without hints; keep going.
			log.Printf("advisor unavailable, continuing without hints: %v", err)
		} else {
			advisor = a
			defer a.Close()
		}
	}

	ebiten.SetWindowTitle("Hexpop")
	ebiten.SetWindowSize(720, 1008)
	if err := ebiten.RunGame(game.New(tier, advisor)); err != nil {
		log.Fatal(err)
	}
}
