package main

import (
	"log"

	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/config"
	dbpkg "github.com/OsamaDeghidy/A-List-Home-Pros/internal/db"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/seed"
)

func main() {
	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	if err := seed.Run(db); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	log.Println("seed complete")
}
