package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/calmacil/dartscore/internal/db"
	"github.com/calmacil/dartscore/internal/docstore"
	"github.com/calmacil/dartscore/internal/games"
	"github.com/calmacil/dartscore/internal/logger"
	"github.com/calmacil/dartscore/internal/migrate"
	"github.com/calmacil/dartscore/internal/models"
	"github.com/calmacil/dartscore/internal/repository"
	"github.com/calmacil/dartscore/internal/repository/documents"
)

func main() {
	app := &cli.App{
		Name:  "dartsadmin",
		Usage: "administrative tasks for the dartscore database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Usage:   "path to the SQLite database",
				Value:   "file:dartscore.db",
				EnvVars: []string{"DB_PATH"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (DEBUG, INFO, WARN, ERROR)",
				Value:   "INFO",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.SetDefault(logger.New(
				logger.WithLevel(logger.ParseLevel(c.String("log-level"))),
				logger.WithColors(true),
			))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "upgrade stored game documents to the current data version",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "game-type",
						Usage: "migrate a single game type instead of all",
					},
				},
				Action: runMigrate,
			},
			{
				Name:      "seed-players",
				Usage:     "load players from a JSON file into the player directory",
				ArgsUsage: "<players.json>",
				Action:    runSeedPlayers,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openRepos(c *cli.Context) (repository.GameRepository, repository.PlayerRepository, func(), error) {
	database, err := db.Open(c.String("db"))
	if err != nil {
		return nil, nil, nil, err
	}
	store := docstore.New(database)
	playerRepo := documents.NewPlayerRepository(store)
	gameRepo := documents.NewGameRepository(store, playerRepo)
	return gameRepo, playerRepo, func() { database.Close() }, nil
}

func runMigrate(c *cli.Context) error {
	gameRepo, playerRepo, closeDB, err := openRepos(c)
	if err != nil {
		return err
	}
	defer closeDB()

	gameTypes := []string{games.GameType27, games.GameTypeBullseye}
	if gt := c.String("game-type"); gt != "" {
		gameTypes = []string{gt}
	}

	migrator := migrate.New(gameRepo, playerRepo)
	for _, gameType := range gameTypes {
		res, err := migrator.MigrateGames(context.Background(), gameType)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d migrated, %d skipped\n", gameType, res.Migrated, res.Skipped)
	}
	return nil
}

func runSeedPlayers(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one argument: the players JSON file", 2)
	}
	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return err
	}
	var players []models.Player
	if err := json.Unmarshal(data, &players); err != nil {
		return fmt.Errorf("parsing players file: %w", err)
	}

	_, playerRepo, closeDB, err := openRepos(c)
	if err != nil {
		return err
	}
	defer closeDB()

	for _, p := range players {
		if err := playerRepo.Upsert(context.Background(), p); err != nil {
			return fmt.Errorf("seeding player %s: %w", p.ID, err)
		}
		fmt.Printf("seeded %s (%s)\n", p.ID, p.DisplayName())
	}
	fmt.Printf("%d players seeded\n", len(players))
	return nil
}
