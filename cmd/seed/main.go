package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const EnvDatabaseDSN = "DATABASE_DSN"

func main() {
	var (
		dsn        = flag.String("dsn", "", "Database connection string")
		all        = flag.Bool("all", false, "Run all seeders")
		users      = flag.Bool("users", false, "Seed service accounts")
		categories = flag.Bool("categories", false, "Seed categories")
		products   = flag.Bool("products", false, "Seed products")
		list       = flag.Bool("list", false, "List available seeders")
	)
	flag.Parse()

	if *list {
		fmt.Println("Available seeders:")
		for _, name := range seedOrder {
			if s, ok := getSeeder(name); ok {
				fmt.Printf("  - %s: %s\n", s.Name(), s.Description())
			}
		}
		return
	}

	if *dsn == "" {
		*dsn = os.Getenv(EnvDatabaseDSN)
	}
	if *dsn == "" {
		log.Fatalf("database connection string required: use -dsn flag or %s env var", EnvDatabaseDSN)
	}

	var selected []string
	if *all {
		selected = seedOrder
	} else {
		if *users {
			selected = append(selected, "users")
		}
		if *categories {
			selected = append(selected, "categories")
		}
		if *products {
			selected = append(selected, "products")
		}
	}

	if len(selected) == 0 {
		fmt.Println("usage: seed -dsn <connection-string> [-all|-users|-categories|-products] [-list]")
		flag.PrintDefaults()
		return
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := runSeeders(context.Background(), db, selected); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	fmt.Println("seeding completed successfully")
}
