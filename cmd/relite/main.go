package main

import (
	"fmt"

	"relite/internal/config"
	"relite/internal/engine"
)

func main() {
	fmt.Println("relite starting...")

	cfg := config.Load()

	eng, err := engine.Open(cfg.DataDir)
	if err != nil {
		fmt.Println("ERROR:", err)
		return
	}
	defer eng.Close()

	fmt.Println("database opened at", cfg.DataDir)

	statements := []string{
		`CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL, active BOOLEAN)`,
		`INSERT INTO users (id, name, active) VALUES (1, 'Alice', true)`,
		`INSERT INTO users (id, name, active) VALUES (2, 'Bob', false)`,
		`SELECT * FROM users ORDER BY id`,
	}

	for _, src := range statements {
		fmt.Println("\n>", src)
		result, err := eng.Execute(src)
		if err != nil {
			fmt.Println("ERROR:", err)
			continue
		}
		fmt.Println(result.String())
	}

	fmt.Println("\ntables:", eng.ListTables())
	if cols, ok := eng.Schema("users"); ok {
		fmt.Println("schema(users):")
		for _, c := range cols {
			fmt.Printf("  %s %s primary_key=%v unique=%v not_null=%v\n", c.Name, c.Type, c.PrimaryKey, c.Unique, c.NotNull)
		}
	}
}
