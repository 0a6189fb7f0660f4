package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/swiftride/api/config"
	"github.com/swiftride/api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var passengerID string
	err = db.QueryRow(`
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, 'passenger')
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, "Demo Passenger", "passenger@example.com", hash).Scan(&passengerID)
	if err != nil {
		log.Fatalf("failed to seed passenger: %v", err)
	}
	fmt.Printf("seeded passenger: id=%s email=passenger@example.com password=%s\n", passengerID, password)

	var driverID string
	err = db.QueryRow(`
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, 'driver')
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, "Demo Driver", "driver@example.com", hash).Scan(&driverID)
	if err != nil {
		log.Fatalf("failed to seed driver: %v", err)
	}
	fmt.Printf("seeded driver: id=%s email=driver@example.com password=%s\n", driverID, password)

	_, err = db.Exec(`
		INSERT INTO drivers (user_id, vehicle, vehicle_types, is_available)
		VALUES ($1, $2, '{car}', true)
		ON CONFLICT (user_id) DO NOTHING
	`, driverID, `{"make":"Toyota","model":"Corolla","year":2020,"license_plate":"DEMO-1234"}`)
	if err != nil {
		log.Fatalf("failed to seed driver profile: %v", err)
	}
	fmt.Println("seeded driver profile with vehicle types: car")
}
