package main

import (
	"bufio"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	appdb "github.com/yourorg/miagenda/internal/db"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Println("==== Mi Agenda CLI ====")
		fmt.Println("1) Health check API")
		fmt.Println("2) Seed database (create sample user)")
		fmt.Println("3) Seed sample tasks and events")
		fmt.Println("4) Exit")
		fmt.Print("Select option: ")
		choice, _ := reader.ReadString('\n')
		choice = strings.TrimSpace(choice)
		switch choice {
		case "1":
			doHealthCheck()
		case "2":
			doSeed()
		case "3":
			doSeedAgenda()
		case "4":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Invalid option")
		}
		fmt.Println()
	}
}

func doHealthCheck() {
	base := os.Getenv("BASE_URL")
	if base == "" {
		base = "http://127.0.0.1:8080"
	}
	url := strings.TrimRight(base, "/") + "/api/health"
	resp, err := http.Get(url)
	if err != nil {
		fmt.Println("Health: ERROR:", err)
		return
	}
	defer resp.Body.Close()
	fmt.Println("Health status:", resp.Status)
}

func doSeed() {
	db, err := appdb.Connect()
	if err != nil {
		log.Println("DB connect error:", err)
		return
	}
	defer db.Close()
	if err := appdb.EnsureSchema(db); err != nil {
		log.Println("Ensure schema error:", err)
		return
	}
	seedUser(db)
}

func doSeedAgenda() {
	db, err := appdb.Connect()
	if err != nil {
		log.Println("DB connect error:", err)
		return
	}
	defer db.Close()
	if err := appdb.EnsureSchema(db); err != nil {
		log.Println("Ensure schema error:", err)
		return
	}

	userID := seedUser(db)
	if userID == 0 {
		return
	}

	tareas := []string{"Comprar víveres", "Pagar cuentas", "Llamar al dentista"}
	for i, titulo := range tareas {
		_, err := db.Exec(
			"INSERT INTO tasks (user_id, titulo, orden) VALUES (?, ?, ?)",
			userID, titulo, i+1,
		)
		if err != nil {
			fmt.Println("Seed: task insert error:", err)
			return
		}
	}
	_, err = db.Exec(
		"INSERT INTO events (user_id, titulo, fecha_inicio, fecha_fin, orden) VALUES (?, ?, NOW(), DATE_ADD(NOW(), INTERVAL 1 HOUR), 1)",
		userID, "Reunión de ejemplo",
	)
	if err != nil {
		fmt.Println("Seed: event insert error:", err)
		return
	}
	fmt.Println("Seed: created sample tasks and events for 'demo'")
}

func seedUser(db *sql.DB) int64 {
	// Creates a sample user if not exists
	username := "demo"
	password := "demo1234"
	var existingID int64
	_ = db.QueryRow("SELECT id FROM users WHERE username = ?", username).Scan(&existingID)
	if existingID != 0 {
		fmt.Println("Seed: user 'demo' already exists")
		return existingID
	}
	hash, err := bcryptHash(password)
	if err != nil {
		fmt.Println("Seed: bcrypt error:", err)
		return 0
	}
	res, err := db.Exec("INSERT INTO users (username, password_hash) VALUES (?, ?)", username, hash)
	if err != nil {
		fmt.Println("Seed: insert error:", err)
		return 0
	}
	id, _ := res.LastInsertId()
	fmt.Println("Seed: created user 'demo' with password 'demo1234'")
	return id
}

func bcryptHash(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}
