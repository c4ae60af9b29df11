package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with departments, ranks, covenant seats and an overseer account for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := gorm.Open(gormpostgres.Open(cfg.Database.Source), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open db: %v", err)
		}

		if clearData {
			for _, table := range []string{"covenant_invitations", "covenant_members", "covenant_seats", "user_departments", "departments", "ranks"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared seeded tables")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		overseerEmail := "overseer@ouroboros.example"
		overseerName := "Overseer"
		var exists int
		row := db.Raw("SELECT 1 FROM users WHERE email = ?", overseerEmail).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Println("overseer account already exists")
		} else {
			if err := db.Exec("INSERT INTO users (email, name, password_hash, clearance_level, is_active, is_approved, created_at, updated_at) VALUES (?, ?, ?, 5, true, true, now(), now())", overseerEmail, overseerName, string(hash)).Error; err != nil {
				log.Fatalf("failed to insert overseer account: %v", err)
			}
			fmt.Println("Seeded overseer account:", overseerEmail)
		}

		departments := []struct {
			Name string
			Desc string
		}{
			{"Containment", "Containment engineering and site operations"},
			{"Research", "Anomaly research and analysis"},
			{"Archives", "Records, classification and redaction"},
			{"Medical", "Personnel and subject medical care"},
			{"Security", "Site security and response teams"},
		}

		for _, d := range departments {
			var id int64
			row := db.Raw("SELECT id FROM departments WHERE name = ?", d.Name).Row()
			if err := row.Scan(&id); err != nil {
				if err := db.Exec("INSERT INTO departments (name, description, created_at) VALUES (?, ?, now())", d.Name, d.Desc).Error; err != nil {
					log.Fatalf("failed to insert department %s: %v", d.Name, err)
				}
				fmt.Println("Seeded department:", d.Name)
			}
		}

		ranks := []struct {
			Name    string
			Ordinal int
		}{
			{"Junior Researcher", 1},
			{"Researcher", 2},
			{"Senior Researcher", 3},
			{"Project Lead", 4},
			{"Site Director", 5},
		}

		for _, rk := range ranks {
			var id int64
			row := db.Raw("SELECT id FROM ranks WHERE name = ?", rk.Name).Row()
			if err := row.Scan(&id); err != nil {
				if err := db.Exec("INSERT INTO ranks (name, ordinal, created_at) VALUES (?, ?, now())", rk.Name, rk.Ordinal).Error; err != nil {
					log.Fatalf("failed to insert rank %s: %v", rk.Name, err)
				}
				fmt.Println("Seeded rank:", rk.Name)
			}
		}

		for i := 1; i <= cfg.Portal.CovenantSeatCount; i++ {
			var id int64
			row := db.Raw("SELECT id FROM covenant_seats WHERE number = ?", i).Row()
			if err := row.Scan(&id); err != nil {
				title := fmt.Sprintf("Seat %d", i)
				if err := db.Exec("INSERT INTO covenant_seats (number, title, created_at) VALUES (?, ?, now())", i, title).Error; err != nil {
					log.Fatalf("failed to insert covenant seat %d: %v", i, err)
				}
			}
		}
		fmt.Printf("Seeded %d covenant seats\n", cfg.Portal.CovenantSeatCount)
	},
}
