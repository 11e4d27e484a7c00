package db

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pairup-app/pairup/internal/pair"
)

// SeedTestData resets the database and populates it with demo users,
// profiles, contacts and swipes.
//
// Behavior:
//  1. Clears existing rows in all tables.
//  2. Creates 20 users with hashed passwords and complete, visible profiles
//     (a few left incomplete/hidden to exercise feed filtering).
//  3. Creates contacts with mixed share flags.
//  4. Generates ~200 swipes with ~70% likes; every 3rd decision also gets a
//     reciprocal like and the corresponding match row.
//
// Compatible with both MySQL and SQLite.
func SeedTestData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, table := range []string{"reports", "matches", "contacts", "swipes", "profiles", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	switch db.Dialector.Name() {
	case "mysql":
		db.Exec("ALTER TABLE users AUTO_INCREMENT = 1")
		db.Exec("ALTER TABLE reports AUTO_INCREMENT = 1")
	case "sqlite":
		db.Exec("DELETE FROM sqlite_sequence WHERE name = 'users'")
		db.Exec("DELETE FROM sqlite_sequence WHERE name = 'reports'")
	}

	log.Println("Cleared existing data")

	expertises := []string{"backend", "frontend", "data", "design", "product", "mobile"}

	for i := 1; i <= 20; i++ {
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user := User{
			Username:     fmt.Sprintf("user%d", i),
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: string(hash),
			Active:       true,
			LastLoginAt:  time.Now().Add(-time.Duration(r.Intn(500)) * time.Hour),
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}

		profile := Profile{
			UserID:      user.ID,
			DisplayName: fmt.Sprintf("User %d", i),
			Expertise:   expertises[i%len(expertises)],
			Skills:      "go, sql, teamwork",
			PhotoURL:    fmt.Sprintf("https://photos.example.com/%d.jpg", i),
			Complete:    true,
			Visible:     true,
		}
		// leave a few profiles incomplete and hidden
		if i%7 == 0 {
			profile.PhotoURL = ""
			profile.Complete = false
			profile.Visible = false
		}
		if err := db.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to seed profile: %w", err)
		}

		contact := Contact{
			UserID: user.ID,
			Phone:  fmt.Sprintf("+4479%08d", 10000000+i),
			Share:  i%5 != 0, // every 5th user opts out
		}
		if err := db.Create(&contact).Error; err != nil {
			return fmt.Errorf("failed to seed contact: %w", err)
		}
	}
	log.Println("Seeded 20 users with profiles and contacts.")

	// --- Seed Swipes (~200) ---
	counter := 0
	for actorID := uint64(1); actorID <= 20; actorID++ {
		for j := 0; j < 12; j++ {
			targetID := uint64(r.Intn(20) + 1)
			if actorID == targetID {
				continue
			}

			liked := r.Intn(100) < 70

			// guarantee mutual likes every 3rd pair
			if counter%3 == 0 {
				liked = true
				recip := Swipe{ActorID: targetID, TargetID: actorID, Liked: true}
				db.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "actor_id"}, {Name: "target_id"}},
					DoUpdates: clause.AssignmentColumns([]string{"liked", "updated_at"}),
				}).Create(&recip)

				low, high := pair.Canonical(actorID, targetID)
				match := Match{LowID: low, HighID: high}
				db.Clauses(clause.OnConflict{DoNothing: true}).Create(&match)
			}

			swipe := Swipe{ActorID: actorID, TargetID: targetID, Liked: liked}
			if err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "actor_id"}, {Name: "target_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"liked", "updated_at"}),
			}).Create(&swipe).Error; err != nil {
				return fmt.Errorf("failed to seed swipe: %w", err)
			}

			counter++
		}
	}

	return nil
}
