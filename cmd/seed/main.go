// cmd/seed/main.go
// Development seeding: demo users with swipe-ready profiles plus a spread of
// interactions so the discovery feed and matches screens have data.

package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/joho/godotenv"
	"github.com/lib/pq"

	"github.com/joinember/ember-backend/internal/common/database"
	"github.com/joinember/ember-backend/internal/common/logger"
	"github.com/joinember/ember-backend/internal/config"
	"github.com/joinember/ember-backend/internal/discovery"
	"github.com/joinember/ember-backend/internal/profile"
)

var cities = []struct {
	name     string
	lat, lon float64
}{
	{"London", 51.5074, -0.1278},
	{"Manchester", 53.4808, -2.2426},
	{"Birmingham", 52.4862, -1.8904},
	{"Bristol", 51.4545, -2.5879},
}

var interestPool = []string{"music", "hiking", "food", "travel", "yoga", "gaming", "art", "running"}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger.InitLogger(cfg.LogLevel, cfg.Environment)

	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	profileRepo := profile.NewPostgresRepository(db)
	interactionRepo := discovery.NewPostgresRepository(db)
	matchRepo := discovery.NewMatchRepository(db)

	// Fresh start
	for _, table := range []string{"matches", "interactions", "blocked_users", "profiles", "users"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			logger.Log.WithError(err).Fatalf("failed to clear %s", table)
		}
	}
	logger.Log.Info("Cleared existing data")

	// Seed 20 users (10 male, 10 female) with complete profiles
	userIDs := make([]int64, 0, 20)
	now := time.Now()

	for i := 1; i <= 20; i++ {
		var userID int64
		phone := fmt.Sprintf("+4477000000%02d", i)
		err := db.QueryRowxContext(ctx, `
			INSERT INTO users (phone, is_phone_verified, last_active_at)
			VALUES ($1, TRUE, $2)
			RETURNING id
		`, phone, now.Add(-time.Duration(r.Intn(72))*time.Hour)).Scan(&userID)
		if err != nil {
			logger.Log.WithError(err).Fatal("failed to seed user")
		}
		userIDs = append(userIDs, userID)

		gender, lookingFor := "male", "women"
		if i > 10 {
			gender, lookingFor = "female", "men"
		}

		city := cities[r.Intn(len(cities))]
		dob := now.AddDate(-(22 + r.Intn(18)), 0, 0)

		personality := profile.TraitMap{}
		for _, axis := range profile.PersonalityAxes {
			personality[axis] = "balanced"
		}
		dealbreakers := profile.TraitMap{}
		for _, axis := range profile.MandatoryDealbreakers {
			dealbreakers[axis] = "open"
		}

		photos := make(profile.PhotoList, 0, 4)
		for j := 0; j < 4; j++ {
			photos = append(photos, profile.Photo{
				URL:      fmt.Sprintf("https://cdn.joinember.com/demo/u%d-%d.jpg", i, j),
				IsMain:   j == 0,
				Position: j,
			})
		}

		r.Shuffle(len(interestPool), func(a, b int) {
			interestPool[a], interestPool[b] = interestPool[b], interestPool[a]
		})

		bio := fmt.Sprintf("Demo user %d. Mostly here for the %s.", i, interestPool[0])
		distKm := 25 + r.Intn(75)
		ageMin, ageMax := 21, 45

		p := &profile.Profile{
			UserID:              userID,
			DisplayName:         fmt.Sprintf("Demo%d", i),
			DateOfBirth:         &dob,
			Gender:              gender,
			Orientation:         "straight",
			LookingFor:          pq.StringArray{lookingFor},
			City:                &city.name,
			Latitude:            city.lat + r.Float64()*0.05,
			Longitude:           city.lon + r.Float64()*0.05,
			AgeRangeMin:         &ageMin,
			AgeRangeMax:         &ageMax,
			DistancePrefKm:      &distKm,
			Interests:           pq.StringArray(append([]string{}, interestPool[:4]...)),
			Personality:         personality,
			Dealbreakers:        dealbreakers,
			Photos:              photos,
			Bio:                 &bio,
			OnboardingCompleted: true,
			IsVisible:           true,
		}
		profile.Normalize(p, now)

		if err := profileRepo.Save(ctx, p); err != nil {
			logger.Log.WithError(err).Fatal("failed to seed profile")
		}
	}
	logger.Log.WithField("count", len(userIDs)).Info("Seeded users with profiles")

	// Seed interactions: ~70% likes, every third male/female pair mutual so
	// matches exist out of the box.
	var interactionCount, matchCount int
	for i, from := range userIDs[:10] {
		for j, to := range userIDs[10:] {
			if r.Float64() > 0.5 {
				continue
			}

			kind := discovery.InteractionLike
			if r.Float64() > 0.7 {
				kind = discovery.InteractionPass
			}

			if err := interactionRepo.Create(ctx, &discovery.Interaction{FromUserID: from, ToUserID: to, Type: kind}); err != nil {
				continue
			}
			interactionCount++

			if kind == discovery.InteractionLike && (i+j)%3 == 0 {
				if err := interactionRepo.Create(ctx, &discovery.Interaction{FromUserID: to, ToUserID: from, Type: discovery.InteractionLike}); err != nil {
					continue
				}
				interactionCount++

				user1, user2 := discovery.CanonicalPair(from, to)
				if created, err := matchRepo.Create(ctx, &discovery.Match{User1ID: user1, User2ID: user2}); err == nil && created {
					matchCount++
				}
			}
		}
	}

	logger.Log.WithFields(map[string]interface{}{
		"interactions": interactionCount,
		"matches":      matchCount,
	}).Info("Seeding completed")
}
