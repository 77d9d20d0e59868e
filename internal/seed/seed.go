// Package seed provides database seeding utilities for development and
// testing. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"flick/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumMovies   int
	ShouldClean bool
}

// DefaultPIN is the PIN every seeded account gets, for easy local login.
const DefaultPIN = "1234"

// Seeder creates demo data: users, a friendship mesh, groups, swipes over a
// shared movie pool and watch events.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll wipes all seeded tables. Order respects foreign keys.
func (s *Seeder) ClearAll() error {
	tables := []string{
		"watch_companions", "watches", "swipes", "group_members",
		"groups", "friendships", "movies_cache", "users",
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	log.Println("Cleared existing data")
	return nil
}

// Run seeds the database per the given options.
func (s *Seeder) Run(opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 8
	}
	if opts.NumMovies <= 0 {
		opts.NumMovies = 60
	}

	movies, err := s.seedMovies(opts.NumMovies)
	if err != nil {
		return err
	}
	users, err := s.seedUsers(opts.NumUsers)
	if err != nil {
		return err
	}
	if err := s.seedFriendships(users); err != nil {
		return err
	}
	if err := s.seedGroups(users); err != nil {
		return err
	}
	if err := s.seedSwipes(users, movies); err != nil {
		return err
	}
	if err := s.seedWatches(users, movies); err != nil {
		return err
	}

	log.Printf("Seeded %d users, %d movies", len(users), len(movies))
	return nil
}

func (s *Seeder) seedUsers(n int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPIN), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		name := gofakeit.Name()
		username := fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i)
		user := models.User{
			Username: username,
			PIN:      string(hashed),
			Name:     name,
			Image:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", username, err)
		}
		users = append(users, user)
	}
	return users, nil
}

// seedMovies fills the metadata cache with fake rows so want lists and
// matches render without a live provider.
func (s *Seeder) seedMovies(n int) ([]models.Movie, error) {
	movies := make([]models.Movie, 0, n)
	for i := 0; i < n; i++ {
		info := gofakeit.Movie()
		movie := models.Movie{
			TMDBID:      100000 + i,
			Title:       info.Name,
			PosterPath:  fmt.Sprintf("/seed-%d.jpg", i),
			Overview:    gofakeit.Paragraph(1, 3, 12, " "),
			ReleaseYear: gofakeit.Number(1970, 2025),
			Runtime:     gofakeit.Number(80, 190),
			CachedAt:    time.Now().UTC(),
		}
		movie.SetGenreIDs([]int{gofakeit.Number(12, 99)})
		if err := s.db.Create(&movie).Error; err != nil {
			return nil, fmt.Errorf("failed to create movie: %w", err)
		}
		movies = append(movies, movie)
	}
	return movies, nil
}

// seedFriendships links each user to a handful of later users. Most edges are
// accepted, some stay pending so the requests UI has content.
func (s *Seeder) seedFriendships(users []models.User) error {
	for i := range users {
		for j := i + 1; j < len(users) && j <= i+3; j++ {
			status := models.FriendshipStatusAccepted
			if s.rng.Intn(4) == 0 {
				status = models.FriendshipStatusPending
			}
			friendship := models.Friendship{
				UserAID:       users[i].ID,
				UserBID:       users[j].ID,
				Status:        status,
				RequestedByID: users[i].ID,
			}
			if err := s.db.Create(&friendship).Error; err != nil {
				return fmt.Errorf("failed to create friendship: %w", err)
			}
		}
	}
	return nil
}

func (s *Seeder) seedGroups(users []models.User) error {
	if len(users) < 3 {
		return nil
	}
	names := []string{"Movie Night", "Horror Club", "Weekend Watchers"}
	for i, name := range names {
		creator := users[i%len(users)]
		group := models.Group{Name: name, CreatedByID: creator.ID}
		if err := s.db.Create(&group).Error; err != nil {
			return fmt.Errorf("failed to create group: %w", err)
		}
		memberIDs := map[uint]struct{}{creator.ID: {}}
		for len(memberIDs) < 3+s.rng.Intn(3) && len(memberIDs) < len(users) {
			memberIDs[users[s.rng.Intn(len(users))].ID] = struct{}{}
		}
		for userID := range memberIDs {
			member := models.GroupMember{
				GroupID:  group.ID,
				UserID:   userID,
				JoinedAt: time.Now().UTC(),
			}
			if err := s.db.Create(&member).Error; err != nil {
				return fmt.Errorf("failed to create group member: %w", err)
			}
		}
	}
	return nil
}

// seedSwipes gives every user a stance on a random slice of the movie pool.
// Overlapping pools are what make seeded matches non-empty.
func (s *Seeder) seedSwipes(users []models.User, movies []models.Movie) error {
	for _, user := range users {
		count := 10 + s.rng.Intn(15)
		seen := map[int]struct{}{}
		for k := 0; k < count; k++ {
			movie := movies[s.rng.Intn(len(movies))]
			if _, dup := seen[movie.TMDBID]; dup {
				continue
			}
			seen[movie.TMDBID] = struct{}{}

			direction := models.SwipeRight
			if s.rng.Intn(3) == 0 {
				direction = models.SwipeLeft
			}
			swipe := models.Swipe{
				UserID:    user.ID,
				TMDBID:    movie.TMDBID,
				Direction: direction,
				Context:   "browse",
				SwipedAt:  time.Now().UTC().Add(-time.Duration(s.rng.Intn(30*24)) * time.Hour),
			}
			if err := s.db.Create(&swipe).Error; err != nil {
				return fmt.Errorf("failed to create swipe: %w", err)
			}
		}
	}
	return nil
}

func (s *Seeder) seedWatches(users []models.User, movies []models.Movie) error {
	reactions := []models.WatchReaction{
		models.ReactionLoved, models.ReactionGood, models.ReactionMeh, models.ReactionHated,
	}
	for _, user := range users {
		count := 2 + s.rng.Intn(5)
		for k := 0; k < count; k++ {
			movie := movies[s.rng.Intn(len(movies))]
			watch := models.Watch{
				UserID:    user.ID,
				TMDBID:    movie.TMDBID,
				WatchedAt: time.Now().UTC().Add(-time.Duration(s.rng.Intn(60*24)) * time.Hour),
			}
			if s.rng.Intn(2) == 0 {
				r := reactions[s.rng.Intn(len(reactions))]
				watch.Reaction = &r
			}
			if s.rng.Intn(4) == 0 {
				watch.Note = gofakeit.Sentence(6)
			}
			if err := s.db.Create(&watch).Error; err != nil {
				return fmt.Errorf("failed to create watch: %w", err)
			}
			// Occasionally record a companion
			if s.rng.Intn(3) == 0 {
				companion := users[s.rng.Intn(len(users))]
				if companion.ID != user.ID {
					row := models.WatchCompanion{WatchID: watch.ID, UserID: companion.ID}
					if err := s.db.Create(&row).Error; err != nil {
						return fmt.Errorf("failed to create watch companion: %w", err)
					}
				}
			}
		}
	}
	return nil
}
