package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/mibcs/clubsite/internal/config"
	"github.com/mibcs/clubsite/internal/domain/events"
	"github.com/mibcs/clubsite/internal/domain/ids"
	"github.com/mibcs/clubsite/internal/storage/postgres"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample content into the database",
	Long: `Insert sample events, achievements and projects for development.

Seeded events go through the same store as admin-created ones, so there is no
separate code path and engagement counters start at zero. Running seed twice
inserts the samples twice; it is meant for fresh development databases.`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	logger := config.NewLogger(cfg.Logging)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer pool.Close()

	repo, err := postgres.NewRepository(pool)
	if err != nil {
		return fmt.Errorf("repository init failed: %w", err)
	}
	store := events.NewStore(repo.Events())

	for _, input := range sampleEvents() {
		event, err := store.Create(ctx, input)
		if err != nil {
			return fmt.Errorf("seed event %q: %w", input.Title, err)
		}
		logger.Info().Str("id", event.ID).Str("title", event.Title).Msg("seeded event")
	}

	if err := seedSupportingContent(ctx, pool); err != nil {
		return err
	}

	logger.Info().Msg("seed complete")
	return nil
}

func sampleEvents() []events.EventInput {
	fifty := 50
	hundred := 100
	return []events.EventInput{
		{
			Title:            "Introduction to Machine Learning",
			Description:      "A comprehensive workshop covering the fundamentals of machine learning, including supervised and unsupervised learning algorithms.",
			ShortDescription: "Learn ML fundamentals in this hands-on workshop",
			Date:             "2024-02-15",
			Time:             "2:00 PM - 5:00 PM",
			Venue:            "Computer Lab 1, Tech Building",
			Type:             "workshop",
			Status:           "upcoming",
			RegistrationLink: "https://forms.google.com/ml-workshop",
			MaxParticipants:  &fifty,
			Domains:          []string{"ML"},
			Organizers:       []string{"John Doe", "Jane Smith"},
			Featured:         true,
		},
		{
			Title:            "Blockchain Hackathon 2024",
			Description:      "A 48-hour hackathon focused on building innovative blockchain solutions for real-world problems.",
			ShortDescription: "48-hour blockchain innovation challenge",
			Date:             "2024-03-01",
			EndDate:          "2024-03-03",
			Time:             "9:00 AM",
			Venue:            "Innovation Hub",
			Type:             "hackathon",
			Status:           "upcoming",
			RegistrationLink: "https://forms.google.com/blockchain-hackathon",
			MaxParticipants:  &hundred,
			Domains:          []string{"Blockchain"},
			Organizers:       []string{"Alice Johnson", "Bob Wilson"},
			Featured:         true,
		},
		{
			Title:            "IoT Security Workshop",
			Description:      "Learn about security challenges in IoT devices and how to implement secure IoT solutions.",
			ShortDescription: "Secure your IoT projects with best practices",
			Date:             "2024-01-20",
			Time:             "1:00 PM - 4:00 PM",
			Venue:            "Electronics Lab",
			Type:             "workshop",
			Status:           "completed",
			Domains:          []string{"IoT", "Cybersecurity"},
			Organizers:       []string{"Charlie Brown"},
		},
	}
}

// seedSupportingContent fills the dashboard's supporting tables. These have no
// domain service of their own, so plain inserts are enough.
func seedSupportingContent(ctx context.Context, pool *pgxpool.Pool) error {
	achievements := []struct {
		title    string
		category string
		year     int
	}{
		{"First Place - National AI Competition", "competition", 2024},
		{"Best Blockchain Project - University Hackathon", "hackathon", 2023},
		{"Research Paper Published - IoT Security", "research", 2023},
	}
	for _, a := range achievements {
		id, err := ids.NewULID()
		if err != nil {
			return fmt.Errorf("mint achievement id: %w", err)
		}
		_, err = pool.Exec(ctx,
			`INSERT INTO achievements (id, title, category, year) VALUES ($1, $2, $3, $4)`,
			id, a.title, a.category, a.year)
		if err != nil {
			return fmt.Errorf("seed achievement %q: %w", a.title, err)
		}
	}

	projects := []struct {
		title  string
		status string
	}{
		{"Smart Campus Management System", "ongoing"},
		{"Cryptocurrency Price Predictor", "completed"},
	}
	for _, p := range projects {
		id, err := ids.NewULID()
		if err != nil {
			return fmt.Errorf("mint project id: %w", err)
		}
		_, err = pool.Exec(ctx,
			`INSERT INTO projects (id, title, status) VALUES ($1, $2, $3)`,
			id, p.title, p.status)
		if err != nil {
			return fmt.Errorf("seed project %q: %w", p.title, err)
		}
	}

	return nil
}
