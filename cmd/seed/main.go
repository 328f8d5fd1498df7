package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"gadict/internal/config"
	"gadict/internal/repository/postgres"
	"gadict/internal/seed"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed the lexicon")
	clearData := flag.Bool("clear-data", false, "Clear all words (keep schema)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *clearData {
		log.Printf("🧹 Clearing data only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("📋 Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	if *clearData {
		log.Println("🧹 Clearing existing words...")
		if err := clearWords(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("✅ Data cleared successfully")
		return
	}

	// Ensure an admin account exists for moderation
	if err := ensureAdminUser(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to ensure admin user: %v", err)
	}
	log.Println("👤 Admin user ready")

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	wordRepo := postgres.NewWordRepository(repoConfig)

	// Clear existing words so seeding is repeatable
	log.Println("⚠️  Clearing existing words...")
	if err := clearWords(ctx, pool, tables); err != nil {
		log.Printf("Warning: Could not clear data: %v", err)
	}

	// Seed the starter lexicon
	entries, err := seed.LoadWords()
	if err != nil {
		log.Fatalf("Failed to load starter lexicon: %v", err)
	}
	log.Printf("📖 Found %d words in starter lexicon", len(entries))

	now := time.Now().UTC()
	for i, entry := range entries {
		word := entry.ToWord(now)
		if err := wordRepo.Create(ctx, word); err != nil {
			log.Printf("❌ Failed to create word '%s': %v", entry.Word, err)
			continue
		}
		log.Printf("✅ Created word %d/%d: %s (%s)", i+1, len(entries), word.Word, word.CompletionStatus)
	}

	counts, err := wordRepo.Counts(ctx)
	if err != nil {
		log.Fatalf("Failed to count words: %v", err)
	}
	log.Println("📊 Dictionary statistics:")
	log.Printf("   Total words: %d", counts.Total)
	log.Printf("   Verified words: %d", counts.Verified)
	log.Printf("   Incomplete words: %d", counts.Incomplete)

	log.Println("🎉 Seeding complete!")
}

// ensureAdminUser creates the moderation admin account if it doesn't exist
func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@ga-dictionary.org"
	}

	query := `
		INSERT INTO ` + tables.Users + ` (id, email, name, role, contribution_count,
			approval_count, reputation, last_active, created_at, updated_at)
		VALUES ($1, $2, $3, 'ADMIN', 0, 0, 1000, NOW(), NOW(), NOW())
		ON CONFLICT (email) DO NOTHING
	`
	_, err := pool.Exec(ctx, query, uuid.New(), email, "Dictionary Admin")
	return err
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Words. No FK from contributions or flags back to words: a rejected
	// ADD_WORD deletes its placeholder while the contribution row stays as
	// audit history.
	createWords := `
		CREATE TABLE IF NOT EXISTS ` + tables.Words + ` (
			id UUID PRIMARY KEY,
			word TEXT NOT NULL,
			phoneme TEXT NOT NULL DEFAULT '',
			meaning TEXT NOT NULL DEFAULT '',
			part_of_speech TEXT,
			example_usage TEXT,
			completion_status TEXT NOT NULL,
			verified BOOLEAN NOT NULL DEFAULT FALSE,
			published BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createWords); err != nil {
		return err
	}

	createContributions := `
		CREATE TABLE IF NOT EXISTS ` + tables.Contributions + ` (
			id UUID PRIMARY KEY,
			word_id UUID NOT NULL,
			user_id UUID NOT NULL,
			type TEXT NOT NULL,
			status TEXT NOT NULL,
			proposed_data JSONB NOT NULL,
			original_data JSONB,
			review_notes TEXT,
			reviewed_by UUID,
			reviewed_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createContributions); err != nil {
		return err
	}

	createFlags := `
		CREATE TABLE IF NOT EXISTS ` + tables.Flags + ` (
			id UUID PRIMARY KEY,
			word_id UUID NOT NULL,
			user_id UUID NOT NULL,
			reason TEXT NOT NULL,
			description TEXT NOT NULL,
			status TEXT NOT NULL,
			resolution TEXT,
			resolved_by UUID,
			resolved_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createFlags); err != nil {
		return err
	}

	createUsers := `
		CREATE TABLE IF NOT EXISTS ` + tables.Users + ` (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'USER',
			contribution_count INTEGER NOT NULL DEFAULT 0,
			approval_count INTEGER NOT NULL DEFAULT 0,
			reputation INTEGER NOT NULL DEFAULT 0,
			last_active TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createUsers); err != nil {
		return err
	}

	createStats := `
		CREATE TABLE IF NOT EXISTS ` + tables.DictionaryStats + ` (
			singleton BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (singleton),
			total_words INTEGER NOT NULL DEFAULT 0,
			verified_words INTEGER NOT NULL DEFAULT 0,
			incomplete_words INTEGER NOT NULL DEFAULT 0,
			pending_contributions INTEGER NOT NULL DEFAULT 0,
			active_contributors INTEGER NOT NULL DEFAULT 0,
			open_flags INTEGER NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createStats); err != nil {
		return err
	}

	// Create indexes
	indexes := []string{
		// Case-insensitive headword uniqueness backs the duplicate check
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_` + tablePrefix + `words_headword ON ` + tables.Words + ` (LOWER(word))`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `words_completion ON ` + tables.Words + ` (completion_status)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `contributions_user ON ` + tables.Contributions + ` (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `contributions_status ON ` + tables.Contributions + ` (status)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `contributions_word ON ` + tables.Contributions + ` (word_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `flags_word ON ` + tables.Flags + ` (word_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `flags_status ON ` + tables.Flags + ` (status)`,
		// One OPEN flag per reporter per word, enforced under concurrency
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_` + tablePrefix + `flags_open_unique ON ` + tables.Flags + ` (word_id, user_id) WHERE status = 'OPEN'`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.DictionaryStats,
		tables.Flags,
		tables.Contributions,
		tables.Words,
		tables.Users,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}

	return nil
}

// clearWords clears all dictionary entries
func clearWords(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	_, err := pool.Exec(ctx, "DELETE FROM "+tables.Words)
	return err
}
