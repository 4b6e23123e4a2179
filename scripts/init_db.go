//go:build ignore

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("=== Database Initialization Script ===")
	fmt.Println()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  Warning: Could not load .env file: %v\n", err)
	}

	// Get database URL
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		fmt.Println("❌ DATABASE_URL environment variable not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// First connect to default 'postgres' database to create our database
	postgresURL := strings.Replace(databaseURL, "/atc_leads", "/postgres", 1)
	fmt.Println("📡 Connecting to PostgreSQL server...")

	adminConn, err := pgx.Connect(ctx, postgresURL)
	if err != nil {
		fmt.Printf("❌ Failed to connect to PostgreSQL: %v\n", err)
		os.Exit(1)
	}

	// Check if database exists
	var exists bool
	err = adminConn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = 'atc_leads')").Scan(&exists)
	if err != nil {
		fmt.Printf("❌ Failed to check database existence: %v\n", err)
		adminConn.Close(ctx)
		os.Exit(1)
	}

	if !exists {
		fmt.Println("📦 Creating 'atc_leads' database...")
		_, err = adminConn.Exec(ctx, "CREATE DATABASE atc_leads")
		if err != nil {
			fmt.Printf("❌ Failed to create database: %v\n", err)
			adminConn.Close(ctx)
			os.Exit(1)
		}
		fmt.Println("✅ Database 'atc_leads' created!")
	} else {
		fmt.Println("✅ Database 'atc_leads' already exists")
	}
	adminConn.Close(ctx)

	// Now connect to the atc_leads database
	fmt.Println("📡 Connecting to atc_leads database...")
	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		fmt.Printf("❌ Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	fmt.Println("✅ Connected to database successfully!")
	fmt.Println()

	// Read SQL file
	fmt.Println("📖 Reading SQL schema file...")
	sqlBytes, err := os.ReadFile("scripts/init_database.sql")
	if err != nil {
		fmt.Printf("❌ Failed to read SQL file: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ SQL file loaded successfully!")
	fmt.Println()

	// Execute SQL
	fmt.Println("🚀 Executing database schema...")
	_, err = conn.Exec(ctx, string(sqlBytes))
	if err != nil {
		fmt.Printf("❌ Failed to execute SQL: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Database schema executed successfully!")
	fmt.Println()

	// Verify by counting captured leads
	fmt.Println("🔍 Verifying database setup...")

	var leadCount int
	err = conn.QueryRow(ctx, "SELECT COUNT(*) FROM leads").Scan(&leadCount)
	if err != nil {
		fmt.Printf("⚠️  Warning: Could not count leads: %v\n", err)
	} else {
		fmt.Printf("   📦 Leads in database: %d\n", leadCount)
	}

	fmt.Println()
	fmt.Println("🎉 Database initialization completed successfully!")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Start the local server: go run cmd/server/main.go")
	fmt.Println("  2. Run an eligibility check against /api/eligibility/check")
}
