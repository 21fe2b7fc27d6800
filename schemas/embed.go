// Package schemas provides embedded SQL migration files.
package schemas

import "embed"

// MigrationsDirectory is the directory inside Migrations holding the goose files.
const MigrationsDirectory = "migrations"

// Migrations contains all SQL migration files.
//
//go:embed migrations/*.sql
var Migrations embed.FS
