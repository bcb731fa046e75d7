package main

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/tu-usuario/backoffice-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/backoffice-pro/pkg/config"
	"github.com/tu-usuario/backoffice-pro/pkg/logger"
)

// Aplica en orden los archivos .sql de migrations/ contra la base configurada.
// El DDL es idempotente (IF NOT EXISTS), así que re-ejecutarlo es seguro.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})

	dir := "migrations"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	paths, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		log.Fatal().Err(err).Msg("listar migraciones")
	}
	sort.Strings(paths)

	for _, path := range paths {
		ddl, err := os.ReadFile(path)
		if err != nil {
			log.Fatal().Err(err).Str("file", path).Msg("leer migración")
		}
		if _, err := pool.Exec(ctx, string(ddl)); err != nil {
			log.Fatal().Err(err).Str("file", path).Msg("aplicar migración")
		}
		log.Info().Str("file", path).Msg("migración aplicada")
	}
	log.Info().Int("total", len(paths)).Msg("esquema al día")
}
