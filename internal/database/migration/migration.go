// Package migration creates the article and comment schema on first start.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

// comments.article_id deliberately has no ON DELETE CASCADE: removal of an
// article and its comments happens in one explicit transaction.
var steps = []migrationStep{
	{
		Name: "create_table_articles",
		SQL: `CREATE TABLE IF NOT EXISTS articles (
  id         BIGSERIAL    PRIMARY KEY,
  title      VARCHAR(100) NOT NULL,
  content    TEXT         NOT NULL,
  created_at TIMESTAMPTZ  NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ  NOT NULL DEFAULT now(),
  CONSTRAINT chk_articles_updated_at CHECK (updated_at >= created_at)
);`,
	},
	{
		Name: "create_table_comments",
		SQL: `CREATE TABLE IF NOT EXISTS comments (
  id         BIGSERIAL   PRIMARY KEY,
  content    TEXT        NOT NULL,
  article_id BIGINT      NOT NULL REFERENCES articles (id),
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_comments_article_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_comments_article_id ON comments (article_id);`,
	},
}

// EnsureMigrated checks if the 'comments' table exists and runs migrations if it doesn't.
// comments is created last, so its presence implies a complete schema.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))

	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	query := "SELECT to_regclass('public.comments') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.Error(err),
			zap.Duration("duration_ms", time.Since(start)),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("reason", "schema already exists"),
			zap.Duration("duration_ms", time.Since(start)),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"), zap.Int("steps", len(steps)))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Duration("duration_ms", time.Since(start)),
				zap.Duration("step_duration_ms", time.Since(stepStart)),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Duration("step_duration_ms", time.Since(stepStart)),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Duration("duration_ms", time.Since(start)),
	)
	return nil
}
