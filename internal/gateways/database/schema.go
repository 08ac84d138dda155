package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/database/models"
)

// Tables in creation order.
var Tables = []any{
	(*models.User)(nil),
	(*models.Season)(nil),
	(*models.Rarity)(nil),
	(*models.CardDesign)(nil),
	(*models.PackType)(nil),
	(*models.Pack)(nil),
	(*models.CardInstance)(nil),
	(*models.Preorder)(nil),
	(*models.Trade)(nil),
	(*models.Moment)(nil),
}

var indexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_card_designs_season ON card_designs(season_id);",
	"CREATE INDEX IF NOT EXISTS idx_pack_types_season ON pack_types(season_id);",
	"CREATE INDEX IF NOT EXISTS idx_packs_user ON packs(user_id);",
	"CREATE INDEX IF NOT EXISTS idx_packs_pack_type ON packs(pack_type_id);",
	"CREATE INDEX IF NOT EXISTS idx_card_instances_pack ON card_instances(pack_id);",
	"CREATE INDEX IF NOT EXISTS idx_card_instances_user_opened ON card_instances(user_id, opened);",
	"CREATE INDEX IF NOT EXISTS idx_card_instances_design ON card_instances(design_id);",
	"CREATE INDEX IF NOT EXISTS idx_card_instances_rarity ON card_instances(rarity_id);",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_card_instances_print ON card_instances(design_id, rarity_id, card_number);",
	"CREATE INDEX IF NOT EXISTS idx_preorders_created ON preorders(created_at);",
	"CREATE INDEX IF NOT EXISTS idx_trades_sender ON trades(sender_id, status);",
	"CREATE INDEX IF NOT EXISTS idx_trades_receiver ON trades(receiver_id, status);",
}

var constraints = []struct{ table, name, check string }{
	{"packs", "packs_remaining_cards_nonnegative", "remaining_cards >= 0"},
	{"users", "users_pack_count_nonnegative", "pack_count >= 0"},
	{"rarities", "rarities_default_count_positive", "default_count > 0"},
}

// foreignKeys keep catalog rows from being deleted while anything still
// points at them. Deletes are RESTRICT; the repositories report the
// violation as a conflict.
var foreignKeys = []struct{ table, name, column, references string }{
	{"card_designs", "card_designs_season_fk", "season_id", "seasons(season_id)"},
	{"pack_types", "pack_types_season_fk", "season_id", "seasons(season_id)"},
	{"packs", "packs_pack_type_fk", "pack_type_id", "pack_types(pack_type_id)"},
	{"card_instances", "card_instances_design_fk", "design_id", "card_designs(design_id)"},
	{"card_instances", "card_instances_rarity_fk", "rarity_id", "rarities(rarity_id)"},
	{"card_instances", "card_instances_pack_fk", "pack_id", "packs(pack_id)"},
}

// InitializeSchema creates the tables, check and foreign key constraints and
// indexes. It is safe to run against an already initialised database.
func (db *DB) InitializeSchema(ctx context.Context) error {
	for _, model := range Tables {
		if _, err := db.bunDB.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	for _, c := range constraints {
		stmt := fmt.Sprintf(`DO $$ BEGIN
	ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s);
EXCEPTION WHEN duplicate_object THEN NULL;
END $$;`, c.table, c.name, c.check)
		if _, err := db.ExecWithLog(ctx, stmt); err != nil {
			return fmt.Errorf("failed to add constraint %s: %w", c.name, err)
		}
	}

	for _, fk := range foreignKeys {
		stmt := fmt.Sprintf(`DO $$ BEGIN
	ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s ON DELETE RESTRICT;
EXCEPTION WHEN duplicate_object THEN NULL;
END $$;`, fk.table, fk.name, fk.column, fk.references)
		if _, err := db.ExecWithLog(ctx, stmt); err != nil {
			return fmt.Errorf("failed to add foreign key %s: %w", fk.name, err)
		}
	}

	for _, idx := range indexes {
		if _, err := db.ExecWithLog(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	slog.Info("Database schema ready",
		slog.String("type", "db"),
		slog.Int("tables", len(Tables)),
		slog.Int("foreign_keys", len(foreignKeys)),
		slog.Int("indexes", len(indexes)))
	return nil
}
