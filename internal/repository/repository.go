package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound возвращается, когда запись не найдена
var ErrNotFound = errors.New("запись не найдена")

// Repository содержит все репозитории
type Repository struct {
	Profile  *ProfileRepository
	Settings *SettingsRepository

	db *sql.DB
}

// New создаёт новый экземпляр Repository
func New(db *sql.DB) *Repository {
	return &Repository{
		Profile:  NewProfileRepository(db),
		Settings: NewSettingsRepository(db),
		db:       db,
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS public.profiles (
	id          TEXT PRIMARY KEY,
	chat_id     BIGINT NOT NULL,
	name        TEXT NOT NULL,
	birth_date  TEXT NOT NULL,
	birth_time  TEXT NOT NULL DEFAULT '',
	birth_place TEXT NOT NULL DEFAULT '',
	ethnicity   TEXT NOT NULL DEFAULT '',
	color       TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS profiles_chat_id_idx ON public.profiles (chat_id, created_at);

CREATE TABLE IF NOT EXISTS public.chat_settings (
	chat_id    BIGINT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (chat_id, key)
);
`

// EnsureSchema создаёт таблицы, если их нет
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ошибка создания схемы: %w", err)
	}
	return nil
}
