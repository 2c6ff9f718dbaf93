package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"biobot/internal/biorhythm"
)

// MaxProfilesPerChat ограничивает число людей в одном чате
const MaxProfilesPerChat = 20

// ProfileRepository работает с таблицей profiles
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository создаёт репозиторий профилей
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `id, name, birth_date, birth_time, birth_place, ethnicity, color`

func scanProfile(row interface{ Scan(...any) error }) (biorhythm.Profile, error) {
	var p biorhythm.Profile
	err := row.Scan(&p.ID, &p.Name, &p.BirthDate, &p.BirthTime, &p.BirthPlace, &p.Ethnicity, &p.Color)
	return p, err
}

// Create сохраняет новый профиль. ID генерируется, цвет берётся первый свободный в чате.
func (r *ProfileRepository) Create(ctx context.Context, chatID int64, p biorhythm.Profile) (biorhythm.Profile, error) {
	if _, err := p.ParseBirthDate(); err != nil {
		return biorhythm.Profile{}, err
	}

	colors, err := r.ColorsByChat(ctx, chatID)
	if err != nil {
		return biorhythm.Profile{}, err
	}
	if len(colors) >= MaxProfilesPerChat {
		return biorhythm.Profile{}, fmt.Errorf("в чате уже %d человек, больше добавить нельзя", len(colors))
	}

	p.ID = uuid.New().String()
	if p.Color == "" {
		p.Color = biorhythm.FreeColor(colors)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO public.profiles (id, chat_id, name, birth_date, birth_time, birth_place, ethnicity, color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, chatID, p.Name, p.BirthDate, p.BirthTime, p.BirthPlace, p.Ethnicity, p.Color, time.Now(),
	)
	if err != nil {
		return biorhythm.Profile{}, fmt.Errorf("ошибка сохранения профиля: %w", err)
	}
	return p, nil
}

// GetByID возвращает профиль чата по ID
func (r *ProfileRepository) GetByID(ctx context.Context, chatID int64, id string) (biorhythm.Profile, error) {
	p, err := scanProfile(r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM public.profiles WHERE chat_id = $1 AND id = $2`, chatID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return biorhythm.Profile{}, ErrNotFound
	}
	if err != nil {
		return biorhythm.Profile{}, fmt.Errorf("ошибка получения профиля: %w", err)
	}
	return p, nil
}

// ListByChat возвращает профили чата в порядке добавления
func (r *ProfileRepository) ListByChat(ctx context.Context, chatID int64) ([]biorhythm.Profile, error) {
	return r.query(ctx, `
		SELECT `+profileColumns+`
		FROM public.profiles
		WHERE chat_id = $1
		ORDER BY created_at, id`, chatID)
}

// ListByIDs возвращает профили чата с указанными ID в порядке добавления
func (r *ProfileRepository) ListByIDs(ctx context.Context, chatID int64, ids []string) ([]biorhythm.Profile, error) {
	if len(ids) == 0 {
		return []biorhythm.Profile{}, nil
	}
	return r.query(ctx, `
		SELECT `+profileColumns+`
		FROM public.profiles
		WHERE chat_id = $1 AND id = ANY($2)
		ORDER BY created_at, id`, chatID, pq.Array(ids))
}

// ColorsByChat возвращает цвета профилей чата
func (r *ProfileRepository) ColorsByChat(ctx context.Context, chatID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT color FROM public.profiles WHERE chat_id = $1", chatID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения цветов: %w", err)
	}
	defer rows.Close()

	var colors []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, rows.Err()
}

// Delete удаляет профиль чата
func (r *ProfileRepository) Delete(ctx context.Context, chatID int64, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM public.profiles WHERE chat_id = $1 AND id = $2", chatID, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления профиля: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) query(ctx context.Context, q string, args ...any) ([]biorhythm.Profile, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения профилей: %w", err)
	}
	defer rows.Close()

	profiles := []biorhythm.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
