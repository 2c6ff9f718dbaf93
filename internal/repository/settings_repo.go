package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"biobot/internal/biorhythm"
)

// Ключи настроек чата
const (
	KeyActivePeople   = "biorhythm-pro-active-people"
	KeyComparisonType = "biorhythm-pro-comparison-type"
	KeySelectedDate   = "biorhythm-pro-selected-date"
	KeyDigest         = "biorhythm-digest"
)

// SettingsRepository хранит настройки чата как непрозрачные строки по ключу
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository создаёт репозиторий настроек
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get возвращает значение ключа; ok=false, если ключа нет
func (r *SettingsRepository) Get(ctx context.Context, chatID int64, key string) (value string, ok bool, err error) {
	err = r.db.QueryRowContext(ctx,
		"SELECT value FROM public.chat_settings WHERE chat_id = $1 AND key = $2", chatID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("ошибка чтения настройки %s: %w", key, err)
	}
	return value, true, nil
}

// Set сохраняет значение ключа
func (r *SettingsRepository) Set(ctx context.Context, chatID int64, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO public.chat_settings (chat_id, key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (chat_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		chatID, key, value, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("ошибка сохранения настройки %s: %w", key, err)
	}
	return nil
}

// Delete удаляет ключ
func (r *SettingsRepository) Delete(ctx context.Context, chatID int64, key string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM public.chat_settings WHERE chat_id = $1 AND key = $2", chatID, key)
	if err != nil {
		return fmt.Errorf("ошибка удаления настройки %s: %w", key, err)
	}
	return nil
}

// ChatsWith возвращает чаты, у которых ключ равен value
func (r *SettingsRepository) ChatsWith(ctx context.Context, key, value string) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT chat_id FROM public.chat_settings WHERE key = $1 AND value = $2 ORDER BY chat_id", key, value)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска чатов: %w", err)
	}
	defer rows.Close()

	var chats []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		chats = append(chats, id)
	}
	return chats, rows.Err()
}

// Prefs типизированные настройки режима сравнения
type Prefs struct {
	ActivePeople []string
	// HasActive отличает "никто не выбран" от "настройка не задана"
	HasActive    bool
	Dimension    biorhythm.Dimension
	SelectedDate *time.Time
	Digest       bool
}

// prefKeys ключи, из которых собираются Prefs
var prefKeys = []string{KeyActivePeople, KeyComparisonType, KeySelectedDate, KeyDigest}

// LoadPrefs читает настройки чата. Битые значения заменяются значениями по умолчанию.
func (r *SettingsRepository) LoadPrefs(ctx context.Context, chatID int64) (Prefs, error) {
	raw := make(map[string]string, len(prefKeys))
	for _, key := range prefKeys {
		value, ok, err := r.Get(ctx, chatID, key)
		if err != nil {
			return DecodePrefs(nil), err
		}
		if ok {
			raw[key] = value
		}
	}
	return DecodePrefs(raw), nil
}

// DecodePrefs собирает Prefs из сохранённых строк по ключу.
// Отсутствующие и битые значения заменяются значениями по умолчанию.
func DecodePrefs(raw map[string]string) Prefs {
	prefs := Prefs{Dimension: biorhythm.Physical}

	if value, ok := raw[KeyActivePeople]; ok {
		if ids, err := DecodeIDs(value); err == nil {
			prefs.ActivePeople = ids
			prefs.HasActive = true
		}
	}
	if value, ok := raw[KeyComparisonType]; ok {
		if dim, err := biorhythm.ParseDimension(value); err == nil {
			prefs.Dimension = dim
		}
	}
	if value, ok := raw[KeySelectedDate]; ok {
		if d, err := biorhythm.ParseDate("selectedDate", value); err == nil {
			prefs.SelectedDate = &d
		}
	}
	prefs.Digest = raw[KeyDigest] == "on"

	return prefs
}

// SetActivePeople сохраняет список активных людей
func (r *SettingsRepository) SetActivePeople(ctx context.Context, chatID int64, ids []string) error {
	raw, err := EncodeIDs(ids)
	if err != nil {
		return err
	}
	return r.Set(ctx, chatID, KeyActivePeople, raw)
}

// SetSelectedDate сохраняет выбранную дату; nil возвращает режим "сегодня"
func (r *SettingsRepository) SetSelectedDate(ctx context.Context, chatID int64, d *time.Time) error {
	if d == nil {
		return r.Delete(ctx, chatID, KeySelectedDate)
	}
	return r.Set(ctx, chatID, KeySelectedDate, d.Format(biorhythm.ISODateLayout))
}

// SetDigest включает или выключает ежедневную рассылку
func (r *SettingsRepository) SetDigest(ctx context.Context, chatID int64, on bool) error {
	value := "off"
	if on {
		value = "on"
	}
	return r.Set(ctx, chatID, KeyDigest, value)
}

// EncodeIDs кодирует список ID в JSON
func EncodeIDs(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("ошибка кодирования списка: %w", err)
	}
	return string(data), nil
}

// DecodeIDs разбирает JSON список ID
func DecodeIDs(raw string) ([]string, error) {
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("ошибка разбора списка: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// FilterActive возвращает профили из ids в порядке profiles.
// Если hasActive=false, активны все.
func FilterActive(profiles []biorhythm.Profile, ids []string, hasActive bool) []biorhythm.Profile {
	if !hasActive {
		return profiles
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	active := make([]biorhythm.Profile, 0, len(ids))
	for _, p := range profiles {
		if _, ok := set[p.ID]; ok {
			active = append(active, p)
		}
	}
	return active
}

// ToggleID добавляет id в список или убирает его оттуда
func ToggleID(ids []string, id string) (result []string, added bool) {
	result = make([]string, 0, len(ids)+1)
	for _, existing := range ids {
		if existing == id {
			continue
		}
		result = append(result, existing)
	}
	if len(result) == len(ids) {
		result = append(result, id)
		added = true
	}
	return result, added
}
