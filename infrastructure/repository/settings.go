package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/adsflow-api/infrastructure/database/postgres"
)

const settingsTable = "app_settings"

// Chaves conhecidas do armazenamento de configurações
const (
	KeyCredential = "credential"
	KeyClients    = "clients"
)

type SettingsRepository interface {
	EnsureSchema() error
	Get(key string) (string, error)
	Set(key, value string) error
}

type settingsRepository struct {
	conn *postgres.Connection
}

func NewSettingsRepository(conn *postgres.Connection) SettingsRepository {
	return &settingsRepository{
		conn: conn,
	}
}

// EnsureSchema cria a tabela de configurações quando ainda não existe
func (r *settingsRepository) EnsureSchema() error {
	ddl := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, settingsTable)

	if _, err := r.conn.Exec(ddl); err != nil {
		return fmt.Errorf("erro ao criar tabela de configurações: %w", err)
	}

	return nil
}

// Get retorna o valor da chave, ou vazio quando a chave não existe
func (r *settingsRepository) Get(key string) (string, error) {
	query := squirrel.
		Select("value").
		From(settingsTable).
		Where(squirrel.Eq{"key": key}).
		PlaceholderFormat(squirrel.Dollar)

	settingsSQL, settingsArgs, err := query.ToSql()
	if err != nil {
		return "", fmt.Errorf("erro ao construir consulta: %w", err)
	}

	var value string
	err = r.conn.QueryRow(settingsSQL, settingsArgs...).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("erro ao consultar configuração: %w", err)
	}

	return value, nil
}

// Set grava o valor da chave, sobrescrevendo quando já existir
func (r *settingsRepository) Set(key, value string) error {
	query := squirrel.
		Insert(settingsTable).
		Columns("key", "value", "updated_at").
		Values(key, value, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()").
		PlaceholderFormat(squirrel.Dollar)

	settingsSQL, settingsArgs, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir consulta: %w", err)
	}

	_, err = r.conn.Exec(settingsSQL, settingsArgs...)
	if err != nil {
		return fmt.Errorf("erro ao gravar configuração: %w", err)
	}

	return nil
}
