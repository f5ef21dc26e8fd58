package repository

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/RostHarcha/clickup-tracker/models"
)

type AccountsRepository struct {
	db *sql.DB
}

func NewAccountsRepository(db *sql.DB) *AccountsRepository {
	return &AccountsRepository{db: db}
}

// Create inserts a new account with a generated id. Uniqueness of the token
// and of a non-null personal folder id is enforced by the database; use
// IsUniqueViolation to classify the returned error.
func (r *AccountsRepository) Create(payload models.AccountCreate) (*models.Account, error) {
	acc := models.Account{
		ID:               uuid.New(),
		ClickUpAPIToken:  payload.ClickUpAPIToken,
		TeamID:           payload.TeamID,
		HourlyRate:       payload.HourlyRate,
		PersonalFolderID: payload.PersonalFolderID,
	}
	_, err := r.db.Exec(`
		INSERT INTO accounts (id, clickup_api_token, team_id, hourly_rate, personal_folder_id)
		VALUES ($1, $2, $3, $4, $5)
	`, acc.ID, acc.ClickUpAPIToken, acc.TeamID, acc.HourlyRate, acc.PersonalFolderID)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// GetByToken performs an exact-match lookup. A missing account yields
// (nil, nil); callers decide whether that is a 404.
func (r *AccountsRepository) GetByToken(token string) (*models.Account, error) {
	var acc models.Account
	err := r.db.QueryRow(`
		SELECT id, clickup_api_token, team_id, hourly_rate, personal_folder_id
		FROM accounts
		WHERE clickup_api_token = $1
	`, token).Scan(&acc.ID, &acc.ClickUpAPIToken, &acc.TeamID, &acc.HourlyRate, &acc.PersonalFolderID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// Update applies a partial update: absent payload fields keep their stored
// value, while a personal folder sent as an explicit null is cleared.
// Returns (nil, nil) when no account matches the token.
func (r *AccountsRepository) Update(token string, payload models.AccountUpdate) (*models.Account, error) {
	var acc models.Account
	err := r.db.QueryRow(`
		UPDATE accounts SET
			clickup_api_token = COALESCE($2, clickup_api_token),
			team_id = COALESCE($3, team_id),
			hourly_rate = COALESCE($4, hourly_rate),
			personal_folder_id = CASE WHEN $6 THEN $5 ELSE personal_folder_id END
		WHERE clickup_api_token = $1
		RETURNING id, clickup_api_token, team_id, hourly_rate, personal_folder_id
	`, token, payload.ClickUpAPIToken, payload.TeamID, payload.HourlyRate,
		payload.PersonalFolderID.Value, payload.PersonalFolderID.Set).
		Scan(&acc.ID, &acc.ClickUpAPIToken, &acc.TeamID, &acc.HourlyRate, &acc.PersonalFolderID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation (duplicate token or personal folder id).
func IsUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}
