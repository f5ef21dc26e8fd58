package models

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account links a ClickUp API token to billing configuration. It is the
// only entity this service persists. The token doubles as credential and
// lookup key, so it is excluded from JSON output.
type Account struct {
	ID               uuid.UUID       `json:"id"`
	ClickUpAPIToken  string          `json:"-"`
	TeamID           int64           `json:"teamId"`
	HourlyRate       decimal.Decimal `json:"hourlyRate"`
	PersonalFolderID *int64          `json:"personalFolderId"`
}

// AccountCreate is the payload for registering a new account.
// TeamID is optional and falls back to the configured default.
type AccountCreate struct {
	ClickUpAPIToken  string          `json:"clickup_api_token" binding:"required"`
	HourlyRate       decimal.Decimal `json:"hourly_rate"`
	TeamID           int64           `json:"team_id"`
	PersonalFolderID *int64          `json:"personal_folder_id"`
}

// AccountUpdate is a partial update: absent fields are left untouched.
// PersonalFolderID tracks key presence so that an explicit null clears the
// folder while an absent key keeps it.
type AccountUpdate struct {
	ClickUpAPIToken  *string          `json:"clickup_api_token"`
	HourlyRate       *decimal.Decimal `json:"hourly_rate"`
	TeamID           *int64           `json:"team_id"`
	PersonalFolderID OptionalInt64    `json:"personal_folder_id"`
}

// OptionalInt64 is a nullable integer that remembers whether its JSON key
// was sent at all. Set is false for an absent key; Set with a nil Value
// means the key was an explicit null.
type OptionalInt64 struct {
	Set   bool
	Value *int64
}

func (o *OptionalInt64) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o OptionalInt64) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Value)
}
