package repository

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/RostHarcha/clickup-tracker/models"
)

// AccountsRepositorySuite runs against a real Postgres. It is skipped when
// DATABASE_URL is not set so unit test runs stay self-contained.
type AccountsRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo *AccountsRepository
}

func (s *AccountsRepositorySuite) SetupSuite() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		s.T().Skip("DATABASE_URL is not set")
	}
	db, err := sql.Open("postgres", dsn)
	s.Require().NoError(err)
	s.Require().NoError(db.Ping())
	s.db = db
	s.prepareDatabase()
	s.repo = NewAccountsRepository(db)
}

func (s *AccountsRepositorySuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
}

func (s *AccountsRepositorySuite) prepareDatabase() {
	_, err := s.db.Exec("DROP TABLE IF EXISTS accounts")
	s.Require().NoError(err)
	_, err = s.db.Exec(`
		CREATE TABLE accounts (
			id UUID PRIMARY KEY,
			clickup_api_token TEXT NOT NULL,
			team_id BIGINT NOT NULL,
			hourly_rate NUMERIC(10, 2) NOT NULL,
			personal_folder_id BIGINT
		)`)
	s.Require().NoError(err)
	_, err = s.db.Exec("CREATE UNIQUE INDEX accounts_clickup_api_token_key ON accounts (clickup_api_token)")
	s.Require().NoError(err)
	_, err = s.db.Exec("CREATE UNIQUE INDEX accounts_personal_folder_id_key ON accounts (personal_folder_id) WHERE personal_folder_id IS NOT NULL")
	s.Require().NoError(err)
}

func (s *AccountsRepositorySuite) SetupTest() {
	_, err := s.db.Exec("DELETE FROM accounts")
	s.Require().NoError(err)
}

func (s *AccountsRepositorySuite) TestCreateAndGet() {
	folderID := int64(42)
	created, err := s.repo.Create(models.AccountCreate{
		ClickUpAPIToken:  "pk_create",
		HourlyRate:       decimal.RequireFromString("1500.50"),
		TeamID:           900,
		PersonalFolderID: &folderID,
	})
	s.Require().NoError(err)
	s.NotEqual("", created.ID.String())

	got, err := s.repo.GetByToken("pk_create")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(created.ID, got.ID)
	s.Equal(int64(900), got.TeamID)
	s.True(got.HourlyRate.Equal(decimal.RequireFromString("1500.50")))
	s.Require().NotNil(got.PersonalFolderID)
	s.Equal(int64(42), *got.PersonalFolderID)
}

func (s *AccountsRepositorySuite) TestGetUnknownToken() {
	got, err := s.repo.GetByToken("pk_missing")
	s.NoError(err)
	s.Nil(got)
}

func (s *AccountsRepositorySuite) TestDuplicateTokenRejected() {
	_, err := s.repo.Create(models.AccountCreate{
		ClickUpAPIToken: "pk_dup", HourlyRate: decimal.NewFromInt(100), TeamID: 900,
	})
	s.Require().NoError(err)

	_, err = s.repo.Create(models.AccountCreate{
		ClickUpAPIToken: "pk_dup", HourlyRate: decimal.NewFromInt(200), TeamID: 900,
	})
	s.Require().Error(err)
	s.True(IsUniqueViolation(err))
}

func (s *AccountsRepositorySuite) TestDuplicatePersonalFolderRejected() {
	folderID := int64(5)
	_, err := s.repo.Create(models.AccountCreate{
		ClickUpAPIToken: "pk_a", HourlyRate: decimal.NewFromInt(100), TeamID: 900,
		PersonalFolderID: &folderID,
	})
	s.Require().NoError(err)

	_, err = s.repo.Create(models.AccountCreate{
		ClickUpAPIToken: "pk_b", HourlyRate: decimal.NewFromInt(100), TeamID: 900,
		PersonalFolderID: &folderID,
	})
	s.Require().Error(err)
	s.True(IsUniqueViolation(err))
}

func (s *AccountsRepositorySuite) TestNullPersonalFolderNotUnique() {
	_, err := s.repo.Create(models.AccountCreate{
		ClickUpAPIToken: "pk_null_a", HourlyRate: decimal.NewFromInt(100), TeamID: 900,
	})
	s.Require().NoError(err)
	_, err = s.repo.Create(models.AccountCreate{
		ClickUpAPIToken: "pk_null_b", HourlyRate: decimal.NewFromInt(100), TeamID: 900,
	})
	s.NoError(err)
}

func (s *AccountsRepositorySuite) TestPartialUpdate() {
	folderID := int64(7)
	_, err := s.repo.Create(models.AccountCreate{
		ClickUpAPIToken: "pk_upd", HourlyRate: decimal.NewFromInt(1000), TeamID: 900,
		PersonalFolderID: &folderID,
	})
	s.Require().NoError(err)

	newRate := decimal.NewFromInt(2000)
	updated, err := s.repo.Update("pk_upd", models.AccountUpdate{HourlyRate: &newRate})
	s.Require().NoError(err)
	s.Require().NotNil(updated)

	s.True(updated.HourlyRate.Equal(newRate))
	s.Equal("pk_upd", updated.ClickUpAPIToken)
	s.Require().NotNil(updated.PersonalFolderID)
	s.Equal(int64(7), *updated.PersonalFolderID)
	s.Equal(int64(900), updated.TeamID)
}

func (s *AccountsRepositorySuite) TestClearPersonalFolder() {
	folderID := int64(9)
	_, err := s.repo.Create(models.AccountCreate{
		ClickUpAPIToken: "pk_clear", HourlyRate: decimal.NewFromInt(1000), TeamID: 900,
		PersonalFolderID: &folderID,
	})
	s.Require().NoError(err)

	updated, err := s.repo.Update("pk_clear", models.AccountUpdate{
		PersonalFolderID: models.OptionalInt64{Set: true, Value: nil},
	})
	s.Require().NoError(err)
	s.Require().NotNil(updated)
	s.Nil(updated.PersonalFolderID)

	// The freed id is usable by another account.
	_, err = s.repo.Create(models.AccountCreate{
		ClickUpAPIToken: "pk_clear_b", HourlyRate: decimal.NewFromInt(1000), TeamID: 900,
		PersonalFolderID: &folderID,
	})
	s.NoError(err)
}

func (s *AccountsRepositorySuite) TestUpdateUnknownToken() {
	newRate := decimal.NewFromInt(2000)
	updated, err := s.repo.Update("pk_missing", models.AccountUpdate{HourlyRate: &newRate})
	s.NoError(err)
	s.Nil(updated)
}

func TestAccountsRepositorySuite(t *testing.T) {
	suite.Run(t, new(AccountsRepositorySuite))
}
