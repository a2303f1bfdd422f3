package deadletterrepo_test

import (
	"context"
	"testing"
	"time"

	"groundhandling/internal/adapters/out/postgres/deadletterrepo"
	"groundhandling/internal/core/ports"
	"groundhandling/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DeadLetterRepositoryIntegrationTestSuite runs the repository against a real
// PostgreSQL container.
type DeadLetterRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *deadletterrepo.GormDeadLetterRepository
}

func (suite *DeadLetterRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(deadletterrepo.Migrate(db))
}

func (suite *DeadLetterRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE dead_letter_steps, dead_letters").Error)
	suite.repository = deadletterrepo.NewGormDeadLetterRepository(suite.db)
}

func (suite *DeadLetterRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DeadLetterRepositoryIntegrationTestSuite) TestSave_ThenGet_RoundTripsJournal() {
	ctx := context.Background()
	dl := suite.deadLetter("17", time.Now().Add(-time.Minute))

	suite.Require().NoError(suite.repository.Save(ctx, dl))

	got, err := suite.repository.Get(ctx, "17")
	suite.Require().NoError(err)
	suite.Equal("SU-1402", got.FlightID)
	suite.Equal([]string{"p1", "p2"}, got.Passengers)
	suite.Equal(3, got.Attempts)
	suite.Require().Len(got.Journal, 2)
	suite.Equal("acquire_vehicle", got.Journal[0].Step)
	suite.Equal("deliver", got.Journal[1].Step)
	suite.Equal(250*time.Millisecond, got.Journal[1].Duration)
	suite.WithinDuration(dl.CreatedAt, got.CreatedAt, time.Millisecond)
}

func (suite *DeadLetterRepositoryIntegrationTestSuite) TestSave_ReplacesExistingRecord() {
	ctx := context.Background()
	first := suite.deadLetter("17", time.Now())
	suite.Require().NoError(suite.repository.Save(ctx, first))

	second := first
	second.Attempts = 1
	second.Reason = "board refused"
	second.Journal = []ports.JournalEntry{{Step: "unload", Status: "failed"}}
	suite.Require().NoError(suite.repository.Save(ctx, second))

	got, err := suite.repository.Get(ctx, "17")
	suite.Require().NoError(err)
	suite.Equal(1, got.Attempts)
	suite.Equal("board refused", got.Reason)
	suite.Require().Len(got.Journal, 1)
	suite.Equal("unload", got.Journal[0].Step)

	var steps int64
	suite.Require().NoError(suite.db.Model(&deadletterrepo.StepDTO{}).Count(&steps).Error)
	suite.Equal(int64(1), steps)
}

func (suite *DeadLetterRepositoryIntegrationTestSuite) TestSave_RequiresOrderID() {
	err := suite.repository.Save(context.Background(), ports.DeadLetter{})
	suite.ErrorIs(err, errs.ErrValueIsRequired)
}

func (suite *DeadLetterRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), "missing")
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeadLetterRepositoryIntegrationTestSuite) TestList_NewestFirst() {
	ctx := context.Background()
	now := time.Now()
	suite.Require().NoError(suite.repository.Save(ctx, suite.deadLetter("old", now.Add(-time.Hour))))
	suite.Require().NoError(suite.repository.Save(ctx, suite.deadLetter("new", now)))

	letters, err := suite.repository.List(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(letters, 2)
	suite.Equal("new", letters[0].OrderID)
	suite.Equal("old", letters[1].OrderID)
	suite.Len(letters[0].Journal, 2)
}

func (suite *DeadLetterRepositoryIntegrationTestSuite) TestDelete_IsIdempotent() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Save(ctx, suite.deadLetter("17", time.Now())))

	suite.Require().NoError(suite.repository.Delete(ctx, "17"))
	suite.Require().NoError(suite.repository.Delete(ctx, "17"))

	_, err := suite.repository.Get(ctx, "17")
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeadLetterRepositoryIntegrationTestSuite) deadLetter(orderID string, createdAt time.Time) ports.DeadLetter {
	return ports.DeadLetter{
		OrderID:     orderID,
		FlightID:    "SU-1402",
		Kind:        "load",
		VehicleKind: "bus",
		Passengers:  []string{"p1", "p2"},
		Attempts:    3,
		Reason:      "retry budget exhausted",
		Journal: []ports.JournalEntry{
			{Step: "acquire_vehicle", Status: "succeeded", Duration: 10 * time.Millisecond},
			{Step: "deliver", Status: "failed", Duration: 250 * time.Millisecond, Detail: "board unreachable"},
		},
		CreatedAt: createdAt,
	}
}

func TestDeadLetterRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DeadLetterRepositoryIntegrationTestSuite))
}
