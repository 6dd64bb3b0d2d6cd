package printjobrepo_test

import (
	"context"
	"testing"

	"refill/internal/adapters/out/postgres/pgtest"
	"refill/internal/adapters/out/postgres/printjobrepo"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/printjob"
	"refill/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type PrintJobRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *printjobrepo.GormPrintJobRepository
}

func (suite *PrintJobRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *PrintJobRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = printjobrepo.NewGormPrintJobRepository(suite.database.DB)
}

func (suite *PrintJobRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *PrintJobRepositoryIntegrationTestSuite) TestLifecycle_PendingDispatchedFailed() {
	ctx := context.Background()
	job, _, err := printjob.NewPrintJob(kernel.NewUUID(), kernel.NewUUID(), 3, "default")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, job))

	loaded, err := suite.repository.Get(ctx, job.ID())
	suite.Require().NoError(err)
	suite.Equal(printjob.Pending, loaded.Status())
	suite.Nil(loaded.DispatchedAt())

	suite.Require().NoError(loaded.MarkAsDispatched())
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	dispatched, err := suite.repository.Get(ctx, job.ID())
	suite.Require().NoError(err)
	suite.Equal(printjob.Dispatched, dispatched.Status())
	suite.NotNil(dispatched.DispatchedAt())

	_, err = dispatched.MarkAsFailed("printer offline")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, dispatched))

	failed, err := suite.repository.Get(ctx, job.ID())
	suite.Require().NoError(err)
	suite.Equal(printjob.Failed, failed.Status())
	suite.Equal("printer offline", failed.ErrorMessage())
	suite.NotNil(failed.CompletedAt())
	suite.Equal(2, failed.Version())
}

func (suite *PrintJobRepositoryIntegrationTestSuite) TestGet_Unknown_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestPrintJobRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PrintJobRepositoryIntegrationTestSuite))
}
