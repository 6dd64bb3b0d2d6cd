package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "refill/internal/adapters/out/postgres"
	"refill/internal/adapters/out/postgres/pgtest"
	"refill/internal/core/domain/model/customer"
	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/history"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/core/ports"
	"refill/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite tests the GORM-based Unit of Work against a
// real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	factory  ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(database.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.CustomerRepository())
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.CylinderRepository())
	suite.NotNil(uow1.HistoryRepository())
	suite.NotNil(uow1.PrintJobRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

// TestUnitOfWork_ReceiveIntoOrder_CommitsAtomically stores a customer, an
// order, a cylinder and its history in one transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ReceiveIntoOrder_CommitsAtomically() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	c, o, cyl := suite.receive(ctx, uow)
	suite.Require().NoError(uow.Commit(ctx))

	check := suite.factory.Create()
	_, err := check.CustomerRepository().Get(ctx, c.ID())
	suite.Require().NoError(err)

	stored, err := check.OrderRepository().FindOpenByCylinder(ctx, cyl.ID())
	suite.Require().NoError(err)
	suite.Equal(o.ID(), stored.ID())

	entries, err := check.HistoryRepository().ListByCylinder(ctx, cyl.ID())
	suite.Require().NoError(err)
	suite.Len(entries, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_Rollback_DiscardsEverything() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	c, o, cyl := suite.receive(ctx, uow)
	suite.Require().NoError(uow.Rollback(ctx))

	check := suite.factory.Create()
	_, err := check.CustomerRepository().Get(ctx, c.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	_, err = check.OrderRepository().Get(ctx, o.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	_, err = check.CylinderRepository().Get(ctx, cyl.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	seq, err := check.CylinderRepository().NextSequentialNumber(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(1), seq, "a rolled back reservation is released")
}

// TestUnitOfWork_ConcurrentMarkReady_SecondWriterLoses loads the same
// cylinder in two units of work and commits both.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentMarkReady_SecondWriterLoses() {
	ctx := context.Background()
	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	_, _, cyl := suite.receive(ctx, setup)
	suite.Require().NoError(setup.Commit(ctx))

	first := suite.factory.Create()
	second := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	suite.Require().NoError(second.Begin(ctx))
	defer func() { _ = second.Rollback(ctx) }()

	a, err := first.CylinderRepository().Get(ctx, cyl.ID())
	suite.Require().NoError(err)
	b, err := second.CylinderRepository().Get(ctx, cyl.ID())
	suite.Require().NoError(err)

	_, err = a.MarkReady()
	suite.Require().NoError(err)
	suite.Require().NoError(first.CylinderRepository().Update(ctx, a))
	suite.Require().NoError(first.Commit(ctx))

	_, err = b.MarkReady()
	suite.Require().NoError(err)
	suite.ErrorIs(second.CylinderRepository().Update(ctx, b), errs.ErrVersionIsInvalid)
}

func (suite *UnitOfWorkIntegrationTestSuite) receive(
	ctx context.Context, uow ports.UnitOfWork,
) (*customer.Customer, *order.Order, *cylinder.Cylinder) {
	phone, err := kernel.NewPhoneNumber("926 060 863")
	suite.Require().NoError(err)
	c, _, err := customer.NewCustomer(kernel.NewUUID(), "Ana", phone)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.CustomerRepository().Add(ctx, c))

	seq, err := uow.CylinderRepository().NextSequentialNumber(ctx)
	suite.Require().NoError(err)
	cyl, _, err := cylinder.NewCylinder(kernel.NewUUID(), seq)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.CylinderRepository().Add(ctx, cyl))

	o, _, err := order.NewOrder(kernel.NewUUID(), c.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(o.AddCylinder(cyl))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	orderID := o.ID()
	entry, err := history.NewEntry(cyl.ID(), history.Received, "Cylinder #1 received", &orderID)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.HistoryRepository().Append(ctx, entry))

	return c, o, cyl
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
