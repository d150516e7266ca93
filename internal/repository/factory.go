package repository

import (
	"github.com/raulodev/bill-flow/internal/domain/account"
	"github.com/raulodev/bill-flow/internal/domain/credit"
	"github.com/raulodev/bill-flow/internal/domain/invoice"
	"github.com/raulodev/bill-flow/internal/domain/product"
	"github.com/raulodev/bill-flow/internal/domain/subscription"
	"github.com/raulodev/bill-flow/internal/logger"
	"github.com/raulodev/bill-flow/internal/postgres"
	postgresRepo "github.com/raulodev/bill-flow/internal/repository/postgres"
)

func NewAccountRepository(db postgres.IClient, logger *logger.Logger) account.Repository {
	return postgresRepo.NewAccountRepository(db, logger)
}

func NewProductRepository(db postgres.IClient, logger *logger.Logger) product.Repository {
	return postgresRepo.NewProductRepository(db, logger)
}

func NewSubscriptionRepository(db postgres.IClient, logger *logger.Logger) subscription.Repository {
	return postgresRepo.NewSubscriptionRepository(db, logger)
}

func NewInvoiceRepository(db postgres.IClient, logger *logger.Logger) invoice.Repository {
	return postgresRepo.NewInvoiceRepository(db, logger)
}

func NewCreditRepository(db postgres.IClient, logger *logger.Logger) credit.Repository {
	return postgresRepo.NewCreditRepository(db, logger)
}
