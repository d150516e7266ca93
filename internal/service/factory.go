package service

import (
	"github.com/raulodev/bill-flow/internal/config"
	"github.com/raulodev/bill-flow/internal/domain/account"
	"github.com/raulodev/bill-flow/internal/domain/credit"
	"github.com/raulodev/bill-flow/internal/domain/invoice"
	"github.com/raulodev/bill-flow/internal/domain/product"
	"github.com/raulodev/bill-flow/internal/domain/subscription"
	"github.com/raulodev/bill-flow/internal/logger"
	"github.com/raulodev/bill-flow/internal/postgres"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	// Repositories
	AccountRepo account.Repository
	ProductRepo product.Repository
	SubRepo     subscription.Repository
	InvoiceRepo invoice.Repository
	CreditRepo  credit.Repository
}

// NewServiceParams assembles the common service dependencies
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	accountRepo account.Repository,
	productRepo product.Repository,
	subRepo subscription.Repository,
	invoiceRepo invoice.Repository,
	creditRepo credit.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:      logger,
		Config:      config,
		DB:          db,
		AccountRepo: accountRepo,
		ProductRepo: productRepo,
		SubRepo:     subRepo,
		InvoiceRepo: invoiceRepo,
		CreditRepo:  creditRepo,
	}
}
