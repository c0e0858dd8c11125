package mapping

import (
	"github.com/corebank/ledgerd/internal/core/domain"
	"github.com/corebank/ledgerd/internal/models"
)

// ToModelTransaction converts a domain.Transaction to its DB row representation.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		OperationRef:  d.OperationRef,
		AccountID:     d.AccountID,
		UserID:        d.UserID,
		Type:          models.TransactionType(d.Type),
		Amount:        d.Amount,
		Currency:      d.Currency,
		Description:   d.Description,
		Status:        models.TransactionStatus(d.Status),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// ToDomainTransaction converts a DB row to the domain representation.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		OperationRef:  m.OperationRef,
		AccountID:     m.AccountID,
		UserID:        m.UserID,
		Type:          domain.TransactionType(m.Type),
		Amount:        m.Amount,
		Currency:      m.Currency,
		Description:   m.Description,
		Status:        domain.TransactionStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ToDomainTransactionSlice converts a slice of DB rows.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		out[i] = ToDomainTransaction(m)
	}
	return out
}
