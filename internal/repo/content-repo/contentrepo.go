// Package contentrepo owns the payment-method pool and the contact list.
package contentrepo

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"goalbet/internal/apperr"
	"goalbet/internal/binstore"
	"goalbet/internal/config"
	"goalbet/internal/domain"
)

type Repository struct {
	store binstore.Store
	bins  config.Bins

	paymentsMu sync.Mutex
	contactsMu sync.Mutex
}

func New(store binstore.Store, bins config.Bins) *Repository {
	return &Repository{store: store, bins: bins}
}

type paymentsDoc struct {
	Payments domain.PaymentPool `json:"payments"`
}

type contactsDoc struct {
	Contacts []domain.Contact `json:"contacts"`
}

func (r *Repository) readDoc(ctx context.Context, binID string, out any) error {
	raw, err := r.store.ReadBin(ctx, binID)
	if err != nil {
		zap.L().Error("failed to read collection", zap.String("bin", binID), zap.Error(err))
		return apperr.Storagef("database error")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		zap.L().Error("failed to decode collection", zap.String("bin", binID), zap.Error(err))
		return apperr.Storagef("database error")
	}
	return nil
}

func (r *Repository) writeDoc(ctx context.Context, binID string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		zap.L().Error("failed to encode collection", zap.String("bin", binID), zap.Error(err))
		return apperr.Storagef("database error")
	}
	if err := r.store.WriteBin(ctx, binID, raw); err != nil {
		zap.L().Error("failed to write collection", zap.String("bin", binID), zap.Error(err))
		return apperr.Storagef("database error")
	}
	return nil
}

func (r *Repository) Payments(ctx context.Context) (domain.PaymentPool, error) {
	var doc paymentsDoc
	if err := r.readDoc(ctx, r.bins.Payments, &doc); err != nil {
		return domain.PaymentPool{}, err
	}
	return doc.Payments, nil
}

func (r *Repository) MutatePayments(ctx context.Context, fn func(pool domain.PaymentPool) (domain.PaymentPool, error)) error {
	r.paymentsMu.Lock()
	defer r.paymentsMu.Unlock()

	var doc paymentsDoc
	if err := r.readDoc(ctx, r.bins.Payments, &doc); err != nil {
		return err
	}
	updated, err := fn(doc.Payments)
	if err != nil {
		return err
	}
	return r.writeDoc(ctx, r.bins.Payments, paymentsDoc{Payments: updated})
}

func (r *Repository) Contacts(ctx context.Context) ([]domain.Contact, error) {
	var doc contactsDoc
	if err := r.readDoc(ctx, r.bins.Contacts, &doc); err != nil {
		return nil, err
	}
	return doc.Contacts, nil
}

func (r *Repository) MutateContacts(ctx context.Context, fn func(contacts []domain.Contact) ([]domain.Contact, error)) error {
	r.contactsMu.Lock()
	defer r.contactsMu.Unlock()

	var doc contactsDoc
	if err := r.readDoc(ctx, r.bins.Contacts, &doc); err != nil {
		return err
	}
	updated, err := fn(doc.Contacts)
	if err != nil {
		return err
	}
	return r.writeDoc(ctx, r.bins.Contacts, contactsDoc{Contacts: updated})
}
