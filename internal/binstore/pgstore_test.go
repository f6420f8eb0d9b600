package binstore

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

func NewPGMock(t *testing.T) (*PGStore, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	store := NewPGStore(mockDB)
	defer mockDB.Close()

	return store, mockDB
}

func TestPGStore_ReadBin(t *testing.T) {
	ctx := context.Background()
	store, mock := NewPGMock(t)

	tests := []struct {
		name      string
		binID     string
		mockSetup func()
		expectErr bool
		result    []byte
	}{
		{
			name:  "Read bin successfully",
			binID: "users",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
        SELECT doc
        FROM bins
        WHERE name = $1
    `)).
					WithArgs("users").
					WillReturnRows(pgxmock.NewRows([]string{"doc"}).AddRow([]byte(`{"users":[]}`)))
			},
			expectErr: false,
			result:    []byte(`{"users":[]}`),
		},
		{
			name:  "Unseeded bin reads as empty document",
			binID: "missing",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
        SELECT doc
        FROM bins
        WHERE name = $1
    `)).
					WithArgs("missing").
					WillReturnRows(pgxmock.NewRows([]string{"doc"}))
			},
			expectErr: false,
			result:    []byte(`{}`),
		},
		{
			name:  "Database error",
			binID: "users",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
        SELECT doc
        FROM bins
        WHERE name = $1
    `)).
					WithArgs("users").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			doc, err := store.ReadBin(ctx, tt.binID)

			if tt.expectErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, ErrUnavailable)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, doc)
			}
		})
	}
}

func TestPGStore_WriteBin(t *testing.T) {
	ctx := context.Background()
	store, mock := NewPGMock(t)

	tests := []struct {
		name      string
		binID     string
		doc       []byte
		mockSetup func()
		expectErr bool
	}{
		{
			name:  "Write bin successfully",
			binID: "controls",
			doc:   []byte(`{"controls":{"enabled":true,"rules":[]}}`),
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`
        INSERT INTO bins (name, doc)
        VALUES ($1, $2)
        ON CONFLICT (name) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()
    `)).
					WithArgs("controls", []byte(`{"controls":{"enabled":true,"rules":[]}}`)).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
			expectErr: false,
		},
		{
			name:  "Database error",
			binID: "controls",
			doc:   []byte(`{}`),
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`
        INSERT INTO bins (name, doc)
        VALUES ($1, $2)
        ON CONFLICT (name) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()
    `)).
					WithArgs("controls", []byte(`{}`)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := store.WriteBin(ctx, tt.binID, tt.doc)

			if tt.expectErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, ErrUnavailable)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
