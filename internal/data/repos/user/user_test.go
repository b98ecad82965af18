package user

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/sarunks7/storely-backend/internal/data/repos/testutil"
	types "github.com/sarunks7/storely-backend/internal/domain"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, []*types.User{
		{
			ID:        uuid.New(),
			Email:     "userrepo@example.com",
			Password:  "pw",
			FirstName: "A",
			LastName:  "B",
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 user, got %d", len(created))
	}
	if created[0].IsActive {
		t.Fatalf("Create: new users must start inactive")
	}

	gotByEmails, err := repo.GetByEmails(ctx, tx, []string{created[0].Email})
	if err != nil {
		t.Fatalf("GetByEmails: %v", err)
	}
	if len(gotByEmails) != 1 || gotByEmails[0].Email != created[0].Email {
		t.Fatalf("GetByEmails: unexpected result: %+v", gotByEmails)
	}

	exists, err := repo.EmailExists(ctx, tx, created[0].Email)
	if err != nil {
		t.Fatalf("EmailExists: %v", err)
	}
	if !exists {
		t.Fatalf("EmailExists: expected true")
	}

	if err := repo.SetActive(ctx, tx, created[0].ID, true); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	gotByIDs, err := repo.GetByIDs(ctx, tx, []uuid.UUID{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(gotByIDs) != 1 || !gotByIDs[0].IsActive {
		t.Fatalf("SetActive did not persist: %+v", gotByIDs)
	}
}
