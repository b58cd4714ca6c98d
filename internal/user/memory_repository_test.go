package user

import (
	"context"
	"errors"
	"testing"
	"time"
)

func seedUser(email, phone, first string) User {
	now := time.Now().UTC()
	return User{
		FirstName:         first,
		LastName:          "Tester",
		Email:             email,
		CountryCode:       UA,
		PhoneNumber:       phone,
		PasswordHash:      []byte("$2a$10$fakehashfortests"),
		Role:              RoleCustomer,
		CreatedAt:         now,
		UpdatedAt:         now,
		PasswordUpdatedAt: now,
	}
}

func TestMemoryRepositoryAssignsSequentialIDs(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	first, err := repo.Create(ctx, seedUser("a@example.com", "111111111", "Alice"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := repo.Create(ctx, seedUser("b@example.com", "222222222", "Bob"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", first.ID, second.ID)
	}
}

func TestMemoryRepositoryEnforcesUniqueness(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, seedUser("a@example.com", "111111111", "Alice")); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := repo.Create(ctx, seedUser("a@example.com", "222222222", "Bob"))
	var emailTaken EmailTakenError
	if !errors.As(err, &emailTaken) {
		t.Fatalf("expected EmailTakenError, got %v", err)
	}

	_, err = repo.Create(ctx, seedUser("b@example.com", "111111111", "Bob"))
	var phoneTaken PhoneTakenError
	if !errors.As(err, &phoneTaken) {
		t.Fatalf("expected PhoneTakenError, got %v", err)
	}

	// An update colliding with another user's email must also be refused.
	bob, err := repo.Create(ctx, seedUser("b@example.com", "222222222", "Bob"))
	if err != nil {
		t.Fatalf("create bob: %v", err)
	}
	bob.Email = "a@example.com"
	if err := repo.Update(ctx, bob); !errors.As(err, &emailTaken) {
		t.Fatalf("expected EmailTakenError on update, got %v", err)
	}

	// Updating a record without changing unique fields must not conflict
	// with itself.
	alice, _, err := repo.FindByEmail(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("find alice: %v", err)
	}
	alice.FirstName = "Alicia"
	if err := repo.Update(ctx, alice); err != nil {
		t.Fatalf("self update: %v", err)
	}
}

func TestMemoryRepositoryLookups(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, seedUser("a@example.com", "111111111", "Alice"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, found, _ := repo.FindByEmail(ctx, "a@example.com"); !found {
		t.Fatal("expected email lookup hit")
	}
	if _, found, _ := repo.FindByEmail(ctx, "missing@example.com"); found {
		t.Fatal("expected email lookup miss")
	}
	if _, found, _ := repo.FindByPhone(ctx, "111111111"); !found {
		t.Fatal("expected phone lookup hit")
	}

	exists, err := repo.ExistsByID(ctx, created.ID)
	if err != nil || !exists {
		t.Fatalf("expected existing id, exists=%v err=%v", exists, err)
	}
	exists, err = repo.ExistsByID(ctx, 999)
	if err != nil || exists {
		t.Fatalf("expected missing id, exists=%v err=%v", exists, err)
	}

	var notFound NotFoundError
	if _, err := repo.FindByID(ctx, 999); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if err := repo.Delete(ctx, 999); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError on delete, got %v", err)
	}
}

func TestMemoryRepositoryListPaging(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	names := []string{"Dave", "Alice", "Carol", "Bob"}
	phones := []string{"111111111", "222222222", "333333333", "444444444"}
	for i, name := range names {
		u := seedUser(name+"@example.com", phones[i], name)
		if _, err := repo.Create(ctx, u); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	page, err := repo.List(ctx, 0, 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := make([]string, 0, len(page))
	for _, u := range page {
		got = append(got, u.FirstName)
	}
	want := []string{"Alice", "Bob", "Carol"}
	if len(got) != len(want) {
		t.Fatalf("page 0 = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("page 0 order = %v, want %v", got, want)
		}
	}

	page, err = repo.List(ctx, 1, 3)
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if len(page) != 1 || page[0].FirstName != "Dave" {
		t.Fatalf("unexpected page 1: %+v", page)
	}

	// A page past the end is empty, not an error.
	page, err = repo.List(ctx, 5, 3)
	if err != nil {
		t.Fatalf("list page 5: %v", err)
	}
	if len(page) != 0 {
		t.Fatalf("expected empty page, got %d users", len(page))
	}

	// Out-of-range arguments clamp instead of panicking.
	page, err = repo.List(ctx, -1, 3)
	if err != nil {
		t.Fatalf("list page -1: %v", err)
	}
	if len(page) != 3 || page[0].FirstName != "Alice" {
		t.Fatalf("negative page should clamp to the first page, got %+v", page)
	}
	page, err = repo.List(ctx, 0, -5)
	if err != nil {
		t.Fatalf("list size -5: %v", err)
	}
	if len(page) != 0 {
		t.Fatalf("negative size should yield an empty page, got %d users", len(page))
	}
}
