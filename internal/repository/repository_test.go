package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/voyatalk/voyatalk/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.UserModel{}, &domain.MessageModel{}, &domain.FlightBookingModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestMessageCreateAssignsIDAndTime(t *testing.T) {
	repo := NewGormMessageRepository(newTestDB(t))

	stored, err := repo.Create(context.Background(), &domain.Message{
		Sender:    "uA",
		Recipient: "uB",
		Text:      "hello",
		Type:      domain.MessageTypeText,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if stored.ID == "" {
		t.Error("stored message has no id")
	}
	if stored.CreatedAt.IsZero() {
		t.Error("stored message has no creation time")
	}
	if stored.Sender != "uA" || stored.Recipient != "uB" || stored.Type != domain.MessageTypeText {
		t.Errorf("stored message = %+v", stored)
	}
}

func TestFindConversationBothDirections(t *testing.T) {
	repo := NewGormMessageRepository(newTestDB(t))
	ctx := context.Background()

	seed := []domain.Message{
		{Sender: "uA", Recipient: "uB", Text: "hi bob", Type: domain.MessageTypeText},
		{Sender: "uB", Recipient: "uA", Text: "hi alice", Type: domain.MessageTypeText},
		{Sender: "uA", Recipient: "uC", Text: "hi carol", Type: domain.MessageTypeText},
		{Sender: "uC", Recipient: "uB", Text: "hi from carol", Type: domain.MessageTypeText},
	}
	for i := range seed {
		if _, err := repo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
		// created_at is the sort key; keep the inserts strictly ordered.
		time.Sleep(2 * time.Millisecond)
	}

	got, err := repo.FindConversation(ctx, "uA", "uB")
	if err != nil {
		t.Fatalf("FindConversation: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d messages, want 2", len(got))
	}
	if got[0].Text != "hi bob" || got[1].Text != "hi alice" {
		t.Errorf("conversation out of order: %q, %q", got[0].Text, got[1].Text)
	}
	for _, m := range got {
		if m.Sender == "uC" || m.Recipient == "uC" {
			t.Errorf("third party message leaked into conversation: %+v", m)
		}
	}
}

func TestFindConversationEmpty(t *testing.T) {
	repo := NewGormMessageRepository(newTestDB(t))

	got, err := repo.FindConversation(context.Background(), "uA", "uB")
	if err != nil {
		t.Fatalf("FindConversation: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d messages, want 0", len(got))
	}
}

func TestUserCreateAndLookup(t *testing.T) {
	repo := NewGormUserRepository(newTestDB(t))
	ctx := context.Background()

	user := &domain.User{
		Username:     "alice",
		Email:        "alice@example.com",
		Phone:        "555-0101",
		Age:          30,
		PasswordHash: "$2a$12$hash",
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID == "" {
		t.Fatal("created user has no id")
	}

	byID, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Username != "alice" || byID.Email != "alice@example.com" {
		t.Errorf("GetByID = %+v", byID)
	}

	byName, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if byName.ID != user.ID {
		t.Errorf("GetByUsername id = %q, want %q", byName.ID, user.ID)
	}

	if _, err := repo.GetByUsername(ctx, "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetByUsername(nobody) err = %v, want ErrUserNotFound", err)
	}
}

func TestUserDuplicateUsername(t *testing.T) {
	repo := NewGormUserRepository(newTestDB(t))
	ctx := context.Background()

	first := &domain.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}

	dup := &domain.User{Username: "alice", Email: "other@example.com", PasswordHash: "h"}
	if err := repo.Create(ctx, dup); !errors.Is(err, ErrUsernameExists) {
		t.Errorf("duplicate username err = %v, want ErrUsernameExists", err)
	}
}

func TestUserDuplicateEmail(t *testing.T) {
	repo := NewGormUserRepository(newTestDB(t))
	ctx := context.Background()

	first := &domain.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}

	dup := &domain.User{Username: "alice2", Email: "alice@example.com", PasswordHash: "h"}
	if err := repo.Create(ctx, dup); !errors.Is(err, ErrEmailExists) {
		t.Errorf("duplicate email err = %v, want ErrEmailExists", err)
	}
}

func TestUserListAll(t *testing.T) {
	repo := NewGormUserRepository(newTestDB(t))
	ctx := context.Background()

	for _, u := range []domain.User{
		{Username: "carol", Email: "carol@example.com", PasswordHash: "h"},
		{Username: "alice", Email: "alice@example.com", PasswordHash: "h"},
		{Username: "bob", Email: "bob@example.com", PasswordHash: "h"},
	} {
		u := u
		if err := repo.Create(ctx, &u); err != nil {
			t.Fatalf("Create %s: %v", u.Username, err)
		}
	}

	entries, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for i, want := range []string{"alice", "bob", "carol"} {
		if entries[i].Username != want {
			t.Errorf("entries[%d] = %q, want %q", i, entries[i].Username, want)
		}
		if entries[i].ID == "" {
			t.Errorf("entries[%d] has no id", i)
		}
	}
}

func TestBookingCreateAndListByUser(t *testing.T) {
	repo := NewGormBookingRepository(newTestDB(t))
	ctx := context.Background()

	mine := &domain.FlightBooking{
		UserID:        "uA",
		Name:          "Alice",
		From:          "DEL",
		To:            "BOM",
		Airline:       "Indigo",
		DateOfJourney: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		TotalPrice:    4999,
		PaymentStatus: domain.PaymentStatusPaid,
		OrderID:       "order_1",
		PaymentID:     "pay_1",
	}
	created, err := repo.Create(ctx, mine)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created booking has no id")
	}

	theirs := &domain.FlightBooking{
		UserID: "uB", Name: "Bob", From: "BOM", To: "GOI",
		Airline: "Vistara", TotalPrice: 3200, PaymentStatus: domain.PaymentStatusPaid,
	}
	if _, err := repo.Create(ctx, theirs); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.ListByUser(ctx, "uA")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d bookings, want 1", len(got))
	}
	b := got[0]
	if b.From != "DEL" || b.To != "BOM" || b.PaymentStatus != domain.PaymentStatusPaid {
		t.Errorf("booking = %+v", b)
	}
}
