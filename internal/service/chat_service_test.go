package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/e11even-central/api/internal/models"
	"github.com/e11even-central/api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupChatServiceTest(t *testing.T) (*ChatService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:chat_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.ChatChannel{},
		&models.ChatMember{},
		&models.ChatMessage{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	chatRepo := repository.NewChatRepository(db)
	userRepo := repository.NewUserRepository(db)
	return NewChatService(chatRepo, userRepo), db
}

func TestJoinPublicChannelAndPostMessage(t *testing.T) {
	svc, _ := setupChatServiceTest(t)
	ctx := context.Background()

	channel, err := svc.CreateChannel(ctx, ChannelInput{Name: "Front of House", Slug: "front-of-house"})
	if err != nil {
		t.Fatalf("create channel failed: %v", err)
	}

	member, err := svc.Join(5, channel.ID)
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if member.ChannelID != channel.ID || member.UserID != 5 {
		t.Fatalf("member unexpected: %+v", member)
	}

	// Joining again returns the existing membership.
	again, err := svc.Join(5, channel.ID)
	if err != nil {
		t.Fatalf("rejoin failed: %v", err)
	}
	if again.ID != member.ID {
		t.Fatalf("expected existing membership, got %d and %d", member.ID, again.ID)
	}

	message, err := svc.PostMessage(5, channel.ID, PostMessageInput{Body: "VIP table 12 arriving at 9"})
	if err != nil {
		t.Fatalf("post message failed: %v", err)
	}
	if message.SenderID != 5 {
		t.Fatalf("sender want 5 got %d", message.SenderID)
	}
}

func TestJoinPrivateChannelRejected(t *testing.T) {
	svc, _ := setupChatServiceTest(t)
	ctx := context.Background()

	channel, err := svc.CreateChannel(ctx, ChannelInput{Name: "Managers", Slug: "managers", IsPrivate: true})
	if err != nil {
		t.Fatalf("create channel failed: %v", err)
	}
	if _, err := svc.Join(5, channel.ID); !errors.Is(err, ErrChannelPrivate) {
		t.Fatalf("want ErrChannelPrivate got %v", err)
	}
}

func TestPostMessageRequiresMembership(t *testing.T) {
	svc, _ := setupChatServiceTest(t)
	ctx := context.Background()

	channel, err := svc.CreateChannel(ctx, ChannelInput{Name: "Bar", Slug: "bar"})
	if err != nil {
		t.Fatalf("create channel failed: %v", err)
	}
	if _, err := svc.PostMessage(9, channel.ID, PostMessageInput{Body: "hi"}); !errors.Is(err, ErrNotChannelMember) {
		t.Fatalf("want ErrNotChannelMember got %v", err)
	}
	if _, _, err := svc.ListMessages(9, repository.ChatMessageListFilter{ChannelID: channel.ID}); !errors.Is(err, ErrNotChannelMember) {
		t.Fatalf("want ErrNotChannelMember got %v", err)
	}
}

func TestArchivedChannelRejectsNewMessages(t *testing.T) {
	svc, _ := setupChatServiceTest(t)
	ctx := context.Background()

	channel, err := svc.CreateChannel(ctx, ChannelInput{Name: "Old Events", Slug: "old-events"})
	if err != nil {
		t.Fatalf("create channel failed: %v", err)
	}
	if _, err := svc.Join(5, channel.ID); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if _, err := svc.PostMessage(5, channel.ID, PostMessageInput{Body: "before archive"}); err != nil {
		t.Fatalf("post failed: %v", err)
	}

	if _, err := svc.ArchiveChannel(ctx, channel.ID); err != nil {
		t.Fatalf("archive failed: %v", err)
	}
	if _, err := svc.PostMessage(5, channel.ID, PostMessageInput{Body: "after archive"}); !errors.Is(err, ErrChannelArchived) {
		t.Fatalf("want ErrChannelArchived got %v", err)
	}

	// History stays readable.
	messages, _, err := svc.ListMessages(5, repository.ChatMessageListFilter{ChannelID: channel.ID, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list messages failed: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("messages len want 1 got %d", len(messages))
	}
}

func TestListMessagesNewestFirstWithCursor(t *testing.T) {
	svc, _ := setupChatServiceTest(t)
	ctx := context.Background()

	channel, err := svc.CreateChannel(ctx, ChannelInput{Name: "Kitchen", Slug: "kitchen"})
	if err != nil {
		t.Fatalf("create channel failed: %v", err)
	}
	if _, err := svc.Join(5, channel.ID); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	var ids []uint
	for i := 0; i < 3; i++ {
		message, err := svc.PostMessage(5, channel.ID, PostMessageInput{Body: fmt.Sprintf("message %d", i+1)})
		if err != nil {
			t.Fatalf("post failed: %v", err)
		}
		ids = append(ids, message.ID)
	}

	messages, _, err := svc.ListMessages(5, repository.ChatMessageListFilter{ChannelID: channel.ID, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(messages) != 3 || messages[0].ID != ids[2] {
		t.Fatalf("expected newest first, got %+v", messages)
	}

	older, _, err := svc.ListMessages(5, repository.ChatMessageListFilter{
		ChannelID: channel.ID,
		BeforeID:  ids[2],
		Page:      1,
		PageSize:  10,
	})
	if err != nil {
		t.Fatalf("cursor list failed: %v", err)
	}
	if len(older) != 2 || older[0].ID != ids[1] {
		t.Fatalf("cursor page unexpected: %+v", older)
	}
}

func TestPostMessageAdvancesReadMarker(t *testing.T) {
	svc, db := setupChatServiceTest(t)
	ctx := context.Background()

	channel, err := svc.CreateChannel(ctx, ChannelInput{Name: "Security", Slug: "security"})
	if err != nil {
		t.Fatalf("create channel failed: %v", err)
	}
	if _, err := svc.Join(5, channel.ID); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	message, err := svc.PostMessage(5, channel.ID, PostMessageInput{Body: "radio check"})
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}

	var member models.ChatMember
	if err := db.Where("channel_id = ? AND user_id = ?", channel.ID, 5).First(&member).Error; err != nil {
		t.Fatalf("load member failed: %v", err)
	}
	if member.LastReadID != message.ID {
		t.Fatalf("last_read_id want %d got %d", message.ID, member.LastReadID)
	}
}

func TestCreateChannelRejectsDuplicateSlug(t *testing.T) {
	svc, _ := setupChatServiceTest(t)
	ctx := context.Background()

	if _, err := svc.CreateChannel(ctx, ChannelInput{Name: "One", Slug: "general"}); err != nil {
		t.Fatalf("create channel failed: %v", err)
	}
	if _, err := svc.CreateChannel(ctx, ChannelInput{Name: "Two", Slug: "general"}); !errors.Is(err, ErrChannelInvalid) {
		t.Fatalf("want ErrChannelInvalid got %v", err)
	}
}
