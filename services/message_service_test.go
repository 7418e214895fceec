package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pairchat/domain"
	"pairchat/errors"
	"pairchat/mocks"
	"pairchat/moderation"
)

func newMessageService(t *testing.T) (*mocks.MockIMessageRepository, IMessageService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	scanner, err := moderation.NewPhraseScanner(moderation.DefaultPhrases)
	require.NoError(t, err)

	mockRepo := mocks.NewMockIMessageRepository(ctrl)
	return mockRepo, NewMessageService(mockRepo, scanner)
}

func TestMessageService_Send(t *testing.T) {
	t.Run("should persist a clean message", func(t *testing.T) {
		req := require.New(t)
		mockRepo, svc := newMessageService(t)

		stored := domain.Message{From: "alice", To: "bob", Body: "hello", SentAt: time.Now().UTC()}
		mockRepo.EXPECT().
			AppendMessage("alice", "bob", "hello").
			Return(stored, nil).
			Times(1)

		msg, err := svc.Send("alice", "bob", "hello")
		req.NoError(err)
		req.Equal(stored, msg)
	})

	t.Run("should block sensitive content before any persistence", func(t *testing.T) {
		req := require.New(t)
		mockRepo, svc := newMessageService(t)

		// The ledger must never be reached for a blocked body
		mockRepo.EXPECT().AppendMessage(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Send("alice", "bob", "my password is 1234")
		req.ErrorIs(err, errors.ErrContentBlocked)

		// The failure must not reveal which phrase matched
		req.NotContains(err.Error(), "password")
	})

	t.Run("should fail validation on missing fields", func(t *testing.T) {
		req := require.New(t)
		mockRepo, svc := newMessageService(t)

		mockRepo.EXPECT().AppendMessage(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		for _, tc := range []struct{ from, to, body string }{
			{"", "bob", "hello"},
			{"alice", "", "hello"},
			{"alice", "bob", ""},
		} {
			_, err := svc.Send(tc.from, tc.to, tc.body)
			req.ErrorIs(err, errors.ErrValidation)
		}
	})
}

func TestMessageService_History(t *testing.T) {
	t.Run("should return the conversation as stored", func(t *testing.T) {
		req := require.New(t)
		mockRepo, svc := newMessageService(t)

		conversation := []domain.Message{
			{From: "alice", To: "bob", Body: "hello"},
			{From: "bob", To: "alice", Body: "hi"},
		}
		mockRepo.EXPECT().
			GetConversation("alice", "bob").
			Return(conversation, nil).
			Times(1)

		messages, err := svc.History("alice", "bob")
		req.NoError(err)
		req.Equal(conversation, messages)
	})

	t.Run("should fail validation when a participant is missing", func(t *testing.T) {
		req := require.New(t)
		mockRepo, svc := newMessageService(t)

		mockRepo.EXPECT().GetConversation(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.History("", "bob")
		req.ErrorIs(err, errors.ErrValidation)
		_, err = svc.History("alice", "")
		req.ErrorIs(err, errors.ErrValidation)
	})
}
