package services

import (
	"fmt"

	"pairchat/domain"
	"pairchat/errors"
	"pairchat/moderation"
	"pairchat/repositories"
)

type IMessageService interface {
	Send(from, to, body string) (domain.Message, error)
	History(userA, userB string) ([]domain.Message, error)
}

type MessageService struct {
	messageRepository repositories.IMessageRepository
	scanner           moderation.Scanner
}

func NewMessageService(repo repositories.IMessageRepository, scanner moderation.Scanner) IMessageService {
	return &MessageService{messageRepository: repo, scanner: scanner}
}

// Send validates, scans and appends, in that order. The policy check runs
// strictly before persistence so a blocked body is never written, not even
// partially. The error never names which phrase matched.
func (s *MessageService) Send(from, to, body string) (domain.Message, error) {
	if from == "" || to == "" || body == "" {
		return domain.Message{}, fmt.Errorf("%w: sender, recipient and body are required", errors.ErrValidation)
	}

	if s.scanner.Scan(body) {
		return domain.Message{}, errors.ErrContentBlocked
	}

	return s.messageRepository.AppendMessage(from, to, body)
}

// History returns the conversation between the two handles, oldest first.
// The pair is unordered: History(a, b) and History(b, a) are identical.
func (s *MessageService) History(userA, userB string) ([]domain.Message, error) {
	if userA == "" || userB == "" {
		return nil, fmt.Errorf("%w: both participants are required", errors.ErrValidation)
	}

	return s.messageRepository.GetConversation(userA, userB)
}
