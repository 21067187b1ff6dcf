package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/segyhp/growvest-engine/internal/repository"
	customError "github.com/segyhp/growvest-engine/pkg/errors"
	"github.com/sirupsen/logrus"
)

type TicketService struct {
	TicketRepo repository.TicketRepository
	audit      *AuditService
	log        logrus.FieldLogger
	now        func() time.Time
}

func NewTicketService(ticketRepo repository.TicketRepository, audit *AuditService, log logrus.FieldLogger) *TicketService {
	return &TicketService{
		TicketRepo: ticketRepo,
		audit:      audit,
		log:        log,
		now:        time.Now,
	}
}

// Create opens a ticket for the caller
func (s *TicketService) Create(ctx context.Context, principal domain.Principal, request *domain.CreateTicketRequest) (*domain.SupportTicket, error) {
	now := s.now()
	ticket := &domain.SupportTicket{
		ID:           uuid.New(),
		UserID:       principal.UserID,
		Subject:      request.Subject,
		Message:      request.Message,
		Status:       domain.TicketStatusOpen,
		AdminReplies: domain.TicketThread{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.TicketRepo.Create(ctx, ticket); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.log.WithFields(logrus.Fields{
		"ticket_id": ticket.ID,
		"user_id":   principal.UserID,
	}).Info("support ticket opened")

	return ticket, nil
}

// Get returns a ticket to its owner or an admin. Other callers see not-found.
func (s *TicketService) Get(ctx context.Context, principal domain.Principal, id uuid.UUID) (*domain.SupportTicket, error) {
	ticket, err := s.TicketRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapNotFound("Ticket", id.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if !principal.CanAccess(ticket.UserID) {
		return nil, customError.WrapNotFound("Ticket", id.String())
	}

	return ticket, nil
}

// List returns the caller's tickets, or every ticket for an admin
func (s *TicketService) List(ctx context.Context, principal domain.Principal, status string) ([]*domain.SupportTicket, error) {
	var owner *uuid.UUID
	if !principal.IsAdmin() {
		owner = &principal.UserID
	}

	tickets, err := s.TicketRepo.List(ctx, owner, status)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return tickets, nil
}

// Reply appends an admin reply to the ticket thread
func (s *TicketService) Reply(ctx context.Context, principal domain.Principal, id uuid.UUID, request *domain.ReplyTicketRequest) (*domain.SupportTicket, error) {
	if !principal.IsAdmin() {
		return nil, customError.WrapForbidden("Only admins can reply to tickets")
	}

	reply := domain.TicketReply{
		AdminID:   principal.UserID,
		Reply:     request.Reply,
		Timestamp: s.now().UTC(),
	}

	ticket, err := s.TicketRepo.AppendReply(ctx, id, reply)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapNotFound("Ticket", id.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.audit.Record(ctx, principal.UserID, domain.ActionReplyTicket, map[string]interface{}{
		"ticket_id": id.String(),
	})

	return ticket, nil
}

// UpdateStatus resolves or closes a ticket
func (s *TicketService) UpdateStatus(ctx context.Context, principal domain.Principal, id uuid.UUID, status string) (*domain.SupportTicket, error) {
	if !principal.IsAdmin() {
		return nil, customError.WrapForbidden("Only admins can change ticket status")
	}
	if status != domain.TicketStatusResolved && status != domain.TicketStatusClosed {
		return nil, customError.WrapValidation("Status must be resolved or closed")
	}

	ticket, err := s.TicketRepo.UpdateStatus(ctx, id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapNotFound("Ticket", id.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.log.WithFields(logrus.Fields{
		"ticket_id": id,
		"admin_id":  principal.UserID,
		"status":    status,
	}).Info("ticket status updated")

	return ticket, nil
}
