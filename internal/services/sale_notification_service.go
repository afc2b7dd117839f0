package services

import (
	"context"
	"fmt"

	"github.com/centerpulse/centerpulse/internal/domain/center"
	"github.com/centerpulse/centerpulse/internal/domain/rule"
	"github.com/centerpulse/centerpulse/internal/domain/user"
	"github.com/centerpulse/centerpulse/internal/notify"
	"github.com/centerpulse/centerpulse/internal/pkg/errors"
	"github.com/centerpulse/centerpulse/internal/pkg/logger"
)

// saleNotifyPermission is the minimum permission level that receives
// new-sale notifications
const saleNotifyPermission = 2

// SaleNotification describes a fresh sale entry to announce
type SaleNotification struct {
	CenterID     string `json:"center_id" validate:"required"`
	AgentName    string `json:"agent_name" validate:"required"`
	CustomerName string `json:"customer_name" validate:"required"`
	ProductType  string `json:"product_type"`
}

// SaleNotificationService announces new sale entries outside the rule
// evaluation path
type SaleNotificationService interface {
	NotifySale(ctx context.Context, n SaleNotification) ([]notify.DeliveryResult, error)
}

type saleNotificationService struct {
	centers    center.Repository
	users      user.Repository
	dispatcher notify.Dispatcher
	log        *logger.Logger
}

// NewSaleNotificationService creates a new sale notification service
func NewSaleNotificationService(
	centers center.Repository,
	users user.Repository,
	dispatcher notify.Dispatcher,
	log *logger.Logger,
) SaleNotificationService {
	return &saleNotificationService{
		centers:    centers,
		users:      users,
		dispatcher: dispatcher,
		log:        log,
	}
}

func (s *saleNotificationService) NotifySale(ctx context.Context, n SaleNotification) ([]notify.DeliveryResult, error) {
	c, err := s.centers.GetByID(ctx, n.CenterID)
	if err != nil {
		return nil, errors.NotFound("center")
	}

	recipients, err := s.users.ListByMinPermission(ctx, saleNotifyPermission)
	if err != nil {
		return nil, errors.DatabaseError("failed to resolve recipients", err)
	}

	targets := make([]notify.Recipient, 0, len(recipients))
	for _, u := range recipients {
		targets = append(targets, notify.Recipient{
			Name:      u.Name,
			Email:     u.Email,
			Phone:     u.Phone,
			PushToken: u.PushToken,
		})
	}

	body := fmt.Sprintf("New sale entry by %s at %s for %s", n.AgentName, c.Name, n.CustomerName)
	if n.ProductType != "" {
		body += fmt.Sprintf(" (%s)", n.ProductType)
	}

	results := s.dispatcher.Dispatch(ctx, []string{rule.ChannelSlack, rule.ChannelEmail, rule.ChannelPush}, notify.Message{
		Title:      "New Sale",
		Body:       body,
		Priority:   rule.PriorityLow,
		CenterName: c.Name,
		Recipients: targets,
		Data: map[string]string{
			"center_id": c.ID,
			"event":     "new_sale",
		},
	})

	s.log.WithFields(map[string]interface{}{
		"center_id": c.ID,
		"agent":     n.AgentName,
	}).Info("sale notification dispatched")

	return results, nil
}
