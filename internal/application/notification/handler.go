// Package notification turns domain events into admin email alerts.
package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/medistore/backend/internal/domain/identity"
	"github.com/medistore/backend/internal/domain/order"
	"github.com/medistore/backend/internal/domain/prescription"
	"github.com/medistore/backend/internal/domain/shared"
	"github.com/medistore/backend/internal/infrastructure/email"
	"go.uber.org/zap"
)

// AdminNotifier emails the store admin when a prescription is uploaded or an
// order is placed. Delivery is fire-and-forget: a failed send is logged as a
// warning and never propagated, so the originating write cannot be rolled
// back by a mail outage.
type AdminNotifier struct {
	sender   email.Sender
	userRepo identity.UserRepository
	adminTo  []string
	logger   *zap.Logger
}

// NewAdminNotifier creates an AdminNotifier
func NewAdminNotifier(sender email.Sender, userRepo identity.UserRepository, adminTo []string, logger *zap.Logger) *AdminNotifier {
	return &AdminNotifier{
		sender:   sender,
		userRepo: userRepo,
		adminTo:  adminTo,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler subscribes to
func (n *AdminNotifier) EventTypes() []string {
	return []string{
		prescription.EventTypePrescriptionUploaded,
		order.EventTypeOrderCreated,
	}
}

// Handle dispatches one event to the matching notification
func (n *AdminNotifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	if len(n.adminTo) == 0 {
		return nil
	}

	switch e := event.(type) {
	case *prescription.PrescriptionUploadedEvent:
		n.notifyPrescriptionUploaded(ctx, e)
	case *order.OrderCreatedEvent:
		n.notifyOrderCreated(ctx, e)
	}
	return nil
}

func (n *AdminNotifier) notifyPrescriptionUploaded(ctx context.Context, e *prescription.PrescriptionUploadedEvent) {
	data := prescriptionMailData{
		FileName:  e.FileName,
		FileURL:   e.FileURL,
		UserEmail: "unknown",
	}
	if user, err := n.userRepo.FindByID(ctx, e.UserID); err == nil {
		data.UserEmail = user.Email
		data.UserName = user.FullName
	}

	body, err := renderTemplate(prescriptionUploadedTemplate, data)
	if err != nil {
		n.logger.Warn("failed to render prescription notification", zap.Error(err))
		return
	}

	subject := fmt.Sprintf("New prescription uploaded: %s", e.FileName)
	if err := n.sender.Send(ctx, subject, body, n.adminTo); err != nil {
		n.logger.Warn("failed to send prescription notification",
			zap.String("file_name", e.FileName),
			zap.Error(err),
		)
	}
}

func (n *AdminNotifier) notifyOrderCreated(ctx context.Context, e *order.OrderCreatedEvent) {
	data := orderMailData{
		OrderID:     e.OrderID.String(),
		TotalAmount: e.TotalAmount.StringFixed(2),
		ItemCount:   e.ItemCount,
		UserEmail:   "unknown",
	}
	if user, err := n.userRepo.FindByID(ctx, e.UserID); err == nil {
		data.UserEmail = user.Email
		data.UserName = user.FullName
	}

	body, err := renderTemplate(orderCreatedTemplate, data)
	if err != nil {
		n.logger.Warn("failed to render order notification", zap.Error(err))
		return
	}

	subject := fmt.Sprintf("New order placed: %s", e.OrderID)
	if err := n.sender.Send(ctx, subject, body, n.adminTo); err != nil {
		n.logger.Warn("failed to send order notification",
			zap.String("order_id", e.OrderID.String()),
			zap.Error(err),
		)
	}
}

type prescriptionMailData struct {
	UserName  string
	UserEmail string
	FileName  string
	FileURL   string
}

type orderMailData struct {
	UserName    string
	UserEmail   string
	OrderID     string
	TotalAmount string
	ItemCount   int
}

func renderTemplate(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var prescriptionUploadedTemplate = template.Must(template.New("prescriptionUploaded").Parse(`
<!DOCTYPE html>
<html>
<body>
    <h2>New prescription uploaded</h2>
    <p>A customer uploaded a prescription that needs review.</p>
    <ul>
        <li>Customer: {{.UserName}} ({{.UserEmail}})</li>
        <li>File: {{.FileName}}</li>
    </ul>
    <p><a href="{{.FileURL}}">Open prescription</a></p>
</body>
</html>
`))

var orderCreatedTemplate = template.Must(template.New("orderCreated").Parse(`
<!DOCTYPE html>
<html>
<body>
    <h2>New order placed</h2>
    <ul>
        <li>Order: {{.OrderID}}</li>
        <li>Customer: {{.UserName}} ({{.UserEmail}})</li>
        <li>Items: {{.ItemCount}}</li>
        <li>Total: {{.TotalAmount}}</li>
    </ul>
</body>
</html>
`))
