// Package statement renders settlement letters and mails them out.
package statement

import (
	"context"
	"fmt"

	"github.com/mietwerklabs/mietwerk/internal/providers/email"
	"github.com/mietwerklabs/mietwerk/internal/providers/pdf"
	settlementdomain "github.com/mietwerklabs/mietwerk/internal/settlement/domain"
	"go.uber.org/zap"
)

type Dispatcher struct {
	renderer *pdf.Renderer
	sender   email.Sender
	log      *zap.Logger
}

func NewDispatcher(renderer *pdf.Renderer, sender email.Sender, log *zap.Logger) settlementdomain.Sender {
	return &Dispatcher{
		renderer: renderer,
		sender:   sender,
		log:      log.Named("statement.dispatcher"),
	}
}

func (d *Dispatcher) SendStatements(ctx context.Context, statements []settlementdomain.Statement) error {
	for _, st := range statements {
		letter, err := d.renderer.SettlementLetter(st)
		if err != nil {
			return fmt.Errorf("render statement for lease %s: %w", st.Result.LeaseID, err)
		}
		if st.TenantEmail == "" {
			d.log.Warn("tenant has no email address, statement not mailed",
				zap.String("lease_id", st.Result.LeaseID),
				zap.String("tenant", st.TenantName))
			continue
		}

		msg := email.Message{
			To: st.TenantEmail,
			Subject: fmt.Sprintf("Betriebskostenabrechnung %s - %s",
				st.PeriodStart.Format("02.01.2006"), st.PeriodEnd.Format("02.01.2006")),
			Body: fmt.Sprintf(
				"Guten Tag %s,\n\nanbei erhalten Sie Ihre Betriebskostenabrechnung fuer die Wohneinheit %s.\n\nMit freundlichen Gruessen\nIhre Hausverwaltung",
				st.TenantName, st.UnitName),
			Attachments: []email.Attachment{{
				FileName:    "betriebskostenabrechnung.pdf",
				ContentType: "application/pdf",
				Data:        letter,
			}},
		}
		if err := d.sender.Send(ctx, msg); err != nil {
			return fmt.Errorf("send statement for lease %s: %w", st.Result.LeaseID, err)
		}
	}
	return nil
}
