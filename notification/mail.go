package notification

import (
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"qc-laptop/config"

	"gopkg.in/gomail.v2"
)

// RepairNotice dikirim setelah QC menghasilkan status perlu_perbaikan.
type RepairNotice struct {
	SerialNumber string
	Model        string
	Brand        string
	OfficerName  string
	Room         string
	Line         string
	Table        string
	Notes        string
	FailedItems  []string
	At           time.Time
}

type Notifier interface {
	NotifyRepair(n RepairNotice) error
}

type NopNotifier struct{}

func (NopNotifier) NotifyRepair(RepairNotice) error { return nil }

type MailNotifier struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

// New returns a mail notifier, or a no-op when SMTP is not configured.
func New(cfg config.SMTPConfig) Notifier {
	if !cfg.Enabled() {
		log.Println("SMTP not configured, repair notifications disabled")
		return NopNotifier{}
	}
	return &MailNotifier{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

func (m *MailNotifier) NotifyRepair(n RepairNotice) error {
	msg := BuildRepairMessage(m.cfg, n)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send repair notification for %s: %w", n.SerialNumber, err)
	}
	log.Println("Email notifikasi perbaikan terkirim ke:", m.cfg.Recipients)
	return nil
}

func BuildRepairMessage(cfg config.SMTPConfig, n RepairNotice) *gomail.Message {
	from := cfg.From
	if from == "" {
		from = cfg.User
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", cfg.Recipients...)
	msg.SetHeader("Subject", "Laptop Perlu Perbaikan "+n.SerialNumber)
	msg.SetBody("text/html", repairBody(n))
	return msg
}

func repairBody(n RepairNotice) string {
	var items strings.Builder
	for _, name := range n.FailedItems {
		items.WriteString("<li>" + html.EscapeString(name) + "</li>")
	}
	return fmt.Sprintf(`
		<html>
			<body>
				<h3>Laptop perlu perbaikan</h3>
				<p>Serial Number: <strong>%s</strong></p>
				<p>Model: %s %s</p>
				<p>QC Officer: %s (Ruang %s, Line %s, Meja %s)</p>
				<p>Tanggal QC: %s</p>
				<p>Item gagal:</p>
				<ul>%s</ul>
				<p>Catatan: %s</p>
				<p>This is an auto-generated email. Please do not reply to this email or its recipients.</p>
			</body>
		</html>
	`,
		html.EscapeString(n.SerialNumber),
		html.EscapeString(n.Brand), html.EscapeString(n.Model),
		html.EscapeString(n.OfficerName), html.EscapeString(n.Room), html.EscapeString(n.Line), html.EscapeString(n.Table),
		n.At.Format("02/01/2006 15:04"),
		items.String(),
		html.EscapeString(n.Notes),
	)
}
