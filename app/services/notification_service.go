// Package services provides external service integrations and technical concerns like notifications and tokens
package services

import (
	"context"
	"fmt"
	"log"

	"github.com/solution-fragrance/portal/config"
	"github.com/solution-fragrance/portal/utils"
)

// NotificationService sends applicant-facing transactional emails for the
// wholesale program. Delivery failures are returned to the caller so the
// review flow can report email_sent=false without rolling back the decision.
type NotificationService interface {
	SendApprovalInvite(ctx context.Context, to, fullName, planLabel, activationLink string) error
	SendApprovalDirect(ctx context.Context, to, fullName, planLabel string) error
	SendRejection(ctx context.Context, to, fullName string) error
}

// NotificationServiceImpl implements NotificationService
type NotificationServiceImpl struct {
	mail    MailService
	siteURL string
}

// NewNotificationService creates a new notification service
func NewNotificationService(mail MailService, cfg *config.WholesaleConfig) NotificationService {
	return &NotificationServiceImpl{
		mail:    mail,
		siteURL: cfg.SiteURL,
	}
}

const (
	subjectApproved = "Solicitud aprobada – Programa mayorista Solution"
	subjectRejected = "Solicitud rechazada – Programa mayorista Solution"
)

// SendApprovalInvite notifies an approved applicant and carries the one-time
// activation link used to set a password.
func (s *NotificationServiceImpl) SendApprovalInvite(ctx context.Context, to, fullName, planLabel, activationLink string) error {
	html := fmt.Sprintf(`
  <p>Hola %s,</p>
  <p>Tu solicitud al programa mayorista de Solution fue <strong>aprobada</strong>.</p>
  <p>Plan asignado: <strong>%s</strong>.</p>
  <p>Para activar tu cuenta y crear tu contraseña, hacé click acá:</p>
  <p><a href="%s">Crear contraseña / Activar cuenta</a></p>
  <p>Luego podés ingresar desde: <a href="%s/programa-mayorista">%s/programa-mayorista</a></p>
  <p>Saludos,<br/>Solution</p>
`, fullName, planLabel, activationLink, s.siteURL, s.siteURL)

	return s.send(ctx, to, subjectApproved, html)
}

// SendApprovalDirect notifies an approved applicant when invites are disabled:
// the email directs them to register or sign in with their application email.
func (s *NotificationServiceImpl) SendApprovalDirect(ctx context.Context, to, fullName, planLabel string) error {
	loginLink := s.siteURL + "/programa-mayorista"
	portalLink := s.siteURL + "/mayorista"

	html := fmt.Sprintf(`
    <p>Hola %s,</p>
    <p>Tu solicitud al programa mayorista de Solution fue <strong>aprobada</strong>.</p>
    <p>Plan asignado: <strong>%s</strong>.</p>
    <p><strong>Beneficios:</strong> acceso al portal mayorista, precios según tu plan, y compra por volumen.</p>
    <p>Ingresar / Registrarte: <a href="%s">%s</a></p>
    <p>Portal mayorista: <a href="%s">%s</a></p>
    <p>Saludos,<br/>Solution</p>
  `, fullName, planLabel, loginLink, loginLink, portalLink, portalLink)

	return s.send(ctx, to, subjectApproved, html)
}

// SendRejection notifies an applicant that the request was not approved
func (s *NotificationServiceImpl) SendRejection(ctx context.Context, to, fullName string) error {
	html := fmt.Sprintf(`
        <p>Hola %s,</p>
        <p>Te informamos que tu solicitud al programa mayorista de Solution <strong>no ha sido aprobada</strong> en esta oportunidad.</p>
        <p>Si tenés dudas, podés contactarnos.</p>
        <p>Saludos,<br/>Solution</p>
      `, fullName)

	return s.send(ctx, to, subjectRejected, html)
}

func (s *NotificationServiceImpl) send(ctx context.Context, to, subject, html string) error {
	if s.mail == nil {
		return fmt.Errorf("mail provider not configured")
	}
	if err := s.mail.Send(ctx, EmailMessage{To: to, Subject: subject, HTML: html}); err != nil {
		log.Printf("email send failed to %s subject=%q: %v", utils.ObfuscateEmail(to), subject, err)
		return err
	}
	log.Printf("email sent to %s subject=%q", utils.ObfuscateEmail(to), subject)
	return nil
}
