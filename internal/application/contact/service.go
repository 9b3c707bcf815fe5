// Package contact delivers the public contact form by email.
package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"estates-backend/internal/application/emails"
	"estates-backend/internal/pkg/validation"

	"github.com/rs/zerolog/log"
)

var ErrNotConfigured = errors.New("contact: no recipient configured")

// Message is the contact form as posted by the site.
type Message struct {
	Nombres   string `json:"nombres" validate:"required"`
	Apellidos string `json:"apellidos" validate:"required"`
	Ciudad    string `json:"ciudad" validate:"required"`
	Correo    string `json:"correo" validate:"required,email"`
	Telefono  string `json:"telefono" validate:"required"`
	Mensaje   string `json:"mensaje" validate:"required,min=10"`

	// PropertyCode is set when the form is sent from a listing page.
	PropertyCode string `json:"propertyCode,omitempty"`
}

var messages = validation.Messages{
	"nombres":          "Los nombres son obligatorios",
	"apellidos":        "Los apellidos son obligatorios",
	"ciudad":           "La ciudad es obligatoria",
	"correo.required":  "El correo es obligatorio",
	"correo.email":     "El correo debe ser válido",
	"telefono":         "El teléfono es obligatorio",
	"mensaje.required": "El mensaje es obligatorio",
	"mensaje.min":      "El mensaje debe tener al menos 10 caracteres",
}

func (m Message) trimmed() Message {
	m.Nombres = strings.TrimSpace(m.Nombres)
	m.Apellidos = strings.TrimSpace(m.Apellidos)
	m.Ciudad = strings.TrimSpace(m.Ciudad)
	m.Correo = strings.TrimSpace(m.Correo)
	m.Telefono = strings.TrimSpace(m.Telefono)
	m.Mensaje = strings.TrimSpace(m.Mensaje)
	m.PropertyCode = strings.TrimSpace(m.PropertyCode)
	return m
}

type Service struct {
	Mailer emails.Sender
	To     string
}

// Send validates m and mails it to the sales inbox with the sender as reply-to.
func (s *Service) Send(ctx context.Context, m Message) error {
	m = m.trimmed()
	if err := validation.Struct(m, messages); err != nil {
		return err
	}
	if s.Mailer == nil || s.To == "" {
		return ErrNotConfigured
	}
	fullname := m.Nombres + " " + m.Apellidos
	err := s.Mailer.Send(ctx, emails.Message{
		To:          s.To,
		Subject:     subject(m),
		ContentHTML: content(m),
		ReplyTo:     &emails.BrevoReplyTo{Email: m.Correo, Name: fullname},
	})
	if err != nil {
		return fmt.Errorf("contact: send: %w", err)
	}
	log.Info().Str("ciudad", m.Ciudad).Str("property_code", m.PropertyCode).Msg("contact: message sent")
	return nil
}

func subject(m Message) string {
	if m.PropertyCode != "" {
		return "Nuevo contacto sobre la propiedad " + m.PropertyCode
	}
	return "Nuevo mensaje de contacto"
}

func content(m Message) string {
	row := func(label, value string) string {
		return fmt.Sprintf("<tr><td><strong>%s</strong></td><td>%s</td></tr>", label, emails.EscapeHTML(value))
	}
	var b strings.Builder
	b.WriteString("<h1>" + emails.EscapeHTML(subject(m)) + "</h1><table>")
	b.WriteString(row("Nombres", m.Nombres))
	b.WriteString(row("Apellidos", m.Apellidos))
	b.WriteString(row("Ciudad", m.Ciudad))
	b.WriteString(row("Correo", m.Correo))
	b.WriteString(row("Teléfono", m.Telefono))
	if m.PropertyCode != "" {
		b.WriteString(row("Código", m.PropertyCode))
	}
	b.WriteString("</table><p>" + strings.ReplaceAll(emails.EscapeHTML(m.Mensaje), "\n", "<br>") + "</p>")
	return b.String()
}
