package services

import (
	"context"
	"errors"
	"testing"

	"conferencecentral/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailService_SendConferenceConfirmation(t *testing.T) {
	data := &domain.ConferenceConfirmationEmailData{
		Email:          "alice@example.com",
		ConferenceName: "GopherCon",
		ConferenceInfo: "Name: GopherCon\nCity: Berlin",
	}

	t.Run("sends rendered template", func(t *testing.T) {
		mailer := &mockMailer{}
		svc := NewEmailService(mailer, &mockTemplateRenderer{})
		require.NoError(t, svc.SendConferenceConfirmation(context.Background(), data))
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "alice@example.com", mailer.sent[0])
	})

	t.Run("render failure", func(t *testing.T) {
		svc := NewEmailService(&mockMailer{}, &mockTemplateRenderer{err: errors.New("no such template")})
		require.Error(t, svc.SendConferenceConfirmation(context.Background(), data))
	})

	t.Run("send failure", func(t *testing.T) {
		svc := NewEmailService(&mockMailer{err: errors.New("ses down")}, &mockTemplateRenderer{})
		require.Error(t, svc.SendConferenceConfirmation(context.Background(), data))
	})

	t.Run("nil data", func(t *testing.T) {
		svc := NewEmailService(&mockMailer{}, &mockTemplateRenderer{})
		require.Error(t, svc.SendConferenceConfirmation(context.Background(), nil))
	})
}
