package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cunyswap/cunyswap-backend/pkg/errorx"
	"github.com/cunyswap/cunyswap-backend/tests/mocks"
)

func TestNotifyMessageHandler_HappyPath(t *testing.T) {
	t.Parallel()

	mockSender := mocks.NewMockMailSender()
	handler := NewNotifyMessageHandler(NotifyMessageHandlerArgs{
		Mailsender: mockSender,
		AppBaseURL: "http://localhost:3000",
	})

	err := handler.Handle(t.Context(), NotifyMessage{
		RecipientEmail: "buyer@cuny.edu",
		RecipientName:  "Maria",
		SenderName:     "Alex",
		MessagePreview: "Is the textbook still available?",
		ItemTitle:      "Calculus Textbook",
		ConversationID: "conv-42",
	})
	require.NoError(t, err)

	mockSender.AssertMailSent(t, "buyer@cuny.edu", "New message from Alex")

	sent := mockSender.GetSentMails()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Body, "Maria")
	assert.Contains(t, sent[0].Body, "Is the textbook still available?")
	assert.Contains(t, sent[0].Body, "Calculus Textbook")
	assert.Contains(t, sent[0].Body, "http://localhost:3000/messages/conv-42")
}

func TestNotifyMessageHandler_MissingOptionalFields(t *testing.T) {
	t.Parallel()

	mockSender := mocks.NewMockMailSender()
	handler := NewNotifyMessageHandler(NotifyMessageHandlerArgs{
		Mailsender: mockSender,
		AppBaseURL: "http://localhost:3000",
	})

	err := handler.Handle(t.Context(), NotifyMessage{
		RecipientEmail: "buyer@cuny.edu",
		SenderName:     "Alex",
	})
	require.NoError(t, err)

	sent := mockSender.GetSentMails()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Body, "Hey there!")
	assert.Contains(t, sent[0].Body, "http://localhost:3000/messages")
}

func TestNotifyMessageHandler_EscapesHTMLInUserContent(t *testing.T) {
	t.Parallel()

	mockSender := mocks.NewMockMailSender()
	handler := NewNotifyMessageHandler(NotifyMessageHandlerArgs{
		Mailsender: mockSender,
		AppBaseURL: "http://localhost:3000",
	})

	err := handler.Handle(t.Context(), NotifyMessage{
		RecipientEmail: "buyer@cuny.edu",
		SenderName:     "<script>alert(1)</script>",
		MessagePreview: "<b>bold</b>",
	})
	require.NoError(t, err)

	sent := mockSender.GetSentMails()
	require.Len(t, sent, 1)
	assert.NotContains(t, sent[0].Body, "<script>")
	assert.Contains(t, sent[0].Body, "&lt;script&gt;")
	assert.NotContains(t, sent[0].Body, "<b>bold</b>")
}

func TestNotifyMessageHandler_SendFailure(t *testing.T) {
	t.Parallel()

	mockSender := mocks.NewMockMailSender()
	mockSender.FailWith(errors.New("smtp unreachable"))
	handler := NewNotifyMessageHandler(NotifyMessageHandlerArgs{
		Mailsender: mockSender,
		AppBaseURL: "http://localhost:3000",
	})

	err := handler.Handle(t.Context(), NotifyMessage{
		RecipientEmail: "buyer@cuny.edu",
		SenderName:     "Alex",
	})
	require.Error(t, err)

	var i18nErr *errorx.I18nError
	require.ErrorAs(t, err, &i18nErr)
	assert.Equal(t, errorx.CodeUpstreamError, i18nErr.Code)
}
