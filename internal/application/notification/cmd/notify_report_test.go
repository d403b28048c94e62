package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cunyswap/cunyswap-backend/tests/mocks"
)

func TestNotifyReportHandler_HappyPath(t *testing.T) {
	t.Parallel()

	mockSender := mocks.NewMockMailSender()
	handler := NewNotifyReportHandler(NotifyReportHandlerArgs{
		Mailsender: mockSender,
		AdminEmail: "admin@cunyswap.app",
		AppBaseURL: "http://localhost:3000",
	})

	err := handler.Handle(t.Context(), NotifyReport{
		ItemID:         "item-7",
		ItemTitle:      "Mini Fridge",
		SellerID:       "user-3",
		SellerName:     "Jordan",
		ReportedBy:     "user-9",
		ReportedByName: "Sam",
		Reason:         "scam",
		Details:        "Price changed after agreeing",
		Timestamp:      time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	mockSender.AssertMailSent(t, "admin@cunyswap.app", "New Report")

	sent := mockSender.GetSentMails()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Body, "SCAM", "reason should be uppercased")
	assert.Contains(t, sent[0].Body, "Mini Fridge")
	assert.Contains(t, sent[0].Body, "Price changed after agreeing")
	assert.Contains(t, sent[0].Body, "http://localhost:3000/item/item-7")
}

func TestNotifyReportHandler_AnonymousReporter(t *testing.T) {
	t.Parallel()

	mockSender := mocks.NewMockMailSender()
	handler := NewNotifyReportHandler(NotifyReportHandlerArgs{
		Mailsender: mockSender,
		AdminEmail: "admin@cunyswap.app",
		AppBaseURL: "http://localhost:3000",
	})

	err := handler.Handle(t.Context(), NotifyReport{
		ItemID:    "item-7",
		ItemTitle: "Mini Fridge",
		Reason:    "spam",
	})
	require.NoError(t, err)

	sent := mockSender.GetSentMails()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Body, "Anonymous")
	assert.Contains(t, sent[0].Body, "Unknown")
}

func TestNotifyReportHandler_EscapesHTMLInDetails(t *testing.T) {
	t.Parallel()

	mockSender := mocks.NewMockMailSender()
	handler := NewNotifyReportHandler(NotifyReportHandlerArgs{
		Mailsender: mockSender,
		AdminEmail: "admin@cunyswap.app",
		AppBaseURL: "http://localhost:3000",
	})

	err := handler.Handle(t.Context(), NotifyReport{
		ItemID:  "item-7",
		Reason:  "other",
		Details: "<img src=x onerror=alert(1)>",
	})
	require.NoError(t, err)

	sent := mockSender.GetSentMails()
	require.Len(t, sent, 1)
	assert.NotContains(t, sent[0].Body, "<img")
	assert.Contains(t, sent[0].Body, "&lt;img")
}
