package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailMessage_Render(t *testing.T) {
	msg := &EmailMessage{
		TemplateName: "complaint_received",
		TemplateData: map[string]interface{}{
			"Date":      "Wed, 06 Mar 2024 10:00",
			"Submitter": "Rahul Kumar (rahul, class 10)",
			"Subject":   "Library",
			"Message":   "The library closes too early.",
		},
	}
	require.NoError(t, msg.Render("Shule"))

	// both bodies extend their _base layout
	assert.Contains(t, msg.TextContent, "From: Rahul Kumar (rahul, class 10)")
	assert.Contains(t, msg.TextContent, "The Shule team")
	assert.Contains(t, msg.HTMLContent, "The library closes too early.")
	assert.Contains(t, msg.HTMLContent, "The Shule team")
	assert.True(t, msg.HasContent())
}

func TestEmailMessage_Render_BodyStr(t *testing.T) {
	msg := &EmailMessage{BodyStr: "plain"}
	require.NoError(t, msg.Render("Shule"))
	assert.Equal(t, "plain", msg.TextContent)
	assert.Empty(t, msg.HTMLContent)
}
