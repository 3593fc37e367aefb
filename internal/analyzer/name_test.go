package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatName(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"0001_slack_http_backup.json", "Slack HTTP Backup"},
		{"2051_telegram_webhook_automation.json", "Telegram Webhook Automation"},
		{"api_sync.json", "API Sync"},
		{"manual_export.json", "Manual Export"},
		{"0042.json", "0042"},
		{"plain.json", "Plain"},
		{"UPPER_case_MIX.json", "Upper Case Mix"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatName(tt.filename))
		})
	}
}

func TestWorkflowName(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		docName  string
		want     string
	}{
		{"meaningful doc name wins", "0001_slack_backup.json", "Nightly Slack Backup", "Nightly Slack Backup"},
		{"empty doc name falls back", "0001_slack_backup.json", "", "Slack Backup"},
		{"whitespace doc name falls back", "0001_slack_backup.json", "   ", "Slack Backup"},
		{"stem echo falls back", "0001_slack_backup.json", "0001_slack_backup", "Slack Backup"},
		{"editor placeholder falls back", "0001_slack_backup.json", "My workflow 3", "Slack Backup"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, workflowName(tt.filename, tt.docName))
		})
	}
}
