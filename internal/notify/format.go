package notify

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/centerpulse/centerpulse/internal/domain/rule"
)

// priorityEmoji decorates titles per priority level
func priorityEmoji(priority string) string {
	switch priority {
	case rule.PriorityCritical:
		return "🚨"
	case rule.PriorityHigh:
		return "⚠️"
	case rule.PriorityMedium:
		return "🔔"
	default:
		return "ℹ️"
	}
}

// priorityColor maps a priority to a badge color for HTML email
func priorityColor(priority string) string {
	switch priority {
	case rule.PriorityCritical:
		return "#dc2626"
	case rule.PriorityHigh:
		return "#ea580c"
	case rule.PriorityMedium:
		return "#ca8a04"
	default:
		return "#2563eb"
	}
}

// actionItems suggests next steps per trigger type, shown in email
func actionItems(triggerType string) []string {
	switch triggerType {
	case rule.TriggerLowSales, rule.TriggerBelowThresholdDuration:
		return []string{
			"Check agent availability and call queue",
			"Review lead quality for the day",
			"Contact the center manager",
		}
	case rule.TriggerZeroSales:
		return []string{
			"Verify the center is operational",
			"Check dialer and telephony status",
			"Escalate to the center manager immediately",
		}
	case rule.TriggerHighDQ:
		return []string{
			"Review recent disqualification reasons",
			"Audit agent qualification scripts",
		}
	case rule.TriggerLowApproval:
		return []string{
			"Review pending underwriting queue",
			"Check submission quality with QA",
		}
	case rule.TriggerMilestone:
		return []string{"Recognize the team in the daily standup"}
	default:
		return nil
	}
}

// buildSlackBlocks renders the message as Slack block kit
func buildSlackBlocks(msg Message) map[string]interface{} {
	blocks := []map[string]interface{}{
		{
			"type": "header",
			"text": map[string]interface{}{
				"type": "plain_text",
				"text": fmt.Sprintf("%s %s", priorityEmoji(msg.Priority), msg.Title),
			},
		},
		{
			"type": "section",
			"text": map[string]interface{}{
				"type": "mrkdwn",
				"text": msg.Body,
			},
		},
		{
			"type": "context",
			"elements": []map[string]interface{}{
				{
					"type": "mrkdwn",
					"text": fmt.Sprintf("Center: *%s* | Priority: *%s*", msg.CenterName, msg.Priority),
				},
			},
		},
	}

	if msg.DashboardURL != "" {
		blocks = append(blocks, map[string]interface{}{
			"type": "actions",
			"elements": []map[string]interface{}{
				{
					"type": "button",
					"text": map[string]interface{}{
						"type": "plain_text",
						"text": "Open Dashboard",
					},
					"url": msg.DashboardURL,
				},
			},
		})
	}

	return map[string]interface{}{"blocks": blocks}
}

var emailTemplate = template.Must(template.New("alert").Parse(`<!DOCTYPE html>
<html>
<body style="font-family:Arial,sans-serif;background:#f4f4f5;margin:0;padding:24px;">
  <div style="max-width:600px;margin:0 auto;background:#ffffff;border-radius:8px;padding:24px;">
    <span style="display:inline-block;padding:4px 12px;border-radius:4px;color:#ffffff;background:{{.Color}};font-size:12px;text-transform:uppercase;">{{.Priority}}</span>
    <h2 style="margin:16px 0 8px;">{{.Title}}</h2>
    <p style="color:#374151;">{{.Body}}</p>
    {{if .ActionItems}}
    <h4 style="margin-bottom:4px;">Suggested actions</h4>
    <ul style="color:#374151;margin-top:0;">
      {{range .ActionItems}}<li>{{.}}</li>{{end}}
    </ul>
    {{end}}
    {{if .DashboardURL}}
    <a href="{{.DashboardURL}}" style="display:inline-block;margin-top:16px;padding:10px 20px;background:#111827;color:#ffffff;text-decoration:none;border-radius:6px;">Open Dashboard</a>
    {{end}}
    <p style="color:#9ca3af;font-size:12px;margin-top:24px;">CenterPulse alert for {{.CenterName}}</p>
  </div>
</body>
</html>`))

// buildEmailHTML renders the message as an HTML email body
func buildEmailHTML(msg Message) (string, error) {
	var buf bytes.Buffer
	err := emailTemplate.Execute(&buf, struct {
		Title        string
		Body         string
		Priority     string
		Color        string
		CenterName   string
		DashboardURL string
		ActionItems  []string
	}{
		Title:        msg.Title,
		Body:         msg.Body,
		Priority:     msg.Priority,
		Color:        priorityColor(msg.Priority),
		CenterName:   msg.CenterName,
		DashboardURL: msg.DashboardURL,
		ActionItems:  actionItems(msg.TriggerType),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// buildWhatsAppText renders the message as plain WhatsApp text
func buildWhatsAppText(msg Message) string {
	return fmt.Sprintf("%s *%s*\n\n%s\n\nCenter: %s", priorityEmoji(msg.Priority), msg.Title, msg.Body, msg.CenterName)
}
