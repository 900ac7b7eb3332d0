package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"mhb/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	if from == "" {
		// Email sending is disabled without a configured sender.
		return nil
	}

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Module Handbook <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #00304D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #00304D; line-height: 1.6; }
			.content h2 { color: #00304D; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #6d9fd7; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>Module Handbook</h1></div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">This is an automated message from the module handbook service.</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendReviewReminderEmail notifies a program coordinator about a module
// version that has been sitting in review.
func SendReviewReminderEmail(email, coordinatorName, moduleNumber, moduleTitle string, days int) error {
	subject := fmt.Sprintf("Review pending: %s", moduleNumber)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>The following module version has been waiting for content review for %d days:</p>
		<div class="info-box"><strong>%s</strong> &mdash; %s</div>
		<p>Please approve it or send it back for revision.</p>
	`, coordinatorName, days, moduleNumber, moduleTitle)

	return SendEmail([]string{email}, subject, getEmailTemplate("Review Reminder", body))
}
