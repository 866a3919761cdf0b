package notification

import (
	"fmt"
	"strings"
)

type Template struct {
	Subject string
	Text    string
}

func LeaveStatusUpdate(name, status, approvedBy string) Template {
	return Template{
		Subject: fmt.Sprintf("Leave Request %s", strings.ToUpper(status)),
		Text: fmt.Sprintf("Hello %s,\n\nYour leave request has been %s by %s.\n\n"+
			"Please check your dashboard for more details.\n\nBest,\nLeaveSync Team", name, status, approvedBy),
	}
}

func LeaveCreatedManager(employeeName, leaveType, days string) Template {
	return Template{
		Subject: fmt.Sprintf("New Leave Request: %s", employeeName),
		Text: fmt.Sprintf("%s has applied for %s days of %s leave.\n\nPlease review it in your dashboard.",
			employeeName, days, leaveType),
	}
}

func PasswordReset(name, link string) Template {
	return Template{
		Subject: "Reset your LeaveSync password",
		Text: fmt.Sprintf("Hello %s,\n\nWe received a request to reset your password. "+
			"Use the link below within the next hour:\n\n%s\n\n"+
			"If you did not request this, you can ignore this email.\n\nBest,\nLeaveSync Team", name, link),
	}
}

// displayLeaveType turns "work_from_home" into "work from home".
func displayLeaveType(leaveType string) string {
	return strings.ReplaceAll(leaveType, "_", " ")
}
