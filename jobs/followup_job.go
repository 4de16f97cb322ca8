package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/anjiri1684/institute_backoffice/database"
	"github.com/anjiri1684/institute_backoffice/models"
	"github.com/anjiri1684/institute_backoffice/notifications"
)

// SendFollowUpReminders nudges counselors about leads whose follow-up date
// has arrived and that are still open.
func SendFollowUpReminders() {
	log.Println("Running job: SendFollowUpReminders...")

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var dueLeads []models.Lead
	err := database.DB.Preload("AssignedTo").
		Where("status IN ? AND follow_up_date >= ? AND follow_up_date < ?",
			[]string{"new", "contacted", "qualified"}, startOfDay, startOfDay.AddDate(0, 0, 1)).
		Find(&dueLeads).Error
	if err != nil {
		log.Printf("Error checking for due follow-ups: %v", err)
		return
	}

	if len(dueLeads) == 0 {
		log.Println("No follow-ups due today.")
		return
	}

	for _, lead := range dueLeads {
		if lead.AssignedTo == nil {
			continue
		}
		notifications.SendEmail(
			lead.AssignedTo.FullName,
			lead.AssignedTo.Email,
			"Lead Follow-Up Due Today",
			fmt.Sprintf("<h1>Follow-Up Reminder</h1><p>Your follow-up with %s (%s) is due today.</p>", lead.FullName, lead.Phone),
		)
	}

	log.Printf("Sent %d follow-up reminder(s).", len(dueLeads))
}
